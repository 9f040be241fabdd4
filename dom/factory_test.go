// Copyright (c) 2024, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package dom_test

import (
	"math/big"
	"testing"

	"github.com/danos/ionelement/dom"
	"github.com/danos/ionelement/element"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestFactoryNewScalar(t *testing.T) {
	f := dom.Factory{}
	good := map[element.Kind]interface{}{
		element.KindBool:      true,
		element.KindInt:       big.NewInt(3),
		element.KindFloat:     1.5,
		element.KindDecimal:   element.MustParseDecimal("1.5"),
		element.KindTimestamp: element.TimestampOf(time2007(), element.PrecisionDay),
		element.KindString:    "s",
		element.KindSymbol:    "y",
		element.KindBlob:      []byte("b"),
		element.KindClob:      []byte("c"),
	}
	for kind, value := range good {
		kind, value := kind, value
		t.Run(kind.String(), func(t *testing.T) {
			n, err := f.NewScalar(kind, value, []string{"a"})
			require.NoError(t, err)
			require.Equal(t, kind, n.Kind())
			require.Equal(t, []string{"a"}, n.Annotations())
			require.False(t, n.IsReadOnly())

			_, err = f.NewScalar(kind, struct{}{}, nil)
			require.True(t, errors.Is(err, element.ErrInvalidInput))
		})
	}
	t.Run("nil big.Int", func(t *testing.T) {
		_, err := f.NewScalar(element.KindInt, (*big.Int)(nil), nil)
		require.True(t, errors.Is(err, element.ErrInvalidInput))
	})
	t.Run("container kinds", func(t *testing.T) {
		_, err := f.NewScalar(element.KindList, nil, nil)
		require.True(t, errors.Is(err, element.ErrInvalidInput))
	})
	t.Run("bytes are copied", func(t *testing.T) {
		b := []byte("b")
		n, err := f.NewScalar(element.KindBlob, b, nil)
		require.NoError(t, err)
		b[0] = 'x'
		require.Equal(t, []byte("b"), n.BytesValue())
	})
}

func TestFactoryContainers(t *testing.T) {
	f := dom.Factory{}
	t.Run("seq kind is checked", func(t *testing.T) {
		_, err := f.NewSeq(element.KindStruct, nil, nil)
		require.True(t, errors.Is(err, element.ErrInvalidInput))
	})
	t.Run("struct names match children", func(t *testing.T) {
		_, err := f.NewStruct([]string{"a"}, nil, nil)
		require.True(t, errors.Is(err, element.ErrInvalidInput))
	})
	t.Run("frozen children are copied", func(t *testing.T) {
		frozen := dom.Int(1).MakeReadOnly()
		n, err := f.NewSeq(element.KindList, []element.Node{frozen}, nil)
		require.NoError(t, err)
		_, child := n.Child(0)
		require.False(t, child.IsReadOnly())
		require.NotSame(t, frozen, child)
	})
	t.Run("mutable children are adopted", func(t *testing.T) {
		v := dom.Int(1)
		n, err := f.NewStruct([]string{"a"}, []element.Node{v}, nil)
		require.NoError(t, err)
		name, child := n.Child(0)
		require.Equal(t, "a", name)
		require.Same(t, v, child)
	})
	t.Run("freeze", func(t *testing.T) {
		v := dom.List(dom.Int(1))
		n := f.Freeze(v)
		require.Same(t, v, n)
		_, child := n.Child(0)
		require.True(t, child.IsReadOnly())
	})
}

func TestToNodeRoundTrip(t *testing.T) {
	e := element.StructWith(
		element.FieldNew("i", element.ValueNew(uint64(1)<<63)),
		element.FieldNew("l", element.SexpWith(element.SymbolNew("x")).WithAnnotations("s")),
		element.FieldNew("n", element.NullNew(element.KindBlob)),
		element.FieldNew("i", 2),
	).WithAnnotations("top")

	n, err := element.ToNode(e, dom.Factory{})
	require.NoError(t, err)
	require.False(t, n.IsReadOnly())
	v := n.(*dom.Value)
	require.Equal(t, e.String(), v.String())
	require.NoError(t, v.Put("extra", dom.Bool(false)))

	ro, err := element.ToReadOnlyNode(e, dom.Factory{})
	require.NoError(t, err)
	require.True(t, ro.IsReadOnly())
	back, err := element.Wrap(ro)
	require.NoError(t, err)
	require.True(t, back.Equal(e))
}

func TestFromNode(t *testing.T) {
	e := element.ListWith(1, "s", element.StructWith(element.FieldNew("a", []byte("b"))))
	ro, err := element.ToReadOnlyNode(e, dom.Factory{})
	require.NoError(t, err)

	v := dom.FromNode(ro)
	require.False(t, v.IsReadOnly())
	require.Equal(t, `[1,"s",{a:{{Yg==}}}]`, v.String())

	wrapped, err := element.Wrap(ro)
	require.NoError(t, err)
	n, err := element.ToNode(wrapped, dom.Factory{})
	require.NoError(t, err)
	require.NotSame(t, ro, n)
	require.False(t, n.IsReadOnly())
	require.NoError(t, n.(*dom.Value).Add(dom.Int(2)))
	require.Equal(t, 3, ro.Len())
}
