// Copyright (c) 2024, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package element_test

import (
	"math/big"
	"testing"

	"github.com/danos/ionelement/dom"
	"github.com/danos/ionelement/element"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func requireTypeMismatch(t *testing.T, op string, actual element.Kind, null bool, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		require.NotNil(t, r, "%s didn't panic", op)
		err, ok := r.(error)
		require.True(t, ok, "%s panicked with %v", op, r)
		require.True(t, errors.Is(err, element.ErrTypeMismatch))
		var tm *element.TypeMismatchError
		require.True(t, errors.As(err, &tm))
		require.Equal(t, op, tm.Op)
		require.Equal(t, actual, tm.Actual)
		require.Equal(t, null, tm.Null)
	}()
	fn()
}

func TestAccessors(t *testing.T) {
	t.Run("scalars", func(t *testing.T) {
		require.True(t, element.BoolNew(true).AsBool())
		require.Equal(t, int64(-3), element.IntNew(-3).AsInt())
		require.Equal(t, 1.25, element.FloatNew(1.25).AsFloat())
		require.Equal(t, "s", element.StringNew("s").AsString())
		require.Equal(t, "y", element.SymbolNew("y").AsSymbol())
		require.Equal(t, "y", element.SymbolNew("y").AsText())
		require.Equal(t, "s", element.StringNew("s").AsText())
		require.Equal(t, []byte{1}, element.BlobNew([]byte{1}).AsBlob())
		require.Equal(t, []byte{2}, element.ClobNew([]byte{2}).AsBytes())
		d := element.MustParseDecimal("2.50")
		require.True(t, d.Equal(element.DecimalNew(d).AsDecimal()))
	})
	t.Run("defaults", func(t *testing.T) {
		n := element.NullNew(element.KindInt)
		require.Equal(t, int64(0), n.ToInt())
		require.Equal(t, int64(9), n.ToInt(9))
		require.Equal(t, "d", element.IntNew(1).ToString("d"))
		require.Equal(t, "", element.IntNew(1).ToText())
		require.Equal(t, 2.0, element.StringNew("x").ToFloat(2))
		require.False(t, element.StringNew("x").ToBool())
		require.Nil(t, element.StringNew("x").ToBigInt())
		require.Equal(t, int64(1), element.IntNew(1).ToBigInt().Int64())
		require.Equal(t, big.NewInt(5), element.NullNew(element.KindInt).ToBigInt(big.NewInt(5)))
		require.Nil(t, element.IntNew(1).ToBytes())
		require.Nil(t, element.IntNew(1).ToStruct())
		require.Nil(t, element.StructNew().ToSeq())
		require.Nil(t, element.ListWith().ToSexp())
		require.NotNil(t, element.SexpWith().ToSeq())
		require.Equal(t, "y", element.SymbolNew("y").ToText("d"))
		require.Equal(t, "d", element.SymbolNew("y").ToString("d"))
	})
	t.Run("big int", func(t *testing.T) {
		huge := new(big.Int).Lsh(big.NewInt(1), 70)
		e := element.BigIntNew(huge)
		require.Equal(t, 0, huge.Cmp(e.AsBigInt()))
		require.Equal(t, int64(4), e.ToInt(4))
		defer func() {
			r := recover()
			err, ok := r.(error)
			require.True(t, ok)
			require.True(t, errors.Is(err, element.ErrInvalidInput))
		}()
		e.AsInt()
	})
	t.Run("returned payloads are copies", func(t *testing.T) {
		i := big.NewInt(5)
		e := element.BigIntNew(i)
		i.SetInt64(6)
		e.AsBigInt().SetInt64(7)
		require.Equal(t, int64(5), e.AsInt())

		b := []byte("abc")
		blob := element.BlobNew(b)
		b[0] = 'x'
		blob.AsBlob()[1] = 'x'
		require.Equal(t, []byte("abc"), blob.AsBlob())
	})
	t.Run("wrapped payloads are copies", func(t *testing.T) {
		e := wrap(t, dom.Blob([]byte("abc")))
		e.AsBytes()[0] = 'x'
		require.Equal(t, []byte("abc"), e.AsBlob())
		i := wrap(t, dom.Int(3))
		i.AsBigInt().SetInt64(4)
		require.Equal(t, int64(3), i.AsInt())
	})
	t.Run("annotations are copies", func(t *testing.T) {
		e := element.IntNew(1).WithAnnotations("a")
		e.Annotations()[0] = "b"
		require.Equal(t, []string{"a"}, e.Annotations())
	})
}

func TestTypeMismatch(t *testing.T) {
	requireTypeMismatch(t, "AsBool", element.KindInt, false, func() {
		element.IntNew(1).AsBool()
	})
	requireTypeMismatch(t, "AsInt", element.KindInt, true, func() {
		element.NullNew(element.KindInt).AsInt()
	})
	requireTypeMismatch(t, "AsString", element.KindSymbol, false, func() {
		element.SymbolNew("s").AsString()
	})
	requireTypeMismatch(t, "AsText", element.KindBlob, false, func() {
		element.BlobNew(nil).AsText()
	})
	requireTypeMismatch(t, "AsSeq", element.KindStruct, false, func() {
		element.StructNew().AsSeq()
	})
	requireTypeMismatch(t, "AsStruct", element.KindList, false, func() {
		element.ListWith().AsStruct()
	})
	requireTypeMismatch(t, "AsStruct", element.KindStruct, true, func() {
		element.NullNew(element.KindStruct).AsStruct()
	})
	requireTypeMismatch(t, "AsSexp", element.KindList, false, func() {
		wrap(t, domInts(1)).AsSexp()
	})
	requireTypeMismatch(t, "AsFloat", element.KindNull, true, func() {
		wrap(t, dom.Null(element.KindNull)).AsFloat()
	})

	t.Run("message", func(t *testing.T) {
		err := &element.TypeMismatchError{
			Op:       "AsSeq",
			Expected: []element.Kind{element.KindList, element.KindSexp},
			Actual:   element.KindStruct,
			Null:     true,
		}
		require.Equal(t,
			"AsSeq: type mismatch: expected list or sexp, got null.struct",
			err.Error())
	})
}

func TestKind(t *testing.T) {
	require.Equal(t, "timestamp", element.KindTimestamp.String())
	require.True(t, element.KindSexp.IsSeq())
	require.True(t, element.KindStruct.IsContainer())
	require.False(t, element.KindStruct.IsSeq())
	require.True(t, element.KindSymbol.IsText())
	require.True(t, element.KindClob.IsLob())
	require.False(t, element.KindString.IsLob())
}

func TestNullNew(t *testing.T) {
	for _, k := range []element.Kind{
		element.KindNull, element.KindBool, element.KindInt,
		element.KindFloat, element.KindDecimal, element.KindTimestamp,
		element.KindSymbol, element.KindString, element.KindClob,
		element.KindBlob, element.KindList, element.KindSexp,
		element.KindStruct,
	} {
		n := element.NullNew(k)
		require.True(t, n.IsNull())
		require.Equal(t, k, n.Kind())
	}
	require.Panics(t, func() { element.NullNew(element.Kind(200)) })
	require.Panics(t, func() { element.BigIntNew(nil) })
}

func TestStructAccess(t *testing.T) {
	s := element.StructWith(
		element.FieldNew("a", 1),
		element.FieldNew("b", 2),
		element.FieldNew("a", 3))
	for name, st := range map[string]element.StructElement{
		"built":   s,
		"wrapped": wrap(t, domStruct(t, "a", dom.Int(1), "b", dom.Int(2), "a", dom.Int(3))).AsStruct(),
	} {
		st := st
		t.Run(name, func(t *testing.T) {
			require.Equal(t, 3, st.Len())
			v, err := st.Get("a")
			require.NoError(t, err)
			require.Equal(t, int64(1), v.AsInt())
			require.Len(t, st.GetAll("a"), 2)
			require.Equal(t, int64(3), st.GetAll("a")[1].AsInt())
			require.True(t, st.Contains("b"))
			require.False(t, st.Contains("c"))
			require.Nil(t, st.At("c"))
			_, ok := st.Find("c")
			require.False(t, ok)
			_, err = st.Get("c")
			require.True(t, errors.Is(err, element.ErrMissingField))
			require.Empty(t, st.GetAll("c"))

			var names []string
			st.Range(func(f element.Field) {
				names = append(names, f.Name)
			})
			require.Equal(t, []string{"a", "b", "a"}, names)

			var count int
			st.Range(func(name string) bool {
				count++
				return name != "b"
			})
			require.Equal(t, 2, count)

			require.Len(t, st.Values(), 3)
			require.Equal(t, "b", st.Fields()[1].Name)
			require.Panics(t, func() { st.Range(func(int) {}) })
		})
	}
}

func TestSeqAccess(t *testing.T) {
	for name, seq := range map[string]element.SeqElement{
		"built":   element.ListWith(1, 2, 3),
		"wrapped": wrap(t, domInts(1, 2, 3)).AsSeq(),
	} {
		seq := seq
		t.Run(name, func(t *testing.T) {
			require.Equal(t, 3, seq.Len())
			require.Equal(t, int64(2), seq.At(1).AsInt())
			require.Nil(t, seq.At(3))
			require.Nil(t, seq.At(-1))
			_, ok := seq.Find(3)
			require.False(t, ok)
			require.True(t, seq.Contains(2))
			require.False(t, seq.Contains(3))
			require.Len(t, seq.Values(), 3)

			var sum int64
			seq.Range(func(v element.Element) {
				sum += v.AsInt()
			})
			require.Equal(t, int64(6), sum)

			var idx []int
			seq.Range(func(i int) bool {
				idx = append(idx, i)
				return i < 1
			})
			require.Equal(t, []int{0, 1}, idx)
			require.PanicsWithValue(t, "invalid range function", func() {
				seq.Range(func(string) {})
			})
		})
	}
}
