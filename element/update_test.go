// Copyright (c) 2024, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package element_test

import (
	"testing"

	"github.com/danos/ionelement/dom"
	"github.com/danos/ionelement/element"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func ints(t *testing.T, s element.SeqElement) []int64 {
	t.Helper()
	out := make([]int64, 0, s.Len())
	s.Range(func(e element.Element) {
		out = append(out, e.AsInt())
	})
	return out
}

func TestSeqUpdate(t *testing.T) {
	for name, mk := range map[string]func() element.SeqElement{
		"built":   func() element.SeqElement { return element.ListWith(1, 2, 3) },
		"wrapped": func() element.SeqElement { return wrap(t, domInts(1, 2, 3)).AsSeq() },
	} {
		mk := mk
		t.Run(name, func(t *testing.T) {
			t.Run("append", func(t *testing.T) {
				orig := mk()
				got := orig.Append(4, 5)
				require.Equal(t, []int64{1, 2, 3, 4, 5}, ints(t, got))
				require.Equal(t, []int64{1, 2, 3}, ints(t, orig))
			})
			t.Run("assoc", func(t *testing.T) {
				got, err := mk().Assoc(1, 20)
				require.NoError(t, err)
				require.Equal(t, []int64{1, 20, 3}, ints(t, got))
			})
			t.Run("assoc at length appends", func(t *testing.T) {
				got, err := mk().Assoc(3, 4)
				require.NoError(t, err)
				require.Equal(t, []int64{1, 2, 3, 4}, ints(t, got))
			})
			t.Run("assoc out of range", func(t *testing.T) {
				_, err := mk().Assoc(5, 4)
				require.True(t, errors.Is(err, element.ErrInvalidInput))
			})
			t.Run("insert", func(t *testing.T) {
				seq := mk()
				got, err := seq.Insert(0, 0)
				require.NoError(t, err)
				require.Equal(t, []int64{0, 1, 2, 3}, ints(t, got))
				got, err = seq.Insert(2, 9)
				require.NoError(t, err)
				require.Equal(t, []int64{1, 2, 9, 3}, ints(t, got))
				got, err = seq.Insert(3, 4)
				require.NoError(t, err)
				require.Equal(t, []int64{1, 2, 3, 4}, ints(t, got))
				_, err = seq.Insert(-1, 4)
				require.True(t, errors.Is(err, element.ErrInvalidInput))
			})
			t.Run("delete", func(t *testing.T) {
				seq := mk()
				for i, want := range [][]int64{{2, 3}, {1, 3}, {1, 2}} {
					got, err := seq.Delete(i)
					require.NoError(t, err)
					require.Equal(t, want, ints(t, got))
				}
				_, err := seq.Delete(3)
				require.True(t, errors.Is(err, element.ErrInvalidInput))
			})
			t.Run("kind is kept", func(t *testing.T) {
				got := mk().Append(4)
				require.Equal(t, element.KindList, got.Kind())
			})
			t.Run("update", func(t *testing.T) {
				got, err := mk().Update(func(f *element.SeqFields) {
					require.Equal(t, 3, f.Len())
					f.Set(0, f.At(2)).Delete(2).Append("x")
					require.Nil(t, f.At(5))
				})
				require.NoError(t, err)
				require.Equal(t, "[3,2,\"x\"]", got.String())
			})
			t.Run("update reports every error", func(t *testing.T) {
				got, err := mk().Update(func(f *element.SeqFields) {
					f.Set(7, 1)
					f.Append(nil)
					f.Delete(-1)
					f.Append(struct{}{})
				})
				require.Nil(t, got)
				require.True(t, errors.Is(err, element.ErrInvalidInput))
				var merr *multierror.Error
				require.True(t, errors.As(err, &merr))
				require.Len(t, merr.Errors, 4)
				var ie *element.InvalidInputError
				require.True(t, errors.As(err, &ie))
				require.Equal(t, "SeqElement.Update", ie.Op)
			})
			t.Run("append nil panics", func(t *testing.T) {
				require.Panics(t, func() { mk().Append(nil) })
			})
		})
	}
	t.Run("sexp kind is kept", func(t *testing.T) {
		got, err := element.SexpWith(1).WithAnnotations("a").AsSexp().Assoc(0, 2)
		require.NoError(t, err)
		require.Equal(t, "a::(2)", got.String())
	})
}

func TestStructUpdate(t *testing.T) {
	for name, mk := range map[string]func() element.StructElement{
		"built": func() element.StructElement {
			return element.StructWith(
				element.FieldNew("a", 1),
				element.FieldNew("b", 2),
				element.FieldNew("a", 3))
		},
		"wrapped": func() element.StructElement {
			return wrap(t, domStruct(t,
				"a", dom.Int(1), "b", dom.Int(2), "a", dom.Int(3))).AsStruct()
		},
	} {
		mk := mk
		t.Run(name, func(t *testing.T) {
			t.Run("assoc replaces every duplicate", func(t *testing.T) {
				orig := mk()
				got := orig.Assoc("a", 10)
				require.Equal(t, "{a:10,b:2}", got.String())
				require.Equal(t, 3, orig.Len())
			})
			t.Run("assoc appends new names", func(t *testing.T) {
				require.Equal(t, "{a:1,b:2,a:3,c:4}", mk().Assoc("c", 4).String())
			})
			t.Run("add keeps duplicates", func(t *testing.T) {
				require.Equal(t, "{a:1,b:2,a:3,b:4}", mk().Add("b", 4).String())
			})
			t.Run("delete", func(t *testing.T) {
				require.Equal(t, "{b:2}", mk().Delete("a").String())
				require.Equal(t, "{}", mk().Delete("a", "b").String())
				s := mk()
				require.True(t, s.Delete("c").Equal(s))
			})
			t.Run("assoc nil panics", func(t *testing.T) {
				defer func() {
					err, ok := recover().(error)
					require.True(t, ok)
					require.True(t, errors.Is(err, element.ErrInvalidInput))
				}()
				mk().Assoc("a", nil)
			})
			t.Run("update", func(t *testing.T) {
				got, err := mk().Update(func(f *element.StructFields) {
					v, err := f.Get("b")
					require.NoError(t, err)
					_, err = f.Get("z")
					require.True(t, errors.Is(err, element.ErrMissingField))
					require.Len(t, f.GetAll("a"), 2)
					require.True(t, f.Contains("a"))
					f.Set("c", v)
					f.Insert(0, element.FieldNew("first", true))
					require.True(t, f.Remove(element.FieldNew("a", 3)))
					require.False(t, f.Remove(element.FieldNew("a", 4)))
					require.Equal(t, 4, f.Len())
				})
				require.NoError(t, err)
				require.Equal(t, "{first:true,a:1,b:2,c:2}", got.String())
			})
			t.Run("set all and add all", func(t *testing.T) {
				got, err := mk().Update(func(f *element.StructFields) {
					f.SetAll(element.FieldNew("a", 0), element.FieldNew("d", 1)).
						AddAll(element.FieldNew("d", 2)).
						RemoveAll("b")
				})
				require.NoError(t, err)
				require.Equal(t, "{a:0,d:1,d:2}", got.String())
			})
			t.Run("update reports every error", func(t *testing.T) {
				got, err := mk().Update(func(f *element.StructFields) {
					f.Set("x", nil)
					f.Add("y", make(chan int))
					f.SetAll(element.Field{Name: "z"})
					f.Insert(9, element.FieldNew("w", 1))
				})
				require.Nil(t, got)
				var merr *multierror.Error
				require.True(t, errors.As(err, &merr))
				require.Len(t, merr.Errors, 4)
				for _, e := range merr.Errors {
					require.True(t, errors.Is(e, element.ErrInvalidInput))
				}
				require.Contains(t, err.Error(), "StructElement.Update")
			})
		})
	}
	t.Run("annotations are kept", func(t *testing.T) {
		s := element.StructWith(element.FieldNew("a", 1)).WithAnnotations("x").AsStruct()
		require.Equal(t, "x::{a:2}", s.Assoc("a", 2).String())
	})
}

func TestUpdateLogging(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	element.SetLogger(logger)
	defer element.SetLogger(nil)

	s := wrap(t, domStruct(t, "a", domInts(1, 2))).AsStruct()
	require.Empty(t, hook.AllEntries())

	s = s.Assoc("b", 1)
	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	require.Equal(t, "copying wrapped container for update", entries[0].Message)
	require.Equal(t, "wrapped children materialized", entries[1].Message)
	require.Equal(t, 1, entries[1].Data["children"])
	require.Equal(t, "struct", entries[1].Data["kind"])

	hook.Reset()
	s.At("a").AsSeq().At(0)
	require.Len(t, hook.AllEntries(), 1)
	require.Equal(t, "list", hook.LastEntry().Data["kind"])
	require.Equal(t, 2, hook.LastEntry().Data["children"])
}
