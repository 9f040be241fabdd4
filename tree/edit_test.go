// Copyright (c) 2024, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package tree

import (
	"fmt"
	"testing"

	"github.com/danos/ionelement/element"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func ExampleEditOperation_Element() {
	edit := EditOperationNew(
		EditEntryNew(EditAssoc, "/foo/bar",
			EditEntryValue(element.StructWith(
				element.FieldNew("bar", "quuz")))),
		EditEntryNew(EditDelete, "/foo/'a b'"),
	)
	fmt.Println(edit.Element())
	// Output: {actions:[{action:assoc,path:"/foo/bar",value:{bar:"quuz"}},{action:delete,path:"/foo/'a b'"}]}
}

func ExampleEditOperationFromElement() {
	in := element.StructWith(element.FieldNew("actions", element.ListWith(
		element.StructWith(
			element.FieldNew("action", element.SymbolNew("assoc")),
			element.FieldNew("path", "/foo/bar"),
			element.FieldNew("value", element.StructWith(
				element.FieldNew("bar", "quuz")))),
		element.StructWith(
			element.FieldNew("action", element.SymbolNew("delete")),
			element.FieldNew("path", "/foo/bar")),
		element.StructWith(
			element.FieldNew("action", "merge"),
			element.FieldNew("path", "/foo/bar"),
			element.FieldNew("value", element.StructWith(
				element.FieldNew("bar", "quux")))),
	)))
	edit, err := EditOperationFromElement(in)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(edit)
	// Output: {actions:[{action:assoc,path:"/foo/bar",value:{bar:"quuz"}},{action:delete,path:"/foo/bar"},{action:merge,path:"/foo/bar",value:{bar:"quux"}}]}
}

func TestEditOperationFromElement(t *testing.T) {
	good := EditEntryNew(EditAssoc, "/a", EditEntryValue(1)).Element()
	parse := func(entries ...interface{}) (*EditOperation, error) {
		return EditOperationFromElement(element.StructWith(
			element.FieldNew("actions", element.ListWith(entries...))))
	}
	t.Run("round trip", func(t *testing.T) {
		tree := New().Assoc("/a", 1).Assoc("/b", element.ListWith(1, 2))
		other := tree.Delete("/b[0]").Assoc("/c/d", "x")
		diff := tree.Diff(other)
		got, err := EditOperationFromElement(diff.Element())
		require.NoError(t, err)
		require.Equal(t, diff.String(), got.String())
		require.True(t, tree.Edit(got).Equal(other))
	})
	t.Run("no actions", func(t *testing.T) {
		got, err := EditOperationFromElement(element.StructNew())
		require.NoError(t, err)
		require.Empty(t, got.Actions)
	})
	t.Run("not a struct", func(t *testing.T) {
		_, err := EditOperationFromElement(element.IntNew(1))
		require.True(t, errors.Is(err, element.ErrTypeMismatch))
		var tm *element.TypeMismatchError
		require.True(t, errors.As(err, &tm))
		require.Equal(t, element.KindInt, tm.Actual)
	})
	t.Run("actions not a list", func(t *testing.T) {
		_, err := EditOperationFromElement(element.StructWith(
			element.FieldNew("actions", 1)))
		require.True(t, errors.Is(err, element.ErrInvalidInput))
	})
	t.Run("handles bogus action", func(t *testing.T) {
		_, err := parse(good, element.StructWith(
			element.FieldNew("action", element.SymbolNew("bogus!")),
			element.FieldNew("path", "/a")))
		require.True(t, errors.Is(err, element.ErrInvalidInput))
	})
	t.Run("handles non text action", func(t *testing.T) {
		_, err := parse(good, element.StructWith(
			element.FieldNew("action", 10),
			element.FieldNew("path", "/a")))
		require.True(t, errors.Is(err, element.ErrInvalidInput))
	})
	t.Run("handles missing path", func(t *testing.T) {
		_, err := parse(element.StructWith(
			element.FieldNew("action", element.SymbolNew("delete"))))
		require.True(t, errors.Is(err, element.ErrMissingField))
	})
	t.Run("handles invalid path", func(t *testing.T) {
		_, err := parse(element.StructWith(
			element.FieldNew("action", element.SymbolNew("delete")),
			element.FieldNew("path", "a")))
		require.True(t, errors.Is(err, element.ErrInvalidInput))
	})
	t.Run("handles missing value", func(t *testing.T) {
		_, err := parse(element.StructWith(
			element.FieldNew("action", element.SymbolNew("merge")),
			element.FieldNew("path", "/a")))
		require.True(t, errors.Is(err, element.ErrMissingField))
	})
	t.Run("reports every bad entry", func(t *testing.T) {
		_, err := parse(1, good, "x")
		var merr *multierror.Error
		require.True(t, errors.As(err, &merr))
		require.Len(t, merr.Errors, 2)
		require.Contains(t, err.Error(), "actions[0]")
		require.Contains(t, err.Error(), "actions[2]")
	})
}

func TestEditEntryElement(t *testing.T) {
	t.Run("with value", func(t *testing.T) {
		got := EditEntryNew(EditMerge, "/a/b", EditEntryValue("x")).Element()
		require.Equal(t, `{action:merge,path:"/a/b",value:"x"}`, got.String())
	})
	t.Run("without value", func(t *testing.T) {
		entry := EditEntryNew(EditDelete, "/a")
		require.Equal(t, `{action:delete,path:"/a"}`, entry.Element().String())
		require.False(t, entry.Element().Contains("value"))
	})
}

func TestParseEditAction(t *testing.T) {
	for _, a := range []EditAction{EditAssoc, EditDelete, EditMerge} {
		t.Run(a.String(), func(t *testing.T) {
			got, err := ParseEditAction(a.String())
			require.NoError(t, err)
			require.Equal(t, a, got)
		})
	}
	t.Run("unknown", func(t *testing.T) {
		_, err := ParseEditAction("replace")
		require.True(t, errors.Is(err, element.ErrInvalidInput))
	})
}

func TestEditLogging(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	SetLogger(logger)
	defer SetLogger(nil)

	New().Edit(EditOperationNew(
		EditEntryNew(EditAssoc, "/a", EditEntryValue(1)),
		EditEntryNew(EditDelete, "/a"),
	))
	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	require.Equal(t, "applying edit", entries[0].Message)
	require.Equal(t, EditAssoc, entries[0].Data["action"])
	require.Equal(t, "/a", entries[1].Data["path"])
}
