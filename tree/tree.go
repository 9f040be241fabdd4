// Copyright (c) 2024, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package tree

import (
	"github.com/danos/ionelement/element"
	"github.com/pkg/errors"
)

// New creates a new empty tree.
func New() *Tree {
	return FromStruct(element.StructNew())
}

// FromStruct creates a tree rooted at the supplied struct.
func FromStruct(root element.StructElement) *Tree {
	if root == nil {
		root = element.StructNew()
	}
	return &Tree{root: root}
}

// FromElement creates a tree rooted at the value when it is a non-null
// struct. Any other value becomes the only member, 'data', of the root.
func FromElement(value interface{}) *Tree {
	v := element.ValueNew(value)
	if st := v.ToStruct(); st != nil {
		return FromStruct(st)
	}
	return FromStruct(element.StructWith(element.FieldNew("data", v)))
}

// Tree is rooted at a struct and addresses the values below it with
// Paths instead of single field names. Trees are immutable and any
// mutation returns a new tree that shares every container off the
// mutated path with the original, wrapped or not.
type Tree struct {
	root element.StructElement
}

// Root returns the tree's root struct.
func (t *Tree) Root() element.StructElement {
	return t.root
}

// Merge merges two trees together by recursively merging the roots.
func (t *Tree) Merge(new *Tree) *Tree {
	return FromStruct(merge(t.root, new.root).AsStruct())
}

// At returns the value at the path or nil.
func (t *Tree) At(path string) element.Element {
	return t.at(PathNew(path))
}

func (t *Tree) at(p *Path) element.Element {
	return p.MatchAgainst(t.root)
}

// Find returns the value at the path or nil if none, and whether
// the value is in the tree.
func (t *Tree) Find(path string) (element.Element, bool) {
	return t.find(PathNew(path))
}

func (t *Tree) find(p *Path) (element.Element, bool) {
	return p.Find(t.root)
}

// Contains returns whether the path points to a value in the tree.
func (t *Tree) Contains(path string) bool {
	_, found := t.find(PathNew(path))
	return found
}

// Assoc associates the value provided at the location pointed to by
// the path. Missing containers on the way are created, a struct for a
// field step and a list for a predicate. Associating the root with
// anything but a struct behaves like FromElement.
func (t *Tree) Assoc(path string, value interface{}) *Tree {
	return t.assoc(PathNew(path), element.ValueNew(value))
}

func (t *Tree) assoc(p *Path, v element.Element) *Tree {
	if p.Len() == 0 {
		return FromElement(v)
	}

	// Walk down collecting the container each step selects from,
	// creating the ones that are missing.
	parents := make([]element.Element, p.Len())
	var cur element.Element = t.root
	for i, s := range p.steps {
		if !s.accepts(cur) {
			if i == 0 {
				panic(errors.Wrapf(element.ErrInvalidInput,
					"path %s does not start with a field", p))
			}
			cur = s.create()
		}
		parents[i] = cur
		cur, _ = s.find(cur)
	}

	// Rebuild bottom up.
	for i := len(parents) - 1; i >= 0; i-- {
		v = p.steps[i].assoc(parents[i], v)
	}
	return FromStruct(v.AsStruct())
}

// Delete removes the value at the path from the tree.
func (t *Tree) Delete(path string) *Tree {
	return t.delete(PathNew(path))
}

func (t *Tree) delete(p *Path) *Tree {
	if _, found := t.find(p); !found {
		return t
	}
	if p.Len() == 0 {
		return New()
	}
	// Empty parents are not pruned.
	parentPath := p.Parent()
	parent, _ := t.find(parentPath)
	return t.assoc(parentPath, p.last().delete(parent))
}

// Length returns the number of values in the tree, containers
// included.
func (t *Tree) Length() int {
	var count int
	t.Range(func(element.Element) {
		count++
	})
	return count
}

// Range iterates over the tree's paths depth first. Range can take a set
// of functions matched by type. If the function returns a bool this is
// treated as a loop termination variable, if false the loop will
// terminate.
//
//	func(*Path, element.Element) iterates over paths and values.
//	func(*Path, element.Element) bool
//	func(string, element.Element) iterates over paths as strings and values.
//	func(string, element.Element) bool
//	func(*Path) iterates over only the paths
//	func(*Path) bool
//	func(string) iterates over only the paths as strings
//	func(string) bool
//	func(element.Element) iterates over only the values
//	func(element.Element) bool
func (t *Tree) Range(fn interface{}) *Tree {
	rangeFn := genTreeRangeFunc(fn)
	var recur func(*Path, element.Element) bool
	recur = func(p *Path, v element.Element) bool {
		if !rangeFn(p, v) {
			return false
		}
		cont := true
		switch {
		case v.IsNull():
		case v.Kind() == element.KindStruct:
			v.AsStruct().Range(func(name string, child element.Element) bool {
				cont = recur(p.Push(name), child)
				return cont
			})
		case v.Kind().IsSeq():
			v.AsSeq().Range(func(i int, child element.Element) bool {
				cont = recur(p.AddPos(i), child)
				return cont
			})
		}
		return cont
	}
	root := &Path{}
	t.root.Range(func(name string, v element.Element) bool {
		return recur(root.Push(name), v)
	})
	return t
}

func genTreeRangeFunc(fn interface{}) func(*Path, element.Element) bool {
	switch f := fn.(type) {
	case func(*Path, element.Element) bool:
		return f
	case func(*Path, element.Element):
		return func(p *Path, v element.Element) bool {
			f(p, v)
			return true
		}
	case func(string, element.Element) bool:
		return func(p *Path, v element.Element) bool {
			return f(p.String(), v)
		}
	case func(string, element.Element):
		return func(p *Path, v element.Element) bool {
			f(p.String(), v)
			return true
		}
	case func(element.Element) bool:
		return func(_ *Path, v element.Element) bool {
			return f(v)
		}
	case func(element.Element):
		return func(_ *Path, v element.Element) bool {
			f(v)
			return true
		}
	case func(*Path) bool:
		return func(p *Path, _ element.Element) bool {
			return f(p)
		}
	case func(*Path):
		return func(p *Path, _ element.Element) bool {
			f(p)
			return true
		}
	case func(string) bool:
		return func(p *Path, _ element.Element) bool {
			return f(p.String())
		}
	case func(string):
		return func(p *Path, _ element.Element) bool {
			f(p.String())
			return true
		}
	default:
		panic("invalid range function")
	}
}

// Equal implements equality for the tree. It compares the roots for
// equality.
func (t *Tree) Equal(other interface{}) bool {
	ot, isTree := other.(*Tree)
	return isTree && element.Equal(t.root, ot.root)
}

// String returns the Ion text of the root.
func (t *Tree) String() string {
	return t.root.String()
}

// Diff compares two trees and returns the operations required to edit
// the original to produce the other one.
func (t *Tree) Diff(other *Tree) *EditOperation {
	return &EditOperation{
		Actions: diff(t.root, other.root, &Path{}),
	}
}

// Edit applies an EditOperation to the tree. This allows for capturing
// large change sets as a piece of data that can be evaluated as tree
// operations and applied to the tree.
func (t *Tree) Edit(edit *EditOperation) *Tree {
	op := edit.eval()
	return op(t)
}

func sameShape(a, b element.Element) bool {
	return a.Kind() == b.Kind() && !a.IsNull() && !b.IsNull() &&
		equalAnnotations(a.Annotations(), b.Annotations())
}

func equalAnnotations(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// merge merges new into old. Structs merge field by field, sequences
// position by position with the extra positions of new appended. A
// container is kept when new is of another kind, scalars and nulls take
// new. The result keeps the annotations of old.
func merge(old, new element.Element) element.Element {
	if old == nil {
		return new
	}
	if new == nil {
		return old
	}
	switch {
	case old.IsNull() || new.IsNull():
		return new
	case old.Kind() != new.Kind():
		if old.Kind().IsContainer() {
			return old
		}
		return new
	case old.Kind() == element.KindStruct:
		return mergeStruct(old.AsStruct(), new.AsStruct())
	case old.Kind().IsSeq():
		return mergeSeq(old.AsSeq(), new.AsSeq())
	default:
		return new
	}
}

func mergeStruct(old, new element.StructElement) element.Element {
	out := old
	seen := make(map[string]struct{}, old.Len())
	old.Range(func(name string, v element.Element) {
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		if n, ok := new.Find(name); ok {
			out = out.Assoc(name, merge(v, n))
		}
	})
	new.Range(func(name string, v element.Element) {
		if !old.Contains(name) {
			out = out.Add(name, v)
		}
	})
	return out
}

func mergeSeq(old, new element.SeqElement) element.Element {
	out, err := old.Update(func(f *element.SeqFields) {
		new.Range(func(i int, v element.Element) {
			if i < old.Len() {
				f.Set(i, merge(old.At(i), v))
				return
			}
			f.Append(v)
		})
	})
	if err != nil {
		panic(err)
	}
	return out
}

func hasDuplicateNames(st element.StructElement) bool {
	seen := make(map[string]struct{}, st.Len())
	dup := false
	st.Range(func(name string) bool {
		if _, ok := seen[name]; ok {
			dup = true
			return false
		}
		seen[name] = struct{}{}
		return true
	})
	return dup
}

// diff returns the entries that edit old into new at path.
func diff(old, new element.Element, path *Path) []EditEntry {
	if element.Equal(old, new) {
		return nil
	}
	replace := []EditEntry{{Action: EditAssoc, Path: path, Value: new}}
	if !sameShape(old, new) {
		return replace
	}
	switch {
	case old.Kind() == element.KindStruct:
		o, n := old.AsStruct(), new.AsStruct()
		if hasDuplicateNames(o) || hasDuplicateNames(n) {
			return replace
		}
		return diffStruct(o, n, path)
	case old.Kind().IsSeq():
		return diffSeq(old.AsSeq(), new.AsSeq(), path)
	default:
		return replace
	}
}

func diffStruct(old, new element.StructElement, path *Path) []EditEntry {
	out := []EditEntry{}
	old.Range(func(name string, v element.Element) {
		if n, ok := new.Find(name); ok {
			out = append(out, diff(v, n, path.Push(name))...)
			return
		}
		out = append(out, EditEntry{
			Action: EditDelete,
			Path:   path.Push(name),
		})
	})
	new.Range(func(name string, v element.Element) {
		if old.Contains(name) {
			return
		}
		out = append(out, EditEntry{
			Action: EditAssoc,
			Path:   path.Push(name),
			Value:  v,
		})
	})
	return out
}

// diffSeq deletes surplus positions from the end so earlier deletes do
// not shift the later ones.
func diffSeq(old, new element.SeqElement, path *Path) []EditEntry {
	out := []EditEntry{}
	new.Range(func(i int, v element.Element) {
		if i < old.Len() {
			out = append(out, diff(old.At(i), v, path.AddPos(i))...)
			return
		}
		out = append(out, EditEntry{
			Action: EditAssoc,
			Path:   path.AddPos(i),
			Value:  v,
		})
	})
	for i := old.Len() - 1; i >= new.Len(); i-- {
		out = append(out, EditEntry{
			Action: EditDelete,
			Path:   path.AddPos(i),
		})
	}
	return out
}
