// Copyright (c) 2024, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package element

import (
	"reflect"

	"github.com/benbjohnson/immutable"
)

// ListWith creates a list and initializes it with the provided elements.
// Values that are not Elements are converted with ValueNew.
func ListWith(elements ...interface{}) SeqElement {
	return seqFrom("ListWith", KindList, elements)
}

// ListFrom creates a list and initializes it with the elements of the
// provided slice or array.
func ListFrom(in interface{}) SeqElement {
	return seqFrom("ListFrom", KindList, in)
}

// SexpWith creates a sexp and initializes it with the provided elements.
func SexpWith(elements ...interface{}) SeqElement {
	return seqFrom("SexpWith", KindSexp, elements)
}

// SexpFrom creates a sexp and initializes it with the elements of the
// provided slice or array.
func SexpFrom(in interface{}) SeqElement {
	return seqFrom("SexpFrom", KindSexp, in)
}

func seqFrom(op string, kind Kind, in interface{}) SeqElement {
	store, err := listFrom(in)
	if err != nil {
		panic(invalidInput(op, "in", "%s", err))
	}
	return newSeq(kind, store, nil)
}

func listFrom(in interface{}) (*immutable.List[Element], error) {
	b := immutable.NewListBuilder[Element]()
	switch in := in.(type) {
	case []Element:
		for _, e := range in {
			if e == nil {
				return nil, invalidInput("listFrom", "in", "nil Element")
			}
			b.Append(e)
		}
		return b.List(), nil
	case []interface{}:
		for _, v := range in {
			e, err := valueNew(v)
			if err != nil {
				return nil, err
			}
			b.Append(e)
		}
		return b.List(), nil
	}
	val := reflect.ValueOf(in)
	if val.Kind() != reflect.Slice && val.Kind() != reflect.Array {
		return nil, invalidInput("listFrom", "in",
			"%T is not a slice or an array", in)
	}
	for i := 0; i < val.Len(); i++ {
		e, err := valueNew(val.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		b.Append(e)
	}
	return b.List(), nil
}

// seqElement is a list or a sexp built from Elements. The elements are
// kept in a persistent list so updates share the untouched parts.
type seqElement struct {
	accessors
	kind   Kind
	annots []string
	store  *immutable.List[Element]
	metas  metaMap
	hash   hashCache
}

func newSeq(kind Kind, store *immutable.List[Element], annots []string) *seqElement {
	s := &seqElement{
		kind:   kind,
		annots: annots,
		store:  store,
	}
	s.self = s
	return s
}

func (s *seqElement) Kind() Kind {
	return s.kind
}

func (s *seqElement) IsNull() bool {
	return false
}

func (s *seqElement) Annotations() []string {
	return copyStrings(s.annots)
}

func (s *seqElement) WithAnnotations(annots ...string) Element {
	return s.copy(s.store, appendAnnotations(s.annots, annots), s.metas)
}

func (s *seqElement) WithoutAnnotations() Element {
	if len(s.annots) == 0 {
		return s
	}
	return s.copy(s.store, nil, s.metas)
}

func (s *seqElement) Metas() map[string]interface{} {
	return metasOf(s.metas)
}

func (s *seqElement) WithMeta(key string, value interface{}) Element {
	return s.copy(s.store, s.annots, metasWith(s.metas, key, value))
}

func (s *seqElement) WithMetas(metas map[string]interface{}) Element {
	return s.copy(s.store, s.annots, metasMerge(s.metas, metas))
}

func (s *seqElement) WithoutMetas() Element {
	if s.metas == nil {
		return s
	}
	return s.copy(s.store, s.annots, nil)
}

func (s *seqElement) copy(store *immutable.List[Element], annots []string, metas metaMap) *seqElement {
	out := newSeq(s.kind, store, annots)
	out.metas = metas
	return out
}

func (s *seqElement) payload() interface{} {
	return nil
}

// Len returns the number of elements in the sequence.
func (s *seqElement) Len() int {
	return s.store.Len()
}

// At returns the value at the index of the sequence, if the index is
// out of bounds, nil is returned.
func (s *seqElement) At(index int) Element {
	if !s.Contains(index) {
		return nil
	}
	return s.store.Get(index)
}

// Find returns the value at the index or nil if it doesn't exist and
// whether the index was in the sequence.
func (s *seqElement) Find(index int) (Element, bool) {
	if !s.Contains(index) {
		return nil, false
	}
	return s.store.Get(index), true
}

// Contains returns whether the index is in the bounds of the sequence.
func (s *seqElement) Contains(index int) bool {
	return index >= 0 && index < s.store.Len()
}

// Values returns the elements in order.
func (s *seqElement) Values() []Element {
	out := make([]Element, 0, s.store.Len())
	itr := s.store.Iterator()
	for !itr.Done() {
		_, e := itr.Next()
		out = append(out, e)
	}
	return out
}

// Range iterates over the sequence's members. Range can take a set of
// functions matched by type. If the function returns a bool this is
// treated as a loop termination variable if false the loop will
// terminate.
//
//	func(int, Element) iterates over indices and values.
//	func(int, Element) bool
//	func(int) iterates over only the indices
//	func(int) bool
//	func(Element) iterates over only the values
//	func(Element) bool
func (s *seqElement) Range(fn interface{}) SeqElement {
	rangeList(s.store, fn)
	return s
}

func rangeList(store *immutable.List[Element], fn interface{}) {
	var do func(int, Element) bool
	switch f := fn.(type) {
	case func(int, Element):
		do = func(i int, e Element) bool {
			f(i, e)
			return true
		}
	case func(int, Element) bool:
		do = f
	case func(Element):
		do = func(_ int, e Element) bool {
			f(e)
			return true
		}
	case func(Element) bool:
		do = func(_ int, e Element) bool {
			return f(e)
		}
	case func(int):
		do = func(i int, _ Element) bool {
			f(i)
			return true
		}
	case func(int) bool:
		do = func(i int, _ Element) bool {
			return f(i)
		}
	default:
		panic("invalid range function")
	}
	itr := store.Iterator()
	for !itr.Done() {
		if !do(itr.Next()) {
			return
		}
	}
}

// Update applies fn to a transient copy of the sequence and returns the
// result. Errors recorded by fn are returned together and no sequence
// is produced.
func (s *seqElement) Update(fn func(*SeqFields)) (SeqElement, error) {
	store, err := updateSeq("SeqElement.Update", s.store, fn)
	if err != nil {
		return nil, err
	}
	return s.copy(store, s.annots, s.metas), nil
}

// Append adds values to the end of the sequence. A nil value panics.
func (s *seqElement) Append(values ...interface{}) SeqElement {
	return seqAppend(s, values)
}

// Assoc replaces the value at index, an index equal to Len appends.
func (s *seqElement) Assoc(index int, value interface{}) (SeqElement, error) {
	return seqAssoc(s, index, value)
}

// Insert places value at index shifting the following elements up.
func (s *seqElement) Insert(index int, value interface{}) (SeqElement, error) {
	return seqInsert(s, index, value)
}

// Delete removes the element at index.
func (s *seqElement) Delete(index int) (SeqElement, error) {
	return seqDelete(s, index)
}

func (s *seqElement) Equal(other interface{}) bool {
	o, ok := other.(Element)
	return ok && Equal(s, o)
}

func (s *seqElement) Hash() uint64 {
	return s.hash.get(s)
}

func (s *seqElement) String() string {
	return toString(s)
}

func seqAppend(s SeqElement, values []interface{}) SeqElement {
	out, err := s.Update(func(f *SeqFields) {
		f.op = "SeqElement.Append"
		f.Append(values...)
	})
	if err != nil {
		panic(err)
	}
	return out
}

func seqAssoc(s SeqElement, index int, value interface{}) (SeqElement, error) {
	return s.Update(func(f *SeqFields) {
		f.op = "SeqElement.Assoc"
		if index == f.Len() {
			f.Append(value)
			return
		}
		f.Set(index, value)
	})
}

func seqInsert(s SeqElement, index int, value interface{}) (SeqElement, error) {
	return s.Update(func(f *SeqFields) {
		f.op = "SeqElement.Insert"
		f.Insert(index, value)
	})
}

func seqDelete(s SeqElement, index int) (SeqElement, error) {
	return s.Update(func(f *SeqFields) {
		f.op = "SeqElement.Delete"
		f.Delete(index)
	})
}
