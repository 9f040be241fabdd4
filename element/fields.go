// Copyright (c) 2024, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package element

import (
	"github.com/benbjohnson/immutable"
	"github.com/hashicorp/go-multierror"
)

// SeqFields is a transient view of a sequence's elements used to describe
// a positional update. It is only reachable through SeqElement.Update and
// must not escape the update function. Problems are recorded and
// reported by Update once fn returns.
type SeqFields struct {
	op    string
	store *immutable.List[Element]
	errs  *multierror.Error
}

func updateSeq(
	op string,
	store *immutable.List[Element],
	fn func(*SeqFields),
) (*immutable.List[Element], error) {
	f := &SeqFields{op: op, store: store}
	fn(f)
	if err := f.errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return f.store, nil
}

func (f *SeqFields) fail(err error) {
	f.errs = multierror.Append(f.errs, err)
}

func (f *SeqFields) element(arg string, v interface{}) (Element, bool) {
	e, err := updateValue(f.op, arg, v)
	if err != nil {
		f.fail(err)
		return nil, false
	}
	return e, true
}

func (f *SeqFields) checkIndex(index, limit int) bool {
	if index < 0 || index >= limit {
		f.fail(invalidInput(f.op, "index",
			"%d out of range [0,%d)", index, limit))
		return false
	}
	return true
}

// Len returns the current number of elements.
func (f *SeqFields) Len() int {
	return f.store.Len()
}

// At returns the current element at index or nil.
func (f *SeqFields) At(index int) Element {
	if index < 0 || index >= f.store.Len() {
		return nil
	}
	return f.store.Get(index)
}

// Set replaces the element at index.
func (f *SeqFields) Set(index int, value interface{}) *SeqFields {
	e, ok := f.element("value", value)
	if ok && f.checkIndex(index, f.store.Len()) {
		f.store = f.store.Set(index, e)
	}
	return f
}

// Insert places value at index, 0 <= index <= Len.
func (f *SeqFields) Insert(index int, value interface{}) *SeqFields {
	e, ok := f.element("value", value)
	if ok && f.checkIndex(index, f.store.Len()+1) {
		f.store = listInsert(f.store, index, e)
	}
	return f
}

// Append adds values to the end.
func (f *SeqFields) Append(values ...interface{}) *SeqFields {
	for _, v := range values {
		if e, ok := f.element("value", v); ok {
			f.store = f.store.Append(e)
		}
	}
	return f
}

// Delete removes the element at index.
func (f *SeqFields) Delete(index int) *SeqFields {
	if f.checkIndex(index, f.store.Len()) {
		f.store = listDelete(f.store, index)
	}
	return f
}

// StructFields is a transient view of a struct's fields used to describe
// a field level update. It is only reachable through StructElement.Update
// and must not escape the update function. Problems are recorded and
// reported by Update once fn returns.
type StructFields struct {
	op     string
	fields *immutable.List[Field]
	errs   *multierror.Error
}

func updateStruct(
	op string,
	fields *immutable.List[Field],
	fn func(*StructFields),
) (*immutable.List[Field], error) {
	f := &StructFields{op: op, fields: fields}
	fn(f)
	if err := f.errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return f.fields, nil
}

func (f *StructFields) fail(err error) {
	f.errs = multierror.Append(f.errs, err)
}

func (f *StructFields) field(name string, v interface{}) (Field, bool) {
	e, err := updateValue(f.op, name, v)
	if err != nil {
		f.fail(err)
		return Field{}, false
	}
	return Field{Name: name, Value: e}, true
}

func (f *StructFields) indexes(name string) []int {
	var out []int
	itr := f.fields.Iterator()
	for !itr.Done() {
		i, fld := itr.Next()
		if fld.Name == name {
			out = append(out, i)
		}
	}
	return out
}

// Len returns the current number of fields.
func (f *StructFields) Len() int {
	return f.fields.Len()
}

// Get returns the first value of the field or an error wrapping
// ErrMissingField.
func (f *StructFields) Get(name string) (Element, error) {
	v, ok := f.Find(name)
	if !ok {
		return nil, missingField(name)
	}
	return v, nil
}

// Find returns the first value of the field and whether it exists.
func (f *StructFields) Find(name string) (Element, bool) {
	itr := f.fields.Iterator()
	for !itr.Done() {
		_, fld := itr.Next()
		if fld.Name == name {
			return fld.Value, true
		}
	}
	return nil, false
}

// GetAll returns every value of the field in order.
func (f *StructFields) GetAll(name string) []Element {
	var out []Element
	for _, i := range f.indexes(name) {
		out = append(out, f.fields.Get(i).Value)
	}
	return out
}

// Contains returns whether a field with the name exists.
func (f *StructFields) Contains(name string) bool {
	_, ok := f.Find(name)
	return ok
}

// Set replaces the first field with the name keeping its position and
// removes any other field with the name. The field is appended when
// absent.
func (f *StructFields) Set(name string, value interface{}) *StructFields {
	fld, ok := f.field(name, value)
	if !ok {
		return f
	}
	f.set(fld)
	return f
}

func (f *StructFields) set(fld Field) {
	idx := f.indexes(fld.Name)
	switch len(idx) {
	case 0:
		f.fields = f.fields.Append(fld)
	case 1:
		f.fields = f.fields.Set(idx[0], fld)
	default:
		b := immutable.NewListBuilder[Field]()
		itr := f.fields.Iterator()
		for !itr.Done() {
			i, cur := itr.Next()
			switch {
			case i == idx[0]:
				b.Append(fld)
			case cur.Name != fld.Name:
				b.Append(cur)
			}
		}
		f.fields = b.List()
	}
}

// SetAll calls Set for every field in order.
func (f *StructFields) SetAll(fields ...Field) *StructFields {
	for _, fld := range fields {
		if fld.Value == nil {
			f.fail(invalidInput(f.op, fld.Name, "nil value"))
			continue
		}
		f.set(fld)
	}
	return f
}

// Add appends a field even if one with the name exists.
func (f *StructFields) Add(name string, value interface{}) *StructFields {
	if fld, ok := f.field(name, value); ok {
		f.fields = f.fields.Append(fld)
	}
	return f
}

// AddAll appends the fields in order.
func (f *StructFields) AddAll(fields ...Field) *StructFields {
	for _, fld := range fields {
		if fld.Value == nil {
			f.fail(invalidInput(f.op, fld.Name, "nil value"))
			continue
		}
		f.fields = f.fields.Append(fld)
	}
	return f
}

// Insert places the field at index, 0 <= index <= Len.
func (f *StructFields) Insert(index int, fld Field) *StructFields {
	if fld.Value == nil {
		f.fail(invalidInput(f.op, fld.Name, "nil value"))
		return f
	}
	if index < 0 || index > f.fields.Len() {
		f.fail(invalidInput(f.op, "index",
			"%d out of range [0,%d]", index, f.fields.Len()))
		return f
	}
	f.fields = listInsert(f.fields, index, fld)
	return f
}

// Remove deletes the first field equal to fld and reports whether one
// was found.
func (f *StructFields) Remove(fld Field) bool {
	itr := f.fields.Iterator()
	for !itr.Done() {
		i, cur := itr.Next()
		if cur.Equal(fld) {
			f.fields = listDelete(f.fields, i)
			return true
		}
	}
	return false
}

// RemoveAll deletes every field with one of the names.
func (f *StructFields) RemoveAll(names ...string) *StructFields {
	drop := make(map[string]struct{}, len(names))
	for _, name := range names {
		drop[name] = struct{}{}
	}
	var found bool
	itr := f.fields.Iterator()
	for !itr.Done() && !found {
		_, cur := itr.Next()
		_, found = drop[cur.Name]
	}
	if !found {
		return f
	}
	b := immutable.NewListBuilder[Field]()
	itr = f.fields.Iterator()
	for !itr.Done() {
		_, cur := itr.Next()
		if _, ok := drop[cur.Name]; !ok {
			b.Append(cur)
		}
	}
	f.fields = b.List()
	return f
}

// updateValue converts an update argument, nil is rejected rather than
// read as null.
func updateValue(op, arg string, v interface{}) (Element, error) {
	if v == nil {
		return nil, invalidInput(op, arg, "nil value")
	}
	e, err := valueNew(v)
	if err != nil {
		return nil, invalidInput(op, arg, "%s", err)
	}
	return e, nil
}

func listInsert[T any](l *immutable.List[T], index int, v T) *immutable.List[T] {
	switch index {
	case l.Len():
		return l.Append(v)
	case 0:
		return l.Prepend(v)
	}
	b := immutable.NewListBuilder[T]()
	itr := l.Iterator()
	for !itr.Done() {
		i, cur := itr.Next()
		if i == index {
			b.Append(v)
		}
		b.Append(cur)
	}
	return b.List()
}

func listDelete[T any](l *immutable.List[T], index int) *immutable.List[T] {
	switch index {
	case l.Len() - 1:
		return l.Slice(0, index)
	case 0:
		return l.Slice(1, l.Len())
	}
	b := immutable.NewListBuilder[T]()
	itr := l.Iterator()
	for !itr.Done() {
		i, cur := itr.Next()
		if i != index {
			b.Append(cur)
		}
	}
	return b.List()
}
