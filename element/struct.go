// Copyright (c) 2024, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package element

import (
	"reflect"
	"sort"
	"sync"

	"github.com/benbjohnson/immutable"
)

// StructNew creates a new empty struct.
func StructNew() StructElement {
	return newStruct(immutable.NewList[Field](), nil)
}

// StructWith creates a struct holding the fields in order.
func StructWith(fields ...Field) StructElement {
	return structFrom("StructWith", fields)
}

// StructFrom creates a struct from a []Field or a map with string keys.
// Map entries are added in key order.
func StructFrom(in interface{}) StructElement {
	return structFrom("StructFrom", in)
}

func structFrom(op string, in interface{}) StructElement {
	fields, err := fieldsFrom(in)
	if err != nil {
		panic(invalidInput(op, "in", "%s", err))
	}
	return newStruct(fields, nil)
}

func fieldsFrom(in interface{}) (*immutable.List[Field], error) {
	b := immutable.NewListBuilder[Field]()
	add := func(name string, v interface{}) error {
		e, err := valueNew(v)
		if err != nil {
			return err
		}
		b.Append(Field{Name: name, Value: e})
		return nil
	}
	switch in := in.(type) {
	case []Field:
		for _, f := range in {
			if f.Value == nil {
				return nil, invalidInput("fieldsFrom", f.Name,
					"nil value")
			}
			b.Append(f)
		}
		return b.List(), nil
	case map[string]interface{}:
		keys := make([]string, 0, len(in))
		for k := range in {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := add(k, in[k]); err != nil {
				return nil, err
			}
		}
		return b.List(), nil
	}
	val := reflect.ValueOf(in)
	if val.Kind() == reflect.Map && val.Type().Key().Kind() == reflect.String {
		keys := val.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return keys[i].String() < keys[j].String()
		})
		for _, k := range keys {
			if err := add(k.String(), val.MapIndex(k).Interface()); err != nil {
				return nil, err
			}
		}
		return b.List(), nil
	}
	return nil, invalidInput("fieldsFrom", "in",
		"cannot create struct from %T", in)
}

// nameIndex maps field names to their values in field order. It is
// built on first lookup.
type nameIndex struct {
	once   sync.Once
	byName *immutable.Map[string, *immutable.List[Element]]
}

func (x *nameIndex) get(fields *immutable.List[Field]) *immutable.Map[string, *immutable.List[Element]] {
	x.once.Do(func() {
		b := immutable.NewMapBuilder[string, *immutable.List[Element]](nil)
		itr := fields.Iterator()
		for !itr.Done() {
			_, f := itr.Next()
			vs, ok := b.Get(f.Name)
			if !ok {
				vs = immutable.NewList[Element]()
			}
			b.Set(f.Name, vs.Append(f.Value))
		}
		x.byName = b.Map()
	})
	return x.byName
}

// structElement is a struct built from Fields. Updates share the
// untouched fields with the original.
type structElement struct {
	accessors
	annots []string
	fields *immutable.List[Field]
	index  nameIndex
	metas  metaMap
	hash   hashCache
}

func newStruct(fields *immutable.List[Field], annots []string) *structElement {
	s := &structElement{
		annots: annots,
		fields: fields,
	}
	s.self = s
	return s
}

func (s *structElement) Kind() Kind {
	return KindStruct
}

func (s *structElement) IsNull() bool {
	return false
}

func (s *structElement) Annotations() []string {
	return copyStrings(s.annots)
}

func (s *structElement) WithAnnotations(annots ...string) Element {
	return s.copy(s.fields, appendAnnotations(s.annots, annots), s.metas)
}

func (s *structElement) WithoutAnnotations() Element {
	if len(s.annots) == 0 {
		return s
	}
	return s.copy(s.fields, nil, s.metas)
}

func (s *structElement) Metas() map[string]interface{} {
	return metasOf(s.metas)
}

func (s *structElement) WithMeta(key string, value interface{}) Element {
	return s.copy(s.fields, s.annots, metasWith(s.metas, key, value))
}

func (s *structElement) WithMetas(metas map[string]interface{}) Element {
	return s.copy(s.fields, s.annots, metasMerge(s.metas, metas))
}

func (s *structElement) WithoutMetas() Element {
	if s.metas == nil {
		return s
	}
	return s.copy(s.fields, s.annots, nil)
}

func (s *structElement) copy(fields *immutable.List[Field], annots []string, metas metaMap) *structElement {
	out := newStruct(fields, annots)
	out.metas = metas
	return out
}

func (s *structElement) payload() interface{} {
	return nil
}

// Len returns the number of fields, duplicates included.
func (s *structElement) Len() int {
	return s.fields.Len()
}

// Fields returns the fields in order.
func (s *structElement) Fields() []Field {
	out := make([]Field, 0, s.fields.Len())
	itr := s.fields.Iterator()
	for !itr.Done() {
		_, f := itr.Next()
		out = append(out, f)
	}
	return out
}

// Values returns the field values in order.
func (s *structElement) Values() []Element {
	out := make([]Element, 0, s.fields.Len())
	itr := s.fields.Iterator()
	for !itr.Done() {
		_, f := itr.Next()
		out = append(out, f.Value)
	}
	return out
}

func (s *structElement) Get(name string) (Element, error) {
	v, ok := s.Find(name)
	if !ok {
		return nil, missingField(name)
	}
	return v, nil
}

func (s *structElement) At(name string) Element {
	v, _ := s.Find(name)
	return v
}

// Find returns the first value of the field or nil and whether the field
// is in the struct.
func (s *structElement) Find(name string) (Element, bool) {
	vs, ok := s.index.get(s.fields).Get(name)
	if !ok {
		return nil, false
	}
	return vs.Get(0), true
}

// GetAll returns the values of every field with the name in order.
func (s *structElement) GetAll(name string) []Element {
	vs, ok := s.index.get(s.fields).Get(name)
	if !ok {
		return nil
	}
	out := make([]Element, 0, vs.Len())
	itr := vs.Iterator()
	for !itr.Done() {
		_, v := itr.Next()
		out = append(out, v)
	}
	return out
}

func (s *structElement) Contains(name string) bool {
	_, ok := s.index.get(s.fields).Get(name)
	return ok
}

// Range iterates over the struct's fields. Range can take a set of
// functions matched by type. If the function returns a bool this is
// treated as a loop termination variable if false the loop will
// terminate.
//
//	func(string, Element) iterates over names and values.
//	func(string, Element) bool
//	func(Field) iterates over the fields
//	func(Field) bool
//	func(string) iterates over only the names
//	func(string) bool
//	func(Element) iterates over only the values
//	func(Element) bool
func (s *structElement) Range(fn interface{}) StructElement {
	rangeFields(s.fields, fn)
	return s
}

func rangeFields(fields *immutable.List[Field], fn interface{}) {
	var do func(Field) bool
	switch f := fn.(type) {
	case func(string, Element):
		do = func(fld Field) bool {
			f(fld.Name, fld.Value)
			return true
		}
	case func(string, Element) bool:
		do = func(fld Field) bool {
			return f(fld.Name, fld.Value)
		}
	case func(Field):
		do = func(fld Field) bool {
			f(fld)
			return true
		}
	case func(Field) bool:
		do = f
	case func(string):
		do = func(fld Field) bool {
			f(fld.Name)
			return true
		}
	case func(string) bool:
		do = func(fld Field) bool {
			return f(fld.Name)
		}
	case func(Element):
		do = func(fld Field) bool {
			f(fld.Value)
			return true
		}
	case func(Element) bool:
		do = func(fld Field) bool {
			return f(fld.Value)
		}
	default:
		panic("invalid range function")
	}
	itr := fields.Iterator()
	for !itr.Done() {
		_, fld := itr.Next()
		if !do(fld) {
			return
		}
	}
}

// Update applies fn to a transient copy of the struct's fields and
// returns the result. Errors recorded by fn are returned together and
// no struct is produced.
func (s *structElement) Update(fn func(*StructFields)) (StructElement, error) {
	fields, err := updateStruct("StructElement.Update", s.fields, fn)
	if err != nil {
		return nil, err
	}
	return s.copy(fields, s.annots, s.metas), nil
}

// Assoc replaces the first field with the name and drops the others,
// the field is appended if absent. A nil value panics.
func (s *structElement) Assoc(name string, value interface{}) StructElement {
	return structAssoc(s, name, value)
}

// Add appends a field, existing fields with the name are kept.
func (s *structElement) Add(name string, value interface{}) StructElement {
	return structAdd(s, name, value)
}

// Delete removes every field with one of the names.
func (s *structElement) Delete(names ...string) StructElement {
	return structDelete(s, names)
}

func (s *structElement) Equal(other interface{}) bool {
	o, ok := other.(Element)
	return ok && Equal(s, o)
}

func (s *structElement) Hash() uint64 {
	return s.hash.get(s)
}

func (s *structElement) String() string {
	return toString(s)
}

func structAssoc(s StructElement, name string, value interface{}) StructElement {
	out, err := s.Update(func(f *StructFields) {
		f.op = "StructElement.Assoc"
		f.Set(name, value)
	})
	if err != nil {
		panic(err)
	}
	return out
}

func structAdd(s StructElement, name string, value interface{}) StructElement {
	out, err := s.Update(func(f *StructFields) {
		f.op = "StructElement.Add"
		f.Add(name, value)
	})
	if err != nil {
		panic(err)
	}
	return out
}

func structDelete(s StructElement, names []string) StructElement {
	out, err := s.Update(func(f *StructFields) {
		f.op = "StructElement.Delete"
		f.RemoveAll(names...)
	})
	if err != nil {
		panic(err)
	}
	return out
}
