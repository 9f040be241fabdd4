// Copyright (c) 2024, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package dom

import (
	"math/big"

	"github.com/danos/ionelement/element"
	"github.com/pkg/errors"
)

// ErrReadOnly is returned by every mutation of a frozen Value.
var ErrReadOnly = errors.New("value is read-only")

// Value is a node of a mutable Ion tree. It implements element.Node.
type Value struct {
	kind     element.Kind
	null     bool
	annots   []string
	data     interface{}
	names    []string
	children []*Value
	readOnly bool
}

func scalar(kind element.Kind, data interface{}) *Value {
	return &Value{kind: kind, data: data}
}

// Null returns a null of the kind.
func Null(kind element.Kind) *Value {
	return &Value{kind: kind, null: true}
}

func Bool(b bool) *Value {
	return scalar(element.KindBool, b)
}

func Int(i int64) *Value {
	return scalar(element.KindInt, big.NewInt(i))
}

func BigInt(i *big.Int) *Value {
	return scalar(element.KindInt, new(big.Int).Set(i))
}

func Float(f float64) *Value {
	return scalar(element.KindFloat, f)
}

func Decimal(d element.Decimal) *Value {
	return scalar(element.KindDecimal, d)
}

func Timestamp(ts element.Timestamp) *Value {
	return scalar(element.KindTimestamp, ts)
}

func String(s string) *Value {
	return scalar(element.KindString, s)
}

func Symbol(s string) *Value {
	return scalar(element.KindSymbol, s)
}

func Blob(b []byte) *Value {
	return scalar(element.KindBlob, append([]byte{}, b...))
}

func Clob(b []byte) *Value {
	return scalar(element.KindClob, append([]byte{}, b...))
}

// List returns a list holding the children.
func List(children ...*Value) *Value {
	return &Value{kind: element.KindList, children: children}
}

// Sexp returns a sexp holding the children.
func Sexp(children ...*Value) *Value {
	return &Value{kind: element.KindSexp, children: children}
}

// Struct returns an empty struct, fields are added with Put.
func Struct() *Value {
	return &Value{kind: element.KindStruct}
}

func (v *Value) Kind() element.Kind {
	return v.kind
}

func (v *Value) IsNull() bool {
	return v.null
}

func (v *Value) Annotations() []string {
	return v.annots
}

func (v *Value) IsReadOnly() bool {
	return v.readOnly
}

func (v *Value) BoolValue() bool {
	b, _ := v.data.(bool)
	return b
}

func (v *Value) IntValue() *big.Int {
	i, _ := v.data.(*big.Int)
	return i
}

func (v *Value) FloatValue() float64 {
	f, _ := v.data.(float64)
	return f
}

func (v *Value) DecimalValue() element.Decimal {
	d, _ := v.data.(element.Decimal)
	return d
}

func (v *Value) TimestampValue() element.Timestamp {
	ts, _ := v.data.(element.Timestamp)
	return ts
}

func (v *Value) TextValue() string {
	s, _ := v.data.(string)
	return s
}

func (v *Value) BytesValue() []byte {
	b, _ := v.data.([]byte)
	return b
}

// Len returns the number of children of a container, 0 otherwise.
func (v *Value) Len() int {
	return len(v.children)
}

// Child returns the child at index and its field name, the name is empty
// outside of structs.
func (v *Value) Child(index int) (string, element.Node) {
	if v.kind == element.KindStruct {
		return v.names[index], v.children[index]
	}
	return "", v.children[index]
}

// MakeReadOnly freezes the value and all of its descendants.
func (v *Value) MakeReadOnly() *Value {
	v.readOnly = true
	for _, c := range v.children {
		c.MakeReadOnly()
	}
	return v
}

// Clone returns a mutable deep copy.
func (v *Value) Clone() *Value {
	out := &Value{
		kind:   v.kind,
		null:   v.null,
		annots: append([]string(nil), v.annots...),
		data:   v.data,
	}
	switch d := v.data.(type) {
	case *big.Int:
		out.data = new(big.Int).Set(d)
	case []byte:
		out.data = append([]byte{}, d...)
	}
	if v.names != nil {
		out.names = append([]string(nil), v.names...)
	}
	if v.children != nil {
		out.children = make([]*Value, len(v.children))
		for i, c := range v.children {
			out.children[i] = c.Clone()
		}
	}
	return out
}

// String returns the Ion text of the value.
func (v *Value) String() string {
	e, err := element.WrapUnchecked(v)
	if err != nil {
		return err.Error()
	}
	return e.String()
}

func (v *Value) checkWritable(op string) error {
	if v.readOnly {
		return errors.Wrapf(ErrReadOnly, "%s on %s", op, v.kind)
	}
	return nil
}

func (v *Value) checkKind(op string, kinds ...element.Kind) error {
	if !v.null {
		for _, k := range kinds {
			if v.kind == k {
				return nil
			}
		}
	}
	return &element.TypeMismatchError{
		Op:       op,
		Expected: kinds,
		Actual:   v.kind,
		Null:     v.null,
	}
}

func (v *Value) checkChild(op string, child *Value) error {
	if child == nil {
		return errors.Wrapf(element.ErrInvalidInput, "%s: nil child", op)
	}
	if child.readOnly {
		return errors.Wrapf(ErrReadOnly, "%s: child", op)
	}
	return nil
}

// SetAnnotations replaces the annotations.
func (v *Value) SetAnnotations(annots ...string) error {
	if err := v.checkWritable("SetAnnotations"); err != nil {
		return err
	}
	v.annots = append([]string(nil), annots...)
	return nil
}

// Add appends a child to a list or a sexp.
func (v *Value) Add(child *Value) error {
	if err := v.checkWritable("Add"); err != nil {
		return err
	}
	if err := v.checkKind("Add", element.KindList, element.KindSexp); err != nil {
		return err
	}
	if err := v.checkChild("Add", child); err != nil {
		return err
	}
	v.children = append(v.children, child)
	return nil
}

// Put appends a field to a struct, existing fields with the name are
// kept.
func (v *Value) Put(name string, child *Value) error {
	if err := v.checkWritable("Put"); err != nil {
		return err
	}
	if err := v.checkKind("Put", element.KindStruct); err != nil {
		return err
	}
	if err := v.checkChild("Put", child); err != nil {
		return err
	}
	v.names = append(v.names, name)
	v.children = append(v.children, child)
	return nil
}

// Set replaces the child at index, a struct field keeps its name.
func (v *Value) Set(index int, child *Value) error {
	if err := v.checkWritable("Set"); err != nil {
		return err
	}
	if err := v.checkKind("Set", element.KindList, element.KindSexp,
		element.KindStruct); err != nil {
		return err
	}
	if err := v.checkChild("Set", child); err != nil {
		return err
	}
	if index < 0 || index >= len(v.children) {
		return errors.Wrapf(element.ErrInvalidInput,
			"Set: index %d out of range", index)
	}
	v.children[index] = child
	return nil
}

// Remove deletes the child at index.
func (v *Value) Remove(index int) error {
	if err := v.checkWritable("Remove"); err != nil {
		return err
	}
	if err := v.checkKind("Remove", element.KindList, element.KindSexp,
		element.KindStruct); err != nil {
		return err
	}
	if index < 0 || index >= len(v.children) {
		return errors.Wrapf(element.ErrInvalidInput,
			"Remove: index %d out of range", index)
	}
	v.children = append(v.children[:index], v.children[index+1:]...)
	if v.names != nil {
		v.names = append(v.names[:index], v.names[index+1:]...)
	}
	return nil
}
