// Copyright (c) 2024, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package element

import (
	"math/big"
	"sync"
)

// Element is an immutable Ion value. Elements are either built from go
// values or wrap a read-only Node; both realizations are interchangeable
// for equality, hashing and printing.
//
// The As* accessors panic with a *TypeMismatchError when the Element is
// not of the requested kind or is a typed null. The To* accessors never
// panic, they return the supplied default or the zero value instead.
type Element interface {
	Kind() Kind
	IsNull() bool
	// Annotations returns a copy of the ordered annotations.
	Annotations() []string
	// WithAnnotations returns a copy with annots appended.
	WithAnnotations(annots ...string) Element
	WithoutAnnotations() Element

	// Metas returns a copy of the metadata attached to the Element.
	// Metas are for the program's own bookkeeping, such as source
	// locations, and are ignored by Equal, Hash and String.
	Metas() map[string]interface{}
	// WithMeta returns a copy with the meta set, replacing any meta
	// with the same key.
	WithMeta(key string, value interface{}) Element
	WithMetas(metas map[string]interface{}) Element
	WithoutMetas() Element

	Equal(other interface{}) bool
	Hash() uint64
	String() string

	AsBool() bool
	ToBool(defaultVal ...bool) bool
	AsInt() int64
	ToInt(defaultVal ...int64) int64
	AsBigInt() *big.Int
	ToBigInt(defaultVal ...*big.Int) *big.Int
	AsFloat() float64
	ToFloat(defaultVal ...float64) float64
	AsDecimal() Decimal
	ToDecimal(defaultVal ...Decimal) Decimal
	AsTimestamp() Timestamp
	ToTimestamp(defaultVal ...Timestamp) Timestamp
	AsString() string
	ToString(defaultVal ...string) string
	AsSymbol() string
	ToSymbol(defaultVal ...string) string
	// AsText returns the text of a string or a symbol.
	AsText() string
	ToText(defaultVal ...string) string
	// AsBytes returns a copy of the content of a blob or a clob.
	AsBytes() []byte
	ToBytes(defaultVal ...[]byte) []byte
	AsBlob() []byte
	ToBlob(defaultVal ...[]byte) []byte
	AsClob() []byte
	ToClob(defaultVal ...[]byte) []byte
	// AsSeq returns a list or a sexp.
	AsSeq() SeqElement
	ToSeq(defaultVal ...SeqElement) SeqElement
	AsList() SeqElement
	ToList(defaultVal ...SeqElement) SeqElement
	AsSexp() SeqElement
	ToSexp(defaultVal ...SeqElement) SeqElement
	AsStruct() StructElement
	ToStruct(defaultVal ...StructElement) StructElement
}

// SeqElement is a list or a sexp. Order is significant for equality.
type SeqElement interface {
	Element

	Len() int
	// At returns the element at index or nil when the index is out of
	// range.
	At(index int) Element
	Find(index int) (Element, bool)
	Contains(index int) bool
	Values() []Element
	Range(fn interface{}) SeqElement

	Update(fn func(*SeqFields)) (SeqElement, error)
	Append(values ...interface{}) SeqElement
	Assoc(index int, value interface{}) (SeqElement, error)
	Insert(index int, value interface{}) (SeqElement, error)
	Delete(index int) (SeqElement, error)
}

// StructElement is an ordered multi-map of field names to Elements.
// Equality ignores field order, printing and iteration follow it.
type StructElement interface {
	Element

	Len() int
	Fields() []Field
	Values() []Element
	// Get returns the first field with the name or an error wrapping
	// ErrMissingField.
	Get(name string) (Element, error)
	// At returns the first field with the name or nil.
	At(name string) Element
	Find(name string) (Element, bool)
	GetAll(name string) []Element
	Contains(name string) bool
	Range(fn interface{}) StructElement

	Update(fn func(*StructFields)) (StructElement, error)
	Assoc(name string, value interface{}) StructElement
	Add(name string, value interface{}) StructElement
	Delete(names ...string) StructElement
}

// Field is a name and value pair of a struct.
type Field struct {
	Name  string
	Value Element
}

// FieldNew returns a Field, the value is converted with ValueNew.
func FieldNew(name string, value interface{}) Field {
	return Field{Name: name, Value: ValueNew(value)}
}

// Equal compares names and values.
func (f Field) Equal(other interface{}) bool {
	of, ok := other.(Field)
	return ok && f.Name == of.Name && Equal(f.Value, of.Value)
}

func (f Field) String() string {
	return symbolText(f.Name) + ":" + toString(f.Value)
}

// realized is implemented by every Element of this package.
// payload returns nil for nulls and containers.
type realized interface {
	Element
	payload() interface{}
}

// accessors implements the As* and To* accessors of an Element on top of
// its kind and payload.
type accessors struct {
	self realized
}

func (a accessors) value(op string, kinds ...Kind) interface{} {
	v, ok := a.lookup(kinds...)
	if !ok {
		panic(typeMismatch(op, a.self, kinds...))
	}
	return v
}

func (a accessors) lookup(kinds ...Kind) (interface{}, bool) {
	if a.self.IsNull() {
		return nil, false
	}
	k := a.self.Kind()
	for _, want := range kinds {
		if k == want {
			return a.self.payload(), true
		}
	}
	return nil, false
}

func (a accessors) AsBool() bool {
	return a.value("AsBool", KindBool).(bool)
}

func (a accessors) ToBool(defaultVal ...bool) bool {
	if v, ok := a.lookup(KindBool); ok {
		return v.(bool)
	}
	if len(defaultVal) != 0 {
		return defaultVal[0]
	}
	return false
}

// AsInt panics with an *InvalidInputError when the value does not fit
// in an int64.
func (a accessors) AsInt() int64 {
	i := a.value("AsInt", KindInt).(*big.Int)
	if !i.IsInt64() {
		panic(invalidInput("AsInt", "value", "%s overflows int64", i))
	}
	return i.Int64()
}

func (a accessors) ToInt(defaultVal ...int64) int64 {
	if v, ok := a.lookup(KindInt); ok && v.(*big.Int).IsInt64() {
		return v.(*big.Int).Int64()
	}
	if len(defaultVal) != 0 {
		return defaultVal[0]
	}
	return 0
}

func (a accessors) AsBigInt() *big.Int {
	return new(big.Int).Set(a.value("AsBigInt", KindInt).(*big.Int))
}

func (a accessors) ToBigInt(defaultVal ...*big.Int) *big.Int {
	if v, ok := a.lookup(KindInt); ok {
		return new(big.Int).Set(v.(*big.Int))
	}
	if len(defaultVal) != 0 {
		return defaultVal[0]
	}
	return nil
}

func (a accessors) AsFloat() float64 {
	return a.value("AsFloat", KindFloat).(float64)
}

func (a accessors) ToFloat(defaultVal ...float64) float64 {
	if v, ok := a.lookup(KindFloat); ok {
		return v.(float64)
	}
	if len(defaultVal) != 0 {
		return defaultVal[0]
	}
	return 0
}

func (a accessors) AsDecimal() Decimal {
	return a.value("AsDecimal", KindDecimal).(Decimal)
}

func (a accessors) ToDecimal(defaultVal ...Decimal) Decimal {
	if v, ok := a.lookup(KindDecimal); ok {
		return v.(Decimal)
	}
	if len(defaultVal) != 0 {
		return defaultVal[0]
	}
	return Decimal{}
}

func (a accessors) AsTimestamp() Timestamp {
	return a.value("AsTimestamp", KindTimestamp).(Timestamp)
}

func (a accessors) ToTimestamp(defaultVal ...Timestamp) Timestamp {
	if v, ok := a.lookup(KindTimestamp); ok {
		return v.(Timestamp)
	}
	if len(defaultVal) != 0 {
		return defaultVal[0]
	}
	return Timestamp{}
}

func (a accessors) AsString() string {
	return a.value("AsString", KindString).(string)
}

func (a accessors) ToString(defaultVal ...string) string {
	return a.toText(KindString, defaultVal)
}

func (a accessors) AsSymbol() string {
	return a.value("AsSymbol", KindSymbol).(string)
}

func (a accessors) ToSymbol(defaultVal ...string) string {
	return a.toText(KindSymbol, defaultVal)
}

func (a accessors) AsText() string {
	return a.value("AsText", KindString, KindSymbol).(string)
}

func (a accessors) ToText(defaultVal ...string) string {
	if v, ok := a.lookup(KindString, KindSymbol); ok {
		return v.(string)
	}
	if len(defaultVal) != 0 {
		return defaultVal[0]
	}
	return ""
}

func (a accessors) toText(kind Kind, defaultVal []string) string {
	if v, ok := a.lookup(kind); ok {
		return v.(string)
	}
	if len(defaultVal) != 0 {
		return defaultVal[0]
	}
	return ""
}

func (a accessors) AsBytes() []byte {
	return copyBytes(a.value("AsBytes", KindBlob, KindClob).([]byte))
}

func (a accessors) ToBytes(defaultVal ...[]byte) []byte {
	return a.toBytes(defaultVal, KindBlob, KindClob)
}

func (a accessors) AsBlob() []byte {
	return copyBytes(a.value("AsBlob", KindBlob).([]byte))
}

func (a accessors) ToBlob(defaultVal ...[]byte) []byte {
	return a.toBytes(defaultVal, KindBlob)
}

func (a accessors) AsClob() []byte {
	return copyBytes(a.value("AsClob", KindClob).([]byte))
}

func (a accessors) ToClob(defaultVal ...[]byte) []byte {
	return a.toBytes(defaultVal, KindClob)
}

func (a accessors) toBytes(defaultVal [][]byte, kinds ...Kind) []byte {
	if v, ok := a.lookup(kinds...); ok {
		return copyBytes(v.([]byte))
	}
	if len(defaultVal) != 0 {
		return defaultVal[0]
	}
	return nil
}

func (a accessors) AsSeq() SeqElement {
	return a.seq("AsSeq", KindList, KindSexp)
}

func (a accessors) ToSeq(defaultVal ...SeqElement) SeqElement {
	return a.toSeq(defaultVal, KindList, KindSexp)
}

func (a accessors) AsList() SeqElement {
	return a.seq("AsList", KindList)
}

func (a accessors) ToList(defaultVal ...SeqElement) SeqElement {
	return a.toSeq(defaultVal, KindList)
}

func (a accessors) AsSexp() SeqElement {
	return a.seq("AsSexp", KindSexp)
}

func (a accessors) ToSexp(defaultVal ...SeqElement) SeqElement {
	return a.toSeq(defaultVal, KindSexp)
}

func (a accessors) seq(op string, kinds ...Kind) SeqElement {
	a.value(op, kinds...)
	return a.self.(SeqElement)
}

func (a accessors) toSeq(defaultVal []SeqElement, kinds ...Kind) SeqElement {
	if _, ok := a.lookup(kinds...); ok {
		return a.self.(SeqElement)
	}
	if len(defaultVal) != 0 {
		return defaultVal[0]
	}
	return nil
}

func (a accessors) AsStruct() StructElement {
	a.value("AsStruct", KindStruct)
	return a.self.(StructElement)
}

func (a accessors) ToStruct(defaultVal ...StructElement) StructElement {
	if _, ok := a.lookup(KindStruct); ok {
		return a.self.(StructElement)
	}
	if len(defaultVal) != 0 {
		return defaultVal[0]
	}
	return nil
}

func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

func copyStrings(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func appendAnnotations(annots []string, more []string) []string {
	out := make([]string, 0, len(annots)+len(more))
	out = append(out, annots...)
	return append(out, more...)
}

// hashCache holds the hash of an Element under the default options once
// it has been computed.
type hashCache struct {
	once sync.Once
	sum  uint64
}

func (h *hashCache) get(e Element) uint64 {
	h.once.Do(func() {
		h.sum = hashOf(e, &equalOpts{})
	})
	return h.sum
}
