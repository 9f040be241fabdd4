// Copyright (c) 2024, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package element

import (
	"math/big"
	"unicode/utf8"
)

// scalarElement holds every non container value and all typed nulls.
type scalarElement struct {
	accessors
	kind   Kind
	null   bool
	annots []string
	data   interface{}
	metas  metaMap
	hash   hashCache
}

func newScalar(kind Kind, data interface{}, annots []string) *scalarElement {
	e := &scalarElement{
		kind:   kind,
		annots: annots,
		data:   data,
	}
	e.self = e
	return e
}

func newNull(kind Kind, annots []string) *scalarElement {
	e := newScalar(kind, nil, annots)
	e.null = true
	return e
}

// NullNew returns the null of the kind, KindNull yields the untyped null.
func NullNew(kind Kind) Element {
	if !kind.valid() {
		panic(invalidInput("NullNew", "kind", "unknown kind %d", kind))
	}
	return newNull(kind, nil)
}

// BoolNew returns a bool Element.
func BoolNew(b bool) Element {
	return newScalar(KindBool, b, nil)
}

// IntNew returns an int Element.
func IntNew(i int64) Element {
	return newScalar(KindInt, big.NewInt(i), nil)
}

// BigIntNew returns an int Element holding a copy of i.
func BigIntNew(i *big.Int) Element {
	if i == nil {
		panic(invalidInput("BigIntNew", "i", "nil *big.Int"))
	}
	return newScalar(KindInt, new(big.Int).Set(i), nil)
}

// FloatNew returns a float Element.
func FloatNew(f float64) Element {
	return newScalar(KindFloat, f, nil)
}

// DecimalNew returns a decimal Element.
func DecimalNew(d Decimal) Element {
	return newScalar(KindDecimal, d, nil)
}

// TimestampNew returns a timestamp Element.
func TimestampNew(ts Timestamp) Element {
	return newScalar(KindTimestamp, ts, nil)
}

// StringNew returns a string Element. It panics with an
// *InvalidInputError when s is not valid UTF-8.
func StringNew(s string) Element {
	return textNew("StringNew", KindString, s)
}

// SymbolNew returns a symbol Element. It panics with an
// *InvalidInputError when s is not valid UTF-8.
func SymbolNew(s string) Element {
	return textNew("SymbolNew", KindSymbol, s)
}

func textNew(op string, kind Kind, s string) Element {
	if !utf8.ValidString(s) {
		panic(invalidInput(op, "s", "invalid UTF-8 %q", s))
	}
	return newScalar(kind, s, nil)
}

// BlobNew returns a blob Element holding a copy of b.
func BlobNew(b []byte) Element {
	return newScalar(KindBlob, copyBytes(nonNilBytes(b)), nil)
}

// ClobNew returns a clob Element holding a copy of b.
func ClobNew(b []byte) Element {
	return newScalar(KindClob, copyBytes(nonNilBytes(b)), nil)
}

func nonNilBytes(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}

func (e *scalarElement) Kind() Kind {
	return e.kind
}

func (e *scalarElement) IsNull() bool {
	return e.null
}

func (e *scalarElement) Annotations() []string {
	return copyStrings(e.annots)
}

func (e *scalarElement) WithAnnotations(annots ...string) Element {
	return e.copy(appendAnnotations(e.annots, annots), e.metas)
}

func (e *scalarElement) WithoutAnnotations() Element {
	if len(e.annots) == 0 {
		return e
	}
	return e.copy(nil, e.metas)
}

func (e *scalarElement) Metas() map[string]interface{} {
	return metasOf(e.metas)
}

func (e *scalarElement) WithMeta(key string, value interface{}) Element {
	return e.copy(e.annots, metasWith(e.metas, key, value))
}

func (e *scalarElement) WithMetas(metas map[string]interface{}) Element {
	return e.copy(e.annots, metasMerge(e.metas, metas))
}

func (e *scalarElement) WithoutMetas() Element {
	if e.metas == nil {
		return e
	}
	return e.copy(e.annots, nil)
}

func (e *scalarElement) copy(annots []string, metas metaMap) *scalarElement {
	out := newScalar(e.kind, e.data, annots)
	out.null = e.null
	out.metas = metas
	return out
}

func (e *scalarElement) payload() interface{} {
	return e.data
}

func (e *scalarElement) Equal(other interface{}) bool {
	o, ok := other.(Element)
	return ok && Equal(e, o)
}

func (e *scalarElement) Hash() uint64 {
	return e.hash.get(e)
}

func (e *scalarElement) String() string {
	return toString(e)
}
