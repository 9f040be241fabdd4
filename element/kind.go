// Copyright (c) 2024, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package element

// Kind is the type of an Element.
type Kind uint8

const (
	// KindNull is the kind of the untyped null.
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindDecimal
	KindTimestamp
	KindSymbol
	KindString
	KindClob
	KindBlob
	KindList
	KindSexp
	KindStruct
)

var kindNames = [...]string{
	KindNull:      "null",
	KindBool:      "bool",
	KindInt:       "int",
	KindFloat:     "float",
	KindDecimal:   "decimal",
	KindTimestamp: "timestamp",
	KindSymbol:    "symbol",
	KindString:    "string",
	KindClob:      "clob",
	KindBlob:      "blob",
	KindList:      "list",
	KindSexp:      "sexp",
	KindStruct:    "struct",
}

// String returns the Ion type name of the kind.
func (k Kind) String() string {
	if !k.valid() {
		return "invalid"
	}
	return kindNames[k]
}

func (k Kind) valid() bool {
	return int(k) < len(kindNames)
}

// IsContainer returns whether elements of this kind hold other elements.
func (k Kind) IsContainer() bool {
	return k == KindList || k == KindSexp || k == KindStruct
}

// IsSeq returns whether the kind is list or sexp.
func (k Kind) IsSeq() bool {
	return k == KindList || k == KindSexp
}

// IsText returns whether the kind is string or symbol.
func (k Kind) IsText() bool {
	return k == KindString || k == KindSymbol
}

// IsLob returns whether the kind is blob or clob.
func (k Kind) IsLob() bool {
	return k == KindBlob || k == KindClob
}
