// Copyright (c) 2024, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package element

import (
	"bytes"
	"math"
	"reflect"

	"github.com/benbjohnson/immutable"
)

type equalOpts struct {
	ignoreDecimalPrecision bool
}

func (o *equalOpts) isDefault() bool {
	return !o.ignoreDecimalPrecision
}

// EqualOption is an option to Equal and Hash.
type EqualOption func(*equalOpts)

// IgnoreDecimalPrecision compares decimals by numeric value, 1.0 equals
// 1.00 and -0. equals 0.
func IgnoreDecimalPrecision() EqualOption {
	return func(o *equalOpts) {
		o.ignoreDecimalPrecision = true
	}
}

// Equal reports whether two Elements hold the same data. Kind, nullness
// and annotations must match, sequences are compared in order and structs
// as multisets of fields. Built and wrapped Elements compare alike.
func Equal(a, b Element, options ...EqualOption) bool {
	var opts equalOpts
	for _, opt := range options {
		opt(&opts)
	}
	return equal(a, b, &opts)
}

func equal(a, b Element, o *equalOpts) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if identical(a, b) {
		return true
	}
	if a.Kind() != b.Kind() || a.IsNull() != b.IsNull() {
		return false
	}
	if !equalStrings(a.Annotations(), b.Annotations()) {
		return false
	}
	if a.IsNull() {
		return true
	}
	switch a.Kind() {
	case KindBool:
		return a.AsBool() == b.AsBool()
	case KindInt:
		return a.AsBigInt().Cmp(b.AsBigInt()) == 0
	case KindFloat:
		return equalFloat(a.AsFloat(), b.AsFloat())
	case KindDecimal:
		if o.ignoreDecimalPrecision {
			return a.AsDecimal().EqualValue(b.AsDecimal())
		}
		return a.AsDecimal().Equal(b.AsDecimal())
	case KindTimestamp:
		return a.AsTimestamp().Equal(b.AsTimestamp())
	case KindString, KindSymbol:
		return a.AsText() == b.AsText()
	case KindBlob, KindClob:
		return bytes.Equal(a.AsBytes(), b.AsBytes())
	case KindList, KindSexp:
		return equalSeq(a.AsSeq(), b.AsSeq(), o)
	case KindStruct:
		return equalStruct(a.AsStruct(), b.AsStruct(), o)
	}
	return false
}

// identical reports whether a and b are the same Element or wrap the
// same node.
func identical(a, b Element) bool {
	if reflect.TypeOf(a).Comparable() && a == b {
		return true
	}
	wa, ok := a.(wrapper)
	if !ok {
		return false
	}
	wb, ok := b.(wrapper)
	if !ok {
		return false
	}
	return sameNode(wa.unwrap(), wb.unwrap())
}

func sameNode(a, b Node) bool {
	ta := reflect.TypeOf(a)
	return ta == reflect.TypeOf(b) && ta.Comparable() && a == b
}

func equalStrings(a, b []string) bool {
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

// equalFloat treats every NaN as equal and distinguishes 0 from -0.
func equalFloat(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return a == b && math.Signbit(a) == math.Signbit(b)
}

func equalSeq(a, b SeqElement, o *equalOpts) bool {
	if a.Len() != b.Len() {
		return false
	}
	eq := true
	a.Range(func(i int, v Element) bool {
		eq = equal(v, b.At(i), o)
		return eq
	})
	return eq
}

// fieldHasher hashes and compares fields under a set of equality
// options so fields can be counted in an immutable.Map.
type fieldHasher struct {
	opts *equalOpts
}

func (h fieldHasher) Hash(f Field) uint32 {
	sum := fieldHash(f, h.opts)
	return uint32(sum ^ sum>>32)
}

func (h fieldHasher) Equal(a, b Field) bool {
	return a.Name == b.Name && equal(a.Value, b.Value, h.opts)
}

// equalStruct matches the fields of a and b as multisets: every field of
// a is counted and every field of b must cancel one of them.
func equalStruct(a, b StructElement, o *equalOpts) bool {
	if a.Len() != b.Len() {
		return false
	}
	if o.isDefault() && a.Hash() != b.Hash() {
		return false
	}
	counts := immutable.NewMapBuilder[Field, int](fieldHasher{opts: o})
	a.Range(func(f Field) {
		n, _ := counts.Get(f)
		counts.Set(f, n+1)
	})
	eq := true
	b.Range(func(f Field) bool {
		n, ok := counts.Get(f)
		if !ok || n == 0 {
			eq = false
			return false
		}
		counts.Set(f, n-1)
		return true
	})
	return eq
}
