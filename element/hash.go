// Copyright (c) 2024, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package element

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Hash returns a hash of the Element consistent with Equal under the same
// options: Equal(a, b, opts...) implies Hash(a, opts...) == Hash(b, opts...).
func Hash(e Element, options ...EqualOption) uint64 {
	var opts equalOpts
	for _, opt := range options {
		opt(&opts)
	}
	if e == nil {
		return 0
	}
	if opts.isDefault() {
		return e.Hash()
	}
	return hashOf(e, &opts)
}

// childHash uses the cached hash of the child when possible.
func childHash(e Element, o *equalOpts) uint64 {
	if o.isDefault() {
		return e.Hash()
	}
	return hashOf(e, o)
}

// fieldHash mixes a field's name into its value hash. Struct hashes are
// the sum of their field hashes so field order does not matter.
func fieldHash(f Field, o *equalOpts) uint64 {
	return xxhash.Sum64String(f.Name)*31 + childHash(f.Value, o)
}

func hashOf(e Element, o *equalOpts) uint64 {
	d := xxhash.New()
	var scratch [8]byte
	writeUint := func(v uint64) {
		binary.LittleEndian.PutUint64(scratch[:], v)
		d.Write(scratch[:])
	}
	writeString := func(s string) {
		writeUint(uint64(len(s)))
		d.WriteString(s)
	}

	kind := uint64(e.Kind()) << 1
	if e.IsNull() {
		kind |= 1
	}
	writeUint(kind)
	annots := e.Annotations()
	writeUint(uint64(len(annots)))
	for _, a := range annots {
		writeString(a)
	}
	if e.IsNull() {
		return d.Sum64()
	}

	switch e.Kind() {
	case KindBool:
		if e.AsBool() {
			writeUint(1)
		} else {
			writeUint(0)
		}
	case KindInt:
		i := e.AsBigInt()
		writeUint(uint64(i.Sign() + 1))
		d.Write(i.Bytes())
	case KindFloat:
		f := e.AsFloat()
		if math.IsNaN(f) {
			f = math.NaN()
		}
		writeUint(math.Float64bits(f))
	case KindDecimal:
		dec := e.AsDecimal()
		if o.ignoreDecimalPrecision {
			coef, exp := dec.normalize()
			writeUint(uint64(coef.Sign() + 1))
			d.Write(coef.Bytes())
			writeUint(uint64(exp))
			break
		}
		coef := dec.Coefficient()
		writeUint(uint64(coef.Sign() + 1))
		d.Write(coef.Bytes())
		writeUint(uint64(dec.Exponent()))
		if dec.IsNegativeZero() {
			writeUint(1)
		}
	case KindTimestamp:
		ts := e.AsTimestamp()
		writeUint(uint64(ts.Time().Unix()))
		writeUint(uint64(ts.Time().Nanosecond()))
		writeUint(uint64(ts.Precision())<<8 | uint64(ts.FractionDigits()))
		if ts.OffsetKnown() {
			writeUint(uint64(int64(ts.Offset())))
		}
	case KindString, KindSymbol:
		writeString(e.AsText())
	case KindBlob, KindClob:
		b := e.AsBytes()
		writeUint(uint64(len(b)))
		d.Write(b)
	case KindList, KindSexp:
		s := e.AsSeq()
		writeUint(uint64(s.Len()))
		s.Range(func(v Element) {
			writeUint(childHash(v, o))
		})
	case KindStruct:
		var sum uint64
		s := e.AsStruct()
		s.Range(func(f Field) {
			sum += fieldHash(f, o)
		})
		writeUint(uint64(s.Len()))
		writeUint(sum)
	}
	return d.Sum64()
}
