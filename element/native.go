// Copyright (c) 2024, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package element

import (
	"math/big"
	"reflect"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// ValueNew turns a native go value into an Element as long as the type
// can be represented in Ion. ValueNew will panic with an
// *InvalidInputError if it cannot.
//
// nil is the untyped null, integers are ints, float32 and float64 are
// floats, strings are strings, []byte is a blob, time.Time is a
// timestamp with nanosecond precision and decimal.Decimal is a decimal.
// Slices and arrays become lists and maps with string keys become
// structs with their fields in key order. Elements are returned as is.
func ValueNew(data interface{}) Element {
	e, err := valueNew(data)
	if err != nil {
		panic(err)
	}
	return e
}

func valueNew(data interface{}) (Element, error) {
	if data == nil {
		return newNull(KindNull, nil), nil
	}
	switch d := data.(type) {
	case Element:
		if isNilElement(d) {
			return nil, invalidInput("ValueNew", "data", "nil %T", d)
		}
		return d, nil
	case bool:
		return BoolNew(d), nil
	case int:
		return IntNew(int64(d)), nil
	case int8:
		return IntNew(int64(d)), nil
	case int16:
		return IntNew(int64(d)), nil
	case int32:
		return IntNew(int64(d)), nil
	case int64:
		return IntNew(d), nil
	case uint:
		return newScalar(KindInt, new(big.Int).SetUint64(uint64(d)), nil), nil
	case uint8:
		return IntNew(int64(d)), nil
	case uint16:
		return IntNew(int64(d)), nil
	case uint32:
		return IntNew(int64(d)), nil
	case uint64:
		return newScalar(KindInt, new(big.Int).SetUint64(d), nil), nil
	case *big.Int:
		if d == nil {
			return nil, invalidInput("ValueNew", "data", "nil *big.Int")
		}
		return BigIntNew(d), nil
	case float32:
		return FloatNew(float64(d)), nil
	case float64:
		return FloatNew(d), nil
	case Decimal:
		return DecimalNew(d), nil
	case decimal.Decimal:
		return DecimalNew(DecimalFrom(d)), nil
	case Timestamp:
		return TimestampNew(d), nil
	case time.Time:
		return TimestampNew(TimestampOf(d, PrecisionFraction)), nil
	case string:
		if !utf8.ValidString(d) {
			return nil, invalidInput("ValueNew", "data", "invalid UTF-8 %q", d)
		}
		return StringNew(d), nil
	case []byte:
		return BlobNew(d), nil
	case []Field:
		fields, err := fieldsFrom(d)
		if err != nil {
			return nil, err
		}
		return newStruct(fields, nil), nil
	case Field:
		return nil, invalidInput("ValueNew", "data",
			"a Field is not an Element, use StructWith")
	}
	switch reflect.TypeOf(data).Kind() {
	case reflect.Slice, reflect.Array:
		store, err := listFrom(data)
		if err != nil {
			return nil, err
		}
		return newSeq(KindList, store, nil), nil
	case reflect.Map:
		fields, err := fieldsFrom(data)
		if err != nil {
			return nil, err
		}
		return newStruct(fields, nil), nil
	}
	return nil, invalidInput("ValueNew", "data",
		"cannot create element from %T", data)
}

func isNilElement(e Element) bool {
	v := reflect.ValueOf(e)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// ToNative converts an Element to go native types: nil, bool, int64 or
// *big.Int when it does not fit, float64, Decimal, Timestamp, string,
// []byte, []interface{} for lists and sexps and map[string]interface{}
// for structs. Annotations are dropped and the first of several fields
// with the same name wins.
func ToNative(e Element) interface{} {
	if e == nil || e.IsNull() {
		return nil
	}
	switch e.Kind() {
	case KindInt:
		i := e.AsBigInt()
		if i.IsInt64() {
			return i.Int64()
		}
		return i
	case KindList, KindSexp:
		s := e.AsSeq()
		out := make([]interface{}, 0, s.Len())
		s.Range(func(v Element) {
			out = append(out, ToNative(v))
		})
		return out
	case KindStruct:
		s := e.AsStruct()
		out := make(map[string]interface{}, s.Len())
		s.Range(func(name string, v Element) {
			if _, seen := out[name]; !seen {
				out[name] = ToNative(v)
			}
		})
		return out
	}
	return scalarValue(e)
}
