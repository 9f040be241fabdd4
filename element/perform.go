// Copyright (c) 2024, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package element

import (
	"math/big"
	"reflect"
	"time"

	"github.com/shopspring/decimal"
)

var (
	interfaceType = reflect.TypeOf((*interface{})(nil)).Elem()
	elementType   = reflect.TypeOf((*Element)(nil)).Elem()
	seqType       = reflect.TypeOf((*SeqElement)(nil)).Elem()
	structType    = reflect.TypeOf((*StructElement)(nil)).Elem()
	boolType      = reflect.TypeOf(false)
	int64Type     = reflect.TypeOf(int64(0))
	bigIntType    = reflect.TypeOf((*big.Int)(nil))
	float64Type   = reflect.TypeOf(float64(0))
	decimalType   = reflect.TypeOf(Decimal{})
	shopDecType   = reflect.TypeOf(decimal.Decimal{})
	timestampType = reflect.TypeOf(Timestamp{})
	timeType      = reflect.TypeOf(time.Time{})
	stringType    = reflect.TypeOf("")
	bytesType     = reflect.TypeOf([]byte(nil))
)

// Perform allows one to match the kind of the Element with a behavior to
// perform on it without resorting to the As* accessors. Think of this as
// the switch v.(type) { ... } analogue for Elements. It takes a list of
// func(v vT) oT functions and applies the first match to the value,
// returning its result or nil when nothing matched.
//
// Element and interface{} match every Element, interface{} receives the
// value of ToNative. SeqElement matches lists and sexps and
// StructElement matches structs. Otherwise the non-null payload is
// matched: bool, int64 (when the int fits), *big.Int, float64, Decimal,
// decimal.Decimal, Timestamp, time.Time, string (strings and symbols)
// and []byte (blobs and clobs).
func Perform(e Element, fns ...interface{}) interface{} {
	if e == nil {
		return nil
	}
	for _, fn := range fns {
		fnv := reflect.ValueOf(fn)
		if fnv.Kind() != reflect.Func || fnv.Type().NumIn() != 1 {
			continue
		}
		arg, ok := performArg(e, fnv.Type().In(0))
		if !ok {
			continue
		}
		out := fnv.Call([]reflect.Value{arg})
		if len(out) == 0 {
			return nil
		}
		return out[0].Interface()
	}
	return nil
}

func performArg(e Element, in reflect.Type) (reflect.Value, bool) {
	switch in {
	case interfaceType:
		native := ToNative(e)
		if native == nil {
			return reflect.Zero(in), true
		}
		return reflect.ValueOf(native), true
	case elementType:
		return reflect.ValueOf(&e).Elem(), true
	}
	if e.IsNull() {
		return reflect.Value{}, false
	}
	var arg interface{}
	switch k := e.Kind(); {
	case in == seqType && k.IsSeq():
		s := e.AsSeq()
		return reflect.ValueOf(&s).Elem(), true
	case in == structType && k == KindStruct:
		s := e.AsStruct()
		return reflect.ValueOf(&s).Elem(), true
	case in == boolType && k == KindBool:
		arg = e.AsBool()
	case in == int64Type && k == KindInt:
		i := e.AsBigInt()
		if !i.IsInt64() {
			return reflect.Value{}, false
		}
		arg = i.Int64()
	case in == bigIntType && k == KindInt:
		arg = e.AsBigInt()
	case in == float64Type && k == KindFloat:
		arg = e.AsFloat()
	case in == decimalType && k == KindDecimal:
		arg = e.AsDecimal()
	case in == shopDecType && k == KindDecimal:
		arg = e.AsDecimal().Decimal()
	case in == timestampType && k == KindTimestamp:
		arg = e.AsTimestamp()
	case in == timeType && k == KindTimestamp:
		arg = e.AsTimestamp().Time()
	case in == stringType && k.IsText():
		arg = e.AsText()
	case in == bytesType && k.IsLob():
		arg = e.AsBytes()
	default:
		return reflect.Value{}, false
	}
	return reflect.ValueOf(arg), true
}
