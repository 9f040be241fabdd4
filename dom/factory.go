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

// Factory builds Values, it implements element.NodeFactory.
type Factory struct{}

var _ element.NodeFactory = Factory{}

func (Factory) NewNull(kind element.Kind, annotations []string) element.Node {
	v := Null(kind)
	v.annots = append([]string(nil), annotations...)
	return v
}

func (Factory) NewScalar(
	kind element.Kind,
	value interface{},
	annotations []string,
) (element.Node, error) {
	var ok bool
	switch kind {
	case element.KindBool:
		_, ok = value.(bool)
	case element.KindInt:
		var i *big.Int
		i, ok = value.(*big.Int)
		ok = ok && i != nil
	case element.KindFloat:
		_, ok = value.(float64)
	case element.KindDecimal:
		_, ok = value.(element.Decimal)
	case element.KindTimestamp:
		_, ok = value.(element.Timestamp)
	case element.KindString, element.KindSymbol:
		_, ok = value.(string)
	case element.KindBlob, element.KindClob:
		var b []byte
		if b, ok = value.([]byte); ok {
			value = append([]byte{}, b...)
		}
	}
	if !ok {
		return nil, errors.Wrapf(element.ErrInvalidInput,
			"NewScalar: %T is not a %s payload", value, kind)
	}
	v := scalar(kind, value)
	v.annots = append([]string(nil), annotations...)
	return v, nil
}

func (f Factory) NewSeq(
	kind element.Kind,
	children []element.Node,
	annotations []string,
) (element.Node, error) {
	if !kind.IsSeq() {
		return nil, errors.Wrapf(element.ErrInvalidInput,
			"NewSeq: %s is not a sequence", kind)
	}
	v := &Value{
		kind:     kind,
		annots:   append([]string(nil), annotations...),
		children: f.adopt(children),
	}
	return v, nil
}

func (f Factory) NewStruct(
	names []string,
	children []element.Node,
	annotations []string,
) (element.Node, error) {
	if len(names) != len(children) {
		return nil, errors.Wrapf(element.ErrInvalidInput,
			"NewStruct: %d names for %d children",
			len(names), len(children))
	}
	v := &Value{
		kind:     element.KindStruct,
		annots:   append([]string(nil), annotations...),
		names:    append([]string{}, names...),
		children: f.adopt(children),
	}
	return v, nil
}

// adopt takes ownership of mutable Values and copies everything else.
func (Factory) adopt(children []element.Node) []*Value {
	out := make([]*Value, len(children))
	for i, c := range children {
		v, ok := c.(*Value)
		if !ok || v.readOnly {
			v = FromNode(c)
		}
		out[i] = v
	}
	return out
}

func (Factory) Clone(n element.Node) element.Node {
	return FromNode(n)
}

func (Factory) Freeze(n element.Node) element.Node {
	v, ok := n.(*Value)
	if !ok {
		v = FromNode(n)
	}
	return v.MakeReadOnly()
}

// FromNode returns a mutable deep copy of any element.Node.
func FromNode(n element.Node) *Value {
	if v, ok := n.(*Value); ok {
		return v.Clone()
	}
	out := &Value{
		kind:   n.Kind(),
		null:   n.IsNull(),
		annots: append([]string(nil), n.Annotations()...),
	}
	if out.null {
		return out
	}
	switch out.kind {
	case element.KindBool:
		out.data = n.BoolValue()
	case element.KindInt:
		out.data = new(big.Int).Set(n.IntValue())
	case element.KindFloat:
		out.data = n.FloatValue()
	case element.KindDecimal:
		out.data = n.DecimalValue()
	case element.KindTimestamp:
		out.data = n.TimestampValue()
	case element.KindString, element.KindSymbol:
		out.data = n.TextValue()
	case element.KindBlob, element.KindClob:
		out.data = append([]byte{}, n.BytesValue()...)
	case element.KindList, element.KindSexp, element.KindStruct:
		out.children = make([]*Value, n.Len())
		for i := range out.children {
			name, c := n.Child(i)
			if out.kind == element.KindStruct {
				out.names = append(out.names, name)
			}
			out.children[i] = FromNode(c)
		}
	}
	return out
}
