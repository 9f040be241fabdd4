// Copyright (c) 2024, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package element

import (
	"math/big"
)

// Node is the read side of a mutable native Ion tree, such as one
// produced by a text loader. The package only ever reads Nodes.
//
// Payload accessors are only called for non-null nodes of the matching
// kind: BoolValue for bool, IntValue for int, FloatValue for float,
// DecimalValue for decimal, TimestampValue for timestamp, TextValue for
// string and symbol, BytesValue for blob and clob. Len and Child are
// called for lists, sexps and structs, the name is empty for list and
// sexp children.
type Node interface {
	Kind() Kind
	IsNull() bool
	Annotations() []string
	// IsReadOnly reports whether the node and its descendants are
	// frozen against mutation.
	IsReadOnly() bool

	BoolValue() bool
	IntValue() *big.Int
	FloatValue() float64
	DecimalValue() Decimal
	TimestampValue() Timestamp
	TextValue() string
	BytesValue() []byte

	Len() int
	Child(index int) (name string, child Node)
}

// NodeFactory builds native nodes, it is used to turn Elements back into
// native trees.
type NodeFactory interface {
	NewNull(kind Kind, annotations []string) Node
	// NewScalar receives a bool, *big.Int, float64, Decimal, Timestamp,
	// string or []byte matching the kind.
	NewScalar(kind Kind, value interface{}, annotations []string) (Node, error)
	NewSeq(kind Kind, children []Node, annotations []string) (Node, error)
	NewStruct(names []string, children []Node, annotations []string) (Node, error)
	// Clone returns a mutable deep copy of a node of any implementation.
	Clone(n Node) Node
	// Freeze makes n and its descendants read-only and returns it.
	Freeze(n Node) Node
}

// ToNode returns a new mutable native tree holding the Element's data.
// Wrapped parts of the Element are cloned, the nodes they borrow are
// never handed out.
func ToNode(e Element, factory NodeFactory) (Node, error) {
	if e == nil {
		return nil, invalidInput("ToNode", "e", "nil Element")
	}
	return buildNode(e, factory)
}

// ToReadOnlyNode returns a read-only native tree holding the Element's
// data. For a wrapped Element this is the node it wraps when that node
// is read-only. A node wrapped with WrapUnchecked that is still mutable
// is cloned and the clone frozen, so the result is always read-only.
// Anything else is built with the factory and frozen.
func ToReadOnlyNode(e Element, factory NodeFactory) (Node, error) {
	if e == nil {
		return nil, invalidInput("ToReadOnlyNode", "e", "nil Element")
	}
	if n, ok := unwrap(e); ok {
		if n.IsReadOnly() {
			return n, nil
		}
		log.WithField("kind", n.Kind().String()).
			Debug("freezing a clone of a mutable wrapped node")
		return factory.Freeze(factory.Clone(n)), nil
	}
	n, err := buildNode(e, factory)
	if err != nil {
		return nil, err
	}
	return factory.Freeze(n), nil
}

func buildNode(e Element, factory NodeFactory) (Node, error) {
	if n, ok := unwrap(e); ok {
		return factory.Clone(n), nil
	}
	annots := e.Annotations()
	if e.IsNull() {
		return factory.NewNull(e.Kind(), annots), nil
	}
	switch e.Kind() {
	case KindList, KindSexp:
		s := e.AsSeq()
		children := make([]Node, 0, s.Len())
		var err error
		s.Range(func(v Element) bool {
			var child Node
			child, err = buildNode(v, factory)
			children = append(children, child)
			return err == nil
		})
		if err != nil {
			return nil, err
		}
		return factory.NewSeq(e.Kind(), children, annots)
	case KindStruct:
		s := e.AsStruct()
		names := make([]string, 0, s.Len())
		children := make([]Node, 0, s.Len())
		var err error
		s.Range(func(name string, v Element) bool {
			var child Node
			child, err = buildNode(v, factory)
			names = append(names, name)
			children = append(children, child)
			return err == nil
		})
		if err != nil {
			return nil, err
		}
		return factory.NewStruct(names, children, annots)
	}
	return factory.NewScalar(e.Kind(), scalarValue(e), annots)
}

func scalarValue(e Element) interface{} {
	switch e.Kind() {
	case KindBool:
		return e.AsBool()
	case KindInt:
		return e.AsBigInt()
	case KindFloat:
		return e.AsFloat()
	case KindDecimal:
		return e.AsDecimal()
	case KindTimestamp:
		return e.AsTimestamp()
	case KindString, KindSymbol:
		return e.AsText()
	case KindBlob, KindClob:
		return e.AsBytes()
	}
	return nil
}
