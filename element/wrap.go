// Copyright (c) 2024, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package element

import (
	"reflect"
	"sync"

	"github.com/benbjohnson/immutable"
	"github.com/sirupsen/logrus"
)

// Wrap returns an Element view of a read-only native node without
// converting it. Kind, annotations and scalar payloads are read from the
// node when asked for; the children of a container are wrapped the first
// time any of them is needed and the same child Elements are returned
// from then on. Wrapping is O(1) whatever the size of the tree.
//
// The node is borrowed, never mutated, and must stay frozen for as long
// as the Element or anything built from it is reachable.
func Wrap(node Node) (Element, error) {
	if isNilNode(node) {
		return nil, invalidInput("Wrap", "node", "nil node")
	}
	if !node.IsReadOnly() {
		return nil, invalidInput("Wrap", "node",
			"%s node is not read-only", node.Kind())
	}
	return wrapNode("Wrap", node)
}

// WrapUnchecked is Wrap without the read-only check. The caller asserts
// that the node will not be mutated while the Element is in use.
func WrapUnchecked(node Node) (Element, error) {
	if isNilNode(node) {
		return nil, invalidInput("WrapUnchecked", "node", "nil node")
	}
	return wrapNode("WrapUnchecked", node)
}

func isNilNode(node Node) bool {
	if node == nil {
		return true
	}
	v := reflect.ValueOf(node)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface,
		reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

func wrapNode(op string, node Node) (Element, error) {
	kind := node.Kind()
	if !kind.valid() {
		return nil, invalidInput(op, "node", "unknown kind %d", kind)
	}
	if node.IsNull() {
		return newWrappedScalar(node), nil
	}
	switch kind {
	case KindList, KindSexp:
		return newWrappedSeq(node), nil
	case KindStruct:
		return newWrappedStruct(node), nil
	default:
		return newWrappedScalar(node), nil
	}
}

// wrapChild wraps a child of an already wrapped container.
func wrapChild(parent Node, index int) (string, Element) {
	name, child := parent.Child(index)
	if isNilNode(child) {
		panic(invalidInput("wrap", "node",
			"%s child %d is nil", parent.Kind(), index))
	}
	e, err := wrapNode("wrap", child)
	if err != nil {
		panic(err)
	}
	return name, e
}

type wrapper interface {
	unwrap() Node
}

// unwrap returns the node an Element wraps.
func unwrap(e Element) (Node, bool) {
	w, ok := e.(wrapper)
	if !ok {
		return nil, false
	}
	return w.unwrap(), true
}

func nodePayload(n Node) interface{} {
	if n.IsNull() {
		return nil
	}
	switch n.Kind() {
	case KindBool:
		return n.BoolValue()
	case KindInt:
		return n.IntValue()
	case KindFloat:
		return n.FloatValue()
	case KindDecimal:
		return n.DecimalValue()
	case KindTimestamp:
		return n.TimestampValue()
	case KindString, KindSymbol:
		return n.TextValue()
	case KindBlob, KindClob:
		return n.BytesValue()
	}
	return nil
}

// wrappedScalar reads its payload from the node on each access.
type wrappedScalar struct {
	accessors
	node Node
	hash hashCache
}

func newWrappedScalar(node Node) *wrappedScalar {
	w := &wrappedScalar{node: node}
	w.self = w
	return w
}

func (w *wrappedScalar) unwrap() Node {
	return w.node
}

func (w *wrappedScalar) Kind() Kind {
	return w.node.Kind()
}

func (w *wrappedScalar) IsNull() bool {
	return w.node.IsNull()
}

func (w *wrappedScalar) Annotations() []string {
	return copyStrings(w.node.Annotations())
}

func (w *wrappedScalar) WithAnnotations(annots ...string) Element {
	return w.copy(appendAnnotations(w.node.Annotations(), annots))
}

func (w *wrappedScalar) WithoutAnnotations() Element {
	if len(w.node.Annotations()) == 0 {
		return w
	}
	return w.copy(nil)
}

// Metas is always empty, metas live on built Elements only.
func (w *wrappedScalar) Metas() map[string]interface{} {
	return metasOf(nil)
}

func (w *wrappedScalar) WithMeta(key string, value interface{}) Element {
	return w.copy(copyStrings(w.node.Annotations())).WithMeta(key, value)
}

func (w *wrappedScalar) WithMetas(metas map[string]interface{}) Element {
	if len(metas) == 0 {
		return w
	}
	return w.copy(copyStrings(w.node.Annotations())).WithMetas(metas)
}

func (w *wrappedScalar) WithoutMetas() Element {
	return w
}

func (w *wrappedScalar) copy(annots []string) *scalarElement {
	if w.node.IsNull() {
		return newNull(w.node.Kind(), annots)
	}
	value := nodePayload(w.node)
	switch v := value.(type) {
	case []byte:
		value = copyBytes(v)
	}
	return newScalar(w.node.Kind(), value, annots)
}

func (w *wrappedScalar) payload() interface{} {
	return nodePayload(w.node)
}

func (w *wrappedScalar) Equal(other interface{}) bool {
	o, ok := other.(Element)
	return ok && Equal(w, o)
}

func (w *wrappedScalar) Hash() uint64 {
	return w.hash.get(w)
}

func (w *wrappedScalar) String() string {
	return toString(w)
}

// wrappedSeq wraps a list or sexp node. Its children are wrapped once,
// on first access, into a seqElement that shares them.
type wrappedSeq struct {
	accessors
	node Node
	once sync.Once
	pure *seqElement
	hash hashCache
}

func newWrappedSeq(node Node) *wrappedSeq {
	w := &wrappedSeq{node: node}
	w.self = w
	return w
}

func (w *wrappedSeq) materialize() *seqElement {
	w.once.Do(func() {
		n := w.node.Len()
		b := immutable.NewListBuilder[Element]()
		for i := 0; i < n; i++ {
			_, e := wrapChild(w.node, i)
			b.Append(e)
		}
		w.pure = newSeq(w.node.Kind(), b.List(),
			copyStrings(w.node.Annotations()))
		log.WithFields(logrus.Fields{
			"kind":     w.node.Kind().String(),
			"children": n,
		}).Debug("wrapped children materialized")
	})
	return w.pure
}

func (w *wrappedSeq) unwrap() Node {
	return w.node
}

func (w *wrappedSeq) Kind() Kind {
	return w.node.Kind()
}

func (w *wrappedSeq) IsNull() bool {
	return false
}

func (w *wrappedSeq) Annotations() []string {
	return copyStrings(w.node.Annotations())
}

func (w *wrappedSeq) WithAnnotations(annots ...string) Element {
	return w.materialize().WithAnnotations(annots...)
}

func (w *wrappedSeq) WithoutAnnotations() Element {
	if len(w.node.Annotations()) == 0 {
		return w
	}
	return w.materialize().WithoutAnnotations()
}

func (w *wrappedSeq) Metas() map[string]interface{} {
	return metasOf(nil)
}

// WithMeta returns a built copy sharing the wrapped children.
func (w *wrappedSeq) WithMeta(key string, value interface{}) Element {
	return w.materialize().WithMeta(key, value)
}

func (w *wrappedSeq) WithMetas(metas map[string]interface{}) Element {
	if len(metas) == 0 {
		return w
	}
	return w.materialize().WithMetas(metas)
}

func (w *wrappedSeq) WithoutMetas() Element {
	return w
}

func (w *wrappedSeq) payload() interface{} {
	return nil
}

// Len reads the length from the node, no child is wrapped.
func (w *wrappedSeq) Len() int {
	return w.node.Len()
}

func (w *wrappedSeq) At(index int) Element {
	return w.materialize().At(index)
}

func (w *wrappedSeq) Find(index int) (Element, bool) {
	return w.materialize().Find(index)
}

func (w *wrappedSeq) Contains(index int) bool {
	return index >= 0 && index < w.node.Len()
}

func (w *wrappedSeq) Values() []Element {
	return w.materialize().Values()
}

func (w *wrappedSeq) Range(fn interface{}) SeqElement {
	rangeList(w.materialize().store, fn)
	return w
}

// Update applies fn to the materialized children. The result is a built
// sequence sharing the wrapped children that fn left alone.
func (w *wrappedSeq) Update(fn func(*SeqFields)) (SeqElement, error) {
	log.WithField("kind", w.node.Kind().String()).
		Debug("copying wrapped container for update")
	return w.materialize().Update(fn)
}

func (w *wrappedSeq) Append(values ...interface{}) SeqElement {
	return seqAppend(w, values)
}

func (w *wrappedSeq) Assoc(index int, value interface{}) (SeqElement, error) {
	return seqAssoc(w, index, value)
}

func (w *wrappedSeq) Insert(index int, value interface{}) (SeqElement, error) {
	return seqInsert(w, index, value)
}

func (w *wrappedSeq) Delete(index int) (SeqElement, error) {
	return seqDelete(w, index)
}

func (w *wrappedSeq) Equal(other interface{}) bool {
	o, ok := other.(Element)
	return ok && Equal(w, o)
}

func (w *wrappedSeq) Hash() uint64 {
	return w.hash.get(w)
}

func (w *wrappedSeq) String() string {
	return toString(w)
}

// wrappedStruct wraps a struct node. Its fields are wrapped once, on
// first access, into a structElement that shares them.
type wrappedStruct struct {
	accessors
	node Node
	once sync.Once
	pure *structElement
	hash hashCache
}

func newWrappedStruct(node Node) *wrappedStruct {
	w := &wrappedStruct{node: node}
	w.self = w
	return w
}

func (w *wrappedStruct) materialize() *structElement {
	w.once.Do(func() {
		n := w.node.Len()
		b := immutable.NewListBuilder[Field]()
		for i := 0; i < n; i++ {
			name, e := wrapChild(w.node, i)
			b.Append(Field{Name: name, Value: e})
		}
		w.pure = newStruct(b.List(), copyStrings(w.node.Annotations()))
		log.WithFields(logrus.Fields{
			"kind":     KindStruct.String(),
			"children": n,
		}).Debug("wrapped children materialized")
	})
	return w.pure
}

func (w *wrappedStruct) unwrap() Node {
	return w.node
}

func (w *wrappedStruct) Kind() Kind {
	return KindStruct
}

func (w *wrappedStruct) IsNull() bool {
	return false
}

func (w *wrappedStruct) Annotations() []string {
	return copyStrings(w.node.Annotations())
}

func (w *wrappedStruct) WithAnnotations(annots ...string) Element {
	return w.materialize().WithAnnotations(annots...)
}

func (w *wrappedStruct) WithoutAnnotations() Element {
	if len(w.node.Annotations()) == 0 {
		return w
	}
	return w.materialize().WithoutAnnotations()
}

func (w *wrappedStruct) Metas() map[string]interface{} {
	return metasOf(nil)
}

// WithMeta returns a built copy sharing the wrapped children.
func (w *wrappedStruct) WithMeta(key string, value interface{}) Element {
	return w.materialize().WithMeta(key, value)
}

func (w *wrappedStruct) WithMetas(metas map[string]interface{}) Element {
	if len(metas) == 0 {
		return w
	}
	return w.materialize().WithMetas(metas)
}

func (w *wrappedStruct) WithoutMetas() Element {
	return w
}

func (w *wrappedStruct) payload() interface{} {
	return nil
}

// Len reads the number of fields from the node, no child is wrapped.
func (w *wrappedStruct) Len() int {
	return w.node.Len()
}

func (w *wrappedStruct) Fields() []Field {
	return w.materialize().Fields()
}

func (w *wrappedStruct) Values() []Element {
	return w.materialize().Values()
}

func (w *wrappedStruct) Get(name string) (Element, error) {
	return w.materialize().Get(name)
}

func (w *wrappedStruct) At(name string) Element {
	return w.materialize().At(name)
}

func (w *wrappedStruct) Find(name string) (Element, bool) {
	return w.materialize().Find(name)
}

func (w *wrappedStruct) GetAll(name string) []Element {
	return w.materialize().GetAll(name)
}

// Contains scans the field names of the node, no child is wrapped.
func (w *wrappedStruct) Contains(name string) bool {
	for i := 0; i < w.node.Len(); i++ {
		if n, _ := w.node.Child(i); n == name {
			return true
		}
	}
	return false
}

func (w *wrappedStruct) Range(fn interface{}) StructElement {
	rangeFields(w.materialize().fields, fn)
	return w
}

// Update applies fn to the materialized fields. The result is a built
// struct sharing the wrapped fields that fn left alone.
func (w *wrappedStruct) Update(fn func(*StructFields)) (StructElement, error) {
	log.WithField("kind", KindStruct.String()).
		Debug("copying wrapped container for update")
	return w.materialize().Update(fn)
}

func (w *wrappedStruct) Assoc(name string, value interface{}) StructElement {
	return structAssoc(w, name, value)
}

func (w *wrappedStruct) Add(name string, value interface{}) StructElement {
	return structAdd(w, name, value)
}

func (w *wrappedStruct) Delete(names ...string) StructElement {
	return structDelete(w, names)
}

func (w *wrappedStruct) Equal(other interface{}) bool {
	o, ok := other.(Element)
	return ok && Equal(w, o)
}

func (w *wrappedStruct) Hash() uint64 {
	return w.hash.get(w)
}

func (w *wrappedStruct) String() string {
	return toString(w)
}
