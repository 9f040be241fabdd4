// Copyright (c) 2024, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package tree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/danos/ionelement/element"
	"github.com/pkg/errors"
)

const (
	sp   = " "
	htab = "	"
	wsp  = sp + htab
)

// ParsePath parses a path string into a Path.
//
// Paths match the following grammar:
//
//	path       = "/" / 1*("/" field *predicate)
//	field      = name / (SQUOTE *CHAR SQUOTE)
//	name       = 1*(ALPHA / DIGIT / "_" / "$" / "-" / "." / ":")
//	predicate  = "[" *WSP (pos / expr) *WSP "]"
//	pos        = non-negative-integer
//	expr       = (field / ".") *WSP "=" *WSP
//	             ((DQUOTE string DQUOTE) / (SQUOTE string SQUOTE))
//
// A field step selects the first field of a struct with the name. A pos
// predicate selects an element of a list or sexp by index, an expr
// predicate selects the only element of a list whose field, or whose
// own text for ".", equals the string. Predicates step into nested
// sequences one at a time, /a[0][1] is element 1 of element 0 of a.
// The path "/" refers to the root itself.
func ParsePath(path string) (p *Path, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		p = nil
		err = errors.Wrapf(element.ErrInvalidInput,
			"invalid path %q: %v", path, r)
	}()
	return (&Path{}).parse(path), nil
}

// PathNew parses a path string into a Path and panics if it is invalid.
func PathNew(path string) *Path {
	p, err := ParsePath(path)
	if err != nil {
		panic(err)
	}
	return p
}

// Path addresses a value inside a tree of Elements rooted at a struct.
// Paths are immutable, Push and AddPos return new Paths.
type Path struct {
	steps []step
}

type step interface {
	// find returns the child the step selects from v.
	find(v element.Element) (element.Element, bool)
	// accepts reports whether v is a container the step can select from.
	accepts(v element.Element) bool
	// create returns an empty container the step can select from.
	create() element.Element
	// assoc returns parent with the selected child replaced by v.
	assoc(parent, v element.Element) element.Element
	// delete returns parent without the selected child.
	delete(parent element.Element) element.Element
	String() string
}

func (p *Path) parse(input string) *Path {
	if input == "/" {
		return p
	}
	parts := splitUnquoted(input, '/')
	if len(parts) < 2 {
		panic("must specify at least one field")
	}
	if parts[0] != "" {
		panic("must start with a \"/\"")
	}
	for _, part := range parts[1:] {
		p.steps = append(p.steps, parseSegment(part)...)
	}
	return p
}

// splitUnquoted splits input at sep outside of quotes.
func splitUnquoted(input string, sep rune) []string {
	var inSingleQ, inDoubleQ bool
	var out []string
	var first int
	for i, r := range input {
		switch r {
		case '\'':
			if !inDoubleQ {
				inSingleQ = !inSingleQ
			}
		case '"':
			if !inSingleQ {
				inDoubleQ = !inDoubleQ
			}
		case sep:
			if !inDoubleQ && !inSingleQ {
				out = append(out, input[first:i])
				first = i + 1
			}
		}
	}
	if inDoubleQ || inSingleQ {
		panic("unterminated quote")
	}
	return append(out, input[first:])
}

func parseSegment(input string) []step {
	name, rest := parseName(input)
	out := []step{fieldStep{name: name}}
	for _, pred := range splitPredicates(rest) {
		out = append(out, parsePredicate(pred))
	}
	return out
}

// parseName splits a segment into its field name and predicates.
func parseName(input string) (string, string) {
	if strings.HasPrefix(input, "'") {
		end := strings.IndexByte(input[1:], '\'')
		if end < 0 {
			panic("unterminated quote")
		}
		return input[1 : end+1], input[end+2:]
	}
	name, rest := input, ""
	if i := strings.IndexByte(input, '['); i >= 0 {
		name, rest = input[:i], input[i:]
	}
	checkName(name)
	return name, rest
}

func checkName(name string) {
	if name == "" {
		panic("empty field name")
	}
	for _, r := range name {
		if !isNameRune(r) {
			panic(fmt.Sprintf("invalid field name %q, quote it", name))
		}
	}
}

func isNameRune(r rune) bool {
	return r == '_' || r == '$' || r == '-' || r == '.' || r == ':' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

func quoteName(name string) string {
	for _, r := range name {
		if !isNameRune(r) {
			return "'" + name + "'"
		}
	}
	if name == "" {
		return "''"
	}
	return name
}

func splitPredicates(input string) []string {
	var inSingleQ, inDoubleQ, inPredicate bool
	var out []string
	var first int
	for i, r := range input {
		switch r {
		case '[':
			if !inDoubleQ && !inSingleQ {
				if inPredicate {
					panic("nested predicates are not allowed")
				}
				if i != first {
					panic("unexpected " + strconv.Quote(input[first:i]))
				}
				inPredicate = true
			}
		case ']':
			if !inDoubleQ && !inSingleQ {
				out = append(out, input[first:i+1])
				first = i + 1
				inPredicate = false
			}
		case '\'':
			if !inDoubleQ {
				inSingleQ = !inSingleQ
			}
		case '"':
			if !inSingleQ {
				inDoubleQ = !inDoubleQ
			}
		}
	}
	if inPredicate {
		panic("unterminated predicate")
	}
	if first != len(input) {
		panic("unexpected " + strconv.Quote(input[first:]))
	}
	return out
}

func parsePredicate(input string) step {
	input = strings.Trim(strings.TrimSuffix(
		strings.TrimPrefix(input, "["), "]"), wsp)
	if pos, err := strconv.ParseUint(input, 10, 31); err == nil {
		return posStep{pos: int(pos)}
	}
	parts := strings.SplitN(input, "=", 2)
	if len(parts) < 2 {
		panic("invalid predicate expression " + input)
	}
	field := strings.Trim(parts[0], wsp)
	if field != "." {
		var rest string
		field, rest = parseName(field)
		if rest != "" {
			panic("invalid predicate expression " + input)
		}
	}
	expr := strings.Trim(parts[1], wsp)
	if len(expr) < 2 || (expr[0] != '"' && expr[0] != '\'') ||
		expr[len(expr)-1] != expr[0] {
		panic("invalid predicate, expected quoted value")
	}
	return exprStep{field: field, value: expr[1 : len(expr)-1]}
}

// String returns the normalized path.
func (p *Path) String() string {
	if len(p.steps) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, s := range p.steps {
		b.WriteString(s.String())
	}
	return b.String()
}

// Equal determines if two paths are the same.
func (p *Path) Equal(other interface{}) bool {
	op, isPath := other.(*Path)
	return isPath && op.String() == p.String()
}

// Len returns the number of steps in the path.
func (p *Path) Len() int {
	return len(p.steps)
}

func (p *Path) with(s step) *Path {
	steps := make([]step, len(p.steps), len(p.steps)+1)
	copy(steps, p.steps)
	return &Path{steps: append(steps, s)}
}

// Push returns the path extended by a field.
func (p *Path) Push(name string) *Path {
	return p.with(fieldStep{name: name})
}

// AddPos returns the path extended by a position predicate.
func (p *Path) AddPos(pos int) *Path {
	return p.with(posStep{pos: pos})
}

// Parent returns the path without its last step, nil for the root.
func (p *Path) Parent() *Path {
	if len(p.steps) == 0 {
		return nil
	}
	return &Path{steps: p.steps[:len(p.steps)-1]}
}

func (p *Path) last() step {
	return p.steps[len(p.steps)-1]
}

// Find will traverse the tree to find the Element to which the path
// refers.
func (p *Path) Find(root element.Element) (element.Element, bool) {
	cur := root
	for _, s := range p.steps {
		var found bool
		cur, found = s.find(cur)
		if !found {
			return nil, false
		}
	}
	return cur, true
}

// MatchAgainst returns the Element at the path or nil.
func (p *Path) MatchAgainst(root element.Element) element.Element {
	v, _ := p.Find(root)
	return v
}

type fieldStep struct {
	name string
}

func (s fieldStep) String() string {
	return "/" + quoteName(s.name)
}

func (s fieldStep) accepts(v element.Element) bool {
	return v != nil && v.Kind() == element.KindStruct && !v.IsNull()
}

func (s fieldStep) find(v element.Element) (element.Element, bool) {
	if !s.accepts(v) {
		return nil, false
	}
	return v.AsStruct().Find(s.name)
}

func (fieldStep) create() element.Element {
	return element.StructNew()
}

func (s fieldStep) assoc(parent, v element.Element) element.Element {
	return parent.AsStruct().Assoc(s.name, v)
}

func (s fieldStep) delete(parent element.Element) element.Element {
	return parent.AsStruct().Delete(s.name)
}

type posStep struct {
	pos int
}

func (s posStep) String() string {
	return "[" + strconv.Itoa(s.pos) + "]"
}

func acceptsSeq(v element.Element) bool {
	return v != nil && v.Kind().IsSeq() && !v.IsNull()
}

func (s posStep) accepts(v element.Element) bool {
	return acceptsSeq(v)
}

func (s posStep) find(v element.Element) (element.Element, bool) {
	if !s.accepts(v) {
		return nil, false
	}
	return v.AsSeq().Find(s.pos)
}

func (posStep) create() element.Element {
	return element.ListWith()
}

// assoc pads the sequence with nulls up to the position.
func (s posStep) assoc(parent, v element.Element) element.Element {
	seq := parent.AsSeq()
	if seq.Contains(s.pos) {
		out, err := seq.Assoc(s.pos, v)
		if err != nil {
			panic(err)
		}
		return out
	}
	pad := make([]interface{}, 0, s.pos-seq.Len()+1)
	for i := seq.Len(); i < s.pos; i++ {
		pad = append(pad, element.NullNew(element.KindNull))
	}
	return seq.Append(append(pad, v)...)
}

func (s posStep) delete(parent element.Element) element.Element {
	out, err := parent.AsSeq().Delete(s.pos)
	if err != nil {
		panic(err)
	}
	return out
}

type exprStep struct {
	field string
	value string
}

func (s exprStep) String() string {
	field := s.field
	if field != "." {
		field = quoteName(field)
	}
	quote := "'"
	if strings.Contains(s.value, quote) {
		quote = "\""
	}
	return "[" + field + "=" + quote + s.value + quote + "]"
}

func (s exprStep) accepts(v element.Element) bool {
	return acceptsSeq(v)
}

// matchText is the text an expression compares against: the text of
// strings and symbols, the Ion text of anything else.
func matchText(v element.Element) string {
	if v.Kind().IsText() && !v.IsNull() {
		return v.AsText()
	}
	return v.WithoutAnnotations().String()
}

func (s exprStep) matches(v element.Element) bool {
	if s.field == "." {
		return matchText(v) == s.value
	}
	st := v.ToStruct()
	if st == nil {
		return false
	}
	f, ok := st.Find(s.field)
	return ok && matchText(f) == s.value
}

// index returns the only matching index or -1.
func (s exprStep) index(seq element.SeqElement) int {
	found := -1
	seq.Range(func(i int, v element.Element) bool {
		if !s.matches(v) {
			return true
		}
		if found >= 0 {
			found = -1
			return false
		}
		found = i
		return true
	})
	return found
}

func (s exprStep) find(v element.Element) (element.Element, bool) {
	if !s.accepts(v) {
		return nil, false
	}
	i := s.index(v.AsSeq())
	if i < 0 {
		return nil, false
	}
	return v.AsSeq().At(i), true
}

func (exprStep) create() element.Element {
	return element.ListWith()
}

// keyed makes v match the expression by setting its key field.
func (s exprStep) keyed(v element.Element) element.Element {
	if s.field == "." {
		return v
	}
	st := v.ToStruct()
	if st == nil {
		return v
	}
	return st.Assoc(s.field, s.value)
}

func (s exprStep) assoc(parent, v element.Element) element.Element {
	seq := parent.AsSeq()
	v = s.keyed(v)
	i := s.index(seq)
	if i < 0 {
		return seq.Append(v)
	}
	out, err := seq.Assoc(i, v)
	if err != nil {
		panic(err)
	}
	return out
}

func (s exprStep) delete(parent element.Element) element.Element {
	seq := parent.AsSeq()
	i := s.index(seq)
	if i < 0 {
		return seq
	}
	out, err := seq.Delete(i)
	if err != nil {
		panic(err)
	}
	return out
}
