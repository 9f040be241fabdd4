// Copyright (c) 2024, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package tree

import (
	"fmt"

	"github.com/danos/ionelement/element"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	// EditAssoc is the edit action association with the Assoc operation.
	EditAssoc EditAction = "assoc"
	// EditDelete is the edit action association with the Delete operation.
	EditDelete EditAction = "delete"
	// EditMerge is the edit action association with the Merge operation.
	EditMerge EditAction = "merge"
)

// EditAction is an action that can be performed by the edit engine.
type EditAction string

// ParseEditAction returns the EditAction named by s.
func ParseEditAction(s string) (EditAction, error) {
	switch EditAction(s) {
	case EditAssoc, EditDelete, EditMerge:
		return EditAction(s), nil
	default:
		return "", errors.Wrapf(element.ErrInvalidInput,
			"unknown edit-action %q", s)
	}
}

// String returns the EditAction as a string.
func (e EditAction) String() string {
	return string(e)
}

// EditEntry contains the actions to perform as well as the path to
// perform it at and the value if any to be used.
type EditEntry struct {
	Action EditAction
	Path   *Path
	Value  element.Element
}

// Element returns the entry as a struct with the action as a symbol,
// the path as a string and the value when there is one.
func (e EditEntry) Element() element.StructElement {
	out := element.StructWith(
		element.FieldNew("action", element.SymbolNew(e.Action.String())),
		element.FieldNew("path", e.Path.String()),
	)
	if e.Value != nil {
		out = out.Assoc("value", e.Value)
	}
	return out
}

func (e EditEntry) evalAssoc() func(*Tree) *Tree {
	path, value := e.Path, e.Value
	return func(t *Tree) *Tree {
		return t.assoc(path, value)
	}
}

func (e EditEntry) evalDelete() func(*Tree) *Tree {
	path := e.Path
	return func(t *Tree) *Tree {
		return t.delete(path)
	}
}

func (e EditEntry) evalMerge() func(*Tree) *Tree {
	path, value := e.Path, e.Value
	return func(t *Tree) *Tree {
		return t.assoc(path, merge(t.at(path), value))
	}
}

func (e EditEntry) eval() func(*Tree) *Tree {
	var op func(*Tree) *Tree
	switch e.Action {
	case EditAssoc:
		op = e.evalAssoc()
	case EditDelete:
		op = e.evalDelete()
	case EditMerge:
		op = e.evalMerge()
	default:
		panic(fmt.Errorf("unknown edit-action %v", e.Action))
	}
	action, path := e.Action, e.Path
	return func(t *Tree) *Tree {
		log.WithFields(logrus.Fields{
			"action": action,
			"path":   path.String(),
		}).Debug("applying edit")
		return op(t)
	}
}

// EditOperation holds edit actions and allows them to be represented as
// an Element.
type EditOperation struct {
	Actions []EditEntry
}

// EditOperationNew produces a new EditOperation from the provided
// entries. This allows one to declaratively build an EditOperation.
func EditOperationNew(entries ...EditEntry) *EditOperation {
	return &EditOperation{
		Actions: entries,
	}
}

// Element returns the operation as a struct holding an 'actions' list
// of entries.
//
//	{actions:[{action:assoc,path:"/a",value:1},{action:delete,path:"/b"}]}
func (e *EditOperation) Element() element.StructElement {
	entries := make([]element.Element, len(e.Actions))
	for i := range e.Actions {
		entries[i] = e.Actions[i].Element()
	}
	return element.StructWith(
		element.FieldNew("actions", element.ListFrom(entries)))
}

// String returns the Ion text of the operation.
func (e *EditOperation) String() string {
	return e.Element().String()
}

func (e *EditOperation) eval() func(*Tree) *Tree {
	actions := make([]func(*Tree) *Tree, len(e.Actions))
	for i := range e.Actions {
		actions[i] = e.Actions[i].eval()
	}
	return func(t *Tree) *Tree {
		for _, action := range actions {
			t = action(t)
		}
		return t
	}
}

// EditOperationFromElement reads an operation in the form produced by
// Element. Every malformed entry is reported.
func EditOperationFromElement(e element.Element) (*EditOperation, error) {
	st := e.ToStruct()
	if st == nil {
		return nil, &element.TypeMismatchError{
			Op:       "EditOperationFromElement",
			Expected: []element.Kind{element.KindStruct},
			Actual:   e.Kind(),
			Null:     e.IsNull(),
		}
	}
	op := &EditOperation{}
	actions, found := st.Find("actions")
	if !found {
		return op, nil
	}
	seq := actions.ToSeq()
	if seq == nil {
		return nil, errors.Wrap(element.ErrInvalidInput,
			"actions must be a list")
	}
	var errs *multierror.Error
	seq.Range(func(i int, v element.Element) {
		entry, err := editEntryFromElement(v)
		if err != nil {
			errs = multierror.Append(errs,
				errors.WithMessagef(err, "actions[%d]", i))
			return
		}
		op.Actions = append(op.Actions, entry)
	})
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return op, nil
}

func editEntryFromElement(v element.Element) (EditEntry, error) {
	st := v.ToStruct()
	if st == nil {
		return EditEntry{}, errors.Wrap(element.ErrInvalidInput,
			"entry must be a struct")
	}
	a, err := st.Get("action")
	if err != nil {
		return EditEntry{}, err
	}
	if !a.Kind().IsText() || a.IsNull() {
		return EditEntry{}, errors.Wrap(element.ErrInvalidInput,
			"action must be a symbol")
	}
	action, err := ParseEditAction(a.AsText())
	if err != nil {
		return EditEntry{}, err
	}
	p, err := st.Get("path")
	if err != nil {
		return EditEntry{}, err
	}
	if !p.Kind().IsText() || p.IsNull() {
		return EditEntry{}, errors.Wrap(element.ErrInvalidInput,
			"path must be a string")
	}
	path, err := ParsePath(p.AsText())
	if err != nil {
		return EditEntry{}, err
	}
	value, _ := st.Find("value")
	if value == nil && action != EditDelete {
		return EditEntry{}, errors.Wrapf(element.ErrMissingField,
			"%s requires a value", action)
	}
	return EditEntry{Action: action, Path: path, Value: value}, nil
}

type editEntryOptions struct {
	value element.Element
}

// EditEntryOption is a constructor for the optional parts of an EditEntry.
type EditEntryOption func(*editEntryOptions)

// EditEntryValue produces an EditEntryOption that populates the value
// field of an EditEntry.
func EditEntryValue(val interface{}) EditEntryOption {
	return func(o *editEntryOptions) {
		o.value = element.ValueNew(val)
	}
}

// EditEntryNew constructs a new EditEntry from the provided parameters.
// The last option in wins if they write the same option.
func EditEntryNew(action EditAction, path string, options ...EditEntryOption) EditEntry {
	var opts editEntryOptions
	for _, option := range options {
		option(&opts)
	}
	return EditEntry{
		Action: action,
		Path:   PathNew(path),
		Value:  opts.value,
	}
}
