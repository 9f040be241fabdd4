// Copyright (c) 2024, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package element

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrTypeMismatch is the cause of every error raised by an accessor
	// called on an Element of the wrong kind.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrInvalidInput is the cause of errors raised for absent nodes and
	// malformed updates.
	ErrInvalidInput = errors.New("invalid input")
	// ErrMissingField is returned by Get when a required field is absent.
	ErrMissingField = errors.New("missing field")
)

// TypeMismatchError reports an accessor invoked on an Element of a kind
// it does not support. Accessors panic with a *TypeMismatchError.
type TypeMismatchError struct {
	Op       string
	Expected []Kind
	Actual   Kind
	Null     bool
}

func (e *TypeMismatchError) Error() string {
	expected := make([]string, len(e.Expected))
	for i, k := range e.Expected {
		expected[i] = k.String()
	}
	actual := e.Actual.String()
	if e.Null {
		actual = "null." + actual
	}
	return fmt.Sprintf("%s: %s: expected %s, got %s",
		e.Op, ErrTypeMismatch, strings.Join(expected, " or "), actual)
}

// Unwrap allows errors.Is(err, ErrTypeMismatch).
func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

func typeMismatch(op string, e Element, expected ...Kind) *TypeMismatchError {
	return &TypeMismatchError{
		Op:       op,
		Expected: expected,
		Actual:   e.Kind(),
		Null:     e.IsNull(),
	}
}

// InvalidInputError reports an argument that an operation cannot accept.
type InvalidInputError struct {
	Op     string
	Arg    string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s %s: %s", e.Op, ErrInvalidInput, e.Arg, e.Reason)
}

// Unwrap allows errors.Is(err, ErrInvalidInput).
func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

func invalidInput(op, arg, format string, args ...interface{}) *InvalidInputError {
	return &InvalidInputError{
		Op:     op,
		Arg:    arg,
		Reason: fmt.Sprintf(format, args...),
	}
}

func missingField(name string) error {
	return errors.Wrapf(ErrMissingField, "required struct field %q", name)
}
