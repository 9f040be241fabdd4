// Copyright (c) 2024, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package element

import (
	"bytes"
	"math/big"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// maxPlainZeros bounds the leading zeros written before switching a
// negative exponent to d notation.
const maxPlainZeros = 6

// Decimal is an arbitrary precision decimal that remembers its precision
// and sign of zero. 1.0 and 1.00 have the same value but are different
// Decimals, as are 0. and -0.
type Decimal struct {
	d       decimal.Decimal
	negZero bool
}

// DecimalFrom returns a Decimal with the coefficient and exponent of d.
func DecimalFrom(d decimal.Decimal) Decimal {
	return Decimal{d: d}
}

// DecimalOf returns coefficient*10^exponent.
func DecimalOf(coefficient int64, exponent int32) Decimal {
	return Decimal{d: decimal.New(coefficient, exponent)}
}

// NegativeZero returns -0 with the supplied exponent.
func NegativeZero(exponent int32) Decimal {
	return Decimal{d: decimal.New(0, exponent), negZero: true}
}

// ParseDecimal parses the Ion text of a decimal, 1.50, -0., 1d3 and 1e3
// are all accepted.
func ParseDecimal(s string) (Decimal, error) {
	text := strings.Map(func(r rune) rune {
		switch r {
		case 'd', 'D':
			return 'e'
		case '_':
			return -1
		}
		return r
	}, s)
	d, err := decimal.NewFromString(text)
	if err != nil {
		return Decimal{}, errors.Wrapf(ErrInvalidInput,
			"decimal %q: %s", s, err)
	}
	return Decimal{
		d:       d,
		negZero: d.IsZero() && strings.HasPrefix(text, "-"),
	}, nil
}

// MustParseDecimal is ParseDecimal that panics on malformed input.
func MustParseDecimal(s string) Decimal {
	d, err := ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Decimal returns the value as a shopspring decimal. The sign of a
// negative zero is lost.
func (d Decimal) Decimal() decimal.Decimal {
	return d.d
}

// Coefficient returns a copy of the unscaled value.
func (d Decimal) Coefficient() *big.Int {
	return d.d.Coefficient()
}

// Exponent returns the power of ten the coefficient is scaled by.
func (d Decimal) Exponent() int32 {
	return d.d.Exponent()
}

// IsNegativeZero reports whether the decimal is -0.
func (d Decimal) IsNegativeZero() bool {
	return d.negZero
}

// Sign returns -1, 0 or 1. Negative zero has sign 0.
func (d Decimal) Sign() int {
	return d.d.Sign()
}

// Equal compares coefficient, exponent and the sign of zero.
func (d Decimal) Equal(other interface{}) bool {
	od, ok := other.(Decimal)
	return ok &&
		d.negZero == od.negZero &&
		d.d.Exponent() == od.d.Exponent() &&
		d.d.Coefficient().Cmp(od.d.Coefficient()) == 0
}

// EqualValue compares the numeric values only, 1.0 is 1.00 and -0. is 0.
func (d Decimal) EqualValue(other Decimal) bool {
	return d.d.Equal(other.d)
}

// normalize strips trailing zeros from the coefficient so that equal
// values have identical coefficient and exponent.
func (d Decimal) normalize() (*big.Int, int32) {
	coef, exp := d.d.Coefficient(), d.d.Exponent()
	if coef.Sign() == 0 {
		return coef, 0
	}
	ten := big.NewInt(10)
	var q, r big.Int
	for {
		q.QuoRem(coef, ten, &r)
		if r.Sign() != 0 {
			break
		}
		coef.Set(&q)
		exp++
	}
	return coef, exp
}

// String returns the Ion text of the decimal.
func (d Decimal) String() string {
	var buf bytes.Buffer
	d.writeText(&buf)
	return buf.String()
}

func (d Decimal) writeText(buf *bytes.Buffer) {
	coef := d.d.Coefficient()
	exp := int(d.d.Exponent())
	if coef.Sign() < 0 || d.negZero {
		buf.WriteByte('-')
	}
	digits := new(big.Int).Abs(coef).String()
	switch {
	case exp == 0:
		buf.WriteString(digits)
		buf.WriteByte('.')
	case exp > 0:
		buf.WriteString(digits)
		buf.WriteByte('d')
		buf.WriteString(strconv.Itoa(exp))
	default:
		point := len(digits) + exp
		switch {
		case point > 0:
			buf.WriteString(digits[:point])
			buf.WriteByte('.')
			buf.WriteString(digits[point:])
		case -point <= maxPlainZeros:
			buf.WriteString("0.")
			buf.WriteString(strings.Repeat("0", -point))
			buf.WriteString(digits)
		default:
			buf.WriteString(digits)
			buf.WriteString("d-")
			buf.WriteString(strconv.Itoa(-exp))
		}
	}
}
