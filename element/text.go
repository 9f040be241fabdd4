// Copyright (c) 2024, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package element

import (
	"bytes"
	"encoding/base64"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

const hexDigits = "0123456789abcdef"

var keywords = map[string]struct{}{
	"null":  {},
	"true":  {},
	"false": {},
	"nan":   {},
}

func toString(e Element) string {
	if e == nil {
		return "<nil>"
	}
	var buf bytes.Buffer
	writeText(&buf, e)
	return buf.String()
}

// writeText writes the Ion text of e. Containers are written in their
// stored order without whitespace.
func writeText(buf *bytes.Buffer, e Element) {
	for _, a := range e.Annotations() {
		writeSymbol(buf, a)
		buf.WriteString("::")
	}
	if e.IsNull() {
		buf.WriteString("null")
		if e.Kind() != KindNull {
			buf.WriteByte('.')
			buf.WriteString(e.Kind().String())
		}
		return
	}
	switch e.Kind() {
	case KindBool:
		buf.WriteString(strconv.FormatBool(e.AsBool()))
	case KindInt:
		buf.WriteString(e.AsBigInt().String())
	case KindFloat:
		writeFloat(buf, e.AsFloat())
	case KindDecimal:
		e.AsDecimal().writeText(buf)
	case KindTimestamp:
		e.AsTimestamp().writeText(buf)
	case KindString:
		writeQuoted(buf, e.AsString(), '"')
	case KindSymbol:
		writeSymbol(buf, e.AsSymbol())
	case KindBlob:
		buf.WriteString("{{")
		buf.WriteString(base64.StdEncoding.EncodeToString(e.AsBlob()))
		buf.WriteString("}}")
	case KindClob:
		buf.WriteString("{{")
		writeClob(buf, e.AsClob())
		buf.WriteString("}}")
	case KindList:
		buf.WriteByte('[')
		e.AsSeq().Range(func(i int, v Element) {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeText(buf, v)
		})
		buf.WriteByte(']')
	case KindSexp:
		buf.WriteByte('(')
		e.AsSeq().Range(func(i int, v Element) {
			if i > 0 {
				buf.WriteByte(' ')
			}
			writeText(buf, v)
		})
		buf.WriteByte(')')
	case KindStruct:
		buf.WriteByte('{')
		first := true
		e.AsStruct().Range(func(name string, v Element) {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			writeSymbol(buf, name)
			buf.WriteByte(':')
			writeText(buf, v)
		})
		buf.WriteByte('}')
	}
}

// writeFloat writes floats as <mantissa>e<exponent>, 1.5 is 1.5e0.
func writeFloat(buf *bytes.Buffer, f float64) {
	switch {
	case math.IsNaN(f):
		buf.WriteString("nan")
		return
	case math.IsInf(f, 1):
		buf.WriteString("+inf")
		return
	case math.IsInf(f, -1):
		buf.WriteString("-inf")
		return
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	n, _ := strconv.Atoi(exp)
	buf.WriteString(mant)
	buf.WriteByte('e')
	buf.WriteString(strconv.Itoa(n))
}

func symbolText(s string) string {
	var buf bytes.Buffer
	writeSymbol(&buf, s)
	return buf.String()
}

func writeSymbol(buf *bytes.Buffer, s string) {
	if isIdentifier(s) {
		buf.WriteString(s)
		return
	}
	writeQuoted(buf, s, '\'')
}

// isIdentifier reports whether s can be written without quotes. Keywords
// and $<digits> symbol ids must be quoted.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	if _, ok := keywords[s]; ok {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_' || c == '$':
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	if s[0] == '$' && len(s) > 1 {
		if _, err := strconv.ParseUint(s[1:], 10, 64); err == nil {
			return false
		}
	}
	return true
}

// writeQuoted escapes bytes that are not valid UTF-8 as \xNN. StringNew
// and SymbolNew reject such text, so it only reaches here from a wrapped
// node, a field name or an annotation, and does not read back as the
// same bytes.
func writeQuoted(buf *bytes.Buffer, s string, quote byte) {
	buf.WriteByte(quote)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			writeHexEscape(buf, s[i])
			i++
			continue
		}
		switch {
		case r == rune(quote) || r == '\\':
			buf.WriteByte('\\')
			buf.WriteRune(r)
		case r < ' ' || r == 0x7f:
			writeControl(buf, byte(r))
		default:
			buf.WriteString(s[i : i+size])
		}
		i += size
	}
	buf.WriteByte(quote)
}

func writeClob(buf *bytes.Buffer, b []byte) {
	buf.WriteByte('"')
	for _, c := range b {
		switch {
		case c == '"' || c == '\\':
			buf.WriteByte('\\')
			buf.WriteByte(c)
		case c < ' ' || c >= 0x7f:
			writeControl(buf, c)
		default:
			buf.WriteByte(c)
		}
	}
	buf.WriteByte('"')
}

func writeControl(buf *bytes.Buffer, c byte) {
	switch c {
	case '\n':
		buf.WriteString(`\n`)
	case '\t':
		buf.WriteString(`\t`)
	case '\r':
		buf.WriteString(`\r`)
	case 0:
		buf.WriteString(`\0`)
	default:
		writeHexEscape(buf, c)
	}
}

func writeHexEscape(buf *bytes.Buffer, c byte) {
	buf.WriteString(`\x`)
	buf.WriteByte(hexDigits[c>>4])
	buf.WriteByte(hexDigits[c&0xf])
}
