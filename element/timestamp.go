// Copyright (c) 2024, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package element

import (
	"bytes"
	"fmt"
	"strconv"
	"time"
)

// TimestampPrecision is the granularity a Timestamp was written with.
type TimestampPrecision uint8

const (
	PrecisionYear TimestampPrecision = iota
	PrecisionMonth
	PrecisionDay
	PrecisionMinute
	PrecisionSecond
	PrecisionFraction
)

func (p TimestampPrecision) String() string {
	switch p {
	case PrecisionYear:
		return "year"
	case PrecisionMonth:
		return "month"
	case PrecisionDay:
		return "day"
	case PrecisionMinute:
		return "minute"
	case PrecisionSecond:
		return "second"
	case PrecisionFraction:
		return "fraction"
	default:
		return "invalid"
	}
}

// Timestamp is a point in time together with the precision it is known
// to and whether its local offset is known. Date precision timestamps
// never have a known offset.
type Timestamp struct {
	t              time.Time
	precision      TimestampPrecision
	fractionDigits uint8
	offsetKnown    bool
}

type timestampOpts struct {
	fractionDigits int
	unknownOffset  bool
}

// TimestampOption is an option to TimestampOf.
type TimestampOption func(*timestampOpts)

// FractionDigits sets the number of fractional second digits, 1 to 9,
// kept by a PrecisionFraction timestamp. The default is 9.
func FractionDigits(n int) TimestampOption {
	return func(o *timestampOpts) {
		o.fractionDigits = n
	}
}

// UnknownOffset marks the local offset of the timestamp as unknown, it
// is written as -00:00 and the time is interpreted as UTC.
func UnknownOffset() TimestampOption {
	return func(o *timestampOpts) {
		o.unknownOffset = true
	}
}

// TimestampOf returns t truncated to the supplied precision.
func TimestampOf(t time.Time, precision TimestampPrecision, options ...TimestampOption) Timestamp {
	opts := timestampOpts{fractionDigits: 9}
	for _, opt := range options {
		opt(&opts)
	}
	if precision > PrecisionFraction {
		panic(invalidInput("TimestampOf", "precision",
			"unknown precision %d", precision))
	}
	if opts.fractionDigits < 1 || opts.fractionDigits > 9 {
		panic(invalidInput("TimestampOf", "FractionDigits",
			"%d is outside 1..9", opts.fractionDigits))
	}
	ts := Timestamp{
		precision:   precision,
		offsetKnown: precision >= PrecisionMinute && !opts.unknownOffset,
	}
	if !ts.offsetKnown {
		t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(),
			t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	}
	loc := t.Location()
	switch precision {
	case PrecisionYear:
		t = time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, loc)
	case PrecisionMonth:
		t = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	case PrecisionDay:
		t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	case PrecisionMinute:
		t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(),
			t.Minute(), 0, 0, loc)
	case PrecisionSecond:
		t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(),
			t.Minute(), t.Second(), 0, loc)
	case PrecisionFraction:
		ts.fractionDigits = uint8(opts.fractionDigits)
		unit := 1
		for i := opts.fractionDigits; i < 9; i++ {
			unit *= 10
		}
		ns := t.Nanosecond() / unit * unit
		t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(),
			t.Minute(), t.Second(), ns, loc)
	}
	ts.t = t
	return ts
}

// Time returns the instant the timestamp represents.
func (ts Timestamp) Time() time.Time {
	return ts.t
}

// Precision returns the precision of the timestamp.
func (ts Timestamp) Precision() TimestampPrecision {
	return ts.precision
}

// FractionDigits returns the number of fractional second digits or 0
// for timestamps coarser than PrecisionFraction.
func (ts Timestamp) FractionDigits() int {
	return int(ts.fractionDigits)
}

// OffsetKnown reports whether the local offset is known.
func (ts Timestamp) OffsetKnown() bool {
	return ts.offsetKnown
}

// Offset returns the local offset in minutes, 0 when unknown.
func (ts Timestamp) Offset() int {
	if !ts.offsetKnown {
		return 0
	}
	_, secs := ts.t.Zone()
	return secs / 60
}

// Equal implements Ion timestamp equivalence: the same instant, the
// same precision and the same offset.
func (ts Timestamp) Equal(other interface{}) bool {
	ot, ok := other.(Timestamp)
	return ok &&
		ts.precision == ot.precision &&
		ts.fractionDigits == ot.fractionDigits &&
		ts.offsetKnown == ot.offsetKnown &&
		ts.Offset() == ot.Offset() &&
		ts.t.Equal(ot.t)
}

// String returns the Ion text of the timestamp.
func (ts Timestamp) String() string {
	var buf bytes.Buffer
	ts.writeText(&buf)
	return buf.String()
}

func (ts Timestamp) writeText(buf *bytes.Buffer) {
	t := ts.t
	fmt.Fprintf(buf, "%04d", t.Year())
	if ts.precision == PrecisionYear {
		buf.WriteByte('T')
		return
	}
	fmt.Fprintf(buf, "-%02d", int(t.Month()))
	if ts.precision == PrecisionMonth {
		buf.WriteByte('T')
		return
	}
	fmt.Fprintf(buf, "-%02d", t.Day())
	if ts.precision == PrecisionDay {
		return
	}
	fmt.Fprintf(buf, "T%02d:%02d", t.Hour(), t.Minute())
	if ts.precision >= PrecisionSecond {
		fmt.Fprintf(buf, ":%02d", t.Second())
	}
	if ts.precision == PrecisionFraction {
		frac := fmt.Sprintf("%09d", t.Nanosecond())
		buf.WriteByte('.')
		buf.WriteString(frac[:ts.fractionDigits])
	}
	ts.writeOffset(buf)
}

func (ts Timestamp) writeOffset(buf *bytes.Buffer) {
	if !ts.offsetKnown {
		buf.WriteString("-00:00")
		return
	}
	off := ts.Offset()
	if off == 0 {
		buf.WriteByte('Z')
		return
	}
	if off < 0 {
		buf.WriteByte('-')
		off = -off
	} else {
		buf.WriteByte('+')
	}
	buf.WriteString(pad2(off / 60))
	buf.WriteByte(':')
	buf.WriteString(pad2(off % 60))
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
