// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsonrw

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/creachadair/jsonrw/internal/escape"
	"go4.org/mem"
)

// An Encoder writes compact JSON to an io.Writer. The caller emits the
// structure of the output by calling methods in document order; the encoder
// inserts the commas between members and elements.
//
// Each token is delivered to the writer with a single Write call. The first
// write error is recorded and reported by Err, and subsequent output is
// discarded.
//
// Calls to BeginTable and BeginArray must be balanced by corresponding calls
// to EndTable and EndArray. An unmatched end is a bug in the caller, and
// causes a panic.
type Encoder struct {
	w   io.Writer
	buf []byte
	err error

	tables, arrays int  // open nesting depth
	comma          bool // a comma must precede the next token
}

// NewEncoder constructs a new Encoder that writes output to w.
func NewEncoder(w io.Writer) *Encoder { return &Encoder{w: w} }

// Err returns the first error reported while writing, or nil.
func (e *Encoder) Err() error { return e.err }

// Depth reports the number of tables and arrays currently open.
func (e *Encoder) Depth() (tables, arrays int) { return e.tables, e.arrays }

// Finish checks that all tables and arrays have been closed, and returns the
// error from Err. It panics if any table or array is still open.
func (e *Encoder) Finish() error {
	if e.tables != 0 || e.arrays != 0 {
		panic(fmt.Sprintf("jsonrw: unclosed tables (%d) or arrays (%d)", e.tables, e.arrays))
	}
	return e.err
}

// start returns a scratch buffer for the next token, beginning with a comma
// if one is pending.
func (e *Encoder) start() []byte {
	b := e.buf[:0]
	if e.comma {
		b = append(b, ',')
		e.comma = false
	}
	return b
}

// emit writes the token in b and retains b for reuse.
func (e *Encoder) emit(b []byte) {
	e.buf = b
	if e.err != nil {
		return
	}
	if _, err := e.w.Write(b); err != nil {
		e.err = err
	}
}

// value emits a value token and schedules a comma after it.
func (e *Encoder) value(b []byte) {
	e.emit(b)
	e.comma = true
}

// BeginTable writes the opening brace of a table.
func (e *Encoder) BeginTable() {
	e.tables++
	e.emit(append(e.start(), '{'))
}

// EndTable writes the closing brace of a table.
// It panics if no table is open.
func (e *Encoder) EndTable() {
	if e.tables <= 0 {
		panic("jsonrw: EndTable without a matching BeginTable")
	}
	e.tables--
	e.comma = false
	e.value(append(e.buf[:0], '}'))
}

// BeginArray writes the opening bracket of an array.
func (e *Encoder) BeginArray() {
	e.arrays++
	e.emit(append(e.start(), '['))
}

// EndArray writes the closing bracket of an array.
// It panics if no array is open.
func (e *Encoder) EndArray() {
	if e.arrays <= 0 {
		panic("jsonrw: EndArray without a matching BeginArray")
	}
	e.arrays--
	e.comma = false
	e.value(append(e.buf[:0], ']'))
}

// WriteKey writes the key of a table member. The value must follow.
func (e *Encoder) WriteKey(name string) {
	b := appendQuoted(e.start(), name)
	e.emit(append(b, ':'))
}

// WriteString writes a string value. Quotation marks, backslashes, and the
// control bytes \b \f \n \r \t are escaped; other bytes are written verbatim.
func (e *Encoder) WriteString(s string) { e.value(appendQuoted(e.start(), s)) }

// WriteInt writes an integer value.
func (e *Encoder) WriteInt(v int64) { e.value(strconv.AppendInt(e.start(), v, 10)) }

// WriteUint writes an unsigned integer value.
func (e *Encoder) WriteUint(v uint64) { e.value(strconv.AppendUint(e.start(), v, 10)) }

// WriteFloat writes a floating-point value, using the shortest representation
// that decodes to the same value.
//
// JSON cannot represent NaN or infinite values. For these, WriteFloat writes
// null and records an error, reported by Err.
func (e *Encoder) WriteFloat(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		if e.err == nil {
			e.err = fmt.Errorf("unsupported number value %v", v)
		}
		e.value(append(e.start(), "null"...))
		return
	}
	e.value(appendFloat(e.start(), v))
}

// WriteBool writes a Boolean value.
func (e *Encoder) WriteBool(v bool) { e.value(strconv.AppendBool(e.start(), v)) }

// WriteNull writes a null value.
func (e *Encoder) WriteNull() { e.value(append(e.start(), "null"...)) }

// WriteKeyString writes a table member with a string value.
func (e *Encoder) WriteKeyString(key, val string) { e.WriteKey(key); e.WriteString(val) }

// WriteKeyInt writes a table member with an integer value.
func (e *Encoder) WriteKeyInt(key string, val int64) { e.WriteKey(key); e.WriteInt(val) }

// WriteKeyUint writes a table member with an unsigned integer value.
func (e *Encoder) WriteKeyUint(key string, val uint64) { e.WriteKey(key); e.WriteUint(val) }

// WriteKeyFloat writes a table member with a floating-point value.
func (e *Encoder) WriteKeyFloat(key string, val float64) { e.WriteKey(key); e.WriteFloat(val) }

// WriteKeyBool writes a table member with a Boolean value.
func (e *Encoder) WriteKeyBool(key string, val bool) { e.WriteKey(key); e.WriteBool(val) }

// WriteKeyNull writes a table member with a null value.
func (e *Encoder) WriteKeyNull(key string) { e.WriteKey(key); e.WriteNull() }

func appendQuoted(b []byte, s string) []byte {
	b = append(b, '"')
	b = escape.Append(b, mem.S(s))
	return append(b, '"')
}

// appendFloat appends the shortest decimal representation of v, using
// exponent notation only for very small or very large magnitudes.
func appendFloat(b []byte, v float64) []byte {
	abs := math.Abs(v)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	b = strconv.AppendFloat(b, v, format, -1, 64)
	if format == 'e' {
		// Clean up e-09 to e-9.
		n := len(b)
		if n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	return b
}
