// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsonrw

import (
	"errors"
	"io"
	"math"
	"strconv"

	"go4.org/mem"
)

// Kind is the type of a JSON value, as reported by PeekKind.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid Kind = iota // not the start of a value
	String              // quoted string
	Number              // number
	Table               // object: { ... }
	Array               // array: [ ... ]
	Bool                // constant: true or false
	Null                // constant: null
)

var kindNames = [...]string{
	Invalid: "invalid",
	String:  "string",
	Number:  "number",
	Table:   "table",
	Array:   "array",
	Bool:    "bool",
	Null:    "null",
}

func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return kindNames[Invalid]
	}
	return kindNames[k]
}

// DefaultMaxString is the default budget for strings decoded by ReadString.
const DefaultMaxString = 8 << 10

// A Decoder reads JSON values from a Source. The caller drives decoding by
// calling methods that match the expected shape of the input.
//
// The first failure is recorded and reported by Err. Once a Decoder has
// failed, all further operations do nothing and return zero values, so a
// caller may decode a complete structure and check Err once at the end.
type Decoder struct {
	cur      cursor
	err      *SyntaxError
	trunc    *SyntaxError // first string truncation by ReadString
	maxStr   int
	inString bool // between BeginString and the end of the string

	kbuf []byte // current key
	sbuf []byte // bounded strings
	nbuf []byte // current number
}

// NewDecoder constructs a new Decoder that consumes input from r.
// See NewSource for how r is adapted.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{cur: newCursor(NewSource(r)), maxStr: DefaultMaxString}
}

// Reset discards the state of d, including any error, and resumes decoding
// from r. Scratch buffers and the string budget are retained.
func (d *Decoder) Reset(r io.Reader) {
	*d = Decoder{
		cur:    newCursor(NewSource(r)),
		maxStr: d.maxStr,
		kbuf:   d.kbuf[:0],
		sbuf:   d.sbuf[:0],
		nbuf:   d.nbuf[:0],
	}
}

// SetMaxString sets the maximum length in bytes of a string returned by
// ReadString. If n <= 0, DefaultMaxString is used.
func (d *Decoder) SetMaxString(n int) {
	if n <= 0 {
		n = DefaultMaxString
	}
	d.maxStr = n
}

// Err returns the error that caused d to fail, or nil.
// A non-nil error has concrete type *SyntaxError.
func (d *Decoder) Err() error {
	if d.err == nil {
		return nil
	}
	return d.err
}

// Failed reports whether d has failed.
func (d *Decoder) Failed() bool { return d.err != nil }

// Truncated reports the first string truncated by ReadString, or nil.
// Truncation does not cause d to fail.
func (d *Decoder) Truncated() error {
	if d.trunc == nil {
		return nil
	}
	return d.trunc
}

// Location reports the line and column of the byte under the cursor.
func (d *Decoder) Location() LineCol { return LineCol{Line: d.cur.line, Column: d.cur.col} }

// Failf causes d to fail with an error of kind Rejected at the current
// location. Callers use this to report input that is well-formed but not
// acceptable, such as a duplicate or missing key. If d has already failed,
// Failf has no effect.
func (d *Decoder) Failf(msg string, args ...any) { d.failf(Rejected, msg, args...) }

// End reports whether the input was fully consumed. It fails if anything
// but whitespace follows the last value, or if the last value was followed
// by a comma. It returns the error from Err.
func (d *Decoder) End() error {
	if d.err != nil {
		return d.err
	}
	if d.cur.sep == sepComma {
		d.failf(DanglingSeparator, "trailing comma after value")
		return d.err
	}
	d.cur.skipSpace()
	if !d.cur.eof {
		d.failf(UnexpectedToken, "got %q after value, want end of input", d.cur.ch)
	} else if err := d.cur.rerr; err != nil {
		d.fail(ReadError, err, "read failed: %v", err)
	}
	return d.Err()
}

// BeginTable consumes the opening brace of a table, and reports whether it
// was found. Use TableHasNext to iterate over the members.
func (d *Decoder) BeginTable() bool { return d.begin('{') }

// BeginArray consumes the opening bracket of an array, and reports whether
// it was found. Use ArrayHasNext to iterate over the elements.
func (d *Decoder) BeginArray() bool { return d.begin('[') }

func (d *Decoder) begin(open byte) bool {
	if d.err != nil {
		return false
	}
	d.cur.skipSpace()
	if !d.cur.at(open) {
		d.unexpected(strconv.QuoteRune(rune(open)))
		return false
	}
	d.cur.advance()
	d.cur.sep = sepOpen
	return true
}

// TableHasNext reports whether another member follows in the current table.
// When it reports true, the caller must consume a key and its value. When the
// closing brace is reached, it is consumed and TableHasNext reports false.
//
//	for dec.BeginTable(); dec.TableHasNext(); {
//	   if dec.MatchKey("id") {
//	      id = dec.ReadInt()
//	   } else {
//	      dec.SkipMember()
//	   }
//	}
//
// Members must be separated by exactly one comma: a missing comma or a comma
// before the closing brace causes d to fail.
func (d *Decoder) TableHasNext() bool { return d.hasNext('}', ']') }

// ArrayHasNext reports whether another element follows in the current array.
// When it reports true, the caller must consume one value. It is otherwise
// analogous to TableHasNext.
func (d *Decoder) ArrayHasNext() bool { return d.hasNext(']', '}') }

func (d *Decoder) hasNext(close, other byte) bool {
	if d.err != nil {
		return false
	}
	c := &d.cur
	c.skipSpace()
	switch {
	case c.eof:
		d.failEnd(strconv.QuoteRune(rune(close)))
		return false

	case c.ch == close:
		if c.sep == sepComma {
			d.failf(DanglingSeparator, "comma before %q", close)
			return false
		}
		c.advance()
		d.comma() // separating this container from its successor, if any
		return false

	case c.ch == other:
		d.failf(UnexpectedToken, "got %q, want %q", other, close)
		return false

	case c.sep == sepNone:
		d.failf(MissingSeparator, "missing comma before %q", c.ch)
		return false
	}
	c.sep = sepNone
	return true
}

// comma consumes an optional comma following a value, and records whether
// it was present.
func (d *Decoder) comma() {
	d.cur.skipSpace()
	if d.cur.at(',') {
		d.cur.advance()
		d.cur.sep = sepComma
	} else {
		d.cur.sep = sepNone
	}
}

// ReadKey consumes a table key and its colon, and returns the decoded key.
func (d *Decoder) ReadKey() string {
	if !d.readKey(true) {
		return ""
	}
	return string(d.kbuf)
}

// SkipKey consumes a table key and its colon.
func (d *Decoder) SkipKey() { d.readKey(false) }

// SkipMember consumes a table key and skips the value that follows it.
func (d *Decoder) SkipMember() {
	if d.readKey(false) {
		d.SkipValue()
	}
}

// MatchKey reports whether the key under the cursor is equal to name. If so,
// the key and its colon are consumed and the caller must read the value.
// Otherwise the cursor is restored to the start of the key, so that it may be
// matched again.
//
// Restoring the cursor requires a source that can seek. If it cannot, d fails
// with StreamPositionError; use ReadKey to decode such sources.
func (d *Decoder) MatchKey(name string) bool {
	if d.err != nil {
		return false
	}
	snap, err := d.cur.snapshot()
	if err != nil {
		d.fail(StreamPositionError, err, "cannot record position: %v", err)
		return false
	}
	if !d.readKey(true) {
		return false
	} else if mem.B(d.kbuf).Equal(mem.S(name)) {
		return true
	}
	if err := d.cur.restore(snap); err != nil {
		d.fail(StreamPositionError, err, "cannot restore position: %v", err)
	}
	return false
}

// readKey consumes a key and its colon. If keep is true, the decoded key is
// stored in d.kbuf.
func (d *Decoder) readKey(keep bool) bool {
	if !d.openString() {
		return false
	}
	if keep {
		d.kbuf = d.appendAll(d.kbuf[:0])
	} else {
		d.discardString()
	}
	if d.err != nil {
		return false
	}
	d.cur.skipSpace()
	if !d.cur.at(':') {
		d.unexpected(`":"`)
		return false
	}
	d.cur.advance()
	return true
}

// PeekKind reports the kind of the value under the cursor, without consuming
// it. The kind is determined by the first byte of the value alone. PeekKind
// reports Invalid at the end of the input, or if d has failed.
func (d *Decoder) PeekKind() Kind {
	if d.err != nil {
		return Invalid
	}
	c := &d.cur
	c.skipSpace()
	if c.eof {
		return Invalid
	}
	switch ch := c.ch; {
	case ch == '"':
		return String
	case isNumStart(ch):
		return Number
	case ch == '{':
		return Table
	case ch == '[':
		return Array
	case ch == 't' || ch == 'f':
		return Bool
	case ch == 'n':
		return Null
	}
	return Invalid
}

// ReadNumber consumes a number and returns its value.
func (d *Decoder) ReadNumber() float64 {
	text := d.scanNumber()
	if text == nil {
		return 0
	}
	v, err := strconv.ParseFloat(string(text), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		d.failf(MalformedNumber, "invalid number %q", text)
		return 0
	}
	d.comma()
	return v
}

// ReadInt consumes a number and returns its value as an integer. The number
// must have an integral value that fits in an int64.
func (d *Decoder) ReadInt() int64 {
	text := d.scanNumber()
	if text == nil {
		return 0
	}
	v, err := strconv.ParseInt(string(text), 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(string(text), 64)
		if ferr != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			d.failf(MalformedNumber, "invalid integer %q", text)
			return 0
		}
		v = int64(f)
	}
	d.comma()
	return v
}

// scanNumber consumes the text of a number token and returns it, or returns
// nil if d has failed. The returned slice is valid until the next call.
//
// The bytes after the first are read straight from the source, and the byte
// that ends the token is pushed back so the cursor can fetch it lazily.
func (d *Decoder) scanNumber() []byte {
	if d.err != nil {
		return nil
	}
	c := &d.cur
	c.skipSpace()
	if c.eof {
		d.failEnd("number")
		return nil
	} else if !isNumStart(c.ch) {
		d.failf(MalformedNumber, "got %q, want number", c.ch)
		return nil
	}
	d.nbuf = append(d.nbuf[:0], c.ch)
	for {
		b, err := c.src.ReadByte()
		if err == io.EOF {
			break
		} else if err != nil {
			d.fail(ReadError, err, "read failed: %v", err)
			return nil
		} else if !isNumByte(b) {
			if err := c.src.UnreadByte(); err != nil {
				d.fail(StreamPositionError, err, "cannot push back %q: %v", b, err)
				return nil
			}
			break
		}
		d.nbuf = append(d.nbuf, b)
	}
	c.ch = d.nbuf[len(d.nbuf)-1]
	c.col += len(d.nbuf) - 1
	c.pending = true
	return d.nbuf
}

// ReadBool consumes a Boolean constant and returns its value.
func (d *Decoder) ReadBool() bool {
	if d.err != nil {
		return false
	}
	d.cur.skipSpace()
	switch {
	case d.cur.at('t'):
		return d.literal("true")
	case d.cur.at('f'):
		d.literal("false")
	default:
		d.unexpected("true or false")
	}
	return false
}

// ReadNull consumes a null constant, and reports whether it was found.
func (d *Decoder) ReadNull() bool {
	if d.err != nil {
		return false
	}
	d.cur.skipSpace()
	if !d.cur.at('n') {
		d.unexpected("null")
		return false
	}
	return d.literal("null")
}

// literal consumes the bytes of word, which begins under the cursor.
func (d *Decoder) literal(word string) bool {
	c := &d.cur
	for i := 0; i < len(word); i++ {
		c.ensure()
		if c.eof {
			d.failEnd(strconv.Quote(word))
			return false
		} else if c.ch != word[i] {
			d.failf(UnexpectedToken, "got %q, want %q in %s", c.ch, word[i], word)
			return false
		}
		c.advance()
	}
	d.comma()
	return true
}

// SkipValue consumes the value under the cursor, whatever its kind. Tables
// and arrays are skipped recursively.
func (d *Decoder) SkipValue() {
	switch d.PeekKind() {
	case String:
		if d.openString() {
			d.discardString()
			if d.err == nil {
				d.comma()
			}
		}
	case Number:
		d.ReadNumber()
	case Bool:
		d.ReadBool()
	case Null:
		d.ReadNull()
	case Table:
		for d.BeginTable(); d.TableHasNext(); {
			d.SkipMember()
		}
	case Array:
		for d.BeginArray(); d.ArrayHasNext(); {
			d.SkipValue()
		}
	default:
		if d.err == nil {
			d.unexpected("value")
		}
	}
}
