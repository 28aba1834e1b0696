// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsonrw

import (
	"slices"

	"github.com/creachadair/jsonrw/internal/escape"
)

// StringStatus reports the progress of AppendString.
type StringStatus byte

const (
	// StringDone means the closing quotation mark was consumed, or the
	// decoder failed.
	StringDone StringStatus = iota

	// NeedsMoreSpace means the buffer is full. The caller must grow the buffer
	// and call AppendString again to continue decoding.
	NeedsMoreSpace
)

func (s StringStatus) String() string {
	if s == NeedsMoreSpace {
		return "needs more space"
	}
	return "done"
}

// BeginString consumes the opening quotation mark of a string, and reports
// whether it was found. Use AppendString to decode the contents.
func (d *Decoder) BeginString() bool {
	if !d.openString() {
		return false
	}
	d.inString = true
	return true
}

// AppendString decodes the contents of the current string into the unused
// capacity of buf, and returns the extended slice. It never reallocates buf.
//
// If buf fills before the end of the string, AppendString returns
// NeedsMoreSpace; the caller should grow the buffer and call AppendString
// again, and decoding resumes where it left off:
//
//	buf := make([]byte, 0, 32)
//	dec.BeginString()
//	for {
//	   var st jsonrw.StringStatus
//	   buf, st = dec.AppendString(buf)
//	   if st == jsonrw.StringDone {
//	      break
//	   }
//	   buf = slices.Grow(buf, cap(buf))
//	}
//
// Escape sequences are decoded: \" \\ \b \f \n \r \t denote their usual bytes,
// and a backslash followed by any other byte denotes that byte. Unicode
// escapes are not decoded, so \u0041 yields "u0041". A literal backspace,
// form feed, newline, carriage return or tab in the string is an error.
//
// AppendString must follow a successful call to BeginString.
func (d *Decoder) AppendString(buf []byte) ([]byte, StringStatus) {
	if d.err != nil {
		return buf, StringDone
	} else if !d.inString {
		d.failf(Rejected, "AppendString called outside a string")
		return buf, StringDone
	}
	buf, st := d.appendRaw(buf)
	if st == StringDone {
		d.inString = false
		if d.err == nil {
			d.comma()
		}
	}
	return buf, st
}

// ReadString consumes a string and returns its decoded value.
//
// The length of the result is bounded by the string budget (see
// SetMaxString). The remainder of a longer string is checked for validity and
// discarded, and the truncation is reported by Truncated.
func (d *Decoder) ReadString() string {
	if !d.openString() {
		return ""
	}
	if cap(d.sbuf) < d.maxStr {
		d.sbuf = make([]byte, 0, d.maxStr)
	}
	buf, st := d.appendRaw(d.sbuf[:0:d.maxStr])
	if st == NeedsMoreSpace {
		d.discardString()
		if d.err == nil && d.trunc == nil {
			d.trunc = d.newError(StringTruncated, nil, "string longer than %d bytes was truncated", d.maxStr)
		}
	}
	if d.err != nil {
		return ""
	}
	d.comma()
	return string(buf)
}

// ReadStringBytes consumes a string and appends its decoded value to buf,
// growing it as needed. There is no limit on the length of the string.
func (d *Decoder) ReadStringBytes(buf []byte) []byte {
	if !d.BeginString() {
		return buf
	}
	for {
		var st StringStatus
		buf, st = d.AppendString(buf)
		if st == StringDone {
			return buf
		}
		buf = slices.Grow(buf, len(buf)+16)
	}
}

// openString consumes the opening quotation mark of a string.
func (d *Decoder) openString() bool {
	if d.err != nil {
		return false
	}
	d.cur.skipSpace()
	if !d.cur.at('"') {
		d.unexpected("string")
		return false
	}
	d.cur.advance()
	return true
}

// appendAll decodes the rest of the current string onto buf.
func (d *Decoder) appendAll(buf []byte) []byte {
	for {
		var st StringStatus
		buf, st = d.appendRaw(buf)
		if st == StringDone {
			return buf
		}
		buf = slices.Grow(buf, len(buf)+16)
	}
}

// discardString checks and discards the rest of the current string.
func (d *Decoder) discardString() {
	var tmp [64]byte
	for {
		if _, st := d.appendRaw(tmp[:0]); st == StringDone {
			return
		}
	}
}

// appendRaw decodes string contents into the unused capacity of buf, up to
// and including the closing quotation mark. It does not consume a comma.
func (d *Decoder) appendRaw(buf []byte) ([]byte, StringStatus) {
	c := &d.cur
	for {
		c.ensure()
		switch {
		case c.eof:
			d.failEnd(`'"'`)
			return buf, StringDone
		case c.ch == '"':
			c.advance()
			return buf, StringDone
		case escape.IsRawControl(c.ch):
			d.failf(UnescapedControlCharacter, "unescaped %q in string", c.ch)
			return buf, StringDone
		case len(buf) == cap(buf):
			return buf, NeedsMoreSpace
		}

		if c.ch == '\\' {
			c.advance()
			c.ensure()
			if c.eof {
				d.failEnd("escape sequence")
				return buf, StringDone
			} else if escape.IsRawControl(c.ch) {
				d.failf(UnescapedControlCharacter, "unescaped %q in string", c.ch)
				return buf, StringDone
			}
			buf = append(buf, escape.Decode(c.ch))
		} else {
			buf = append(buf, c.ch)
		}
		c.advance()
	}
}
