// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
//
// Strings are treated as opaque 8-bit bytes. Only the seven short escapes
// (\" \\ \b \f \n \r \t) are produced or decoded; any other byte following a
// backslash decodes to itself, so \u0041 decodes to "u0041" and \/ to "/".
package escape

import "go4.org/mem"

// escapeStr holds the escape sequences indexed by escapeLUT[b]-1.
var escapeStr = [...]string{`\"`, `\\`, `\b`, `\f`, `\n`, `\r`, `\t`}

// escapeLUT maps each byte to 0 if it is written verbatim, or to one plus the
// index of its escape sequence in escapeStr.
var escapeLUT = [256]uint8{
	'"':  1,
	'\\': 2,
	'\b': 3,
	'\f': 4,
	'\n': 5,
	'\r': 6,
	'\t': 7,
}

// decodeLUT maps the byte after a backslash to its decoded value.
// Zero entries decode to themselves.
var decodeLUT = [256]byte{
	'"':  '"',
	'\\': '\\',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
}

// Decode returns the byte denoted by the escape sequence `\c`.
func Decode(c byte) byte {
	if d := decodeLUT[c]; d != 0 {
		return d
	}
	return c
}

// IsRawControl reports whether c is a control byte that must not appear
// unescaped inside a string literal.
func IsRawControl(c byte) bool { return c != '"' && c != '\\' && escapeLUT[c] != 0 }

// NeedsEscape reports whether c must be escaped when quoted.
func NeedsEscape(c byte) bool { return escapeLUT[c] != 0 }

// Append appends the escaped form of src to dst and returns the result.
// The enclosing quotation marks are not added.
func Append(dst []byte, src mem.RO) []byte {
	for src.Len() != 0 {
		i := 0
		for i < src.Len() && escapeLUT[src.At(i)] == 0 {
			i++
		}
		dst = mem.Append(dst, src.SliceTo(i))
		if i == src.Len() {
			break
		}
		dst = append(dst, escapeStr[escapeLUT[src.At(i)]-1]...)
		src = src.SliceFrom(i + 1)
	}
	return dst
}

// Unquote decodes the escape sequences in src, which must have the enclosing
// double quotation marks already removed. A backslash at the very end of the
// input is kept as written.
func Unquote(src mem.RO) []byte {
	dec := make([]byte, 0, src.Len())
	for {
		i := mem.IndexByte(src, '\\')
		if i < 0 || i+1 == src.Len() {
			// Blit the rest of the input and go home.
			return mem.Append(dec, src)
		}
		dec = mem.Append(dec, src.SliceTo(i))
		dec = append(dec, Decode(src.At(i+1)))
		src = src.SliceFrom(i + 2)
	}
}
