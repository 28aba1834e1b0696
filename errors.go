// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsonrw

import (
	"fmt"
	"io"
	"strings"
)

// ErrorKind classifies the failures reported by a Decoder. An ErrorKind is
// itself an error, so the kind of a *SyntaxError can be checked with
// errors.Is:
//
//	if errors.Is(dec.Err(), jsonrw.UnexpectedEnd) { ... }
type ErrorKind byte

// Constants defining the valid ErrorKind values.
const (
	UnexpectedToken           ErrorKind = iota + 1 // wrong literal or punctuation
	UnexpectedEnd                                  // input ended inside a value
	MissingSeparator                               // elements not separated by a comma
	DanglingSeparator                              // comma before a closing bracket
	MalformedNumber                                // invalid number token
	UnescapedControlCharacter                      // raw control byte in a string
	StringTruncated                                // string exceeded the ReadString budget
	StreamPositionError                            // position query or seek failed
	ReadError                                      // the source reported an I/O error
	Rejected                                       // reported by the caller via Failf
)

var kindStr = [...]string{
	0:                         "unknown error",
	UnexpectedToken:           "unexpected token",
	UnexpectedEnd:             "unexpected end of input",
	MissingSeparator:          "missing separator",
	DanglingSeparator:         "dangling separator",
	MalformedNumber:           "malformed number",
	UnescapedControlCharacter: "unescaped control character",
	StringTruncated:           "string truncated",
	StreamPositionError:       "stream position error",
	ReadError:                 "read error",
	Rejected:                  "rejected",
}

func (k ErrorKind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[0]
	}
	return kindStr[k]
}

// Error satisfies the error interface.
func (k ErrorKind) Error() string { return k.String() }

// SyntaxError is the concrete type of errors reported by a Decoder.
type SyntaxError struct {
	Kind     ErrorKind
	Location LineCol // where the failure was detected
	Message  string

	// Context is an excerpt of the source line containing the failure, or ""
	// if the source could not be rewound to read it. Caret is the offset in
	// Context of the failing byte.
	Context string
	Caret   int

	err error
}

// Error satisfies the error interface. The message has the form
//
//	3:10: error: missing comma before '"'
//	  3 |   "x": 1 "y": 2
//	               ^
//
// The excerpt lines are omitted when Context is empty.
func (e *SyntaxError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: error: %s", e.Location, e.Message)
	if e.Context != "" {
		prefix := fmt.Sprintf("  %d | ", e.Location.Line)
		sb.WriteString("\n" + prefix + e.Context + "\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+e.Caret) + "^")
	}
	return sb.String()
}

// Is reports whether target is the ErrorKind of e.
func (e *SyntaxError) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}

// Unwrap supports error wrapping.
func (e *SyntaxError) Unwrap() error { return e.err }

const (
	contextBefore = 40 // bytes of context shown before the failing column
	contextMax    = 80 // total bytes of context shown
)

func (d *Decoder) newError(kind ErrorKind, err error, msg string, args ...any) *SyntaxError {
	e := &SyntaxError{
		Kind:     kind,
		Location: d.Location(),
		Message:  fmt.Sprintf(msg, args...),
		err:      err,
	}
	e.Context, e.Caret = d.context()
	return e
}

// context rewinds the source to the start of the current line (or at most
// contextBefore bytes before the cursor), reads an excerpt, and restores the
// source position. It returns "" if the source cannot be repositioned.
func (d *Decoder) context() (string, int) {
	c := &d.cur
	pos, err := c.src.Seek(0, io.SeekCurrent)
	if err != nil {
		return "", 0
	}
	onLine := int64(c.col) // bytes of the current line already read
	if c.eof {
		onLine--
	}
	lineStart := pos - onLine
	fail := lineStart + int64(max(c.col-1, 0))
	start := max(lineStart, fail-contextBefore)
	if _, err := c.src.Seek(start, io.SeekStart); err != nil {
		return "", 0
	}
	defer c.src.Seek(pos, io.SeekStart)

	var buf [contextMax]byte
	n := 0
	for n < len(buf) {
		b, err := c.src.ReadByte()
		if err != nil || b == '\n' {
			break
		} else if b < ' ' {
			b = ' ' // keep the caret aligned
		}
		buf[n] = b
		n++
	}
	return string(buf[:n]), int(fail - start)
}

// setErr records e as the failure of d, unless d has already failed.
func (d *Decoder) setErr(e *SyntaxError) {
	if d.err == nil {
		d.err = e
	}
}

func (d *Decoder) fail(kind ErrorKind, err error, msg string, args ...any) {
	if d.err == nil {
		d.setErr(d.newError(kind, err, msg, args...))
	}
}

func (d *Decoder) failf(kind ErrorKind, msg string, args ...any) { d.fail(kind, nil, msg, args...) }

// failEnd reports that the input ended where want was expected. If the end
// was caused by a read error, that error is reported instead.
func (d *Decoder) failEnd(want string) {
	if err := d.cur.rerr; err != nil {
		d.fail(ReadError, err, "read failed: %v", err)
	} else {
		d.failf(UnexpectedEnd, "unexpected end of input, want %s", want)
	}
}

// unexpected reports that the byte under the cursor is not want.
func (d *Decoder) unexpected(want string) {
	if d.cur.eof {
		d.failEnd(want)
	} else {
		d.failf(UnexpectedToken, "got %q, want %s", d.cur.ch, want)
	}
}
