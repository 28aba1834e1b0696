// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsonrw

import "io"

// sepState records the most recent punctuation inside a table or array body.
type sepState byte

const (
	sepOpen  sepState = iota // container just opened; an element or close may follow
	sepComma                 // a comma was consumed; an element must follow
	sepNone                  // an element was consumed with no comma after it
)

// A cursor is a one-byte lookahead over a Source.
//
// The byte under the cursor is fetched lazily: advance only marks it consumed,
// and the next call to ensure reads its successor. This lets each grammar rule
// peek at the current byte without a separate push-back step.
type cursor struct {
	src     Source
	ch      byte // the current byte, if !eof
	eof     bool // the current byte is the end of input
	pending bool // ch has been consumed and must be refreshed

	line, col int // of ch; both 1-based
	sep       sepState
	rerr      error // a non-EOF read error, reported as end of input
}

func newCursor(src Source) cursor { return cursor{src: src, pending: true, line: 1, sep: sepNone} }

// ensure fetches the byte under the cursor, if it is owed.
func (c *cursor) ensure() {
	if !c.pending {
		return
	}
	c.pending = false
	if c.ch == '\n' && !c.eof {
		c.line++
		c.col = 0
	}
	c.col++
	b, err := c.src.ReadByte()
	if err != nil {
		c.ch, c.eof = 0, true
		if err != io.EOF && c.rerr == nil {
			c.rerr = err
		}
		return
	}
	c.ch, c.eof = b, false
}

// advance marks the current byte consumed.
func (c *cursor) advance() { c.pending = true }

// at reports whether the byte under the cursor is b.
func (c *cursor) at(b byte) bool {
	c.ensure()
	return !c.eof && c.ch == b
}

// skipSpace consumes whitespace up to the next significant byte.
func (c *cursor) skipSpace() {
	for {
		c.ensure()
		if c.eof || !isSpace(c.ch) {
			return
		}
		c.advance()
	}
}

// A snapshot records the state of a cursor, including the position of the
// underlying source, so that it can be restored later.
type snapshot struct {
	ch           byte
	eof, pending bool
	line, col    int
	sep          sepState
	pos          int64
}

func (c *cursor) snapshot() (snapshot, error) {
	pos, err := c.src.Seek(0, io.SeekCurrent)
	return snapshot{
		ch: c.ch, eof: c.eof, pending: c.pending,
		line: c.line, col: c.col, sep: c.sep, pos: pos,
	}, err
}

// restore repositions the source and resets c to the state recorded by s.
// If the source cannot seek, c is not modified.
func (c *cursor) restore(s snapshot) error {
	if _, err := c.src.Seek(s.pos, io.SeekStart); err != nil {
		return err
	}
	c.ch, c.eof, c.pending = s.ch, s.eof, s.pending
	c.line, c.col, c.sep = s.line, s.col, s.sep
	return nil
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isDigit(ch byte) bool { return '0' <= ch && ch <= '9' }

// isNumStart reports whether ch begins a number.
func isNumStart(ch byte) bool { return isDigit(ch) || ch == '-' || ch == '+' || ch == '.' }

// isNumByte reports whether ch may occur in a number.
func isNumByte(ch byte) bool { return isNumStart(ch) || ch == 'e' || ch == 'E' }
