// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsonrw

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// A Source is a byte stream consumed by a Decoder. ReadByte reports io.EOF
// at the end of the stream. UnreadByte pushes back the most recently read
// byte. Seek(0, io.SeekCurrent) reports the absolute position of the next
// byte to be read, and Seek(pos, io.SeekStart) repositions the stream.
//
// The *bytes.Reader and *strings.Reader types implement Source.
type Source interface {
	io.ByteScanner
	io.Seeker
}

// NewSource returns a Source that reads from r. If r already implements
// Source it is returned unmodified. Otherwise r is buffered, and the result
// supports absolute seeks only if r implements io.Seeker.
func NewSource(r io.Reader) Source {
	if src, ok := r.(Source); ok {
		return src
	}
	src := &readerSource{r: r, br: bufio.NewReader(r)}
	if sk, ok := r.(io.Seeker); ok {
		if pos, err := sk.Seek(0, io.SeekCurrent); err == nil {
			src.off = pos
		}
	}
	return src
}

// errNoSeek is reported by a readerSource whose reader cannot seek.
var errNoSeek = errors.New("source does not support seeking")

// readerSource adapts an io.Reader to the Source interface.
type readerSource struct {
	r   io.Reader
	br  *bufio.Reader
	off int64 // absolute offset of the next unread byte
}

func (s *readerSource) ReadByte() (byte, error) {
	b, err := s.br.ReadByte()
	if err == nil {
		s.off++
	}
	return b, err
}

func (s *readerSource) UnreadByte() error {
	err := s.br.UnreadByte()
	if err == nil {
		s.off--
	}
	return err
}

func (s *readerSource) Seek(offset int64, whence int) (int64, error) {
	if offset == 0 && whence == io.SeekCurrent {
		return s.off, nil
	}
	sk, ok := s.r.(io.Seeker)
	if !ok {
		return s.off, errNoSeek
	}
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset += s.off
	default:
		return s.off, fmt.Errorf("unsupported seek whence %d", whence)
	}
	pos, err := sk.Seek(offset, io.SeekStart)
	if err != nil {
		return s.off, err
	}
	s.br.Reset(s.r)
	s.off = pos
	return pos, nil
}
