// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonrw

// A Handler handles events from walking a value with Walk. If a method
// reports an error, the walk stops and that error is returned to the caller.
// Walk ensures tables and arrays are correctly balanced.
type Handler interface {
	// Begin a new table.
	BeginTable() error

	// End the most-recently-opened table.
	EndTable() error

	// Begin a new array.
	BeginArray() error

	// End the most-recently-opened array.
	EndArray() error

	// Report the decoded key of a table member. The value follows.
	Key(name string) error

	// Report a decoded string value.
	String(s string) error

	// Report a number value.
	Number(v float64) error

	// Report a Boolean value.
	Bool(v bool) error

	// Report a null value.
	Null() error
}

// Walk decodes one value from d and delivers events to h reflecting its
// structure. If a Handler method reports an error, decoding stops and that
// error is returned. If decoding fails, Walk returns the error from d.Err.
//
// Strings are decoded without a length limit.
func Walk(d *Decoder, h Handler) error {
	w := walker{d: d, h: h}
	w.walkValue()
	if w.err != nil {
		return w.err
	}
	return d.Err()
}

// Transcode copies one value from d to e. If decoding fails, the output
// written to e is incomplete and its tables and arrays are left open.
func Transcode(e *Encoder, d *Decoder) error {
	if err := Walk(d, encodeHandler{e}); err != nil {
		return err
	}
	return e.Err()
}

type walker struct {
	d   *Decoder
	h   Handler
	buf []byte
	err error // from h
}

func (w *walker) check(err error) bool {
	if err != nil && w.err == nil {
		w.err = err
	}
	return w.err == nil
}

func (w *walker) walkValue() {
	d := w.d
	switch d.PeekKind() {
	case String:
		w.buf = d.ReadStringBytes(w.buf[:0])
		if !d.Failed() {
			w.check(w.h.String(string(w.buf)))
		}
	case Number:
		if v := d.ReadNumber(); !d.Failed() {
			w.check(w.h.Number(v))
		}
	case Bool:
		if v := d.ReadBool(); !d.Failed() {
			w.check(w.h.Bool(v))
		}
	case Null:
		if d.ReadNull() {
			w.check(w.h.Null())
		}
	case Table:
		if !d.BeginTable() || !w.check(w.h.BeginTable()) {
			return
		}
		for d.TableHasNext() {
			key := d.ReadKey()
			if d.Failed() || !w.check(w.h.Key(key)) {
				return
			}
			if w.walkValue(); w.err != nil {
				return
			}
		}
		if !d.Failed() {
			w.check(w.h.EndTable())
		}
	case Array:
		if !d.BeginArray() || !w.check(w.h.BeginArray()) {
			return
		}
		for d.ArrayHasNext() {
			if w.walkValue(); w.err != nil {
				return
			}
		}
		if !d.Failed() {
			w.check(w.h.EndArray())
		}
	default:
		d.SkipValue() // reports the error
	}
}

// encodeHandler implements Handler by writing to an Encoder.
type encodeHandler struct{ e *Encoder }

func (h encodeHandler) BeginTable() error      { h.e.BeginTable(); return h.e.Err() }
func (h encodeHandler) EndTable() error        { h.e.EndTable(); return h.e.Err() }
func (h encodeHandler) BeginArray() error      { h.e.BeginArray(); return h.e.Err() }
func (h encodeHandler) EndArray() error        { h.e.EndArray(); return h.e.Err() }
func (h encodeHandler) Key(name string) error  { h.e.WriteKey(name); return h.e.Err() }
func (h encodeHandler) String(s string) error  { h.e.WriteString(s); return h.e.Err() }
func (h encodeHandler) Number(v float64) error { h.e.WriteFloat(v); return h.e.Err() }
func (h encodeHandler) Bool(v bool) error      { h.e.WriteBool(v); return h.e.Err() }
func (h encodeHandler) Null() error            { h.e.WriteNull(); return h.e.Err() }
