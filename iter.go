// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsonrw

import "iter"

// IterState is the state of an Iter.
type IterState byte

// Constants defining the valid IterState values.
const (
	IterPending IterState = iota // the container has not been opened
	IterActive                   // the container is open
	IterClosed                   // the container was closed, or decoding failed
)

func (s IterState) String() string {
	switch s {
	case IterPending:
		return "pending"
	case IterActive:
		return "active"
	default:
		return "closed"
	}
}

// An Iter traverses the members of a table or the elements of an array.
// Each call to Next advances to the next member or element, which the caller
// must then consume. An Iter cannot be restarted.
//
//	it := dec.Members()
//	for it.Next() {
//	   switch it.Key() {
//	   case "name":
//	      name = dec.ReadString()
//	   default:
//	      dec.SkipValue()
//	   }
//	}
//	if err := dec.Err(); err != nil {
//	   log.Fatalf("Decode failed: %v", err)
//	}
type Iter struct {
	d     *Decoder
	table bool
	state IterState
	index int
	key   string
}

// Members returns an iterator over the members of the table under the
// cursor. For each member, the iterator consumes the key and leaves the value
// to be consumed by the caller.
func (d *Decoder) Members() *Iter { return &Iter{d: d, table: true, index: -1} }

// Elements returns an iterator over the elements of the array under the
// cursor.
func (d *Decoder) Elements() *Iter { return &Iter{d: d, index: -1} }

// Next advances it to the next member or element, and reports whether there
// is one. The first call opens the container.
func (it *Iter) Next() bool {
	d := it.d
	switch it.state {
	case IterClosed:
		return false
	case IterPending:
		it.state = IterActive
		if !d.begin(it.opener()) {
			it.state = IterClosed
			return false
		}
	}
	var ok bool
	if it.table {
		ok = d.TableHasNext() && d.readKey(true)
	} else {
		ok = d.ArrayHasNext()
	}
	if !ok {
		it.state, it.key = IterClosed, ""
		return false
	}
	it.index++
	if it.table {
		it.key = string(d.kbuf)
	}
	return true
}

func (it *Iter) opener() byte {
	if it.table {
		return '{'
	}
	return '['
}

// Key returns the key of the current table member, or "" for an array.
func (it *Iter) Key() string { return it.key }

// Index returns the 0-based offset of the current member or element, or -1
// before the first call to Next.
func (it *Iter) Index() int { return it.index }

// State reports the state of it.
func (it *Iter) State() IterState { return it.state }

// Keys returns a sequence of the keys of the table under the cursor. The body
// of the loop must consume the value of each member:
//
//	for key := range dec.Keys() {
//	   if key == "id" {
//	      id = dec.ReadInt()
//	   } else {
//	      dec.SkipValue()
//	   }
//	}
//
// If the loop exits early, the rest of the table is not consumed.
func (d *Decoder) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		it := d.Members()
		for it.Next() {
			if !yield(it.Key()) {
				return
			}
		}
	}
}

// Items returns a sequence of the offsets of the elements of the array under
// the cursor. The body of the loop must consume each element.
func (d *Decoder) Items() iter.Seq[int] {
	return func(yield func(int) bool) {
		it := d.Elements()
		for it.Next() {
			if !yield(it.Index()) {
				return
			}
		}
	}
}
