// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsonrw_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/creachadair/jsonrw"
	"github.com/google/go-cmp/cmp"
)

func TestIterMembers(t *testing.T) {
	dec := jsonrw.NewDecoder(strings.NewReader(`{"a": 1, "b": [true, false], "c": "x"}`))
	it := dec.Members()
	if got := it.State(); got != jsonrw.IterPending {
		t.Errorf("State: got %v, want %v", got, jsonrw.IterPending)
	}
	if got := it.Index(); got != -1 {
		t.Errorf("Index: got %d, want -1", got)
	}

	var got []string
	for it.Next() {
		if it.State() != jsonrw.IterActive {
			t.Errorf("State: got %v, want %v", it.State(), jsonrw.IterActive)
		}
		got = append(got, it.Key())
		if it.Key() == "b" {
			var elts []bool
			for elt := dec.Elements(); elt.Next(); {
				elts = append(elts, dec.ReadBool())
			}
			if diff := cmp.Diff([]bool{true, false}, elts); diff != "" {
				t.Errorf("Elements (-want, +got):\n%s", diff)
			}
		} else {
			dec.SkipValue()
		}
	}
	if err := dec.End(); err != nil {
		t.Fatalf("End: unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Errorf("Keys (-want, +got):\n%s", diff)
	}
	if got := it.State(); got != jsonrw.IterClosed {
		t.Errorf("State: got %v, want %v", got, jsonrw.IterClosed)
	}
	if got := it.Index(); got != 2 {
		t.Errorf("Index: got %d, want 2", got)
	}

	// A closed iterator stays closed.
	if it.Next() {
		t.Error("Next after close: got true, want false")
	}
}

func TestIterErrors(t *testing.T) {
	tests := []struct {
		input string
		table bool
		want  error
	}{
		{`[1, 2,]`, false, jsonrw.DanglingSeparator},
		{`[1 2]`, false, jsonrw.MissingSeparator},
		{`{"a": 1 "b": 2}`, true, jsonrw.MissingSeparator},
		{`{"a": 1,}`, true, jsonrw.DanglingSeparator},
		{`{"a" 1}`, true, jsonrw.UnexpectedToken},
		{`{"a": 1}`, false, jsonrw.UnexpectedToken},
		{`[`, false, jsonrw.UnexpectedEnd},
	}
	for _, tc := range tests {
		dec := jsonrw.NewDecoder(strings.NewReader(tc.input))
		it := dec.Elements()
		if tc.table {
			it = dec.Members()
		}
		for it.Next() {
			dec.SkipValue()
		}
		if it.State() != jsonrw.IterClosed {
			t.Errorf("Input %#q: state %v, want %v", tc.input, it.State(), jsonrw.IterClosed)
		}
		if err := dec.Err(); !errors.Is(err, tc.want) {
			t.Errorf("Input %#q: got error %v, want %v", tc.input, err, tc.want)
		}
	}
}

func TestKeysItems(t *testing.T) {
	dec := jsonrw.NewDecoder(strings.NewReader(`{"id": 7, "skip": {"x": [1]}, "tags": ["a", "b", "c"]}`))
	var id int64
	var tags []string
	var idx []int
	for key := range dec.Keys() {
		switch key {
		case "id":
			id = dec.ReadInt()
		case "tags":
			for i := range dec.Items() {
				idx = append(idx, i)
				tags = append(tags, dec.ReadString())
			}
		default:
			dec.SkipValue()
		}
	}
	if err := dec.End(); err != nil {
		t.Fatalf("End: unexpected error: %v", err)
	}
	if id != 7 {
		t.Errorf("id: got %d, want 7", id)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, tags); diff != "" {
		t.Errorf("Tags (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1, 2}, idx); diff != "" {
		t.Errorf("Indexes (-want, +got):\n%s", diff)
	}
}

func TestKeysEarlyExit(t *testing.T) {
	dec := jsonrw.NewDecoder(strings.NewReader(`{"first": 1, "second": 2}`))
	for key := range dec.Keys() {
		if key != "first" {
			t.Errorf("Key: got %q, want first", key)
		}
		break
	}

	// The value of the member where the loop stopped is still pending.
	if got := dec.ReadNumber(); got != 1 {
		t.Errorf("ReadNumber: got %v, want 1", got)
	}
	if !dec.TableHasNext() {
		t.Fatalf("TableHasNext: got false, want true: %v", dec.Err())
	}
	if got := dec.ReadKey(); got != "second" {
		t.Errorf("ReadKey: got %q, want second", got)
	}
	dec.SkipValue()
	if dec.TableHasNext() {
		t.Error("TableHasNext: got true, want false")
	}
	if err := dec.End(); err != nil {
		t.Errorf("End: unexpected error: %v", err)
	}
}
