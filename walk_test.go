// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonrw_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/creachadair/jsonrw"
	"github.com/google/go-cmp/cmp"
)

// testHandler records the events it receives.
type testHandler struct {
	events []string
	stopAt string // if non-empty, fail on this key
}

var errStop = errors.New("stop")

func (h *testHandler) push(s string, args ...any) error {
	h.events = append(h.events, fmt.Sprintf(s, args...))
	return nil
}

func (h *testHandler) BeginTable() error { return h.push("{") }
func (h *testHandler) EndTable() error   { return h.push("}") }
func (h *testHandler) BeginArray() error { return h.push("[") }
func (h *testHandler) EndArray() error   { return h.push("]") }

func (h *testHandler) Key(name string) error {
	if name == h.stopAt {
		return errStop
	}
	return h.push("key %q", name)
}

func (h *testHandler) String(s string) error  { return h.push("string %q", s) }
func (h *testHandler) Number(v float64) error { return h.push("number %v", v) }
func (h *testHandler) Bool(v bool) error      { return h.push("bool %v", v) }
func (h *testHandler) Null() error            { return h.push("null") }

func TestWalk(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{`null`, []string{"null"}},
		{`"a\nb"`, []string{`string "a\nb"`}},
		{`-1.5`, []string{"number -1.5"}},
		{`[]`, []string{"[", "]"}},
		{`{}`, []string{"{", "}"}},
		{`{"a": [true, false, {"b": null}], "c": 3}`, []string{
			"{",
			`key "a"`, "[", "bool true", "bool false",
			"{", `key "b"`, "null", "}",
			"]",
			`key "c"`, "number 3",
			"}",
		}},
	}
	for _, tc := range tests {
		var h testHandler
		dec := jsonrw.NewDecoder(strings.NewReader(tc.input))
		if err := jsonrw.Walk(dec, &h); err != nil {
			t.Errorf("Walk %#q: unexpected error: %v", tc.input, err)
		}
		if err := dec.End(); err != nil {
			t.Errorf("End %#q: unexpected error: %v", tc.input, err)
		}
		if diff := cmp.Diff(tc.want, h.events); diff != "" {
			t.Errorf("Walk %#q: events (-want, +got):\n%s", tc.input, diff)
		}
	}
}

func TestWalkErrors(t *testing.T) {
	t.Run("Handler", func(t *testing.T) {
		h := &testHandler{stopAt: "stop"}
		dec := jsonrw.NewDecoder(strings.NewReader(`{"go": 1, "stop": 2, "never": 3}`))
		if err := jsonrw.Walk(dec, h); !errors.Is(err, errStop) {
			t.Errorf("Walk: got error %v, want %v", err, errStop)
		}
		if err := dec.Err(); err != nil {
			t.Errorf("Decoder: unexpected error: %v", err)
		}
		if diff := cmp.Diff([]string{"{", `key "go"`, "number 1"}, h.events); diff != "" {
			t.Errorf("Events (-want, +got):\n%s", diff)
		}
	})

	t.Run("Decoder", func(t *testing.T) {
		var h testHandler
		dec := jsonrw.NewDecoder(strings.NewReader(`[1, [2, 3,]]`))
		err := jsonrw.Walk(dec, &h)
		if !errors.Is(err, jsonrw.DanglingSeparator) {
			t.Errorf("Walk: got error %v, want %v", err, jsonrw.DanglingSeparator)
		}
		if diff := cmp.Diff([]string{"[", "number 1", "[", "number 2", "number 3"}, h.events); diff != "" {
			t.Errorf("Events (-want, +got):\n%s", diff)
		}
	})
}
