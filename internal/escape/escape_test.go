// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape_test

import (
	"testing"

	"github.com/creachadair/jsonrw/internal/escape"
	"go4.org/mem"
)

func TestAppend(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", ""},
		{"plain text", "plain text"},
		{"a\t\nb", `a\t\nb`},
		{`say "hi"`, `say \"hi\"`},
		{`back\slash`, `back\\slash`},
		{"\b\f\n\r\t", `\b\f\n\r\t`},
		{"\x00\x01\x7f\xff", "\x00\x01\x7f\xff"}, // only the short escapes are used
		{"end\n", `end\n`},
		{"\"", `\"`},
	}
	for _, tc := range tests {
		got := string(escape.Append(nil, mem.S(tc.input)))
		if got != tc.want {
			t.Errorf("Append(%q): got %#q, want %#q", tc.input, got, tc.want)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{``, ""},
		{`ok go`, "ok go"},
		{`abc\ndef`, "abc\ndef"},
		{`\b\f\n\r\t`, "\b\f\n\r\t"},
		{`a\"b`, `a"b`},
		{`a\\b\\cd`, `a\b\cd`},

		// Unknown escapes decode to the escaped byte.
		{`\/`, "/"},
		{`\u0041`, "u0041"},
		{`\q\z`, "qz"},

		// A lone trailing backslash is kept.
		{`abc\`, `abc\`},
	}
	for _, tc := range tests {
		got := string(escape.Unquote(mem.S(tc.input)))
		if got != tc.want {
			t.Errorf("Unquote(%#q): got %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestTables(t *testing.T) {
	// Every byte that Append escapes must decode back to itself.
	for i := 0; i < 256; i++ {
		c := byte(i)
		enc := escape.Append(nil, mem.B([]byte{c}))
		if !escape.NeedsEscape(c) {
			if len(enc) != 1 || enc[0] != c {
				t.Errorf("Byte %#02x: got %q, want verbatim", c, enc)
			}
			continue
		}
		if len(enc) != 2 || enc[0] != '\\' {
			t.Errorf("Byte %#02x: got %q, want a two-byte escape", c, enc)
			continue
		}
		if got := escape.Decode(enc[1]); got != c {
			t.Errorf("Decode(%q): got %#02x, want %#02x", enc[1], got, c)
		}
	}

	for _, c := range []byte("\b\f\n\r\t") {
		if !escape.IsRawControl(c) {
			t.Errorf("IsRawControl(%q): got false, want true", c)
		}
	}
	for _, c := range []byte("\"\\ aZ\x00\x1f") {
		if escape.IsRawControl(c) {
			t.Errorf("IsRawControl(%q): got true, want false", c)
		}
	}
}
