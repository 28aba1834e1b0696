// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsonrw_test

import (
	"bytes"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/creachadair/jsonrw"
	"github.com/creachadair/jsonrw/internal/testutil"
	gojson "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
)

func encodeValue(t *testing.T, v any) []byte {
	t.Helper()
	var buf bytes.Buffer
	e := jsonrw.NewEncoder(&buf)
	testutil.Encode(e, v)
	if err := e.Finish(); err != nil {
		t.Fatalf("Encode %v: %v", v, err)
	}
	return buf.Bytes()
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := range 500 {
		want := testutil.RandomValue(rng, 4)
		data := encodeValue(t, want)

		dec := jsonrw.NewDecoder(bytes.NewReader(data))
		got, err := testutil.Decode(dec)
		if err == nil {
			err = dec.End()
		}
		if err != nil {
			t.Fatalf("Case %d: decode %s: %v", i, data, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Case %d: decode %s (-want, +got):\n%s", i, data, diff)
		}

		// Check the encoding against an independent decoder.
		var ref any
		if err := gojson.Unmarshal(data, &ref); err != nil {
			t.Fatalf("Case %d: reference decode %s: %v", i, data, err)
		}
		if diff := cmp.Diff(want, ref); diff != "" {
			t.Errorf("Case %d: reference decode %s (-want, +got):\n%s", i, data, diff)
		}
	}
}

func TestRoundTripOpaque(t *testing.T) {
	// Strings are treated as bytes, and need not be valid UTF-8.
	var all []byte
	for b := range 256 {
		all = append(all, byte(b))
	}
	want := map[string]any{
		string(all): []any{string(all), "\xff", "é"},
	}
	data := encodeValue(t, want)
	got, err := decodeAll(string(data))
	if err != nil {
		t.Fatalf("Decode %q: %v", data, err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode (-want, +got):\n%s", diff)
	}
}

func TestTranscode(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{`  null `, `null`},
		{`[ 1, 2.5 ,-3e-9, "x\ty" ]`, `[1,2.5,-3e-9,"x\ty"]`},
		{`{ "a" : [ 1 , {} , [ ] ] ,
		    "b" : { "c" : null , "d" : true }
		  }`, `{"a":[1,{},[]],"b":{"c":null,"d":true}}`},
		{`"\/\q"`, `"/q"`},
	}
	for _, tc := range tests {
		var sb strings.Builder
		e := jsonrw.NewEncoder(&sb)
		dec := jsonrw.NewDecoder(strings.NewReader(tc.input))
		if err := jsonrw.Transcode(e, dec); err != nil {
			t.Errorf("Transcode %#q: unexpected error: %v", tc.input, err)
			continue
		}
		if err := dec.End(); err != nil {
			t.Errorf("End %#q: unexpected error: %v", tc.input, err)
		}
		if err := e.Finish(); err != nil {
			t.Errorf("Finish %#q: unexpected error: %v", tc.input, err)
		}
		if got := sb.String(); got != tc.want {
			t.Errorf("Transcode %#q: got %#q, want %#q", tc.input, got, tc.want)
		}
	}
}
