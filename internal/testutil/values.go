// Package testutil defines support code for unit tests.
//
// Values are represented as trees of map[string]any, []any, string, float64,
// bool, and nil, the same shapes produced by encoding/json.
package testutil

import (
	"fmt"
	"maps"
	"math/rand/v2"
	"slices"

	"github.com/creachadair/jsonrw"
)

// Decode decodes a single value from d.
func Decode(d *jsonrw.Decoder) (any, error) {
	var h treeHandler
	if err := jsonrw.Walk(d, &h); err != nil {
		return nil, err
	}
	return h.root, nil
}

// Encode writes v to e. The members of a map are written in order by key.
// Encode panics if v contains a value of an unsupported type.
func Encode(e *jsonrw.Encoder, v any) {
	switch t := v.(type) {
	case nil:
		e.WriteNull()
	case bool:
		e.WriteBool(t)
	case float64:
		e.WriteFloat(t)
	case int:
		e.WriteInt(int64(t))
	case string:
		e.WriteString(t)
	case []any:
		e.BeginArray()
		for _, elt := range t {
			Encode(e, elt)
		}
		e.EndArray()
	case map[string]any:
		e.BeginTable()
		for _, key := range slices.Sorted(maps.Keys(t)) {
			e.WriteKey(key)
			Encode(e, t[key])
		}
		e.EndTable()
	default:
		panic(fmt.Sprintf("unsupported value type %T", v))
	}
}

// stringBytes are the bytes used for random strings: printable ASCII and
// the control bytes that have short escapes.
const stringBytes = "\b\f\n\r\t\"\\ !#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[]^_`abcdefghijklmnopqrstuvwxyz{|}~"

// RandomValue returns a random value with containers nested at most depth
// levels deep.
func RandomValue(r *rand.Rand, depth int) any {
	n := 6
	if depth > 0 {
		n += 2
	}
	switch r.IntN(n) {
	case 0:
		return nil
	case 1:
		return r.IntN(2) == 1
	case 2:
		return float64(r.IntN(2000) - 1000)
	case 3:
		return r.NormFloat64() * 1e6
	case 4:
		return r.Float64() / 1e9
	case 5:
		return RandomString(r, r.IntN(24))
	case 6:
		a := make([]any, r.IntN(5))
		for i := range a {
			a[i] = RandomValue(r, depth-1)
		}
		return a
	default:
		m := make(map[string]any)
		for range r.IntN(5) {
			m[RandomString(r, 1+r.IntN(8))] = RandomValue(r, depth-1)
		}
		return m
	}
}

// RandomString returns a random string of n bytes.
func RandomString(r *rand.Rand, n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = stringBytes[r.IntN(len(stringBytes))]
	}
	return string(buf)
}

type frame struct {
	table map[string]any
	array []any
	key   string
}

// treeHandler implements the jsonrw.Handler interface to construct a value.
type treeHandler struct {
	stk  []*frame
	root any
}

func (h *treeHandler) reduce(v any) error {
	if len(h.stk) == 0 {
		h.root = v
		return nil
	}
	top := h.stk[len(h.stk)-1]
	if top.table != nil {
		top.table[top.key] = v
	} else {
		top.array = append(top.array, v)
	}
	return nil
}

func (h *treeHandler) pop() *frame {
	last := h.stk[len(h.stk)-1]
	h.stk = h.stk[:len(h.stk)-1]
	return last
}

func (h *treeHandler) BeginTable() error {
	h.stk = append(h.stk, &frame{table: make(map[string]any)})
	return nil
}

func (h *treeHandler) EndTable() error { return h.reduce(h.pop().table) }

func (h *treeHandler) BeginArray() error {
	h.stk = append(h.stk, &frame{array: []any{}})
	return nil
}

func (h *treeHandler) EndArray() error { return h.reduce(h.pop().array) }

func (h *treeHandler) Key(name string) error {
	h.stk[len(h.stk)-1].key = name
	return nil
}

func (h *treeHandler) String(s string) error  { return h.reduce(s) }
func (h *treeHandler) Number(v float64) error { return h.reduce(v) }
func (h *treeHandler) Bool(v bool) error      { return h.reduce(v) }
func (h *treeHandler) Null() error            { return h.reduce(nil) }
