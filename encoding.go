// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonrw

import (
	"errors"
	"strings"

	"github.com/creachadair/jsonrw/internal/escape"
	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string { return string(appendQuoted(nil, src)) }

// Unquote decodes a JSON string value. Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents, as
// described for Decoder.AppendString.
func Unquote(src string) (string, error) {
	if len(src) < 2 || !strings.HasPrefix(src, `"`) || !strings.HasSuffix(src, `"`) {
		return "", errors.New("missing quotations")
	}
	return string(escape.Unquote(mem.S(src[1 : len(src)-1]))), nil
}
