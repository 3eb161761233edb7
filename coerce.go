// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpupen

import (
	"fmt"
	"strconv"
)

// Host block dispatchers hand arguments over loosely typed: a color
// channel may arrive as float64, int, or the string a user typed into a
// block field. Coercion happens here, once, at the boundary, so the
// code behind it deals in well-typed values only.

// toNumber coerces a host-supplied value to a float64. Strings are
// parsed as decimal numbers; booleans map to 0/1. Anything unparseable,
// nil, or NaN coerces to 0 — bad input is never an error.
func toNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		if n != n { // NaN
			return 0
		}
		return n
	case float32:
		return toNumber(float64(n))
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case bool:
		if n {
			return 1
		}
		return 0
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil || f != f {
			return 0
		}
		return f
	default:
		return 0
	}
}

// toString coerces a host-supplied value to a string. Used for sprite
// identifiers and quality preset names, which are opaque text.
func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
