// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpupen

// RGBA is a normalized color with each component in [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// White is the default pen color: fully opaque white.
var White = RGBA{R: 1, G: 1, B: 1, A: 1}

// PenColor builds a normalized color from 0-255 channel values. Each
// channel is clamped to [0, 255] and divided by 255; alpha is always
// fully opaque.
func PenColor(r, g, b float64) RGBA {
	return RGBA{
		R: clamp255(r) / 255,
		G: clamp255(g) / 255,
		B: clamp255(b) / 255,
		A: 1,
	}
}

// vec4 returns the color as float32 components for vertex upload.
func (c RGBA) vec4() [4]float32 {
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
}

// clamp255 restricts a value to the [0, 255] range. NaN clamps to 0.
func clamp255(x float64) float64 {
	if x > 255 {
		return 255
	}
	if x < 0 || x != x {
		return 0
	}
	return x
}
