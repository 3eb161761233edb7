// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpupen

// penState holds the current pen color and width. Mutated only by the
// extension's setters; independent of the surface and its resolution.
type penState struct {
	color RGBA
	width float64
}

// defaultPen is the pen state at construction: opaque white, width 1.
func defaultPen() penState {
	return penState{color: White, width: 1}
}

// setColor stores the clamped, normalized color. Alpha is always 1.
func (p *penState) setColor(r, g, b float64) {
	p.color = PenColor(r, g, b)
}

// setWidth stores the width clamped to a minimum of 1. There is no
// upper bound here; the GPU may cap line width further on its own.
func (p *penState) setWidth(w float64) {
	if w < 1 || w != w {
		w = 1
	}
	p.width = w
}
