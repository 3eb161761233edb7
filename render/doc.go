// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render implements the GPU line renderer behind gpupen.
//
// A Renderer owns an offscreen RGBA surface and a single line pipeline.
// Lines are drawn one at a time: each DrawLine uploads two vertices into
// transient buffers, records one LineList draw into the surface, submits,
// and releases the buffers. The surface accumulates strokes until Clear
// or a resolution change.
//
// The renderer is single-threaded by contract: callers serialize all
// access, matching the host runtime that drives it.
package render
