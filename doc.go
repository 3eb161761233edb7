// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpupen provides GPU-accelerated pen line drawing for sprites
// in block-based visual programming environments.
//
// The extension draws lines into an offscreen RGBA surface through a
// minimal immediate-mode renderer built on gogpu/wgpu. The host engine
// composites that surface; gpupen only produces it.
//
// # Usage
//
//	import (
//	    "github.com/gogpu/gpupen"
//	    _ "github.com/gogpu/gpupen/backend/native"
//	)
//
//	ext := gpupen.New(nil)
//	defer ext.Close()
//
//	ext.SetRenderQuality("720p")
//	ext.SetPenColor(255, 128, 0)
//	ext.DrawGPULine(0, 0, 100, 100)
//
// All operations take host-supplied values of any type and coerce them
// at the boundary: numbers clamp into range, unknown quality presets
// fall back to 1080p. No operation ever panics or returns an error to
// the host; failures degrade to logged no-ops, so a rendering glitch
// never halts block execution.
package gpupen
