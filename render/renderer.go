// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gpupen/gpu"
)

// surfaceFormat is the pixel format of the offscreen surface. RGBA8
// keeps snapshots byte-compatible with image.RGBA without swizzling.
const surfaceFormat = gputypes.TextureFormatRGBA8Unorm

// Renderer draws lines into an offscreen GPU surface.
//
// Not safe for concurrent use: the host runtime that drives pen drawing
// is single-threaded, and the renderer relies on that.
type Renderer struct {
	device gpu.Device
	queue  gpu.Queue

	status Status
	closed bool

	width  int
	height int

	// Pipeline resources, built once during Init.
	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline

	// Persistent resolution uniform (vec2<f32> + padding) and its bind
	// group. The uniform is rewritten whenever the surface is resized.
	uniformBuf hal.Buffer
	bindGroup  hal.BindGroup

	// Offscreen surface.
	surfaceTex  hal.Texture
	surfaceView hal.TextureView
}

// New returns an uninitialized renderer. Call Init before drawing.
func New() *Renderer {
	return &Renderer{status: StatusUninitialized}
}

// Status reports the current lifecycle state.
func (r *Renderer) Status() Status { return r.status }

// Size returns the current surface dimensions in pixels.
// Zero before a successful Init.
func (r *Renderer) Size() (width, height int) { return r.width, r.height }

// Init builds the line pipeline and the offscreen surface at the given
// resolution. It may be called exactly once per renderer: on success the
// renderer becomes Ready; on failure it becomes Degraded and stays there.
func (r *Renderer) Init(device gpu.Device, queue gpu.Queue, width, height int) error {
	if r.status != StatusUninitialized {
		return fmt.Errorf("render: init in state %s", r.status)
	}
	r.status = StatusInitializing
	if device == nil || queue == nil {
		r.status = StatusDegraded
		return fmt.Errorf("render: init without device")
	}
	r.device = device
	r.queue = queue

	if err := r.createPipeline(); err != nil {
		r.destroyPipeline()
		r.status = StatusDegraded
		return fmt.Errorf("render: %w", err)
	}
	if err := r.createSurface(width, height); err != nil {
		r.destroyPipeline()
		r.status = StatusDegraded
		return fmt.Errorf("render: %w", err)
	}
	r.status = StatusReady

	// A fresh texture has undefined contents until the first pass.
	if err := r.clearPass(); err != nil {
		slogger().Error("initial surface clear failed", "err", err)
	}
	return nil
}

// SetResolution resizes the offscreen surface. The operation is always
// destructive: accumulated strokes are discarded and the surface comes
// back fully transparent, even when the size is unchanged.
func (r *Renderer) SetResolution(width, height int) {
	if r.status != StatusReady {
		slogger().Debug("set resolution ignored", "state", r.status.String())
		return
	}
	if width == r.width && height == r.height {
		if err := r.clearPass(); err != nil {
			slogger().Error("surface clear failed", "err", err)
		}
		return
	}
	r.destroySurface()
	if err := r.createSurface(width, height); err != nil {
		// Without a surface there is nothing left to draw into.
		slogger().Error("surface resize failed", "width", width, "height", height, "err", err)
		r.status = StatusDegraded
		return
	}
	if err := r.clearPass(); err != nil {
		slogger().Error("surface clear after resize failed", "err", err)
	}
}

// Clear erases all strokes, leaving the surface fully transparent.
func (r *Renderer) Clear() {
	if r.status != StatusReady {
		slogger().Debug("clear ignored", "state", r.status.String())
		return
	}
	if err := r.clearPass(); err != nil {
		slogger().Error("clear failed", "err", err)
	}
}

// Close releases all GPU resources owned by the renderer. The device
// itself belongs to the backend and is not destroyed here. Close is
// idempotent; a closed renderer ignores all further operations.
func (r *Renderer) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.destroySurface()
	r.destroyPipeline()
	if r.status == StatusReady {
		r.status = StatusDegraded
	}
}
