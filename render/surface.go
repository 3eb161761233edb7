// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gpupen/gpu"
)

// gpuTimeout bounds fence waits for synchronous submissions.
const gpuTimeout = 5 * time.Second

// createSurface allocates the offscreen texture and view and writes the
// resolution uniform. The texture contents are undefined until the first
// pass clears them.
func (r *Renderer) createSurface(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	tex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label: "pen_surface",
		Size: hal.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        surfaceFormat,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create surface texture: %w", err)
	}
	view, err := r.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "pen_surface_view",
	})
	if err != nil {
		r.device.DestroyTexture(tex)
		return fmt.Errorf("create surface view: %w", err)
	}
	r.surfaceTex = tex
	r.surfaceView = view
	r.width = width
	r.height = height

	r.queue.WriteBuffer(r.uniformBuf, 0, resolutionUniform(width, height))
	return nil
}

func (r *Renderer) destroySurface() {
	if r.device == nil {
		return
	}
	if r.surfaceView != nil {
		r.device.DestroyTextureView(r.surfaceView)
		r.surfaceView = nil
	}
	if r.surfaceTex != nil {
		r.device.DestroyTexture(r.surfaceTex)
		r.surfaceTex = nil
	}
	r.width = 0
	r.height = 0
}

// resolutionUniform packs the surface size as vec2<f32> plus padding.
func resolutionUniform(width, height int) []byte {
	data := make([]byte, lineUniformSize)
	binary.LittleEndian.PutUint32(data[0:], math.Float32bits(float32(width)))
	binary.LittleEndian.PutUint32(data[4:], math.Float32bits(float32(height)))
	return data
}

// clearPass records a render pass that clears the surface to transparent
// and submits it synchronously.
func (r *Renderer) clearPass() error {
	return r.submitPass("pen_clear", gputypes.LoadOpClear, nil)
}

// submitPass encodes one render pass over the surface and waits for the
// GPU to finish it. record, if non-nil, is invoked with the open pass to
// issue draw commands.
func (r *Renderer) submitPass(label string, loadOp gputypes.LoadOp, record func(gpu.RenderPass)) error {
	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(label); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: label,
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       r.surfaceView,
			LoadOp:     loadOp,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 0},
		}},
	})
	if record != nil {
		record(rp)
	}
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	return r.submitAndWait([]hal.CommandBuffer{cmdBuf})
}

// submitAndWait submits command buffers and blocks until the GPU signals
// completion. Drawing is synchronous by contract, so every submission is
// fenced.
func (r *Renderer) submitAndWait(buffers []hal.CommandBuffer) error {
	fence, err := r.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer r.device.DestroyFence(fence)

	if err := r.queue.Submit(buffers, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	ok, err := r.device.Wait(fence, 1, gpuTimeout)
	if err != nil {
		return fmt.Errorf("wait for GPU: %w", err)
	}
	if !ok {
		return fmt.Errorf("wait for GPU: timeout after %s", gpuTimeout)
	}
	return nil
}
