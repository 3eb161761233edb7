// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpu defines the narrow device abstraction the pen renderer
// draws through. Backends (see package backend) adapt a concrete GPU
// stack — gogpu/wgpu's HAL, or a device shared by the host application —
// to these interfaces. Tests substitute in-memory fakes.
//
// The interfaces deliberately cover only what immediate-mode line
// rendering needs: resource creation/destruction, one render pass per
// draw, buffer upload, and synchronous readback. Descriptor and handle
// types are the hal/gputypes ones so backends forward without
// conversion.
package gpu

import (
	"time"

	"github.com/gogpu/wgpu/hal"
)

// Device creates and destroys GPU resources.
//
// All methods are synchronous. Destroy* methods accept nil handles and
// do nothing, so cleanup paths don't need nil checks at every call site.
type Device interface {
	CreateShaderModule(desc *hal.ShaderModuleDescriptor) (hal.ShaderModule, error)
	DestroyShaderModule(module hal.ShaderModule)

	CreateBindGroupLayout(desc *hal.BindGroupLayoutDescriptor) (hal.BindGroupLayout, error)
	DestroyBindGroupLayout(layout hal.BindGroupLayout)

	CreateBindGroup(desc *hal.BindGroupDescriptor) (hal.BindGroup, error)
	DestroyBindGroup(group hal.BindGroup)

	CreatePipelineLayout(desc *hal.PipelineLayoutDescriptor) (hal.PipelineLayout, error)
	DestroyPipelineLayout(layout hal.PipelineLayout)

	CreateRenderPipeline(desc *hal.RenderPipelineDescriptor) (hal.RenderPipeline, error)
	DestroyRenderPipeline(pipeline hal.RenderPipeline)

	CreateBuffer(desc *hal.BufferDescriptor) (hal.Buffer, error)
	DestroyBuffer(buffer hal.Buffer)

	CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error)
	DestroyTexture(texture hal.Texture)

	CreateTextureView(texture hal.Texture, desc *hal.TextureViewDescriptor) (hal.TextureView, error)
	DestroyTextureView(view hal.TextureView)

	CreateCommandEncoder(desc *hal.CommandEncoderDescriptor) (CommandEncoder, error)
	FreeCommandBuffer(buffer hal.CommandBuffer)

	CreateFence() (hal.Fence, error)
	DestroyFence(fence hal.Fence)

	// Wait blocks until the fence reaches value or the timeout expires.
	// Returns false if the timeout expired first.
	Wait(fence hal.Fence, value uint64, timeout time.Duration) (bool, error)
}

// Queue submits recorded work and transfers data.
type Queue interface {
	// WriteBuffer schedules a copy of data into buffer at offset.
	WriteBuffer(buffer hal.Buffer, offset uint64, data []byte)

	// Submit enqueues command buffers and signals fence with value when
	// the GPU finishes them.
	Submit(buffers []hal.CommandBuffer, fence hal.Fence, value uint64) error

	// ReadBuffer copies the contents of a MapRead buffer into data.
	// The submitted work writing the buffer must have completed.
	ReadBuffer(buffer hal.Buffer, offset uint64, data []byte) error
}

// CommandEncoder records GPU commands for one submission.
//
// Lifecycle: BeginEncoding, record passes and copies, then either
// EndEncoding (producing a command buffer) or DiscardEncoding.
type CommandEncoder interface {
	BeginEncoding(label string) error

	// BeginRenderPass opens a render pass. The pass must be ended with
	// End before any other command is recorded.
	BeginRenderPass(desc *hal.RenderPassDescriptor) RenderPass

	// TransitionTextures inserts usage barriers. A no-op on backends
	// without explicit layout transitions.
	TransitionTextures(barriers []hal.TextureBarrier)

	// CopyTextureToBuffer records a texture readback copy.
	CopyTextureToBuffer(src hal.Texture, dst hal.Buffer, regions []hal.BufferTextureCopy)

	EndEncoding() (hal.CommandBuffer, error)
	DiscardEncoding()
}

// RenderPass records draw commands within an open render pass.
type RenderPass interface {
	SetPipeline(pipeline hal.RenderPipeline)
	SetBindGroup(index uint32, group hal.BindGroup, dynamicOffsets []uint32)
	SetVertexBuffer(slot uint32, buffer hal.Buffer, offset uint64)
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)
	End()
}
