//go:build !nogpu

package native

import (
	"time"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gpupen/gpu"
)

// WrapHAL adapts a HAL device and queue to the gpupen device
// interfaces. The wrappers forward directly; the only additions are
// nil-tolerant destroys and command encoders typed for package gpu.
func WrapHAL(device hal.Device, queue hal.Queue) (gpu.Device, gpu.Queue) {
	return &halDevice{dev: device}, &halQueue{queue: queue}
}

type halDevice struct {
	dev hal.Device
}

func (d *halDevice) CreateShaderModule(desc *hal.ShaderModuleDescriptor) (hal.ShaderModule, error) {
	return d.dev.CreateShaderModule(desc)
}

func (d *halDevice) DestroyShaderModule(module hal.ShaderModule) {
	if module != nil {
		d.dev.DestroyShaderModule(module)
	}
}

func (d *halDevice) CreateBindGroupLayout(desc *hal.BindGroupLayoutDescriptor) (hal.BindGroupLayout, error) {
	return d.dev.CreateBindGroupLayout(desc)
}

func (d *halDevice) DestroyBindGroupLayout(layout hal.BindGroupLayout) {
	if layout != nil {
		d.dev.DestroyBindGroupLayout(layout)
	}
}

func (d *halDevice) CreateBindGroup(desc *hal.BindGroupDescriptor) (hal.BindGroup, error) {
	return d.dev.CreateBindGroup(desc)
}

func (d *halDevice) DestroyBindGroup(group hal.BindGroup) {
	if group != nil {
		d.dev.DestroyBindGroup(group)
	}
}

func (d *halDevice) CreatePipelineLayout(desc *hal.PipelineLayoutDescriptor) (hal.PipelineLayout, error) {
	return d.dev.CreatePipelineLayout(desc)
}

func (d *halDevice) DestroyPipelineLayout(layout hal.PipelineLayout) {
	if layout != nil {
		d.dev.DestroyPipelineLayout(layout)
	}
}

func (d *halDevice) CreateRenderPipeline(desc *hal.RenderPipelineDescriptor) (hal.RenderPipeline, error) {
	return d.dev.CreateRenderPipeline(desc)
}

func (d *halDevice) DestroyRenderPipeline(pipeline hal.RenderPipeline) {
	if pipeline != nil {
		d.dev.DestroyRenderPipeline(pipeline)
	}
}

func (d *halDevice) CreateBuffer(desc *hal.BufferDescriptor) (hal.Buffer, error) {
	return d.dev.CreateBuffer(desc)
}

func (d *halDevice) DestroyBuffer(buffer hal.Buffer) {
	if buffer != nil {
		d.dev.DestroyBuffer(buffer)
	}
}

func (d *halDevice) CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error) {
	return d.dev.CreateTexture(desc)
}

func (d *halDevice) DestroyTexture(texture hal.Texture) {
	if texture != nil {
		d.dev.DestroyTexture(texture)
	}
}

func (d *halDevice) CreateTextureView(texture hal.Texture, desc *hal.TextureViewDescriptor) (hal.TextureView, error) {
	return d.dev.CreateTextureView(texture, desc)
}

func (d *halDevice) DestroyTextureView(view hal.TextureView) {
	if view != nil {
		d.dev.DestroyTextureView(view)
	}
}

func (d *halDevice) CreateCommandEncoder(desc *hal.CommandEncoderDescriptor) (gpu.CommandEncoder, error) {
	encoder, err := d.dev.CreateCommandEncoder(desc)
	if err != nil {
		return nil, err
	}
	return &halEncoder{encoder: encoder}, nil
}

func (d *halDevice) FreeCommandBuffer(buffer hal.CommandBuffer) {
	if buffer != nil {
		d.dev.FreeCommandBuffer(buffer)
	}
}

func (d *halDevice) CreateFence() (hal.Fence, error) {
	return d.dev.CreateFence()
}

func (d *halDevice) DestroyFence(fence hal.Fence) {
	if fence != nil {
		d.dev.DestroyFence(fence)
	}
}

func (d *halDevice) Wait(fence hal.Fence, value uint64, timeout time.Duration) (bool, error) {
	return d.dev.Wait(fence, value, timeout)
}

type halQueue struct {
	queue hal.Queue
}

func (q *halQueue) WriteBuffer(buffer hal.Buffer, offset uint64, data []byte) {
	q.queue.WriteBuffer(buffer, offset, data)
}

func (q *halQueue) Submit(buffers []hal.CommandBuffer, fence hal.Fence, value uint64) error {
	return q.queue.Submit(buffers, fence, value)
}

func (q *halQueue) ReadBuffer(buffer hal.Buffer, offset uint64, data []byte) error {
	return q.queue.ReadBuffer(buffer, offset, data)
}

type halEncoder struct {
	encoder hal.CommandEncoder
}

func (e *halEncoder) BeginEncoding(label string) error {
	return e.encoder.BeginEncoding(label)
}

func (e *halEncoder) BeginRenderPass(desc *hal.RenderPassDescriptor) gpu.RenderPass {
	return e.encoder.BeginRenderPass(desc)
}

func (e *halEncoder) TransitionTextures(barriers []hal.TextureBarrier) {
	e.encoder.TransitionTextures(barriers)
}

func (e *halEncoder) CopyTextureToBuffer(src hal.Texture, dst hal.Buffer, regions []hal.BufferTextureCopy) {
	e.encoder.CopyTextureToBuffer(src, dst, regions)
}

func (e *halEncoder) EndEncoding() (hal.CommandBuffer, error) {
	return e.encoder.EndEncoding()
}

func (e *halEncoder) DiscardEncoding() {
	e.encoder.DiscardEncoding()
}
