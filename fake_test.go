package gpupen

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gpupen/backend"
	"github.com/gogpu/gpupen/gpu"
)

// Compact gpu.Device fake for extension-level tests. It hands out inert
// resources and records just enough to verify the drawing contract:
// buffers by label, their uploaded contents, and issued draws.

type stubResource struct{ destroyed bool }

func (r *stubResource) Destroy()              {}
func (r *stubResource) NativeHandle() uintptr { return 0 }

type stubBuffer struct {
	stubResource
	label string
	data  []byte
}

type stubDraw struct {
	vertexCount uint32
	positions   []float32
}

type stubDevice struct {
	buffers []*stubBuffer
	draws   []stubDraw
	closed  bool
}

func newStubContext() (*backend.Context, *stubDevice) {
	device := &stubDevice{}
	queue := &stubQueue{device: device}
	var d gpu.Device = device
	var q gpu.Queue = queue
	ctx := backend.NewContext(d, q, "stub", func() { device.closed = true })
	return ctx, device
}

func (d *stubDevice) buffer(label string) *stubBuffer {
	for i := len(d.buffers) - 1; i >= 0; i-- {
		if d.buffers[i].label == label {
			return d.buffers[i]
		}
	}
	return nil
}

func (d *stubDevice) CreateShaderModule(*hal.ShaderModuleDescriptor) (hal.ShaderModule, error) {
	return &stubResource{}, nil
}
func (d *stubDevice) DestroyShaderModule(hal.ShaderModule) {}

func (d *stubDevice) CreateBindGroupLayout(*hal.BindGroupLayoutDescriptor) (hal.BindGroupLayout, error) {
	return &stubResource{}, nil
}
func (d *stubDevice) DestroyBindGroupLayout(hal.BindGroupLayout) {}

func (d *stubDevice) CreateBindGroup(*hal.BindGroupDescriptor) (hal.BindGroup, error) {
	return &stubResource{}, nil
}
func (d *stubDevice) DestroyBindGroup(hal.BindGroup) {}

func (d *stubDevice) CreatePipelineLayout(*hal.PipelineLayoutDescriptor) (hal.PipelineLayout, error) {
	return &stubResource{}, nil
}
func (d *stubDevice) DestroyPipelineLayout(hal.PipelineLayout) {}

func (d *stubDevice) CreateRenderPipeline(*hal.RenderPipelineDescriptor) (hal.RenderPipeline, error) {
	return &stubResource{}, nil
}
func (d *stubDevice) DestroyRenderPipeline(hal.RenderPipeline) {}

func (d *stubDevice) CreateBuffer(desc *hal.BufferDescriptor) (hal.Buffer, error) {
	buf := &stubBuffer{label: desc.Label, data: make([]byte, desc.Size)}
	d.buffers = append(d.buffers, buf)
	return buf, nil
}

func (d *stubDevice) DestroyBuffer(b hal.Buffer) {
	if buf, ok := b.(*stubBuffer); ok {
		buf.destroyed = true
	}
}

func (d *stubDevice) CreateTexture(*hal.TextureDescriptor) (hal.Texture, error) {
	return &stubResource{}, nil
}
func (d *stubDevice) DestroyTexture(hal.Texture) {}

func (d *stubDevice) CreateTextureView(hal.Texture, *hal.TextureViewDescriptor) (hal.TextureView, error) {
	return &stubResource{}, nil
}
func (d *stubDevice) DestroyTextureView(hal.TextureView) {}

func (d *stubDevice) CreateCommandEncoder(*hal.CommandEncoderDescriptor) (gpu.CommandEncoder, error) {
	return &stubEncoder{device: d}, nil
}

func (d *stubDevice) FreeCommandBuffer(hal.CommandBuffer) {}

func (d *stubDevice) CreateFence() (hal.Fence, error) { return &stubResource{}, nil }
func (d *stubDevice) DestroyFence(hal.Fence)          {}

func (d *stubDevice) Wait(hal.Fence, uint64, time.Duration) (bool, error) { return true, nil }

type stubQueue struct {
	device *stubDevice
}

func (q *stubQueue) WriteBuffer(buffer hal.Buffer, offset uint64, data []byte) {
	if buf, ok := buffer.(*stubBuffer); ok {
		copy(buf.data[offset:], data)
	}
}

func (q *stubQueue) Submit([]hal.CommandBuffer, hal.Fence, uint64) error { return nil }

func (q *stubQueue) ReadBuffer(buffer hal.Buffer, _ uint64, data []byte) error {
	if buf, ok := buffer.(*stubBuffer); ok {
		copy(data, buf.data)
	}
	return nil
}

type stubEncoder struct {
	device *stubDevice
}

func (e *stubEncoder) BeginEncoding(string) error { return nil }

func (e *stubEncoder) BeginRenderPass(*hal.RenderPassDescriptor) gpu.RenderPass {
	return &stubPass{device: e.device}
}

func (e *stubEncoder) TransitionTextures([]hal.TextureBarrier) {}

func (e *stubEncoder) CopyTextureToBuffer(hal.Texture, hal.Buffer, []hal.BufferTextureCopy) {}

func (e *stubEncoder) EndEncoding() (hal.CommandBuffer, error) { return &stubResource{}, nil }

func (e *stubEncoder) DiscardEncoding() {}

type stubPass struct {
	device *stubDevice
	posBuf *stubBuffer
}

func (p *stubPass) SetPipeline(hal.RenderPipeline) {}

func (p *stubPass) SetBindGroup(uint32, hal.BindGroup, []uint32) {}

func (p *stubPass) SetVertexBuffer(slot uint32, buffer hal.Buffer, _ uint64) {
	if slot == 0 {
		p.posBuf, _ = buffer.(*stubBuffer)
	}
}

func (p *stubPass) Draw(vertexCount, _, _, _ uint32) {
	draw := stubDraw{vertexCount: vertexCount}
	if p.posBuf != nil {
		for off := 0; off+4 <= len(p.posBuf.data); off += 4 {
			bits := binary.LittleEndian.Uint32(p.posBuf.data[off:])
			draw.positions = append(draw.positions, math.Float32frombits(bits))
		}
	}
	p.device.draws = append(p.device.draws, draw)
}

func (p *stubPass) End() {}
