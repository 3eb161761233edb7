package render

import (
	"errors"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gpupen/gpu"
)

// Test doubles for the gpu interfaces. The fake device records every
// resource it hands out and every pass recorded against it, so tests
// can assert on buffer contents, draw calls, and release behavior.

type fakeBuffer struct {
	label     string
	size      uint64
	usage     gputypes.BufferUsage
	data      []byte
	destroyed bool
}

func (b *fakeBuffer) Destroy()              {}
func (b *fakeBuffer) NativeHandle() uintptr { return 0 }

type fakeTexture struct {
	label     string
	width     uint32
	height    uint32
	destroyed bool
}

func (t *fakeTexture) Destroy()              {}
func (t *fakeTexture) NativeHandle() uintptr { return 0 }

type fakeResource struct{ destroyed bool }

func (r *fakeResource) Destroy()              {}
func (r *fakeResource) NativeHandle() uintptr { return 0 }

// drawCall captures one Draw invocation with the state bound at the time.
type drawCall struct {
	vertexCount   uint32
	instanceCount uint32
	pipeline      hal.RenderPipeline
	bindGroup     hal.BindGroup
	vertexBuffers map[uint32]hal.Buffer
}

// recordedPass captures one render pass.
type recordedPass struct {
	label  string
	loadOp gputypes.LoadOp
	view   hal.TextureView
	draws  []drawCall
}

type fakeDevice struct {
	buffers  []*fakeBuffer
	textures []*fakeTexture
	views    []*fakeResource

	shader     *fakeResource
	bindLayout *fakeResource
	pipeLayout *fakeResource
	pipeline   *fakeResource

	passes []recordedPass
	copies []hal.BufferTextureCopy

	// Failure injection.
	failShader   bool
	failPipeline bool
	failTexture  bool
	failBuffer   string // fail CreateBuffer for this label

	fencesAlive int
}

func newFakeDevice() *fakeDevice { return &fakeDevice{} }

var errInjected = errors.New("injected failure")

func (d *fakeDevice) CreateShaderModule(_ *hal.ShaderModuleDescriptor) (hal.ShaderModule, error) {
	if d.failShader {
		return nil, errInjected
	}
	d.shader = &fakeResource{}
	return d.shader, nil
}

func (d *fakeDevice) DestroyShaderModule(m hal.ShaderModule) {
	if r, ok := m.(*fakeResource); ok {
		r.destroyed = true
	}
}

func (d *fakeDevice) CreateBindGroupLayout(_ *hal.BindGroupLayoutDescriptor) (hal.BindGroupLayout, error) {
	d.bindLayout = &fakeResource{}
	return d.bindLayout, nil
}

func (d *fakeDevice) DestroyBindGroupLayout(l hal.BindGroupLayout) {
	if r, ok := l.(*fakeResource); ok {
		r.destroyed = true
	}
}

func (d *fakeDevice) CreateBindGroup(_ *hal.BindGroupDescriptor) (hal.BindGroup, error) {
	return &fakeResource{}, nil
}

func (d *fakeDevice) DestroyBindGroup(g hal.BindGroup) {
	if r, ok := g.(*fakeResource); ok {
		r.destroyed = true
	}
}

func (d *fakeDevice) CreatePipelineLayout(_ *hal.PipelineLayoutDescriptor) (hal.PipelineLayout, error) {
	d.pipeLayout = &fakeResource{}
	return d.pipeLayout, nil
}

func (d *fakeDevice) DestroyPipelineLayout(l hal.PipelineLayout) {
	if r, ok := l.(*fakeResource); ok {
		r.destroyed = true
	}
}

func (d *fakeDevice) CreateRenderPipeline(_ *hal.RenderPipelineDescriptor) (hal.RenderPipeline, error) {
	if d.failPipeline {
		return nil, errInjected
	}
	d.pipeline = &fakeResource{}
	return d.pipeline, nil
}

func (d *fakeDevice) DestroyRenderPipeline(p hal.RenderPipeline) {
	if r, ok := p.(*fakeResource); ok {
		r.destroyed = true
	}
}

func (d *fakeDevice) CreateBuffer(desc *hal.BufferDescriptor) (hal.Buffer, error) {
	if d.failBuffer != "" && desc.Label == d.failBuffer {
		return nil, errInjected
	}
	buf := &fakeBuffer{
		label: desc.Label,
		size:  desc.Size,
		usage: desc.Usage,
		data:  make([]byte, desc.Size),
	}
	d.buffers = append(d.buffers, buf)
	return buf, nil
}

func (d *fakeDevice) DestroyBuffer(b hal.Buffer) {
	if buf, ok := b.(*fakeBuffer); ok {
		buf.destroyed = true
	}
}

func (d *fakeDevice) CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error) {
	if d.failTexture {
		return nil, errInjected
	}
	tex := &fakeTexture{
		label:  desc.Label,
		width:  desc.Size.Width,
		height: desc.Size.Height,
	}
	d.textures = append(d.textures, tex)
	return tex, nil
}

func (d *fakeDevice) DestroyTexture(t hal.Texture) {
	if tex, ok := t.(*fakeTexture); ok {
		tex.destroyed = true
	}
}

func (d *fakeDevice) CreateTextureView(_ hal.Texture, _ *hal.TextureViewDescriptor) (hal.TextureView, error) {
	view := &fakeResource{}
	d.views = append(d.views, view)
	return view, nil
}

func (d *fakeDevice) DestroyTextureView(v hal.TextureView) {
	if r, ok := v.(*fakeResource); ok {
		r.destroyed = true
	}
}

func (d *fakeDevice) CreateCommandEncoder(desc *hal.CommandEncoderDescriptor) (gpu.CommandEncoder, error) {
	return &fakeEncoder{device: d, label: desc.Label}, nil
}

func (d *fakeDevice) FreeCommandBuffer(_ hal.CommandBuffer) {}

func (d *fakeDevice) CreateFence() (hal.Fence, error) {
	d.fencesAlive++
	return &fakeResource{}, nil
}

func (d *fakeDevice) DestroyFence(_ hal.Fence) { d.fencesAlive-- }

func (d *fakeDevice) Wait(_ hal.Fence, _ uint64, _ time.Duration) (bool, error) {
	return true, nil
}

// buffer returns the most recent buffer with the given label.
func (d *fakeDevice) buffer(label string) *fakeBuffer {
	for i := len(d.buffers) - 1; i >= 0; i-- {
		if d.buffers[i].label == label {
			return d.buffers[i]
		}
	}
	return nil
}

// liveTexture returns the current (not destroyed) surface texture.
func (d *fakeDevice) liveTexture() *fakeTexture {
	for i := len(d.textures) - 1; i >= 0; i-- {
		if !d.textures[i].destroyed {
			return d.textures[i]
		}
	}
	return nil
}

type fakeQueue struct {
	device *fakeDevice

	// readBufferFunc, when set, fills readback data in ReadBuffer.
	readBufferFunc func(buffer hal.Buffer, data []byte) error

	submits int
}

func (q *fakeQueue) WriteBuffer(buffer hal.Buffer, offset uint64, data []byte) {
	if buf, ok := buffer.(*fakeBuffer); ok {
		copy(buf.data[offset:], data)
	}
}

func (q *fakeQueue) Submit(_ []hal.CommandBuffer, _ hal.Fence, _ uint64) error {
	q.submits++
	return nil
}

func (q *fakeQueue) ReadBuffer(buffer hal.Buffer, _ uint64, data []byte) error {
	if q.readBufferFunc != nil {
		return q.readBufferFunc(buffer, data)
	}
	if buf, ok := buffer.(*fakeBuffer); ok {
		copy(data, buf.data)
	}
	return nil
}

type fakeEncoder struct {
	device *fakeDevice
	label  string
}

func (e *fakeEncoder) BeginEncoding(string) error { return nil }

func (e *fakeEncoder) BeginRenderPass(desc *hal.RenderPassDescriptor) gpu.RenderPass {
	pass := recordedPass{
		label:  desc.Label,
		loadOp: desc.ColorAttachments[0].LoadOp,
		view:   desc.ColorAttachments[0].View,
	}
	e.device.passes = append(e.device.passes, pass)
	return &fakePass{device: e.device, index: len(e.device.passes) - 1}
}

func (e *fakeEncoder) TransitionTextures([]hal.TextureBarrier) {}

func (e *fakeEncoder) CopyTextureToBuffer(_ hal.Texture, _ hal.Buffer, regions []hal.BufferTextureCopy) {
	e.device.copies = append(e.device.copies, regions...)
}

func (e *fakeEncoder) EndEncoding() (hal.CommandBuffer, error) { return &fakeResource{}, nil }

func (e *fakeEncoder) DiscardEncoding() {}

type fakePass struct {
	device *fakeDevice
	index  int

	pipeline      hal.RenderPipeline
	bindGroup     hal.BindGroup
	vertexBuffers map[uint32]hal.Buffer
}

func (p *fakePass) SetPipeline(pipeline hal.RenderPipeline) { p.pipeline = pipeline }

func (p *fakePass) SetBindGroup(_ uint32, group hal.BindGroup, _ []uint32) { p.bindGroup = group }

func (p *fakePass) SetVertexBuffer(slot uint32, buffer hal.Buffer, _ uint64) {
	if p.vertexBuffers == nil {
		p.vertexBuffers = make(map[uint32]hal.Buffer)
	}
	p.vertexBuffers[slot] = buffer
}

func (p *fakePass) Draw(vertexCount, instanceCount, _, _ uint32) {
	bufs := make(map[uint32]hal.Buffer, len(p.vertexBuffers))
	for slot, b := range p.vertexBuffers {
		bufs[slot] = b
	}
	pass := &p.device.passes[p.index]
	pass.draws = append(pass.draws, drawCall{
		vertexCount:   vertexCount,
		instanceCount: instanceCount,
		pipeline:      p.pipeline,
		bindGroup:     p.bindGroup,
		vertexBuffers: bufs,
	})
}

func (p *fakePass) End() {}
