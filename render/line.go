// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gpupen/gpu"
)

// DrawLine draws one line segment in stage coordinates with the given
// RGBA color (components in [0, 1]).
//
// Stage space has its origin at the surface center with +y pointing up.
// Each endpoint maps to device space as (w/2 + x, h/2 - y). Endpoints
// outside the surface are fine: the GPU clips the segment.
//
// Each call uploads two vertices into transient position and color
// buffers, records a single LineList draw that loads the existing
// surface contents, submits, and releases the buffers. Failures are
// logged and leave the surface unchanged.
func (r *Renderer) DrawLine(x0, y0, x1, y1 float64, color [4]float32) {
	if r.status != StatusReady {
		slogger().Debug("draw line ignored", "state", r.status.String())
		return
	}

	halfW := float64(r.width) / 2
	halfH := float64(r.height) / 2
	positions := packPositions(
		float32(halfW+x0), float32(halfH-y0),
		float32(halfW+x1), float32(halfH-y1),
	)
	colors := packColors(color)

	if err := r.drawVertices(positions, colors); err != nil {
		slogger().Error("draw line failed", "err", err)
	}
}

// drawVertices uploads the vertex streams and records one two-vertex
// LineList draw on top of the existing surface contents. The transient
// buffers are released on every path, including errors.
func (r *Renderer) drawVertices(positions, colors []byte) error {
	posBuf, err := r.createVertexBuffer("pen_line_pos", positions)
	if err != nil {
		return err
	}
	defer r.device.DestroyBuffer(posBuf)

	colorBuf, err := r.createVertexBuffer("pen_line_color", colors)
	if err != nil {
		return err
	}
	defer r.device.DestroyBuffer(colorBuf)

	return r.submitPass("pen_line", gputypes.LoadOpLoad, func(rp gpu.RenderPass) {
		rp.SetPipeline(r.pipeline)
		rp.SetBindGroup(0, r.bindGroup, nil)
		rp.SetVertexBuffer(0, posBuf, 0)
		rp.SetVertexBuffer(1, colorBuf, 0)
		rp.Draw(2, 1, 0, 0)
	})
}

func (r *Renderer) createVertexBuffer(label string, data []byte) (hal.Buffer, error) {
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	r.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// packPositions packs two device-space endpoints as vec2<f32> vertices.
func packPositions(x0, y0, x1, y1 float32) []byte {
	data := make([]byte, 2*linePosStride)
	putFloat32(data[0:], x0)
	putFloat32(data[4:], y0)
	putFloat32(data[8:], x1)
	putFloat32(data[12:], y1)
	return data
}

// packColors packs the same vec4<f32> color for both vertices.
func packColors(color [4]float32) []byte {
	data := make([]byte, 2*lineColorStride)
	for v := 0; v < 2; v++ {
		off := v * lineColorStride
		putFloat32(data[off:], color[0])
		putFloat32(data[off+4:], color[1])
		putFloat32(data[off+8:], color[2])
		putFloat32(data[off+12:], color[3])
	}
	return data
}

func putFloat32(dst []byte, v float32) {
	binary.LittleEndian.PutUint32(dst, math.Float32bits(v))
}
