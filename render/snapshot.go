// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// copyPitchAlignment is the BytesPerRow alignment required by
// CopyTextureToBuffer on WebGPU-style backends.
const copyPitchAlignment = 256

// Snapshot reads the surface back into an image.RGBA. The returned image
// is a copy; later draws do not affect it.
func (r *Renderer) Snapshot() (*image.RGBA, error) {
	if r.status != StatusReady {
		return nil, fmt.Errorf("render: snapshot in state %s", r.status)
	}

	w := uint32(r.width)
	h := uint32(r.height)
	bytesPerRow := w * 4
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(h)

	stagingBuf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "pen_snapshot_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer r.device.DestroyBuffer(stagingBuf)

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "pen_snapshot",
	})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("pen_snapshot"); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	// The surface sits in attachment layout between draws; the copy
	// needs transfer-source. Transition there and back so the next draw
	// pass sees the layout it expects. No-op on backends without
	// explicit layouts.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.surfaceTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	encoder.CopyTextureToBuffer(r.surfaceTex, stagingBuf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: r.surfaceTex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.surfaceTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	if err := r.submitAndWait([]hal.CommandBuffer{cmdBuf}); err != nil {
		return nil, err
	}

	readback := make([]byte, stagingSize)
	if err := r.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return nil, fmt.Errorf("readback: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	if alignedBytesPerRow == bytesPerRow {
		copy(img.Pix, readback[:uint64(bytesPerRow)*uint64(h)])
	} else {
		// Strip per-row padding from the aligned readback data.
		for row := uint32(0); row < h; row++ {
			srcOff := uint64(row) * uint64(alignedBytesPerRow)
			dstOff := int(row) * img.Stride
			copy(img.Pix[dstOff:dstOff+int(bytesPerRow)], readback[srcOff:srcOff+uint64(bytesPerRow)])
		}
	}
	return img, nil
}

// SnapshotScaled reads the surface back and rescales it to the given
// size with Catmull-Rom resampling. Useful when the host composites the
// pen layer at a resolution other than the surface's.
func (r *Renderer) SnapshotScaled(width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render: invalid snapshot size %dx%d", width, height)
	}
	src, err := r.Snapshot()
	if err != nil {
		return nil, err
	}
	if width == r.width && height == r.height {
		return src, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst, nil
}
