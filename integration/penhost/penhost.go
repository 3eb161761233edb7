// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

// Package penhost composites the gpupen surface into a gogpu host
// application.
//
// A Layer owns one gpupen.Extension and mirrors its surface into a host
// GPU texture each frame. When the host's device provider exposes its
// HAL device, the extension shares it instead of opening a second GPU
// device.
//
//	app := gogpu.NewApp(gogpu.DefaultConfig())
//	layer, _ := penhost.New(app.GPUContextProvider(), nil)
//	defer layer.Close()
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    layer.RenderTo(dc.AsTextureDrawer())
//	})
package penhost

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gpupen"
	"github.com/gogpu/gpupen/backend"
	"github.com/gogpu/gpupen/backend/native"
)

// Common errors returned by Layer operations.
var (
	// ErrClosed is returned when operations are attempted on a closed layer.
	ErrClosed = errors.New("penhost: layer is closed")

	// ErrNilProvider is returned when a nil DeviceProvider is passed.
	ErrNilProvider = errors.New("penhost: nil DeviceProvider")

	// ErrInvalidRenderer is returned when the draw context exposes no
	// texture creator.
	ErrInvalidRenderer = errors.New("penhost: renderer must implement gpucontext.TextureCreator")

	// ErrInvalidTexture is returned when the created texture cannot be drawn.
	ErrInvalidTexture = errors.New("penhost: texture does not implement gpucontext.Texture")
)

// textureDestroyer matches the gogpu.Texture.Destroy signature.
type textureDestroyer interface {
	Destroy()
}

// penSource is the part of gpupen.Extension the layer reads from.
type penSource interface {
	Snapshot() (*image.RGBA, error)
	Close()
}

// Layer composites a gpupen surface into a host application.
//
// Layer is NOT safe for concurrent use; drive it from the host's draw
// callback only.
type Layer struct {
	ext *gpupen.Extension
	src penSource

	texture    any // lazy-created host texture (*gogpu.Texture)
	oldTexture any // previous texture awaiting deferred destruction
	texWidth   int
	texHeight  int
	closed     bool
}

// New creates a layer backed by a fresh gpupen.Extension.
//
// The provider should come from gogpu.App.GPUContextProvider(). When it
// exposes the host's HAL device, the extension renders on that device;
// otherwise the extension opens its own through the backend registry.
func New(provider gpucontext.DeviceProvider, opts *gpupen.Options) (*Layer, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	var o gpupen.Options
	if opts != nil {
		o = *opts
	}
	if o.Context == nil {
		o.Context = sharedContext(provider)
	}
	ext := gpupen.New(&o)
	return &Layer{ext: ext, src: ext}, nil
}

// sharedContext extracts the host's HAL device from the provider, if it
// exposes one. Returns nil when the provider keeps its device private,
// in which case gpupen opens its own.
func sharedContext(provider gpucontext.DeviceProvider) *backend.Context {
	hp, ok := provider.(interface {
		HalDevice() any
		HalQueue() any
	})
	if !ok {
		return nil
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok {
		return nil
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok {
		return nil
	}
	return native.SharedContext(device, queue, "host-shared")
}

// Extension returns the pen extension for block dispatch. Returns nil
// if the layer is closed.
func (l *Layer) Extension() *gpupen.Extension {
	if l.closed {
		return nil
	}
	return l.ext
}

// RenderTo reads the pen surface back and draws it at (0, 0) on the
// host draw context. The host texture is created lazily on first call
// and recreated when the pen resolution changes.
//
// Returns an error when the extension is degraded — the host should
// treat that as "no pen layer this frame" rather than a fault.
func (l *Layer) RenderTo(dc gpucontext.TextureDrawer) error {
	if l.closed {
		return ErrClosed
	}

	img, err := l.src.Snapshot()
	if err != nil {
		return fmt.Errorf("penhost: %w", err)
	}
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()

	// Resolution changed: the old texture may still be referenced by
	// in-flight command buffers, so keep it alive until after the new
	// texture's upload has waited for the GPU.
	if l.texture != nil && (w != l.texWidth || h != l.texHeight) {
		if l.oldTexture != nil {
			if destroyer, ok := l.oldTexture.(textureDestroyer); ok {
				destroyer.Destroy()
			}
		}
		l.oldTexture = l.texture
		l.texture = nil
	}

	if l.texture == nil {
		creator := dc.TextureCreator()
		if creator == nil {
			return ErrInvalidRenderer
		}
		tex, err := creator.NewTextureFromRGBA(w, h, img.Pix)
		if err != nil {
			return fmt.Errorf("penhost: create texture: %w", err)
		}
		// Pen pixels are opaque-or-transparent, which is valid
		// premultiplied data; the host then composites with the
		// one/one-minus-src-alpha pipeline.
		if pt, ok := tex.(interface{ SetPremultiplied(bool) }); ok {
			pt.SetPremultiplied(true)
		}
		l.texture = tex
		l.texWidth = w
		l.texHeight = h

		// Upload waited for the GPU, so the deferred texture is safe
		// to destroy now.
		if l.oldTexture != nil {
			if destroyer, ok := l.oldTexture.(textureDestroyer); ok {
				destroyer.Destroy()
			}
			l.oldTexture = nil
		}
	} else if updater, ok := l.texture.(gpucontext.TextureUpdater); ok {
		if err := updater.UpdateData(img.Pix); err != nil {
			return fmt.Errorf("penhost: texture update: %w", err)
		}
	}

	gpuTex, ok := l.texture.(gpucontext.Texture)
	if !ok {
		return ErrInvalidTexture
	}
	return dc.DrawTexture(gpuTex, 0, 0)
}

// Close releases the host textures and the pen extension. Idempotent.
func (l *Layer) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true

	if l.oldTexture != nil {
		if destroyer, ok := l.oldTexture.(textureDestroyer); ok {
			destroyer.Destroy()
		}
		l.oldTexture = nil
	}
	if l.texture != nil {
		if destroyer, ok := l.texture.(textureDestroyer); ok {
			destroyer.Destroy()
		}
		l.texture = nil
	}
	if l.src != nil {
		l.src.Close()
		l.src = nil
		l.ext = nil
	}
	return nil
}
