// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpupen

import (
	"image"

	"github.com/gogpu/gpupen/backend"
	"github.com/gogpu/gpupen/render"
)

// Extension is one instance of the GPU pen. It owns the offscreen
// surface, the line pipeline, the pen draw state, and the per-sprite
// flag registry.
//
// Operations take host-supplied values of any type and coerce them at
// the boundary. None of them returns an error: failures are logged and
// degrade to no-ops, per the contract with the block-execution host.
//
// An Extension is single-threaded: the host dispatcher invokes one
// operation at a time, and the extension relies on that.
type Extension struct {
	res      Resolution
	pen      penState
	flags    *flagRegistry
	ctx      *backend.Context
	renderer *render.Renderer
}

// New constructs the extension and initializes the GPU pipeline. A nil
// opts selects the default backend and the 480p surface.
//
// Initialization failures never propagate: if no backend can open a
// device, or the pipeline fails to build, the extension comes up in a
// degraded state where every drawing operation is a logged no-op.
func New(opts *Options) *Extension {
	o := opts.withDefaults()
	if o.Logger != nil {
		SetLogger(o.Logger)
	}
	e := &Extension{
		res:      resolutionFor(o.Quality),
		pen:      defaultPen(),
		flags:    newFlagRegistry(),
		renderer: render.New(),
	}
	e.initialize(&o)
	return e
}

func (e *Extension) initialize(o *Options) {
	ctx := o.Context
	if ctx == nil {
		ctx = openContext(o.Backend)
	}
	if ctx == nil {
		// Force the terminal degraded state so every later operation
		// takes the cheap no-op path.
		_ = e.renderer.Init(nil, nil, 0, 0)
		return
	}
	e.ctx = ctx
	if err := e.renderer.Init(ctx.Device, ctx.Queue, e.res.Width, e.res.Height); err != nil {
		Logger().Error("pen pipeline initialization failed", "err", err)
		return
	}
	Logger().Info("pen renderer ready",
		"adapter", ctx.AdapterName, "width", e.res.Width, "height", e.res.Height)
}

// openContext tries the requested backend, then the default, then every
// other registered backend before giving up.
func openContext(b backend.Backend) *backend.Context {
	tried := map[string]bool{}
	candidates := make([]backend.Backend, 0, 4)
	if b != nil {
		candidates = append(candidates, b)
	}
	if def := backend.Default(); def != nil {
		candidates = append(candidates, def)
	}
	for _, name := range backend.Available() {
		if alt := backend.Get(name); alt != nil {
			candidates = append(candidates, alt)
		}
	}
	for _, c := range candidates {
		if tried[c.Name()] {
			continue
		}
		tried[c.Name()] = true
		ctx, err := c.Open()
		if err != nil {
			Logger().Error("GPU backend unavailable", "backend", c.Name(), "err", err)
			continue
		}
		return ctx
	}
	Logger().Error("pen disabled: no GPU backend available")
	return nil
}

// Ready reports whether the pipeline is initialized and accepting draw
// commands.
func (e *Extension) Ready() bool {
	return e.renderer.Status() == render.StatusReady
}

// EnableGPURendering flags the sprite for GPU pen rendering. Idempotent.
func (e *Extension) EnableGPURendering(spriteID any) {
	e.flags.enable(toString(spriteID))
}

// DisableGPURendering removes the sprite's GPU rendering flag.
func (e *Extension) DisableGPURendering(spriteID any) {
	e.flags.disable(toString(spriteID))
}

// IsGPUEnabled reports whether the sprite is flagged for GPU rendering.
// False for sprites never enabled. The flag is advisory: the host
// consults it when routing pen output, and nothing here acts on it.
func (e *Extension) IsGPUEnabled(spriteID any) bool {
	return e.flags.isEnabled(toString(spriteID))
}

// SetRenderQuality switches the surface to a named resolution preset.
// Unrecognized names fall back to 1080p. The switch is destructive:
// drawn content is cleared, even when the preset is unchanged. The
// logical resolution updates even in degraded state, where the surface
// itself no longer exists.
func (e *Extension) SetRenderQuality(name any) {
	e.res = resolutionFor(toString(name))
	e.renderer.SetResolution(e.res.Width, e.res.Height)
}

// ResolutionWidth returns the current surface width in pixels.
func (e *Extension) ResolutionWidth() int { return e.res.Width }

// ResolutionHeight returns the current surface height in pixels.
func (e *Extension) ResolutionHeight() int { return e.res.Height }

// SetPenColor sets the pen color from 0-255 channel values. Channels
// are coerced to numbers and clamped; alpha is always fully opaque.
func (e *Extension) SetPenColor(r, g, b any) {
	e.pen.setColor(toNumber(r), toNumber(g), toNumber(b))
}

// SetPenWidth sets the pen width, coerced to a number and clamped to a
// minimum of 1.
func (e *Extension) SetPenWidth(w any) {
	e.pen.setWidth(toNumber(w))
}

// DrawGPULine draws one line segment between two points in sprite-
// centered coordinates ((0,0) is the surface center, +y up) using the
// current pen color. A no-op in degraded state.
func (e *Extension) DrawGPULine(x1, y1, x2, y2 any) {
	e.renderer.DrawLine(toNumber(x1), toNumber(y1), toNumber(x2), toNumber(y2), e.pen.color.vec4())
}

// ClearGPUCanvas erases all drawn content, leaving the surface fully
// transparent. A no-op in degraded state.
func (e *Extension) ClearGPUCanvas() {
	e.renderer.Clear()
}

// Snapshot reads the surface back as an image.RGBA for the host to
// composite. Returns an error in degraded state.
func (e *Extension) Snapshot() (*image.RGBA, error) {
	return e.renderer.Snapshot()
}

// SnapshotScaled reads the surface back rescaled to the given size,
// for hosts that composite at a resolution other than the surface's.
func (e *Extension) SnapshotScaled(width, height int) (*image.RGBA, error) {
	return e.renderer.SnapshotScaled(width, height)
}

// Close releases all GPU resources. The teardown hook for the host:
// call it when the extension instance is unloaded. Idempotent; a closed
// extension ignores all further drawing operations.
func (e *Extension) Close() {
	e.renderer.Close()
	if e.ctx != nil {
		e.ctx.Close()
		e.ctx = nil
	}
}
