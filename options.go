// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpupen

import (
	"log/slog"

	"github.com/gogpu/gpupen/backend"
)

// Options configures a new Extension. The zero value (or nil) selects
// the default backend and the 480p surface.
type Options struct {
	// Backend acquires the GPU device. Nil selects the best registered
	// backend.
	Backend backend.Backend

	// Context supplies an already open device, typically shared with
	// the host application. When set, Backend is ignored.
	Context *backend.Context

	// Quality is the initial resolution preset name. Empty selects the
	// 480p default; unrecognized names fall back to 1080p.
	Quality string

	// Logger receives diagnostics. Nil keeps logging silent unless
	// SetLogger was called separately.
	Logger *slog.Logger
}

func (o *Options) withDefaults() Options {
	var opts Options
	if o != nil {
		opts = *o
	}
	if opts.Quality == "" {
		opts.Quality = defaultQuality
	}
	return opts
}
