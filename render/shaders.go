package render

import (
	_ "embed"
)

// Line shader: position + per-vertex color, resolution uniform.
//
//go:embed shaders/line.wgsl
var lineShaderSource string
