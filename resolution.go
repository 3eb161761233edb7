// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpupen

// Resolution is the pixel size of the offscreen pen surface.
type Resolution struct {
	Width  int
	Height int
}

// Quality preset names accepted by SetRenderQuality.
const (
	Quality480p  = "480p"
	Quality720p  = "720p"
	Quality1080p = "1080p"
	Quality2K    = "2K"
	Quality4K    = "4K"
)

// presets maps quality names to exact surface dimensions.
var presets = map[string]Resolution{
	Quality480p:  {Width: 854, Height: 480},
	Quality720p:  {Width: 1280, Height: 720},
	Quality1080p: {Width: 1920, Height: 1080},
	Quality2K:    {Width: 2560, Height: 1440},
	Quality4K:    {Width: 3840, Height: 2160},
}

// defaultQuality is the preset active at construction.
const defaultQuality = Quality480p

// fallbackQuality substitutes for unrecognized preset names.
const fallbackQuality = Quality1080p

// resolutionFor looks up a preset by name. Unrecognized names map to
// the 1080p preset rather than failing.
func resolutionFor(name string) Resolution {
	if res, ok := presets[name]; ok {
		return res
	}
	return presets[fallbackQuality]
}
