// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpupen

// flagRegistry tracks which sprites have GPU rendering enabled.
//
// Membership is the whole contract: the host consults the flag when
// routing a sprite's pen between this renderer and its default path.
// The registry itself never touches rendering state.
type flagRegistry struct {
	enabled map[string]struct{}
}

func newFlagRegistry() *flagRegistry {
	return &flagRegistry{enabled: make(map[string]struct{})}
}

// enable adds a sprite to the set. Idempotent.
func (r *flagRegistry) enable(spriteID string) {
	r.enabled[spriteID] = struct{}{}
}

// disable removes a sprite from the set. Removing an absent sprite is
// a no-op.
func (r *flagRegistry) disable(spriteID string) {
	delete(r.enabled, spriteID)
}

// isEnabled reports membership. False for never-enabled sprites.
func (r *flagRegistry) isEnabled(spriteID string) bool {
	_, ok := r.enabled[spriteID]
	return ok
}
