//go:build nogpu

package native

// GPU support compiled out: no backend registers, and Default()
// selection in package backend finds nothing, so gpupen degrades to
// logged no-ops.
