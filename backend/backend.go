// Package backend provides pluggable GPU device acquisition for gpupen.
//
// Backends are registered via init() functions and selected at runtime.
// The native backend (gogpu/wgpu HAL over Vulkan) registers itself on
// import:
//
//	import _ "github.com/gogpu/gpupen/backend/native"
//
// Use Default() to get the best available backend, or Get() to request
// a specific one by name.
package backend

import (
	"errors"

	"github.com/gogpu/gpupen/gpu"
)

// Backend names.
const (
	// BackendNative is the gogpu/wgpu HAL backend.
	BackendNative = "native"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not
	// available on this system.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNoAdapter is returned when the backend found no usable GPU.
	ErrNoAdapter = errors.New("backend: no GPU adapters found")
)

// Backend acquires GPU devices for the pen renderer.
//
// Backends must be registered via Register() and are selected via
// Get() or Default().
type Backend interface {
	// Name returns the backend identifier (e.g., "native").
	Name() string

	// Open acquires a device and queue. The returned context owns the
	// device: Close releases it.
	Open() (*Context, error)
}

// Context bundles an open device and queue with their teardown.
type Context struct {
	Device gpu.Device
	Queue  gpu.Queue

	// AdapterName identifies the GPU in use, for logging.
	AdapterName string

	closer func()
}

// NewContext wraps a device and queue with an optional teardown hook.
// A nil closer means the device is owned elsewhere (shared with the
// host application) and Close leaves it alone.
func NewContext(device gpu.Device, queue gpu.Queue, adapterName string, closer func()) *Context {
	return &Context{Device: device, Queue: queue, AdapterName: adapterName, closer: closer}
}

// Close releases the device if this context owns it. Idempotent.
func (c *Context) Close() {
	if c.closer != nil {
		c.closer()
		c.closer = nil
	}
	c.Device = nil
	c.Queue = nil
}
