//go:build !nogpu

// Package native acquires GPU devices through gogpu/wgpu's HAL and
// adapts them to the gpupen device interfaces.
//
// Importing this package registers the "native" backend. It can also
// wrap a HAL device owned by a host application via WrapHAL, so gpupen
// shares the host's GPU instead of opening a second one.
package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/gpupen/backend"
)

func init() {
	backend.Register(backend.BackendNative, func() backend.Backend {
		return &nativeBackend{}
	})
}

type nativeBackend struct{}

func (b *nativeBackend) Name() string { return backend.BackendNative }

// Open creates a HAL instance, picks the best adapter (discrete first,
// then integrated, then whatever is left), and opens a device on it.
func (b *nativeBackend) Open() (*backend.Context, error) {
	halBackend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("%w: vulkan backend not compiled in", backend.ErrBackendNotAvailable)
	}
	instance, err := halBackend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return nil, backend.ErrNoAdapter
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return nil, fmt.Errorf("open device: %w", err)
	}

	halDev := openDev.Device
	device, queue := WrapHAL(halDev, openDev.Queue)
	return backend.NewContext(device, queue, selected.Info.Name, func() {
		halDev.Destroy()
	}), nil
}

// SharedContext adapts a HAL device and queue owned by the caller. The
// returned context has no closer: tearing down the device remains the
// caller's job. Used when the host application shares its GPU.
func SharedContext(device hal.Device, queue hal.Queue, adapterName string) *backend.Context {
	dev, q := WrapHAL(device, queue)
	return backend.NewContext(dev, q, adapterName, nil)
}
