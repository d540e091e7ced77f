// Copyright (C) 2020 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vkapi

import (
	"sync"

	"github.com/rschiu/gapid/core/fault"
	"github.com/rschiu/gapid/core/vulkan/vk"
)

const (
	// ErrDuplicateRegistration is returned when a device handle is
	// registered a second time.
	ErrDuplicateRegistration = fault.Const("Device handle already registered")
	// ErrUnknownHandle is raised when dispatch is requested for a handle
	// that was never bootstrapped through this layer. This is caller misuse,
	// not a recoverable runtime condition.
	ErrUnknownHandle = fault.Const("Handle was never bootstrapped through this layer")
)

// InstanceRecord holds the function pointers resolved from the next link at
// instance-creation time. Owned exclusively by the Registry.
type InstanceRecord struct {
	Handle vk.Instance

	GetInstanceProcAddr                vk.GetInstanceProcAddrFunc
	DestroyInstance                    vk.DestroyInstanceFunc
	EnumerateDeviceExtensionProperties vk.EnumerateDeviceExtensionPropertiesFunc
	DebugMarkerSetObjectName           vk.DebugMarkerSetObjectNameFunc
	DebugMarkerSetObjectTag            vk.DebugMarkerSetObjectTagFunc
	SetDebugUtilsObjectName            vk.SetDebugUtilsObjectNameFunc
	CmdDebugMarkerBegin                vk.CmdDebugMarkerBeginFunc
	CmdDebugMarkerEnd                  vk.CmdDebugMarkerEndFunc
	CmdDebugMarkerInsert               vk.CmdDebugMarkerInsertFunc
}

// DeviceRecord holds the function pointers resolved from the next link at
// device-creation time, plus the owning physical device. Owned exclusively
// by the Registry.
type DeviceRecord struct {
	PhysicalDevice vk.PhysicalDevice

	GetDeviceProcAddr        vk.GetDeviceProcAddrFunc
	DestroyDevice            vk.DestroyDeviceFunc
	DebugMarkerSetObjectName vk.DebugMarkerSetObjectNameFunc
	DebugMarkerSetObjectTag  vk.DebugMarkerSetObjectTagFunc
}

// Registry is the process-wide store of resolved next-link function tables.
// It holds at most one InstanceRecord - the layer chain hands this layer a
// single instance per process in practice - and one DeviceRecord per created
// device. All access is serialized under a single mutex, which is never held
// across a forwarded call into the next link.
type Registry struct {
	mu       sync.Mutex
	instance *InstanceRecord
	devices  map[vk.Device]*DeviceRecord
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{devices: map[vk.Device]*DeviceRecord{}}
}

// SetInstance installs the instance record, replacing any previous one.
func (r *Registry) SetInstance(rec *InstanceRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.instance = rec
}

// Instance returns the installed instance record, or nil if no instance has
// been bootstrapped through this layer.
func (r *Registry) Instance() *InstanceRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.instance
}

// ClearInstance removes the instance record.
func (r *Registry) ClearInstance() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.instance = nil
}

// AddDevice registers the device record under the given handle. A handle is
// registered at most once: a second registration fails with
// ErrDuplicateRegistration and leaves the first record unchanged.
func (r *Registry) AddDevice(handle vk.Device, rec *DeviceRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.devices[handle]; ok {
		return ErrDuplicateRegistration
	}
	r.devices[handle] = rec
	return nil
}

// Device returns the record registered under the given handle, or nil if the
// handle was never registered.
func (r *Registry) Device(handle vk.Device) *DeviceRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.devices[handle]
}

// RemoveDevice removes the record registered under the given handle, if any.
func (r *Registry) RemoveDevice(handle vk.Device) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.devices, handle)
}
