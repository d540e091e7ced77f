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

package main

import (
	"sync/atomic"

	"github.com/rschiu/gapid/core/vulkan/vk"
)

// stubDriver terminates the layer chain in-process, standing in for the ICD.
// It hands out fresh handles and implements just enough of the API surface
// for the layer to bootstrap against.
type stubDriver struct {
	handles uint64
}

func (d *stubDriver) newHandle() uint64 {
	return atomic.AddUint64(&d.handles, 1) | 0xd0000000
}

func (d *stubDriver) getInstanceProcAddr(instance vk.Instance, name string) vk.VoidFunction {
	switch name {
	case "vkGetInstanceProcAddr":
		return vk.GetInstanceProcAddrFunc(d.getInstanceProcAddr)
	case "vkCreateInstance":
		return vk.CreateInstanceFunc(d.createInstance)
	case "vkDestroyInstance":
		return vk.DestroyInstanceFunc(d.destroyInstance)
	case "vkCreateDevice":
		return vk.CreateDeviceFunc(d.createDevice)
	case "vkEnumerateDeviceExtensionProperties":
		return vk.EnumerateDeviceExtensionPropertiesFunc(d.enumerateDeviceExtensions)
	}
	return nil
}

func (d *stubDriver) getDeviceProcAddr(device vk.Device, name string) vk.VoidFunction {
	switch name {
	case "vkGetDeviceProcAddr":
		return vk.GetDeviceProcAddrFunc(d.getDeviceProcAddr)
	case "vkDestroyDevice":
		return vk.DestroyDeviceFunc(d.destroyDevice)
	}
	return nil
}

func (d *stubDriver) createInstance(info *vk.InstanceCreateInfo, allocator *vk.AllocationCallbacks, out *vk.Instance) vk.Result {
	*out = vk.Instance(d.newHandle())
	return vk.Success
}

func (d *stubDriver) destroyInstance(instance vk.Instance, allocator *vk.AllocationCallbacks) {}

func (d *stubDriver) createDevice(gpu vk.PhysicalDevice, info *vk.DeviceCreateInfo, allocator *vk.AllocationCallbacks, out *vk.Device) vk.Result {
	*out = vk.Device(d.newHandle())
	return vk.Success
}

func (d *stubDriver) destroyDevice(device vk.Device, allocator *vk.AllocationCallbacks) {}

func (d *stubDriver) enumerateDeviceExtensions(gpu vk.PhysicalDevice, layerName string, count *uint32, properties []vk.ExtensionProperties) vk.Result {
	if count != nil {
		*count = 0
	}
	return vk.Success
}

// instanceChain builds instance creation info with a single-link loader
// chain terminated by the stub driver.
func (d *stubDriver) instanceChain() *vk.InstanceCreateInfo {
	return &vk.InstanceCreateInfo{
		ApplicationName: "vktrace",
		Next: &vk.LayerCreateInfo{
			SType:    vk.StructureTypeLoaderInstanceCreateInfo,
			Function: vk.LayerLinkInfo,
			Layer: &vk.LayerLink{
				NextGetInstanceProcAddr: d.getInstanceProcAddr,
				NextGetDeviceProcAddr:   d.getDeviceProcAddr,
			},
		},
	}
}

// deviceChain builds device creation info with a single-link loader chain
// terminated by the stub driver.
func (d *stubDriver) deviceChain() *vk.DeviceCreateInfo {
	return &vk.DeviceCreateInfo{
		Next: &vk.LayerCreateInfo{
			SType:    vk.StructureTypeLoaderDeviceCreateInfo,
			Function: vk.LayerLinkInfo,
			Layer: &vk.LayerLink{
				NextGetInstanceProcAddr: d.getInstanceProcAddr,
				NextGetDeviceProcAddr:   d.getDeviceProcAddr,
			},
		},
	}
}
