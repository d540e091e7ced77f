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

package vkapi_test

import (
	"context"
	"testing"

	"github.com/rschiu/gapid/core/log"
	"github.com/rschiu/gapid/core/vulkan/vk"
	"github.com/rschiu/gapid/core/vulkan/vkapi"
	"github.com/rschiu/gapid/gapis/perfetto/tracing"
)

// fakeDriver stands in for the next link down the chain: the terminating ICD
// as the loader would present it. It records what was forwarded to it.
type fakeDriver struct {
	instanceHandle vk.Instance
	deviceHandle   vk.Device
	failCreate     bool

	extensions []vk.ExtensionProperties

	createdInstances   int
	createdDevices     int
	destroyedInstances []vk.Instance
	destroyedDevices   []vk.Device
	objectTags         []string
	debugUtilsNames    []string
	pings              int
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		instanceHandle: 0x1000,
		deviceHandle:   0x2000,
		extensions: []vk.ExtensionProperties{
			{ExtensionName: "VK_KHR_swapchain", SpecVersion: 70},
		},
	}
}

func (d *fakeDriver) getInstanceProcAddr(instance vk.Instance, name string) vk.VoidFunction {
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
	case "vkDebugMarkerSetObjectTagEXT":
		return vk.DebugMarkerSetObjectTagFunc(d.setObjectTag)
	case "vkSetDebugUtilsObjectNameEXT":
		return vk.SetDebugUtilsObjectNameFunc(d.setDebugUtilsName)
	case "vkDriverPing":
		return func() { d.pings++ }
	}
	return nil
}

func (d *fakeDriver) getDeviceProcAddr(device vk.Device, name string) vk.VoidFunction {
	switch name {
	case "vkGetDeviceProcAddr":
		return vk.GetDeviceProcAddrFunc(d.getDeviceProcAddr)
	case "vkDestroyDevice":
		return vk.DestroyDeviceFunc(d.destroyDevice)
	case "vkDebugMarkerSetObjectTagEXT":
		return vk.DebugMarkerSetObjectTagFunc(d.setObjectTag)
	case "vkDriverPing":
		return func() { d.pings++ }
	}
	return nil
}

func (d *fakeDriver) createInstance(info *vk.InstanceCreateInfo, allocator *vk.AllocationCallbacks, out *vk.Instance) vk.Result {
	if d.failCreate {
		return vk.ErrorInitializationFailed
	}
	d.createdInstances++
	*out = d.instanceHandle
	return vk.Success
}

func (d *fakeDriver) destroyInstance(instance vk.Instance, allocator *vk.AllocationCallbacks) {
	d.destroyedInstances = append(d.destroyedInstances, instance)
}

func (d *fakeDriver) createDevice(gpu vk.PhysicalDevice, info *vk.DeviceCreateInfo, allocator *vk.AllocationCallbacks, out *vk.Device) vk.Result {
	if d.failCreate {
		return vk.ErrorInitializationFailed
	}
	d.createdDevices++
	*out = d.deviceHandle
	return vk.Success
}

func (d *fakeDriver) destroyDevice(device vk.Device, allocator *vk.AllocationCallbacks) {
	d.destroyedDevices = append(d.destroyedDevices, device)
}

func (d *fakeDriver) enumerateDeviceExtensions(gpu vk.PhysicalDevice, layerName string, count *uint32, properties []vk.ExtensionProperties) vk.Result {
	if properties == nil {
		*count = uint32(len(d.extensions))
		return vk.Success
	}
	n := copy(properties, d.extensions[:minInt(int(*count), len(d.extensions))])
	*count = uint32(n)
	if n < len(d.extensions) {
		return vk.Incomplete
	}
	return vk.Success
}

func (d *fakeDriver) setObjectTag(device vk.Device, info *vk.DebugMarkerObjectTagInfo) vk.Result {
	d.objectTags = append(d.objectTags, string(info.Tag))
	return vk.Success
}

func (d *fakeDriver) setDebugUtilsName(device vk.Device, info *vk.DebugUtilsObjectNameInfo) vk.Result {
	d.debugUtilsNames = append(d.debugUtilsNames, info.ObjectName)
	return vk.Success
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// instanceChain builds an instance creation info whose extension chain
// carries a single-link loader node pointing at the driver.
func instanceChain(d *fakeDriver) (*vk.InstanceCreateInfo, *vk.LayerCreateInfo) {
	node := &vk.LayerCreateInfo{
		SType:    vk.StructureTypeLoaderInstanceCreateInfo,
		Function: vk.LayerLinkInfo,
		Layer: &vk.LayerLink{
			NextGetInstanceProcAddr: d.getInstanceProcAddr,
			NextGetDeviceProcAddr:   d.getDeviceProcAddr,
		},
	}
	return &vk.InstanceCreateInfo{Next: node}, node
}

// deviceChain builds a device creation info whose extension chain carries a
// single-link loader node pointing at the driver.
func deviceChain(d *fakeDriver) (*vk.DeviceCreateInfo, *vk.LayerCreateInfo) {
	node := &vk.LayerCreateInfo{
		SType:    vk.StructureTypeLoaderDeviceCreateInfo,
		Function: vk.LayerLinkInfo,
		Layer: &vk.LayerLink{
			NextGetInstanceProcAddr: d.getInstanceProcAddr,
			NextGetDeviceProcAddr:   d.getDeviceProcAddr,
		},
	}
	return &vk.DeviceCreateInfo{Next: node}, node
}

type testLayer struct {
	ctx      context.Context
	driver   *fakeDriver
	registry *vkapi.Registry
	system   *tracing.System
	layer    *vkapi.Layer
}

func newTestLayer(t *testing.T) *testLayer {
	ctx := log.Testing(t)
	registry := vkapi.NewRegistry()
	system := tracing.NewSystem()
	return &testLayer{
		ctx:      ctx,
		driver:   newFakeDriver(),
		registry: registry,
		system:   system,
		layer:    vkapi.NewLayer(ctx, registry, system),
	}
}

// bootstrapInstance runs CreateInstance through the fake driver and fails the
// test if it does not succeed.
func (f *testLayer) bootstrapInstance(t *testing.T) vk.Instance {
	info, _ := instanceChain(f.driver)
	var instance vk.Instance
	if result := f.layer.CreateInstance(info, nil, &instance); result != vk.Success {
		t.Fatalf("CreateInstance returned %v", result)
	}
	return instance
}

// bootstrapDevice runs CreateDevice through the fake driver and fails the
// test if it does not succeed.
func (f *testLayer) bootstrapDevice(t *testing.T, gpu vk.PhysicalDevice) vk.Device {
	info, _ := deviceChain(f.driver)
	var device vk.Device
	if result := f.layer.CreateDevice(gpu, info, nil, &device); result != vk.Success {
		t.Fatalf("CreateDevice returned %v", result)
	}
	return device
}
