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

// Package vkapi implements the VkApi interception layer.
//
// The layer inserts itself into the loader's layer chain, intercepts a small
// set of entry points, forwards everything else to the next link, and emits
// trace packets describing GPU activity on two data source channels.
package vkapi

import (
	"context"
	"sync"

	"github.com/rschiu/gapid/core/log"
	"github.com/rschiu/gapid/core/vulkan/vk"
	"github.com/rschiu/gapid/gapis/perfetto/tracing"
)

// LayerName is the name this layer advertises to the loader.
const LayerName = "VkApi"

// Layer is the interception layer. It is constructed once per process and
// owns its Registry and trace data sources.
type Layer struct {
	ctx      context.Context
	registry *Registry
	system   *tracing.System

	registerOnce sync.Once
	vkAPI        *tracing.DataSource
	renderStages *tracing.DataSource

	// markerCalls counts intercepted debug-marker naming calls. The count is
	// the timestamp source for the vendor API event channel.
	markerCalls uint64

	instanceProcs map[string]vk.VoidFunction
	deviceProcs   map[string]vk.VoidFunction
}

// NewLayer returns a Layer that registers its records in registry and its
// trace data sources with system. The context is retained for logging from
// the fixed-signature entry points.
func NewLayer(ctx context.Context, registry *Registry, system *tracing.System) *Layer {
	l := &Layer{
		ctx:      log.PutTag(ctx, LayerName),
		registry: registry,
		system:   system,
	}
	l.buildProcTables()
	return l
}

// CreateInstance intercepts vkCreateInstance. It is all book-keeping and
// passthrough to the next layer (or ICD) in the chain.
func (l *Layer) CreateInstance(info *vk.InstanceCreateInfo, allocator *vk.AllocationCallbacks, out *vk.Instance) vk.Result {
	ctx := l.ctx
	log.I(ctx, "vkCreateInstance")

	// Instance creation is the bootstrapping point for the trace channels.
	l.registerOnce.Do(func() { l.registerDataSources(ctx) })

	layerInfo := vk.FindLayerLink(info.Next, vk.InstanceChain)
	if layerInfo == nil || layerInfo.Layer == nil {
		log.E(ctx, "No loader link info on the instance create chain")
		return vk.ErrorInitializationFailed
	}

	// Grab the pointer to the next vkGetInstanceProcAddr in the chain.
	getInstanceProcAddr := layerInfo.Layer.NextGetInstanceProcAddr
	if getInstanceProcAddr == nil {
		return vk.ErrorInitializationFailed
	}

	// From that get the next vkCreateInstance function.
	createInstance, _ := getInstanceProcAddr(vk.NullInstance, "vkCreateInstance").(vk.CreateInstanceFunc)
	if createInstance == nil {
		return vk.ErrorInitializationFailed
	}

	// The next layer may read from the link info, so advance the cursor
	// for it before delegating.
	layerInfo.Layer = layerInfo.Layer.Next

	result := createInstance(info, allocator, out)

	// If it failed, then we don't need to track this instance.
	if result != vk.Success {
		return result
	}
	instance := *out

	rec := &InstanceRecord{
		Handle: instance,
	}
	rec.GetInstanceProcAddr, _ = getInstanceProcAddr(instance, "vkGetInstanceProcAddr").(vk.GetInstanceProcAddrFunc)
	rec.DestroyInstance, _ = getInstanceProcAddr(instance, "vkDestroyInstance").(vk.DestroyInstanceFunc)
	rec.EnumerateDeviceExtensionProperties, _ = getInstanceProcAddr(instance, "vkEnumerateDeviceExtensionProperties").(vk.EnumerateDeviceExtensionPropertiesFunc)
	rec.DebugMarkerSetObjectName, _ = getInstanceProcAddr(instance, "vkDebugMarkerSetObjectNameEXT").(vk.DebugMarkerSetObjectNameFunc)
	rec.DebugMarkerSetObjectTag, _ = getInstanceProcAddr(instance, "vkDebugMarkerSetObjectTagEXT").(vk.DebugMarkerSetObjectTagFunc)
	rec.SetDebugUtilsObjectName, _ = getInstanceProcAddr(instance, "vkSetDebugUtilsObjectNameEXT").(vk.SetDebugUtilsObjectNameFunc)
	rec.CmdDebugMarkerBegin, _ = getInstanceProcAddr(instance, "vkCmdDebugMarkerBeginEXT").(vk.CmdDebugMarkerBeginFunc)
	rec.CmdDebugMarkerEnd, _ = getInstanceProcAddr(instance, "vkCmdDebugMarkerEndEXT").(vk.CmdDebugMarkerEndFunc)
	rec.CmdDebugMarkerInsert, _ = getInstanceProcAddr(instance, "vkCmdDebugMarkerInsertEXT").(vk.CmdDebugMarkerInsertFunc)

	// The next proc-address getter and device extension enumeration are
	// load-bearing for dispatch; without them the instance is unusable to
	// this layer.
	if rec.GetInstanceProcAddr == nil || rec.EnumerateDeviceExtensionProperties == nil {
		return vk.ErrorInitializationFailed
	}

	l.registry.SetInstance(rec)
	log.I(ctx, "Tracking instance %v", instance)
	return result
}

// CreateDevice intercepts vkCreateDevice. It is all book-keeping and
// passthrough to the next layer (or ICD) in the chain.
func (l *Layer) CreateDevice(gpu vk.PhysicalDevice, info *vk.DeviceCreateInfo, allocator *vk.AllocationCallbacks, out *vk.Device) vk.Result {
	ctx := l.ctx
	log.I(ctx, "vkCreateDevice")

	layerInfo := vk.FindLayerLink(info.Next, vk.DeviceChain)
	if layerInfo == nil || layerInfo.Layer == nil {
		log.E(ctx, "No loader link info on the device create chain")
		return vk.ErrorInitializationFailed
	}

	// vkCreateDevice must be resolved through the instance-level getter of
	// the link: there is no device to resolve against yet.
	getInstanceProcAddr := layerInfo.Layer.NextGetInstanceProcAddr
	if getInstanceProcAddr == nil {
		return vk.ErrorInitializationFailed
	}
	createDevice, _ := getInstanceProcAddr(vk.NullInstance, "vkCreateDevice").(vk.CreateDeviceFunc)
	if createDevice == nil {
		return vk.ErrorInitializationFailed
	}

	// The device-level functions of the next link resolve through the
	// link's device getter. Capture it now, before the cursor is advanced.
	getDeviceProcAddr := layerInfo.Layer.NextGetDeviceProcAddr
	if getDeviceProcAddr == nil {
		return vk.ErrorInitializationFailed
	}

	// The next layer may read from the link info, so advance the cursor
	// for it before delegating.
	layerInfo.Layer = layerInfo.Layer.Next

	result := createDevice(gpu, info, allocator, out)

	// If we failed, then we don't store the associated pointers.
	if result != vk.Success {
		return result
	}
	device := *out

	rec := &DeviceRecord{
		PhysicalDevice: gpu,
	}
	rec.GetDeviceProcAddr, _ = getDeviceProcAddr(device, "vkGetDeviceProcAddr").(vk.GetDeviceProcAddrFunc)
	rec.DestroyDevice, _ = getDeviceProcAddr(device, "vkDestroyDevice").(vk.DestroyDeviceFunc)
	rec.DebugMarkerSetObjectName, _ = getDeviceProcAddr(device, "vkDebugMarkerSetObjectNameEXT").(vk.DebugMarkerSetObjectNameFunc)
	rec.DebugMarkerSetObjectTag, _ = getDeviceProcAddr(device, "vkDebugMarkerSetObjectTagEXT").(vk.DebugMarkerSetObjectTagFunc)

	if rec.GetDeviceProcAddr == nil {
		return vk.ErrorInitializationFailed
	}

	if err := l.registry.AddDevice(device, rec); err != nil {
		// The next link created the device but this layer cannot track it.
		// Surfacing the failure loses the device; that is preferred over
		// silently clobbering the first registration.
		log.Err(ctx, err, "Registering device")
		return vk.ErrorInitializationFailed
	}
	log.I(ctx, "Tracking device %v on physical device %v", device, gpu)
	return result
}

// DestroyInstance intercepts vkDestroyInstance for book-keeping: the call is
// forwarded and the instance record is dropped.
func (l *Layer) DestroyInstance(instance vk.Instance, allocator *vk.AllocationCallbacks) {
	log.I(l.ctx, "vkDestroyInstance")
	if rec := l.registry.Instance(); rec != nil && rec.DestroyInstance != nil {
		rec.DestroyInstance(instance, allocator)
	}
	l.registry.ClearInstance()
}

// DestroyDevice intercepts vkDestroyDevice for book-keeping: the call is
// forwarded and the device record is dropped.
func (l *Layer) DestroyDevice(device vk.Device, allocator *vk.AllocationCallbacks) {
	log.I(l.ctx, "vkDestroyDevice")
	if rec := l.registry.Device(device); rec != nil && rec.DestroyDevice != nil {
		rec.DestroyDevice(device, allocator)
	}
	l.registry.RemoveDevice(device)
}
