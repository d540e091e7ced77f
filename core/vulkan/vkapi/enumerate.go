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
	"github.com/rschiu/gapid/core/log"
	"github.com/rschiu/gapid/core/vulkan/vk"
)

var layerProperties = vk.LayerProperties{
	LayerName:             LayerName,
	SpecVersion:           vk.MakeVersion(1, 0, 5),
	ImplementationVersion: 1,
	Description:           "Vk Api",
}

var deviceExtensions = []vk.ExtensionProperties{
	{ExtensionName: "VK_EXT_debug_marker", SpecVersion: 4},
}

// layerProps implements the two-call convention for this layer's single
// layer property: a nil buffer reports the count, a non-nil buffer is filled
// up to the caller-provided count.
func layerProps(count *uint32, properties []vk.LayerProperties) vk.Result {
	if properties == nil {
		*count = 1
		return vk.Success
	}
	if *count == 0 {
		return vk.Success
	}
	properties[0] = layerProperties
	*count = 1
	return vk.Success
}

// EnumerateInstanceLayerProperties intercepts
// vkEnumerateInstanceLayerProperties, reporting this layer's properties.
func (l *Layer) EnumerateInstanceLayerProperties(count *uint32, properties []vk.LayerProperties) vk.Result {
	log.D(l.ctx, "vkEnumerateInstanceLayerProperties")
	return layerProps(count, properties)
}

// EnumerateDeviceLayerProperties intercepts vkEnumerateDeviceLayerProperties,
// reporting this layer's properties.
func (l *Layer) EnumerateDeviceLayerProperties(gpu vk.PhysicalDevice, count *uint32, properties []vk.LayerProperties) vk.Result {
	log.D(l.ctx, "vkEnumerateDeviceLayerProperties")
	return layerProps(count, properties)
}

// EnumerateInstanceExtensionProperties intercepts
// vkEnumerateInstanceExtensionProperties. This layer contributes no instance
// extensions.
func (l *Layer) EnumerateInstanceExtensionProperties(layerName string, count *uint32, properties []vk.ExtensionProperties) vk.Result {
	log.D(l.ctx, "vkEnumerateInstanceExtensionProperties")
	if count != nil {
		*count = 0
	}
	return vk.Success
}

// EnumerateDeviceExtensionProperties intercepts
// vkEnumerateDeviceExtensionProperties. When the caller asks for exactly
// this layer's extensions, only this layer's contribution is reported and
// nothing is forwarded. Otherwise the next link reports first and this
// layer's extensions are appended in the remaining buffer space.
func (l *Layer) EnumerateDeviceExtensionProperties(gpu vk.PhysicalDevice, layerName string, count *uint32, properties []vk.ExtensionProperties) vk.Result {
	log.D(l.ctx, "vkEnumerateDeviceExtensionProperties")

	if layerName == LayerName {
		if properties == nil {
			*count = uint32(len(deviceExtensions))
			return vk.Success
		}
		n := copy(properties[:min(int(*count), len(properties))], deviceExtensions)
		*count = uint32(n)
		return vk.Success
	}

	rec := l.registry.Instance()
	if rec == nil {
		panic(ErrUnknownHandle)
	}
	next := rec.EnumerateDeviceExtensionProperties

	if properties == nil {
		result := next(gpu, layerName, count, nil)
		if result == vk.Success {
			*count += uint32(len(deviceExtensions))
		}
		return result
	}

	// Let the next link fill first, then append this layer's extensions at
	// the next available slot. Never write past the caller-provided count.
	budget := *count
	filled := budget
	result := next(gpu, layerName, &filled, properties)
	if result != vk.Success {
		return result
	}
	for _, ext := range deviceExtensions {
		if filled >= budget {
			break
		}
		properties[filled] = ext
		filled++
	}
	*count = filled
	return vk.Success
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
