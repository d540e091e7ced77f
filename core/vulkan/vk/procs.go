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

package vk

// VoidFunction is a callable entry point returned by a proc-address getter.
// Callers type-assert it to the concrete function type for the name they
// looked up. A nil VoidFunction means the name could not be resolved.
type VoidFunction interface{}

// GetInstanceProcAddrFunc resolves an instance-scoped function by name.
type GetInstanceProcAddrFunc func(instance Instance, name string) VoidFunction

// GetDeviceProcAddrFunc resolves a device-scoped function by name.
type GetDeviceProcAddrFunc func(device Device, name string) VoidFunction

// CreateInstanceFunc is the signature of vkCreateInstance.
type CreateInstanceFunc func(info *InstanceCreateInfo, allocator *AllocationCallbacks, out *Instance) Result

// DestroyInstanceFunc is the signature of vkDestroyInstance.
type DestroyInstanceFunc func(instance Instance, allocator *AllocationCallbacks)

// CreateDeviceFunc is the signature of vkCreateDevice.
type CreateDeviceFunc func(gpu PhysicalDevice, info *DeviceCreateInfo, allocator *AllocationCallbacks, out *Device) Result

// DestroyDeviceFunc is the signature of vkDestroyDevice.
type DestroyDeviceFunc func(device Device, allocator *AllocationCallbacks)

// DebugMarkerSetObjectNameFunc is the signature of
// vkDebugMarkerSetObjectNameEXT.
type DebugMarkerSetObjectNameFunc func(device Device, info *DebugMarkerObjectNameInfo) Result

// DebugMarkerSetObjectTagFunc is the signature of
// vkDebugMarkerSetObjectTagEXT.
type DebugMarkerSetObjectTagFunc func(device Device, info *DebugMarkerObjectTagInfo) Result

// SetDebugUtilsObjectNameFunc is the signature of
// vkSetDebugUtilsObjectNameEXT.
type SetDebugUtilsObjectNameFunc func(device Device, info *DebugUtilsObjectNameInfo) Result

// CmdDebugMarkerBeginFunc is the signature of vkCmdDebugMarkerBeginEXT.
type CmdDebugMarkerBeginFunc func(commandBuffer CommandBuffer, info *DebugMarkerMarkerInfo)

// CmdDebugMarkerEndFunc is the signature of vkCmdDebugMarkerEndEXT.
type CmdDebugMarkerEndFunc func(commandBuffer CommandBuffer)

// CmdDebugMarkerInsertFunc is the signature of vkCmdDebugMarkerInsertEXT.
type CmdDebugMarkerInsertFunc func(commandBuffer CommandBuffer, info *DebugMarkerMarkerInfo)

// EnumerateInstanceLayerPropertiesFunc is the signature of
// vkEnumerateInstanceLayerProperties.
type EnumerateInstanceLayerPropertiesFunc func(count *uint32, properties []LayerProperties) Result

// EnumerateDeviceLayerPropertiesFunc is the signature of
// vkEnumerateDeviceLayerProperties.
type EnumerateDeviceLayerPropertiesFunc func(gpu PhysicalDevice, count *uint32, properties []LayerProperties) Result

// EnumerateInstanceExtensionPropertiesFunc is the signature of
// vkEnumerateInstanceExtensionProperties.
type EnumerateInstanceExtensionPropertiesFunc func(layerName string, count *uint32, properties []ExtensionProperties) Result

// EnumerateDeviceExtensionPropertiesFunc is the signature of
// vkEnumerateDeviceExtensionProperties.
type EnumerateDeviceExtensionPropertiesFunc func(gpu PhysicalDevice, layerName string, count *uint32, properties []ExtensionProperties) Result
