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

// Package vk models the slice of the Vulkan API surface needed by an
// interception layer: opaque handles, result codes, the loader's layer-link
// chain, and the signatures of the entry points the layer intercepts or
// forwards.
package vk

import "fmt"

// Handles are opaque to the layer. They are only ever compared, stored and
// passed back to the next link, never dereferenced.
type (
	// Instance is an opaque handle to a Vulkan instance.
	Instance uint64
	// PhysicalDevice is an opaque handle to a physical device.
	PhysicalDevice uint64
	// Device is an opaque handle to a logical device.
	Device uint64
	// CommandBuffer is an opaque handle to a command buffer.
	CommandBuffer uint64
)

// NullInstance is the null instance handle, used when resolving global
// functions through an instance proc-address getter.
const NullInstance = Instance(0)

// Result is a Vulkan result code.
type Result int32

const (
	// Success is the result code of a successful call.
	Success Result = 0
	// Incomplete indicates a two-call enumeration returned fewer entries than
	// are available.
	Incomplete Result = 5
	// ErrorInitializationFailed indicates a call failed during object
	// initialization.
	ErrorInitializationFailed Result = -3
	// ErrorExtensionNotPresent indicates a requested extension function is
	// not available.
	ErrorExtensionNotPresent Result = -7
)

func (r Result) String() string {
	switch r {
	case Success:
		return "VK_SUCCESS"
	case Incomplete:
		return "VK_INCOMPLETE"
	case ErrorInitializationFailed:
		return "VK_ERROR_INITIALIZATION_FAILED"
	case ErrorExtensionNotPresent:
		return "VK_ERROR_EXTENSION_NOT_PRESENT"
	default:
		return fmt.Sprintf("VkResult(%d)", int32(r))
	}
}

// ObjectType is the debug-marker object type of a named object.
type ObjectType int32

// MakeVersion packs a major.minor.patch version the way the Vulkan header
// does.
func MakeVersion(major, minor, patch uint32) uint32 {
	return major<<22 | minor<<12 | patch
}

// AllocationCallbacks is the caller-supplied allocator. The layer treats it
// as opaque and passes it through to the next link unmodified.
type AllocationCallbacks struct {
	UserData interface{}
}

// InstanceCreateInfo holds the parameters of a CreateInstance call.
type InstanceCreateInfo struct {
	// Next is the head of the extension structure chain.
	Next Structure
	// ApplicationName is the name the application identifies itself with.
	ApplicationName string
	// EnabledLayers are the layer names requested by the application.
	EnabledLayers []string
	// EnabledExtensions are the extension names requested by the application.
	EnabledExtensions []string
}

// DeviceCreateInfo holds the parameters of a CreateDevice call.
type DeviceCreateInfo struct {
	// Next is the head of the extension structure chain.
	Next Structure
	// EnabledExtensions are the extension names requested for the device.
	EnabledExtensions []string
}

// DebugMarkerObjectNameInfo names an object for debugging tools.
type DebugMarkerObjectNameInfo struct {
	ObjectType ObjectType
	Object     uint64
	ObjectName string
}

// DebugMarkerObjectTagInfo attaches an opaque tag blob to an object.
type DebugMarkerObjectTagInfo struct {
	ObjectType ObjectType
	Object     uint64
	TagName    uint64
	Tag        []byte
}

// DebugUtilsObjectNameInfo names an object through the debug-utils extension.
type DebugUtilsObjectNameInfo struct {
	ObjectType   ObjectType
	ObjectHandle uint64
	ObjectName   string
}

// DebugMarkerMarkerInfo describes a command-buffer marker region.
type DebugMarkerMarkerInfo struct {
	MarkerName string
	Color      [4]float32
}

// LayerProperties describes a layer to the two-call enumeration entry points.
type LayerProperties struct {
	LayerName             string
	SpecVersion           uint32
	ImplementationVersion uint32
	Description           string
}

// ExtensionProperties describes an extension to the two-call enumeration
// entry points.
type ExtensionProperties struct {
	ExtensionName string
	SpecVersion   uint32
}
