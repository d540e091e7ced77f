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

// buildProcTables builds the static tables of entry points this layer
// intercepts, per scope. Lookups are exact-match against these before
// anything is forwarded.
func (l *Layer) buildProcTables() {
	l.instanceProcs = map[string]vk.VoidFunction{
		"vkGetInstanceProcAddr":                  vk.GetInstanceProcAddrFunc(l.GetInstanceProcAddr),
		"vkGetDeviceProcAddr":                    vk.GetDeviceProcAddrFunc(l.GetDeviceProcAddr),
		"vkCreateInstance":                       vk.CreateInstanceFunc(l.CreateInstance),
		"vkDestroyInstance":                      vk.DestroyInstanceFunc(l.DestroyInstance),
		"vkCreateDevice":                         vk.CreateDeviceFunc(l.CreateDevice),
		"vkDestroyDevice":                        vk.DestroyDeviceFunc(l.DestroyDevice),
		"vkDebugMarkerSetObjectNameEXT":          vk.DebugMarkerSetObjectNameFunc(l.DebugMarkerSetObjectName),
		"vkDebugMarkerSetObjectTagEXT":           vk.DebugMarkerSetObjectTagFunc(l.DebugMarkerSetObjectTag),
		"vkSetDebugUtilsObjectNameEXT":           vk.SetDebugUtilsObjectNameFunc(l.SetDebugUtilsObjectName),
		"vkEnumerateInstanceLayerProperties":     vk.EnumerateInstanceLayerPropertiesFunc(l.EnumerateInstanceLayerProperties),
		"vkEnumerateDeviceLayerProperties":       vk.EnumerateDeviceLayerPropertiesFunc(l.EnumerateDeviceLayerProperties),
		"vkEnumerateInstanceExtensionProperties": vk.EnumerateInstanceExtensionPropertiesFunc(l.EnumerateInstanceExtensionProperties),
		"vkEnumerateDeviceExtensionProperties":   vk.EnumerateDeviceExtensionPropertiesFunc(l.EnumerateDeviceExtensionProperties),
	}

	l.deviceProcs = map[string]vk.VoidFunction{
		"vkGetDeviceProcAddr":           vk.GetDeviceProcAddrFunc(l.GetDeviceProcAddr),
		"vkDestroyDevice":               vk.DestroyDeviceFunc(l.DestroyDevice),
		"vkDebugMarkerSetObjectNameEXT": vk.DebugMarkerSetObjectNameFunc(l.DebugMarkerSetObjectName),
		"vkDebugMarkerSetObjectTagEXT":  vk.DebugMarkerSetObjectTagFunc(l.DebugMarkerSetObjectTag),
		"vkCmdDebugMarkerBeginEXT":      vk.CmdDebugMarkerBeginFunc(l.CmdDebugMarkerBegin),
		"vkCmdDebugMarkerEndEXT":        vk.CmdDebugMarkerEndFunc(l.CmdDebugMarkerEnd),
		"vkCmdDebugMarkerInsertEXT":     vk.CmdDebugMarkerInsertFunc(l.CmdDebugMarkerInsert),
	}
}

// GetInstanceProcAddr intercepts vkGetInstanceProcAddr. Names this layer
// intercepts resolve to the local implementation; everything else is
// forwarded to the next link's getter recorded at instance bootstrap.
//
// Requesting a forwarded name before an instance was bootstrapped through
// this layer is a caller contract violation and panics with
// ErrUnknownHandle.
func (l *Layer) GetInstanceProcAddr(instance vk.Instance, name string) vk.VoidFunction {
	if fn, ok := l.instanceProcs[name]; ok {
		log.D(l.ctx, "vkGetInstanceProcAddr intercepted: %s", name)
		return fn
	}

	rec := l.registry.Instance()
	if rec == nil {
		panic(ErrUnknownHandle)
	}
	return rec.GetInstanceProcAddr(instance, name)
}

// GetDeviceProcAddr intercepts vkGetDeviceProcAddr. Names this layer
// intercepts resolve to the local implementation; everything else is
// forwarded to the getter recorded for the device at device bootstrap.
//
// Requesting a forwarded name for a device that was never bootstrapped
// through this layer is a caller contract violation and panics with
// ErrUnknownHandle.
func (l *Layer) GetDeviceProcAddr(device vk.Device, name string) vk.VoidFunction {
	if fn, ok := l.deviceProcs[name]; ok {
		log.D(l.ctx, "vkGetDeviceProcAddr intercepted: %s", name)
		return fn
	}

	rec := l.registry.Device(device)
	if rec == nil {
		panic(ErrUnknownHandle)
	}
	return rec.GetDeviceProcAddr(device, name)
}

// CmdDebugMarkerBegin intercepts vkCmdDebugMarkerBeginEXT as a no-op so the
// extension surface this layer advertises stays callable even when the next
// link does not implement it.
func (l *Layer) CmdDebugMarkerBegin(commandBuffer vk.CommandBuffer, info *vk.DebugMarkerMarkerInfo) {
}

// CmdDebugMarkerEnd intercepts vkCmdDebugMarkerEndEXT as a no-op.
func (l *Layer) CmdDebugMarkerEnd(commandBuffer vk.CommandBuffer) {
}

// CmdDebugMarkerInsert intercepts vkCmdDebugMarkerInsertEXT as a no-op.
func (l *Layer) CmdDebugMarkerInsert(commandBuffer vk.CommandBuffer, info *vk.DebugMarkerMarkerInfo) {
}
