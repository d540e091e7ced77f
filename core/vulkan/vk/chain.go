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

// StructureType discriminates the structures that can appear on a creation
// info extension chain.
type StructureType uint32

const (
	// StructureTypeLoaderInstanceCreateInfo marks the loader's
	// instance-creation chain node.
	StructureTypeLoaderInstanceCreateInfo StructureType = 47
	// StructureTypeLoaderDeviceCreateInfo marks the loader's device-creation
	// chain node.
	StructureTypeLoaderDeviceCreateInfo StructureType = 48
)

// Structure is a node on a creation-info extension chain. The chain is owned
// by the caller; the layer only ever reads it.
type Structure interface {
	// StructureType returns the discriminator of this node.
	StructureType() StructureType
	// NextStructure returns the next node on the chain, or nil at the end.
	NextStructure() Structure
}

// LayerFunction identifies what a loader chain node carries.
type LayerFunction uint32

const (
	// LayerLinkInfo marks a node carrying the link to the next layer in the
	// chain.
	LayerLinkInfo LayerFunction = iota
	// LoaderDataCallback marks a node carrying loader callbacks that are of
	// no interest to this layer.
	LoaderDataCallback
)

// LayerLink is one link of the loader's layer chain. Each layer captures the
// getters of its link and then advances the enclosing node's cursor to the
// next link before delegating, so nested layers see correct chain state.
type LayerLink struct {
	// Next is the link of the next layer down the chain, or nil for the
	// terminating driver link.
	Next *LayerLink
	// NextGetInstanceProcAddr is the next link's instance proc-address
	// getter.
	NextGetInstanceProcAddr GetInstanceProcAddrFunc
	// NextGetDeviceProcAddr is the next link's device proc-address getter.
	NextGetDeviceProcAddr GetDeviceProcAddrFunc
}

// LayerCreateInfo is the loader-provided chain node holding layer bootstrap
// data. The same shape is used for instance and device creation,
// discriminated by SType, matching the loader's wire layout.
type LayerCreateInfo struct {
	// SType is StructureTypeLoaderInstanceCreateInfo or
	// StructureTypeLoaderDeviceCreateInfo.
	SType StructureType
	// Next is the next node on the extension chain.
	Next Structure
	// Function says which union arm of the node is valid.
	Function LayerFunction
	// Layer is the current link cursor, valid when Function is
	// LayerLinkInfo. Mutated (advanced) by each layer during bootstrap.
	Layer *LayerLink
}

// StructureType returns the node's discriminator.
func (i *LayerCreateInfo) StructureType() StructureType { return i.SType }

// NextStructure returns the next node on the extension chain.
func (i *LayerCreateInfo) NextStructure() Structure { return i.Next }

// ChainVariant selects which flavor of loader chain node FindLayerLink looks
// for.
type ChainVariant int

const (
	// InstanceChain looks for the instance-creation loader node.
	InstanceChain ChainVariant = iota
	// DeviceChain looks for the device-creation loader node.
	DeviceChain
)

func (v ChainVariant) String() string {
	if v == InstanceChain {
		return "instance"
	}
	return "device"
}

func (v ChainVariant) structureType() StructureType {
	if v == InstanceChain {
		return StructureTypeLoaderInstanceCreateInfo
	}
	return StructureTypeLoaderDeviceCreateInfo
}

// maxChainDepth bounds chain traversal. The loader hands over short chains;
// anything longer is malformed (or cyclic) input.
const maxChainDepth = 64

// FindLayerLink walks the extension chain looking for the loader node that
// carries layer link information for the given variant. Returns nil if no
// such node exists within the traversal bound; callers must treat a nil
// result as fatal for bootstrap.
func FindLayerLink(chain Structure, variant ChainVariant) *LayerCreateInfo {
	want := variant.structureType()
	for i := 0; chain != nil && i < maxChainDepth; i++ {
		if chain.StructureType() == want {
			if info, ok := chain.(*LayerCreateInfo); ok && info.Function == LayerLinkInfo {
				return info
			}
		}
		chain = chain.NextStructure()
	}
	return nil
}
