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

// Package pb holds the protocol buffer messages of the trace wire format.
//
// The messages mirror the subset of the Perfetto GPU trace schema emitted by
// the interception layer and are maintained by hand, marshaled through the
// proto struct tags.
package pb

import "github.com/golang/protobuf/proto"

// TracePacket is the unit of the trace stream. Exactly one of the payload
// fields is set per packet.
type TracePacket struct {
	// Timestamp is the packet timestamp on the channel's timeline.
	Timestamp uint64 `protobuf:"varint,1,opt,name=timestamp,proto3" json:"timestamp,omitempty"`
	// TraceUuid identifies the trace session. Emitted once as the leading
	// packet of a session.
	TraceUuid []byte `protobuf:"bytes,2,opt,name=trace_uuid,json=traceUuid,proto3" json:"trace_uuid,omitempty"`
	// VulkanDebugMarker is the payload of the vendor API event channel.
	VulkanDebugMarker *VulkanDebugMarker `protobuf:"bytes,3,opt,name=vulkan_debug_marker,json=vulkanDebugMarker,proto3" json:"vulkan_debug_marker,omitempty"`
	// GpuRenderStageEvent is the payload of the render-stage event channel.
	GpuRenderStageEvent *GpuRenderStageEvent `protobuf:"bytes,4,opt,name=gpu_render_stage_event,json=gpuRenderStageEvent,proto3" json:"gpu_render_stage_event,omitempty"`
	XXX_unrecognized    []byte               `json:"-"`
}

func (m *TracePacket) Reset()         { *m = TracePacket{} }
func (m *TracePacket) String() string { return proto.CompactTextString(m) }
func (*TracePacket) ProtoMessage()    {}

// VulkanDebugMarker records a debug-marker object naming call.
type VulkanDebugMarker struct {
	// VkDevice is the device handle the object belongs to.
	VkDevice uint64 `protobuf:"varint,1,opt,name=vk_device,json=vkDevice,proto3" json:"vk_device,omitempty"`
	// ObjectType is the Vulkan object type of the named object.
	ObjectType int32 `protobuf:"varint,2,opt,name=object_type,json=objectType,proto3" json:"object_type,omitempty"`
	// Object is the object handle being named.
	Object uint64 `protobuf:"varint,3,opt,name=object,proto3" json:"object,omitempty"`
	// ObjectName is the name given to the object.
	ObjectName       string `protobuf:"bytes,4,opt,name=object_name,json=objectName,proto3" json:"object_name,omitempty"`
	XXX_unrecognized []byte `json:"-"`
}

func (m *VulkanDebugMarker) Reset()         { *m = VulkanDebugMarker{} }
func (m *VulkanDebugMarker) String() string { return proto.CompactTextString(m) }
func (*VulkanDebugMarker) ProtoMessage()    {}

// GpuRenderStageEvent records activity of a hardware queue stage. The first
// packet on the channel carries Specifications declaring the queue and stage
// names the later events reference by id.
type GpuRenderStageEvent struct {
	// EventId is unique and monotonically increasing within a channel
	// lifetime.
	EventId uint64 `protobuf:"varint,1,opt,name=event_id,json=eventId,proto3" json:"event_id,omitempty"`
	// Duration of the stage activity, in the channel's time unit.
	Duration uint64 `protobuf:"varint,2,opt,name=duration,proto3" json:"duration,omitempty"`
	// HwQueueId indexes into Specifications.HwQueue.
	HwQueueId int32 `protobuf:"varint,3,opt,name=hw_queue_id,json=hwQueueId,proto3" json:"hw_queue_id,omitempty"`
	// StageId indexes into Specifications.Stage.
	StageId int32 `protobuf:"varint,4,opt,name=stage_id,json=stageId,proto3" json:"stage_id,omitempty"`
	// Context identifies the GPU context the work ran on.
	Context uint64 `protobuf:"varint,5,opt,name=context,proto3" json:"context,omitempty"`
	// RenderTargetHandle is the handle of the render target of the work.
	RenderTargetHandle uint64 `protobuf:"varint,6,opt,name=render_target_handle,json=renderTargetHandle,proto3" json:"render_target_handle,omitempty"`
	// Specifications is only set on the channel's one-time metadata packet.
	Specifications   *Specifications `protobuf:"bytes,7,opt,name=specifications,proto3" json:"specifications,omitempty"`
	XXX_unrecognized []byte          `json:"-"`
}

func (m *GpuRenderStageEvent) Reset()         { *m = GpuRenderStageEvent{} }
func (m *GpuRenderStageEvent) String() string { return proto.CompactTextString(m) }
func (*GpuRenderStageEvent) ProtoMessage()    {}

// Specifications declares the named hardware queues and pipeline stages that
// render-stage events reference by id.
type Specifications struct {
	// HwQueue lists the hardware queues; GpuRenderStageEvent.HwQueueId is an
	// index into this list.
	HwQueue []*Description `protobuf:"bytes,1,rep,name=hw_queue,json=hwQueue,proto3" json:"hw_queue,omitempty"`
	// Stage lists the pipeline stages; GpuRenderStageEvent.StageId is an
	// index into this list.
	Stage            []*Description `protobuf:"bytes,2,rep,name=stage,proto3" json:"stage,omitempty"`
	XXX_unrecognized []byte         `json:"-"`
}

func (m *Specifications) Reset()         { *m = Specifications{} }
func (m *Specifications) String() string { return proto.CompactTextString(m) }
func (*Specifications) ProtoMessage()    {}

// Description names a hardware queue or pipeline stage.
type Description struct {
	// Name is the human readable name.
	Name string `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	// Description optionally elaborates on the name.
	Description      string `protobuf:"bytes,2,opt,name=description,proto3" json:"description,omitempty"`
	XXX_unrecognized []byte `json:"-"`
}

func (m *Description) Reset()         { *m = Description{} }
func (m *Description) String() string { return proto.CompactTextString(m) }
func (*Description) ProtoMessage()    {}
