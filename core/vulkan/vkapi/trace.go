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
	"context"
	"sync/atomic"

	"github.com/rschiu/gapid/core/log"
	"github.com/rschiu/gapid/core/vulkan/vk"
	"github.com/rschiu/gapid/gapis/perfetto/tracing"
	"github.com/rschiu/gapid/gapis/perfetto/tracing/pb"
)

const (
	// VkAPIDataSource is the name of the vendor API event channel.
	VkAPIDataSource = "vk_api"
	// RenderStageDataSource is the name of the render-stage event channel.
	RenderStageDataSource = "gpu.renderstages"

	// renderStageDuration is the fixed duration reported for every
	// render-stage event.
	renderStageDuration = 5
	// renderStageContext is the GPU context id reported for every
	// render-stage event.
	renderStageContext = 42
)

var (
	renderStageQueues = []string{"queue 0", "queue 1"}
	renderStageStages = []string{"stage 0", "stage 1", "stage 2"}
)

// renderStageState is the render-stage channel's private state. It is only
// ever touched under the channel's exclusive-access operation.
type renderStageState struct {
	specEmitted bool
	events      uint64
}

// registerDataSources advertises the two trace channels to the transport
// engine. Registration is idempotent on the engine side; this is invoked
// once per process from instance bootstrap.
func (l *Layer) registerDataSources(ctx context.Context) {
	l.vkAPI = l.system.RegisterDataSource(ctx, tracing.Descriptor{
		Name:    VkAPIDataSource,
		OnStart: func(ctx context.Context) { log.I(ctx, "VkApi data source started") },
		OnStop:  func(ctx context.Context) { log.I(ctx, "VkApi data source stopped") },
	})
	l.renderStages = l.system.RegisterDataSource(ctx, tracing.Descriptor{
		Name:    RenderStageDataSource,
		OnSetup: func(ctx context.Context) interface{} { return &renderStageState{} },
		OnStart: func(ctx context.Context) { log.I(ctx, "GpuRenderStage data source started") },
		OnStop:  func(ctx context.Context) { log.I(ctx, "GpuRenderStage data source stopped") },
	})
}

// DebugMarkerSetObjectName intercepts vkDebugMarkerSetObjectNameEXT. The
// call is consumed: one packet is emitted on the vendor API channel and one
// (plus the one-time specification packet) on the render-stage channel.
func (l *Layer) DebugMarkerSetObjectName(device vk.Device, info *vk.DebugMarkerObjectNameInfo) vk.Result {
	log.D(l.ctx, "vkDebugMarkerSetObjectNameEXT")
	cnt := atomic.AddUint64(&l.markerCalls, 1)

	l.vkAPI.Trace(func(tc *tracing.TraceContext) {
		packet := tc.NewTracePacket()
		packet.Timestamp = cnt*10 - 1
		packet.VulkanDebugMarker = &pb.VulkanDebugMarker{
			VkDevice:   uint64(device),
			ObjectType: int32(info.ObjectType),
			Object:     info.Object,
			ObjectName: info.ObjectName,
		}
	})

	l.renderStages.Trace(func(tc *tracing.TraceContext) {
		state := tc.State().(*renderStageState)
		if !state.specEmitted {
			// The specification packet must reach the consumer before any
			// data packet referencing the queue and stage ids. The channel
			// lock serializes this check-and-set with the emission.
			packet := tc.NewTracePacket()
			packet.Timestamp = 0
			packet.GpuRenderStageEvent = &pb.GpuRenderStageEvent{
				Specifications: renderStageSpecifications(),
			}
			state.specEmitted = true
		}

		state.events++
		id := state.events
		packet := tc.NewTracePacket()
		packet.Timestamp = id * 10
		packet.GpuRenderStageEvent = &pb.GpuRenderStageEvent{
			EventId:            id,
			Duration:           renderStageDuration,
			HwQueueId:          int32(id % uint64(len(renderStageQueues))),
			StageId:            int32(id % uint64(len(renderStageStages))),
			Context:            renderStageContext,
			RenderTargetHandle: info.Object,
		}
	})

	return vk.Success
}

func renderStageSpecifications() *pb.Specifications {
	spec := &pb.Specifications{}
	for _, name := range renderStageQueues {
		spec.HwQueue = append(spec.HwQueue, &pb.Description{Name: name})
	}
	for _, name := range renderStageStages {
		spec.Stage = append(spec.Stage, &pb.Description{Name: name})
	}
	return spec
}

// DebugMarkerSetObjectTag intercepts vkDebugMarkerSetObjectTagEXT and
// forwards it through the instance record.
func (l *Layer) DebugMarkerSetObjectTag(device vk.Device, info *vk.DebugMarkerObjectTagInfo) vk.Result {
	log.D(l.ctx, "vkDebugMarkerSetObjectTagEXT")
	rec := l.registry.Instance()
	if rec == nil || rec.DebugMarkerSetObjectTag == nil {
		return vk.ErrorExtensionNotPresent
	}
	return rec.DebugMarkerSetObjectTag(device, info)
}

// SetDebugUtilsObjectName intercepts vkSetDebugUtilsObjectNameEXT and
// forwards it through the instance record.
func (l *Layer) SetDebugUtilsObjectName(device vk.Device, info *vk.DebugUtilsObjectNameInfo) vk.Result {
	log.D(l.ctx, "vkSetDebugUtilsObjectNameEXT")
	rec := l.registry.Instance()
	if rec == nil || rec.SetDebugUtilsObjectName == nil {
		return vk.ErrorExtensionNotPresent
	}
	return rec.SetDebugUtilsObjectName(device, info)
}
