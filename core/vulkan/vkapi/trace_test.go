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
	"bytes"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/rschiu/gapid/core/assert"
	"github.com/rschiu/gapid/core/vulkan/vk"
	"github.com/rschiu/gapid/core/vulkan/vkapi"
	"github.com/rschiu/gapid/gapis/perfetto/tracing"
	"github.com/rschiu/gapid/gapis/perfetto/tracing/pb"
)

// startTrace bootstraps an instance (which registers the data sources) and
// starts a session with the given channels enabled.
func startTrace(t *testing.T, f *testLayer, channels ...string) (*tracing.Session, *bytes.Buffer) {
	f.bootstrapInstance(t)
	buf := &bytes.Buffer{}
	session, err := f.system.StartTracing(f.ctx, tracing.Config{DataSources: channels}, buf)
	if err != nil {
		t.Fatalf("StartTracing: %v", err)
	}
	return session, buf
}

func stopAndRead(t *testing.T, f *testLayer, session *tracing.Session, buf *bytes.Buffer) []*pb.TracePacket {
	if err := session.Stop(f.ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	packets, err := tracing.ReadTrace(buf)
	if err != nil {
		t.Fatalf("ReadTrace: %v", err)
	}
	return packets
}

func TestDebugMarkerEmitsOnBothChannels(t *testing.T) {
	f := newTestLayer(t)
	session, buf := startTrace(t, f, vkapi.VkAPIDataSource, vkapi.RenderStageDataSource)

	device := vk.Device(0x2000)
	result := f.layer.DebugMarkerSetObjectName(device, &vk.DebugMarkerObjectNameInfo{
		ObjectType: 9, Object: 7, ObjectName: "shadow map",
	})
	assert.For(t, "first call").That(result).Equals(vk.Success)
	result = f.layer.DebugMarkerSetObjectName(device, &vk.DebugMarkerObjectNameInfo{
		ObjectType: 10, Object: 9, ObjectName: "staging buffer",
	})
	assert.For(t, "second call").That(result).Equals(vk.Success)

	packets := stopAndRead(t, f, session, buf)
	assert.For(t, "packet count").ThatSlice(packets).IsLength(6)
	assert.For(t, "leading uuid").ThatSlice(packets[0].TraceUuid).IsNotEmpty()

	// First call: vendor API packet, then the channel's one-time
	// specification packet, then the first render-stage data packet.
	marker := packets[1].VulkanDebugMarker
	assert.For(t, "marker payload").That(marker).IsNotNil()
	assert.For(t, "marker timestamp").That(packets[1].Timestamp).Equals(uint64(9))
	assert.For(t, "marker device").That(marker.VkDevice).Equals(uint64(device))
	assert.For(t, "marker object").That(marker.Object).Equals(uint64(7))
	assert.For(t, "marker name").That(marker.ObjectName).Equals("shadow map")

	spec := packets[2].GpuRenderStageEvent
	assert.For(t, "spec payload").That(spec).IsNotNil()
	assert.For(t, "spec timestamp").That(packets[2].Timestamp).Equals(uint64(0))
	assert.For(t, "spec queues").ThatSlice(spec.Specifications.HwQueue).IsLength(2)
	assert.For(t, "spec stages").ThatSlice(spec.Specifications.Stage).IsLength(3)
	assert.For(t, "queue 0 name").That(spec.Specifications.HwQueue[0].Name).Equals("queue 0")
	assert.For(t, "stage 2 name").That(spec.Specifications.Stage[2].Name).Equals("stage 2")

	stage := packets[3].GpuRenderStageEvent
	assert.For(t, "stage payload").That(stage).IsNotNil()
	assert.For(t, "stage timestamp").That(packets[3].Timestamp).Equals(uint64(10))
	assert.For(t, "event id").That(stage.EventId).Equals(uint64(1))
	assert.For(t, "duration").That(stage.Duration).Equals(uint64(5))
	assert.For(t, "queue id").That(stage.HwQueueId).Equals(int32(1))
	assert.For(t, "stage id").That(stage.StageId).Equals(int32(1))
	assert.For(t, "context").That(stage.Context).Equals(uint64(42))
	assert.For(t, "render target").That(stage.RenderTargetHandle).Equals(uint64(7))

	// Second call: the specification packet is not repeated.
	assert.For(t, "second marker timestamp").That(packets[4].Timestamp).Equals(uint64(19))
	stage = packets[5].GpuRenderStageEvent
	assert.For(t, "second stage timestamp").That(packets[5].Timestamp).Equals(uint64(20))
	assert.For(t, "second event id").That(stage.EventId).Equals(uint64(2))
	assert.For(t, "second queue id").That(stage.HwQueueId).Equals(int32(0))
	assert.For(t, "second stage id").That(stage.StageId).Equals(int32(2))
	assert.For(t, "second render target").That(stage.RenderTargetHandle).Equals(uint64(9))
}

func TestDebugMarkerWithSingleChannel(t *testing.T) {
	f := newTestLayer(t)
	session, buf := startTrace(t, f, vkapi.VkAPIDataSource)

	result := f.layer.DebugMarkerSetObjectName(1, &vk.DebugMarkerObjectNameInfo{Object: 3, ObjectName: "mesh"})
	assert.For(t, "result").That(result).Equals(vk.Success)

	packets := stopAndRead(t, f, session, buf)
	assert.For(t, "packet count").ThatSlice(packets).IsLength(2)
	assert.For(t, "marker payload").That(packets[1].VulkanDebugMarker).IsNotNil()
	assert.For(t, "no render stage payload").That(packets[1].GpuRenderStageEvent).IsNil()
}

func TestDebugMarkerWithoutSessionStillSucceeds(t *testing.T) {
	f := newTestLayer(t)
	f.bootstrapInstance(t)

	result := f.layer.DebugMarkerSetObjectName(1, &vk.DebugMarkerObjectNameInfo{ObjectName: "quiet"})
	assert.For(t, "result").That(result).Equals(vk.Success)
}

func TestSpecificationPacketPerSession(t *testing.T) {
	// The specification packet is per channel lifetime: a fresh session
	// starts fresh state and must emit it again.
	f := newTestLayer(t)

	for run := 0; run < 2; run++ {
		var session *tracing.Session
		var buf *bytes.Buffer
		if run == 0 {
			session, buf = startTrace(t, f, vkapi.RenderStageDataSource)
		} else {
			buf = &bytes.Buffer{}
			var err error
			session, err = f.system.StartTracing(f.ctx, tracing.Config{
				DataSources: []string{vkapi.RenderStageDataSource},
			}, buf)
			if err != nil {
				t.Fatalf("StartTracing: %v", err)
			}
		}

		f.layer.DebugMarkerSetObjectName(1, &vk.DebugMarkerObjectNameInfo{Object: 5})

		packets := stopAndRead(t, f, session, buf)
		assert.For(t, "run %d packets", run).ThatSlice(packets).IsLength(3)
		assert.For(t, "run %d spec", run).That(packets[1].GpuRenderStageEvent.Specifications).IsNotNil()
		assert.For(t, "run %d event id", run).That(packets[2].GpuRenderStageEvent.EventId).Equals(uint64(1))
	}
}

func TestDebugMarkerConcurrentCalls(t *testing.T) {
	f := newTestLayer(t)
	session, buf := startTrace(t, f, vkapi.VkAPIDataSource, vkapi.RenderStageDataSource)

	const calls = 32
	var g errgroup.Group
	for i := 0; i < calls; i++ {
		object := uint64(i)
		g.Go(func() error {
			f.layer.DebugMarkerSetObjectName(1, &vk.DebugMarkerObjectNameInfo{Object: object})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}

	packets := stopAndRead(t, f, session, buf)

	markerTimestamps := map[uint64]bool{}
	eventIds := []uint64{}
	specs := 0
	for _, p := range packets {
		if p.VulkanDebugMarker != nil {
			assert.For(t, "marker timestamp %d", p.Timestamp).That(p.Timestamp%10).Equals(uint64(9))
			markerTimestamps[p.Timestamp] = true
		}
		if e := p.GpuRenderStageEvent; e != nil {
			if e.Specifications != nil {
				specs++
				continue
			}
			eventIds = append(eventIds, e.EventId)
		}
	}

	assert.For(t, "distinct marker timestamps").That(len(markerTimestamps)).Equals(calls)
	assert.For(t, "one specification packet").That(specs).Equals(1)
	assert.For(t, "event count").ThatSlice(eventIds).IsLength(calls)
	// The channel lock makes event ids strictly increasing in stream order.
	for i := 1; i < len(eventIds); i++ {
		if eventIds[i] != eventIds[i-1]+1 {
			t.Fatalf("event ids not monotonic at %d: %v", i, eventIds)
		}
	}
}

func TestDebugMarkerTagForwards(t *testing.T) {
	f := newTestLayer(t)
	f.bootstrapInstance(t)

	result := f.layer.DebugMarkerSetObjectTag(1, &vk.DebugMarkerObjectTagInfo{Tag: []byte("blob")})
	assert.For(t, "result").That(result).Equals(vk.Success)
	assert.For(t, "forwarded tags").ThatSlice(f.driver.objectTags).DeepEquals([]string{"blob"})
}

func TestDebugMarkerTagWithoutInstance(t *testing.T) {
	f := newTestLayer(t)

	result := f.layer.DebugMarkerSetObjectTag(1, &vk.DebugMarkerObjectTagInfo{})
	assert.For(t, "result").That(result).Equals(vk.ErrorExtensionNotPresent)
}

func TestSetDebugUtilsObjectNameForwards(t *testing.T) {
	f := newTestLayer(t)
	f.bootstrapInstance(t)

	result := f.layer.SetDebugUtilsObjectName(1, &vk.DebugUtilsObjectNameInfo{ObjectName: "pass"})
	assert.For(t, "result").That(result).Equals(vk.Success)
	assert.For(t, "forwarded names").ThatSlice(f.driver.debugUtilsNames).DeepEquals([]string{"pass"})
}

func TestSetDebugUtilsObjectNameWithoutInstance(t *testing.T) {
	f := newTestLayer(t)

	result := f.layer.SetDebugUtilsObjectName(1, &vk.DebugUtilsObjectNameInfo{})
	assert.For(t, "result").That(result).Equals(vk.ErrorExtensionNotPresent)
}
