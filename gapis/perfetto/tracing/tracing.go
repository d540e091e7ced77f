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

// Package tracing implements the in-process trace transport engine.
//
// Producers register named data sources with a System. A consumer starts a
// Session naming the data sources it wants enabled; while the session is
// live, each enabled data source accepts packets through its Trace operation,
// which gives the caller exclusive access to the source's private state and a
// packet staging context. Stopping the session serializes the buffered
// packets as a length-prefixed protobuf stream.
package tracing

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rschiu/gapid/core/fault"
	"github.com/rschiu/gapid/core/log"
	"github.com/rschiu/gapid/gapis/perfetto/tracing/pb"
)

const (
	// ErrDone is returned for calls on a trace session that is already
	// stopped.
	ErrDone = fault.Const("Trace already stopped")
	// ErrSessionActive is returned by StartTracing while another session is
	// live.
	ErrSessionActive = fault.Const("A trace session is already active")
)

// Descriptor advertises a data source to the system.
type Descriptor struct {
	// Name is the stable external identity of the data source.
	Name string
	// OnSetup returns the source's private incremental state for a new
	// session. May be nil for stateless sources.
	OnSetup func(ctx context.Context) interface{}
	// OnStart is invoked when a session enables the source. May be nil.
	OnStart func(ctx context.Context)
	// OnStop is invoked when the enabling session stops. May be nil.
	OnStop func(ctx context.Context)
}

// System is the process-wide trace transport engine.
type System struct {
	mu      sync.Mutex
	sources map[string]*DataSource
	session *Session
}

// NewSystem returns a new System with no data sources registered.
func NewSystem() *System {
	return &System{sources: map[string]*DataSource{}}
}

// RegisterDataSource registers the described data source and returns its
// handle. Registration is idempotent with respect to the descriptor name:
// registering a name a second time returns the existing data source.
func (s *System) RegisterDataSource(ctx context.Context, desc Descriptor) *DataSource {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ds, ok := s.sources[desc.Name]; ok {
		return ds
	}
	log.I(ctx, "Registered data source %s", desc.Name)
	ds := &DataSource{desc: desc}
	s.sources[desc.Name] = ds
	return ds
}

// DataSource is a registered producer of trace packets.
type DataSource struct {
	desc    Descriptor
	enabled uint32 // atomic; fast-path gate for Trace

	// mu serializes Trace bodies and guards state and session. It is the
	// lock behind the "exclusive access" contract of Trace.
	mu      sync.Mutex
	state   interface{}
	session *Session
}

// Name returns the data source's registered name.
func (ds *DataSource) Name() string { return ds.desc.Name }

// Enabled returns true while a session has this data source enabled.
func (ds *DataSource) Enabled() bool { return atomic.LoadUint32(&ds.enabled) != 0 }

// Trace runs fn with exclusive access to the data source's private state and
// a fresh packet staging context. If the data source is not enabled by a live
// session, fn is not invoked. Any packet still staged when fn returns is
// committed to the session.
func (ds *DataSource) Trace(fn func(*TraceContext)) {
	if !ds.Enabled() {
		return
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()
	session := ds.session
	if session == nil {
		// Raced with the session stopping.
		return
	}

	tc := &TraceContext{ds: ds, session: session}
	defer tc.commit()
	fn(tc)
}

// TraceContext is handed to Trace callbacks to stage packets and access the
// data source's private state.
type TraceContext struct {
	ds      *DataSource
	session *Session
	staged  *pb.TracePacket
}

// State returns the data source's private state, created by the descriptor's
// OnSetup when the session enabled the source. The state is exclusively held
// for the duration of the Trace callback.
func (c *TraceContext) State() interface{} { return c.ds.state }

// NewTracePacket commits any previously staged packet and stages a new one.
// The returned packet may be filled in until the next NewTracePacket call or
// the end of the Trace callback, whichever comes first.
func (c *TraceContext) NewTracePacket() *pb.TracePacket {
	c.commit()
	c.staged = &pb.TracePacket{}
	return c.staged
}

func (c *TraceContext) commit() {
	if c.staged != nil {
		c.session.write(c.staged)
		c.staged = nil
	}
}
