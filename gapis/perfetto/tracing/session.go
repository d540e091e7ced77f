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

package tracing

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"github.com/golang/protobuf/proto"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rschiu/gapid/core/data/endian"
	"github.com/rschiu/gapid/core/event/task"
	"github.com/rschiu/gapid/core/log"
	"github.com/rschiu/gapid/gapis/perfetto/tracing/pb"
)

// Config selects the data sources a session enables.
type Config struct {
	// DataSources are the names of the data sources to enable. Names that
	// are not registered are skipped.
	DataSources []string
}

// Session is a single trace collection run. Packets written by enabled data
// sources are buffered in memory and serialized to the session's writer as a
// length-prefixed protobuf stream when the session stops.
type Session struct {
	id      uuid.UUID
	system  *System
	sources []*DataSource
	out     io.Writer
	wait    task.Signal
	done    task.Task

	mu      sync.Mutex
	packets []*pb.TracePacket
	err     error
}

// StartTracing starts a new trace session, enabling the data sources named
// by the config. At most one session is live at a time; starting a second
// returns ErrSessionActive.
func (s *System) StartTracing(ctx context.Context, cfg Config, out io.Writer) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session != nil {
		return nil, ErrSessionActive
	}

	wait, done := task.NewSignal()
	session := &Session{
		id:     uuid.New(),
		system: s,
		out:    out,
		wait:   wait,
		done:   done,
	}
	// The session identity leads the stream so consumers can tell runs
	// apart before the first data packet.
	session.packets = append(session.packets, &pb.TracePacket{
		TraceUuid: session.id[:],
	})

	for _, name := range cfg.DataSources {
		ds, ok := s.sources[name]
		if !ok {
			log.W(ctx, "Trace config names unknown data source %s", name)
			continue
		}

		ds.mu.Lock()
		ds.session = session
		if ds.desc.OnSetup != nil {
			ds.state = ds.desc.OnSetup(ctx)
		} else {
			ds.state = nil
		}
		ds.mu.Unlock()

		atomic.StoreUint32(&ds.enabled, 1)
		if ds.desc.OnStart != nil {
			ds.desc.OnStart(ctx)
		}
		session.sources = append(session.sources, ds)
	}

	log.I(ctx, "Started trace session %v with %d data sources", session.id, len(session.sources))
	s.session = session
	return session, nil
}

// ID returns the session's unique identity.
func (s *Session) ID() uuid.UUID { return s.id }

// Stop disables the session's data sources, flushes the buffered packets to
// the session writer and marks the session done. Calling Stop on a stopped
// session returns ErrDone.
func (s *Session) Stop(ctx context.Context) error {
	s.system.mu.Lock()
	if s.system.session != s {
		s.system.mu.Unlock()
		return ErrDone
	}
	s.system.session = nil
	s.system.mu.Unlock()

	for _, ds := range s.sources {
		atomic.StoreUint32(&ds.enabled, 0)
		// Wait out any Trace callback still holding the source before
		// detaching it from this session.
		ds.mu.Lock()
		ds.session = nil
		ds.state = nil
		ds.mu.Unlock()

		if ds.desc.OnStop != nil {
			ds.desc.OnStop(ctx)
		}
	}

	err := s.flush(ctx)

	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	s.done(ctx)
	return err
}

// Wait blocks until the session has stopped and returns the error of the
// final flush, if any.
func (s *Session) Wait(ctx context.Context) error {
	if !s.wait.Wait(ctx) {
		return task.StopReason(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Session) write(p *pb.TracePacket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.packets = append(s.packets, p)
}

func (s *Session) flush(ctx context.Context) error {
	s.mu.Lock()
	packets := s.packets
	s.packets = nil
	s.mu.Unlock()

	w := endian.Writer(s.out, endian.Little)
	for _, p := range packets {
		buf, err := proto.Marshal(p)
		if err != nil {
			return errors.Wrap(err, "marshalling trace packet")
		}
		w.Uint32(uint32(len(buf)))
		w.Data(buf)
	}
	if err := w.Error(); err != nil {
		return errors.Wrap(err, "writing trace stream")
	}
	log.I(ctx, "Flushed %d trace packets", len(packets))
	return nil
}

// ReadTrace decodes a length-prefixed trace stream, as written by a stopped
// session, back into its packets.
func ReadTrace(in io.Reader) ([]*pb.TracePacket, error) {
	r := endian.Reader(in, endian.Little)
	packets := []*pb.TracePacket{}
	for {
		size := r.Uint32()
		if errors.Is(r.Error(), io.EOF) {
			return packets, nil
		}
		buf := make([]byte, size)
		r.Data(buf)
		if err := r.Error(); err != nil {
			return nil, errors.Wrap(err, "reading trace stream")
		}
		p := &pb.TracePacket{}
		if err := proto.Unmarshal(buf, p); err != nil {
			return nil, errors.Wrap(err, "unmarshalling trace packet")
		}
		packets = append(packets, p)
	}
}
