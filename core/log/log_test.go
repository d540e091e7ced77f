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

package log_test

import (
	"context"
	"testing"

	"github.com/rschiu/gapid/core/log"
)

type capture struct {
	messages []*log.Message
}

func (c *capture) Handle(m *log.Message) { c.messages = append(c.messages, m) }

func TestSeverityFilter(t *testing.T) {
	c := &capture{}
	ctx := log.PutHandler(context.Background(), c)
	ctx = log.PutFilter(ctx, log.SeverityFilter(log.Warning))

	log.D(ctx, "debug")
	log.I(ctx, "info")
	log.W(ctx, "warning")
	log.E(ctx, "error")

	if len(c.messages) != 2 {
		t.Fatalf("got %d messages, expected 2", len(c.messages))
	}
	if c.messages[0].Severity != log.Warning || c.messages[1].Severity != log.Error {
		t.Errorf("unexpected severities: %v, %v", c.messages[0].Severity, c.messages[1].Severity)
	}
}

func TestBoundValues(t *testing.T) {
	c := &capture{}
	ctx := log.PutHandler(context.Background(), c)
	ctx = log.V{"device": 42}.Bind(ctx)
	ctx = log.V{"api": "vulkan"}.Bind(ctx)

	log.I(ctx, "hello %s", "world")

	if len(c.messages) != 1 {
		t.Fatalf("got %d messages, expected 1", len(c.messages))
	}
	m := c.messages[0]
	if m.Text != "hello world" {
		t.Errorf("got text %q", m.Text)
	}
	if len(m.Values) != 2 || m.Values[0].Name != "api" || m.Values[1].Name != "device" {
		t.Errorf("unexpected values: %v", m.Values)
	}
}

func TestTagAndTrace(t *testing.T) {
	c := &capture{}
	ctx := log.PutHandler(context.Background(), c)
	ctx = log.PutTag(ctx, "vkapi")
	ctx = log.Enter(ctx, "CreateInstance")

	log.W(ctx, "no link info")

	if len(c.messages) != 1 {
		t.Fatalf("got %d messages, expected 1", len(c.messages))
	}
	if s := c.messages[0].String(); s != "W: [vkapi] CreateInstance: no link info" {
		t.Errorf("got message %q", s)
	}
}
