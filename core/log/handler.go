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

package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Handler is the interface to an object responsible for showing or storing
// log messages.
type Handler interface {
	Handle(*Message)
}

// Filter is the interface to an object that can skip log messages before they
// are sent to the handler.
type Filter interface {
	ShowSeverity(s Severity) bool
}

// SeverityFilter implements Filter, showing only messages at or above the
// given severity.
type SeverityFilter Severity

// ShowSeverity returns true if the message of severity s should be shown.
func (f SeverityFilter) ShowSeverity(s Severity) bool { return s >= Severity(f) }

type handlerFunc func(*Message)

func (h handlerFunc) Handle(m *Message) { h(m) }

// Writer returns a Handler that writes each message as a single line to w.
// The handler serializes concurrent writes.
func Writer(w io.Writer) Handler {
	mutex := sync.Mutex{}
	return handlerFunc(func(m *Message) {
		mutex.Lock()
		defer mutex.Unlock()
		fmt.Fprintln(w, m.String())
	})
}

// Std returns a Handler that writes errors to os.Stderr and everything else
// to os.Stdout.
func Std() Handler {
	out, err := Writer(os.Stdout), Writer(os.Stderr)
	return handlerFunc(func(m *Message) {
		if m.Severity >= Error {
			err.Handle(m)
		} else {
			out.Handle(m)
		}
	})
}

// Fork returns a Handler that passes each message to all the handlers in to.
func Fork(to ...Handler) Handler {
	return handlerFunc(func(m *Message) {
		for _, h := range to {
			h.Handle(m)
		}
	})
}
