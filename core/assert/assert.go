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

// Package assert provides a fluent assertion library for tests.
//
// Assertions are started with For, and chained through a value wrapper to a
// final test method that reports the failure to the output target:
//
//	assert.For(t, "the result").That(got).Equals(expected)
package assert

import (
	"fmt"
	"strings"
)

// Output matches the logging methods of the test host types.
// It is normally a *testing.T.
type Output interface {
	Fatal(...interface{})
	Error(...interface{})
	Log(...interface{})
}

// Manager wraps an assertion output target in something that can construct
// assertion objects.
type Manager struct {
	out Output
}

type stdOutput struct{}

func (stdOutput) Fatal(args ...interface{}) { fmt.Println(args...) }
func (stdOutput) Error(args ...interface{}) { fmt.Println(args...) }
func (stdOutput) Log(args ...interface{})   { fmt.Println(args...) }

// To creates an assertion manager using the target t for logging.
// t can be an Output or nil to log to stdout.
func To(t interface{}) Manager {
	switch t := t.(type) {
	case nil:
		return Manager{stdOutput{}}
	case Output:
		return Manager{t}
	default:
		panic(fmt.Errorf("Unsupported assertion target type %T", t))
	}
}

// For is shorthand for assert.To(t).For(msg, args...).
func For(t interface{}, msg string, args ...interface{}) *Assertion {
	return To(t).For(msg, args...)
}

// For starts a new assertion with the supplied title.
func (m Manager) For(msg string, args ...interface{}) *Assertion {
	return &Assertion{
		to:    m.out,
		title: fmt.Sprintf(msg, args...),
	}
}

// Assertion is the type for the start of an assertion line.
type Assertion struct {
	to    Output
	title string
	lines []string
}

// Got adds a line describing the value being tested.
func (a *Assertion) Got(value interface{}) *Assertion {
	a.lines = append(a.lines, fmt.Sprintf("Got    %v", value))
	return a
}

// Expect adds a line describing the expectation that was not met.
func (a *Assertion) Expect(op string, value interface{}) *Assertion {
	a.lines = append(a.lines, fmt.Sprintf("Expect %s %v", op, value))
	return a
}

// Commit resolves the assertion. If ok is false the accumulated description
// is written to the output target as an error. It returns ok so tests can
// chain on the result.
func (a *Assertion) Commit(ok bool) bool {
	if !ok {
		msg := a.title
		if len(a.lines) > 0 {
			msg += "\n    " + strings.Join(a.lines, "\n    ")
		}
		a.to.Error(msg)
	}
	return ok
}
