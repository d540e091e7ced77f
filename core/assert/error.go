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

package assert

import "errors"

// OnError is the result of calling ThatError on an Assertion.
// It provides assertion tests for error values.
type OnError struct {
	assertion *Assertion
	err       error
}

// ThatError returns an OnError for the given error value.
func (a *Assertion) ThatError(err error) *OnError {
	return &OnError{assertion: a, err: err}
}

// Succeeded asserts that the error is nil.
func (o *OnError) Succeeded() bool {
	return o.assertion.Got(o.err).Expect("==", nil).Commit(o.err == nil)
}

// Failed asserts that the error is not nil.
func (o *OnError) Failed() bool {
	return o.assertion.Got(o.err).Expect("!=", nil).Commit(o.err != nil)
}

// Equals asserts that the error is, or wraps, the expected error.
func (o *OnError) Equals(expect error) bool {
	return o.assertion.Got(o.err).Expect("==", expect).Commit(errors.Is(o.err, expect))
}

// HasMessage asserts that the error message equals the expected string.
func (o *OnError) HasMessage(expect string) bool {
	got := ""
	if o.err != nil {
		got = o.err.Error()
	}
	return o.assertion.Got(got).Expect("==", expect).Commit(got == expect)
}
