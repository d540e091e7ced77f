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

import "reflect"

// OnSlice is the result of calling ThatSlice on an Assertion.
// It provides assertion tests for slices and arrays.
type OnSlice struct {
	assertion *Assertion
	slice     interface{}
}

// ThatSlice returns an OnSlice for the given slice or array value.
func (a *Assertion) ThatSlice(slice interface{}) *OnSlice {
	return &OnSlice{assertion: a, slice: slice}
}

func (o *OnSlice) length() int {
	if o.slice == nil {
		return 0
	}
	return reflect.ValueOf(o.slice).Len()
}

// IsEmpty asserts that the slice has no values.
func (o *OnSlice) IsEmpty() bool {
	return o.assertion.Got(o.length()).Expect("length ==", 0).Commit(o.length() == 0)
}

// IsNotEmpty asserts that the slice has at least one value.
func (o *OnSlice) IsNotEmpty() bool {
	return o.assertion.Got(o.length()).Expect("length >", 0).Commit(o.length() > 0)
}

// IsLength asserts that the slice has exactly the specified number of values.
func (o *OnSlice) IsLength(length int) bool {
	return o.assertion.Got(o.length()).Expect("length ==", length).Commit(o.length() == length)
}

// DeepEquals asserts that the slice equals expect using reflect.DeepEqual.
func (o *OnSlice) DeepEquals(expect interface{}) bool {
	return o.assertion.Got(o.slice).Expect("==", expect).Commit(reflect.DeepEqual(o.slice, expect))
}
