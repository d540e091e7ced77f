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

// OnValue is the result of calling That on an Assertion.
// It provides assertion tests against an arbitrary value.
type OnValue struct {
	assertion *Assertion
	value     interface{}
}

// That returns an OnValue for the given value.
func (a *Assertion) That(value interface{}) *OnValue {
	return &OnValue{assertion: a, value: value}
}

// Equals asserts that the value equals expect using ==.
func (o *OnValue) Equals(expect interface{}) bool {
	return o.assertion.Got(o.value).Expect("==", expect).Commit(o.value == expect)
}

// NotEquals asserts that the value does not equal test using !=.
func (o *OnValue) NotEquals(test interface{}) bool {
	return o.assertion.Got(o.value).Expect("!=", test).Commit(o.value != test)
}

// DeepEquals asserts that the value equals expect using reflect.DeepEqual.
func (o *OnValue) DeepEquals(expect interface{}) bool {
	return o.assertion.Got(o.value).Expect("==", expect).Commit(reflect.DeepEqual(o.value, expect))
}

// IsNil asserts that the value is a nil of its type.
func (o *OnValue) IsNil() bool {
	return o.assertion.Got(o.value).Expect("is", nil).Commit(isNil(o.value))
}

// IsNotNil asserts that the value is not a nil of its type.
func (o *OnValue) IsNotNil() bool {
	return o.assertion.Got(o.value).Expect("is not", nil).Commit(!isNil(o.value))
}

// IsTrue asserts that the value is the boolean true.
func (o *OnValue) IsTrue() bool { return o.Equals(true) }

// IsFalse asserts that the value is the boolean false.
func (o *OnValue) IsFalse() bool { return o.Equals(false) }

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}
