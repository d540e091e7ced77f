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

// Package task provides primitives for signalling the completion of
// asynchronous work.
package task

import "context"

// Task is the unit of asynchronous work.
type Task func(context.Context) error

// StopReason returns the reason the context was cancelled, or nil if it has
// not been.
func StopReason(ctx context.Context) error {
	return ctx.Err()
}
