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

package task_test

import (
	"context"
	"testing"
	"time"

	"github.com/rschiu/gapid/core/assert"
	"github.com/rschiu/gapid/core/event/task"
)

func TestSignalFire(t *testing.T) {
	ctx := context.Background()
	signal, fire := task.NewSignal()
	assert.For(t, "unfired").That(signal.Fired()).IsFalse()
	fire(ctx)
	assert.For(t, "fired").That(signal.Fired()).IsTrue()
	assert.For(t, "wait on fired").That(signal.Wait(ctx)).IsTrue()
}

func TestSignalWaitCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	signal, _ := task.NewSignal()
	assert.For(t, "wait cancelled").That(signal.Wait(ctx)).IsFalse()
}

func TestSignalTryWaitTimeout(t *testing.T) {
	ctx := context.Background()
	signal, _ := task.NewSignal()
	assert.For(t, "timed out").That(signal.TryWait(ctx, time.Millisecond)).IsFalse()
	assert.For(t, "fired signal").That(task.FiredSignal.TryWait(ctx, time.Millisecond)).IsTrue()
}
