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

package endian_test

import (
	"bytes"
	"testing"

	"github.com/rschiu/gapid/core/assert"
	"github.com/rschiu/gapid/core/data/endian"
)

func TestRoundTrip(t *testing.T) {
	for _, order := range []endian.ByteOrder{endian.Little, endian.Big} {
		buf := &bytes.Buffer{}
		w := endian.Writer(buf, order)
		w.Uint8(0xab)
		w.Uint16(0xabcd)
		w.Uint32(0xdeadbeef)
		w.Uint64(0xdeadbeefdeadbeef)
		w.Int32(-42)
		w.Bool(true)
		w.Float64(1.5)
		w.String("gpu.renderstages")
		assert.For(t, "write error").ThatError(w.Error()).Succeeded()

		r := endian.Reader(buf, order)
		assert.For(t, "u8").That(r.Uint8()).Equals(uint8(0xab))
		assert.For(t, "u16").That(r.Uint16()).Equals(uint16(0xabcd))
		assert.For(t, "u32").That(r.Uint32()).Equals(uint32(0xdeadbeef))
		assert.For(t, "u64").That(r.Uint64()).Equals(uint64(0xdeadbeefdeadbeef))
		assert.For(t, "i32").That(r.Int32()).Equals(int32(-42))
		assert.For(t, "bool").That(r.Bool()).IsTrue()
		assert.For(t, "f64").That(r.Float64()).Equals(1.5)
		assert.For(t, "string").That(r.String()).Equals("gpu.renderstages")
		assert.For(t, "read error").ThatError(r.Error()).Succeeded()
	}
}

func TestByteOrderEncoding(t *testing.T) {
	little, big := &bytes.Buffer{}, &bytes.Buffer{}
	endian.Writer(little, endian.Little).Uint32(0x01020304)
	endian.Writer(big, endian.Big).Uint32(0x01020304)
	assert.For(t, "little").ThatSlice(little.Bytes()).DeepEquals([]byte{4, 3, 2, 1})
	assert.For(t, "big").ThatSlice(big.Bytes()).DeepEquals([]byte{1, 2, 3, 4})
}

func TestStickyReadError(t *testing.T) {
	r := endian.Reader(bytes.NewReader([]byte{1, 2}), endian.Little)
	r.Uint32()
	assert.For(t, "first error").ThatError(r.Error()).Failed()
	// Further reads return zero values without clearing the error.
	assert.For(t, "read after error").That(r.Uint8()).Equals(uint8(0))
	assert.For(t, "error persists").ThatError(r.Error()).Failed()
}
