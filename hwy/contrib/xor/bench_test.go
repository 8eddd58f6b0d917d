// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package xor

import (
	"fmt"
	"math/rand"
	"testing"
)

var sink byte

func BenchmarkDispatchers(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	arms := []struct {
		name string
		fn   func([]byte) byte
	}{
		{"FancyBranching", FancyBranching},
		{"FancyIndirect", FancyIndirect},
		{"Branching", Branching},
		{"Indirect", Indirect},
		{"Standard", Standard},
		{"NoDispatch", Reference},
	}
	for _, n := range []int{8, 1024} {
		in := randomBytes(rng, n)
		for _, arm := range arms {
			b.Run(fmt.Sprintf("%s/%d", arm.name, n), func(b *testing.B) {
				b.SetBytes(int64(n))
				for i := 0; i < b.N; i++ {
					sink ^= arm.fn(in)
				}
			})
		}
	}
}
