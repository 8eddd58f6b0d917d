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

package hwy

import "github.com/grailbio/base/must"

// Table holds one implementation of an operation per Tier. All entries
// share a signature; the entry for tier k may assume the capabilities of
// tier k and nothing more.
//
// A Table is immutable once built and is safe to share between dispatch
// sites.
type Table[F any] struct {
	fns [NumTiers]F
}

// NewTable builds a table from the per-tier implementations, lowest tier
// first.
func NewTable[F any](baseline, avx, avx2 F) Table[F] {
	return Table[F]{fns: [NumTiers]F{baseline, avx, avx2}}
}

// At returns the implementation for tier t. Tiers come from a Cache,
// which only holds valid values, so an out-of-range t is a programming
// error and panics.
func (tb *Table[F]) At(t Tier) F {
	if !t.Valid() {
		must.Neverf("hwy: tier %d out of range for table of %d", uint32(t), len(tb.fns))
	}
	return tb.fns[t]
}

// Len returns the number of entries, always NumTiers.
func (tb *Table[F]) Len() int {
	return len(tb.fns)
}
