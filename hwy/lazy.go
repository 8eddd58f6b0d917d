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

import "sync/atomic"

// Lazy is a function pointer that selects its target on first use and
// then always returns it. This is the classic "patch the pointer" form of
// indirect dispatch: after the first Get there is no tier lookup at all,
// just a load and the caller's indirect call.
//
// Racing first callers may each publish a selection; they are equal, since
// they come from the same Cache.
type Lazy[F any] struct {
	fn    atomic.Pointer[F]
	table Table[F]
	cache *Cache
}

// NewLazy returns a Lazy over table, resolving through cache. A nil cache
// means Default.
func NewLazy[F any](table Table[F], cache *Cache) *Lazy[F] {
	if cache == nil {
		cache = Default()
	}
	return &Lazy[F]{table: table, cache: cache}
}

// Get returns the implementation for the resolved tier.
func (l *Lazy[F]) Get() F {
	if p := l.fn.Load(); p != nil {
		return *p
	}
	f := l.table.At(l.cache.Resolve())
	l.fn.Store(&f)
	return f
}
