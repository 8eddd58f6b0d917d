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

// Variant runs a computation under the assumptions of one tier.
type Variant[T any] func(f func() T) T

// Go compiles a binary for a single instruction-set level, so the default
// variants share a body. Each stays a distinct, non-inlined function so
// the tier boundary is a real call site, the same shape a variant with a
// tier-specific body has.

//go:noinline
func runBaseline[T any](f func() T) T { return f() }

//go:noinline
func runAVX[T any](f func() T) T { return f() }

//go:noinline
func runAVX2[T any](f func() T) T { return f() }

// Wrappers returns the default variant table for computations returning T.
func Wrappers[T any]() Table[Variant[T]] {
	return NewTable[Variant[T]](runBaseline[T], runAVX[T], runAVX2[T])
}

// Dispatcher routes a computation to the variant of the resolved tier.
type Dispatcher[T any] struct {
	cache    *Cache
	strategy Strategy

	// Branching arms call these directly; the indirect path indexes table.
	baseline, avx, avx2 Variant[T]
	table               Table[Variant[T]]
}

// NewDispatcher returns a dispatcher over the default variants.
//
// Without WithCache the dispatcher uses Default, unless a cache-building
// option (WithDetector, WithProbe, WithLogger, WithSingleInit) is given,
// in which case it gets a private cache built from those options.
func NewDispatcher[T any](opts ...Option) *Dispatcher[T] {
	return NewDispatcherWithTable(Wrappers[T](), opts...)
}

// NewDispatcherWithTable returns a dispatcher over caller-supplied
// variants.
func NewDispatcherWithTable[T any](table Table[Variant[T]], opts ...Option) *Dispatcher[T] {
	cfg := newConfig(opts)
	must.Truef(cfg.strategy == StrategyBranching || cfg.strategy == StrategyIndirect,
		"hwy: invalid strategy %d", cfg.strategy)
	for t := TierBaseline; t < NumTiers; t++ {
		must.Truef(table.At(t) != nil, "hwy: no %s variant", t)
	}
	cache := cfg.cache
	if cache == nil {
		if cfg.ownCache {
			cache = cfg.newCache()
		} else {
			cache = Default()
		}
	}
	return &Dispatcher[T]{
		cache:    cache,
		strategy: cfg.strategy,
		baseline: table.At(TierBaseline),
		avx:      table.At(TierAVX),
		avx2:     table.At(TierAVX2),
		table:    table,
	}
}

// Dispatch runs f through the variant for the resolved tier and returns
// its result unchanged. A panic in f propagates to the caller.
func (d *Dispatcher[T]) Dispatch(f func() T) T {
	tier := d.cache.Resolve()
	if d.strategy == StrategyIndirect {
		return d.table.fns[tier](f)
	}
	switch tier {
	case TierAVX2:
		return d.avx2(f)
	case TierAVX:
		return d.avx(f)
	case TierBaseline:
		return d.baseline(f)
	}
	must.Neverf("hwy: unreachable tier %d", uint32(tier))
	panic("unreachable")
}

// Tier returns the tier this dispatcher runs at, resolving it if needed.
func (d *Dispatcher[T]) Tier() Tier {
	return d.cache.Resolve()
}

// Strategy returns the routing strategy.
func (d *Dispatcher[T]) Strategy() Strategy {
	return d.strategy
}

// Cache returns the cache the dispatcher resolves through.
func (d *Dispatcher[T]) Cache() *Cache {
	return d.cache
}

// Dispatch runs f through the default cache with the branching strategy.
func Dispatch[T any](f func() T) T {
	tier := defaultCache.Resolve()
	switch tier {
	case TierAVX2:
		return runAVX2(f)
	case TierAVX:
		return runAVX(f)
	case TierBaseline:
		return runBaseline(f)
	}
	must.Neverf("hwy: unreachable tier %d", uint32(tier))
	panic("unreachable")
}
