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
	"github.com/ajroetker/go-dispatch/hwy"
	"github.com/grailbio/base/must"
)

// Kernels holds the per-tier reduction kernels.
var Kernels = hwy.NewTable(baseXor, avxXor, avx2Xor)

// Reducer selects a kernel through a cache and a strategy.
type Reducer struct {
	cache    *hwy.Cache
	strategy hwy.Strategy
}

// NewReducer returns a Reducer resolving through cache. A nil cache means
// hwy.Default.
func NewReducer(cache *hwy.Cache, s hwy.Strategy) *Reducer {
	if cache == nil {
		cache = hwy.Default()
	}
	return &Reducer{cache: cache, strategy: s}
}

// Reduce returns the xor of all bytes of b using the resolved tier's
// kernel.
func (r *Reducer) Reduce(b []byte) byte {
	tier := r.cache.Resolve()
	if r.strategy == hwy.StrategyIndirect {
		return Kernels.At(tier)(b)
	}
	switch tier {
	case hwy.TierAVX2:
		return avx2Xor(b)
	case hwy.TierAVX:
		return avxXor(b)
	case hwy.TierBaseline:
		return baseXor(b)
	}
	must.Neverf("xor: unreachable tier %d", uint32(tier))
	return 0
}

// Tier returns the tier whose kernel Reduce runs.
func (r *Reducer) Tier() hwy.Tier {
	return r.cache.Resolve()
}

var (
	branching = NewReducer(nil, hwy.StrategyBranching)
	indirect  = NewReducer(nil, hwy.StrategyIndirect)
	standard  = hwy.NewLazy(Kernels, nil)

	fancyBranching = hwy.NewDispatcher[byte](hwy.WithStrategy(hwy.StrategyBranching))
	fancyIndirect  = hwy.NewDispatcher[byte](hwy.WithStrategy(hwy.StrategyIndirect))
)

// Branching reduces b with the kernel chosen by a switch over the tier.
func Branching(b []byte) byte {
	return branching.Reduce(b)
}

// Indirect reduces b with the kernel looked up in Kernels.
func Indirect(b []byte) byte {
	return indirect.Reduce(b)
}

// Standard reduces b through a function pointer patched on first use.
func Standard(b []byte) byte {
	return standard.Get()(b)
}

// Fancy runs the reference fold as a closure through d, so the tier
// wrapper rather than the kernel varies.
func Fancy(d *hwy.Dispatcher[byte], b []byte) byte {
	return d.Dispatch(func() byte { return Reference(b) })
}

// FancyBranching is Fancy over the shared branching dispatcher.
func FancyBranching(b []byte) byte {
	return Fancy(fancyBranching, b)
}

// FancyIndirect is Fancy over the shared indirect dispatcher.
func FancyIndirect(b []byte) byte {
	return Fancy(fancyIndirect, b)
}
