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

// Package hwy selects a CPU-specialized implementation of an operation once
// per process and routes every later call to it.
//
// # Tiers
//
// Processors are ranked into Tiers, lowest first:
//   - TierBaseline: no extensions assumed
//   - TierAVX: AVX
//   - TierAVX2: AVX2 and AVX
//
// Detect reads the flags through golang.org/x/sys/cpu and returns the
// highest tier they satisfy. CPUIDFeatures offers a second source via
// github.com/klauspost/cpuid.
//
// # Caching
//
// A Cache stores the first detected tier in a single atomic cell. After
// that, Resolve is one atomic load. Concurrent first callers may all run
// detection; since detection is deterministic they store the same value.
//
// # Dispatch strategies
//
// A Table holds one implementation per tier. A Dispatcher either switches
// over the tier (StrategyBranching) or indexes the table
// (StrategyIndirect). Lazy patches a function pointer on first use.
//
//	d := hwy.NewDispatcher[byte](hwy.WithStrategy(hwy.StrategyIndirect))
//	sum := d.Dispatch(func() byte { return xor.Reference(buf) })
//
// # Environment
//
//   - DISPATCH_NO_SIMD=1 forces TierBaseline.
//   - DISPATCH_MAX_TIER=avx caps detection at the named tier.
package hwy
