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

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

var strategies = []Strategy{StrategyBranching, StrategyIndirect}

// taggedTable records which variant ran into *ran.
func taggedTable(ran *atomic.Int32) Table[Variant[int]] {
	tag := func(tier Tier) Variant[int] {
		return func(f func() int) int {
			ran.Store(int32(tier))
			return f()
		}
	}
	return NewTable(tag(TierBaseline), tag(TierAVX), tag(TierAVX2))
}

func TestDispatcherRoutesToTier(t *testing.T) {
	for _, s := range strategies {
		for tier := TierBaseline; tier < NumTiers; tier++ {
			t.Run(fmt.Sprintf("%s/%s", s, tier), func(t *testing.T) {
				var ran atomic.Int32
				ran.Store(-1)
				d := NewDispatcherWithTable(taggedTable(&ran),
					WithStrategy(s),
					WithDetector(func() Tier { return tier }))

				got := d.Dispatch(func() int { return 42 })
				if got != 42 {
					t.Errorf("Dispatch = %d, want 42", got)
				}
				if Tier(ran.Load()) != tier {
					t.Errorf("ran %s variant, want %s", Tier(ran.Load()), tier)
				}
				if d.Tier() != tier {
					t.Errorf("Tier() = %s, want %s", d.Tier(), tier)
				}
				if d.Strategy() != s {
					t.Errorf("Strategy() = %s, want %s", d.Strategy(), s)
				}
			})
		}
	}
}

func TestStrategyEquivalence(t *testing.T) {
	inputs := [][]byte{
		{},
		{0xff},
		{1, 2, 3, 4, 5, 6, 7, 8},
		[]byte("the quick brown fox jumps over the lazy dog"),
	}
	fold := func(b []byte) func() byte {
		return func() byte {
			var acc byte
			for _, x := range b {
				acc ^= x
			}
			return acc
		}
	}

	for tier := TierBaseline; tier < NumTiers; tier++ {
		var got [2][]byte
		for i, s := range strategies {
			d := NewDispatcher[byte](WithStrategy(s), WithDetector(func() Tier { return tier }))
			for _, in := range inputs {
				got[i] = append(got[i], d.Dispatch(fold(in)))
			}
		}
		if diff := cmp.Diff(got[0], got[1]); diff != "" {
			t.Errorf("tier %s: branching vs indirect mismatch (-branching +indirect):\n%s", tier, diff)
		}
		var want []byte
		for _, in := range inputs {
			want = append(want, fold(in)())
		}
		if diff := cmp.Diff(want, got[0]); diff != "" {
			t.Errorf("tier %s: dispatch vs direct call mismatch (-want +got):\n%s", tier, diff)
		}
	}
}

func TestDispatcherPanicPropagates(t *testing.T) {
	errBoom := errors.New("boom")
	for _, s := range strategies {
		d := NewDispatcher[int](WithStrategy(s), WithDetector(func() Tier { return TierAVX }))
		assert.PanicsWithValue(t, errBoom, func() {
			d.Dispatch(func() int { panic(errBoom) })
		}, "strategy %s", s)
	}
}

func TestDispatcherSharedCache(t *testing.T) {
	var calls atomic.Int64
	c := NewCache(WithDetector(countingDetector(TierAVX, &calls)))
	a := NewDispatcher[string](WithCache(c), WithStrategy(StrategyBranching))
	b := NewDispatcher[int](WithCache(c), WithStrategy(StrategyIndirect))

	assert.Equal(t, "x", a.Dispatch(func() string { return "x" }))
	assert.Equal(t, 7, b.Dispatch(func() int { return 7 }))
	assert.Same(t, c, a.Cache())
	assert.Same(t, c, b.Cache())
	assert.EqualValues(t, 1, calls.Load())
}

func TestDispatcherDefaultCache(t *testing.T) {
	d := NewDispatcher[int]()
	assert.Same(t, Default(), d.Cache())
	assert.Equal(t, StrategyBranching, d.Strategy())

	d = NewDispatcher[int](WithSingleInit())
	assert.NotSame(t, Default(), d.Cache(), "cache options imply a private cache")
}

func TestDispatcherConcurrent(t *testing.T) {
	for _, s := range strategies {
		t.Run(s.String(), func(t *testing.T) {
			d := NewDispatcher[int](WithStrategy(s), WithDetector(func() Tier { return TierAVX2 }))
			var g errgroup.Group
			for i := 0; i < 32; i++ {
				i := i
				g.Go(func() error {
					for j := 0; j < 500; j++ {
						if got := d.Dispatch(func() int { return i * j }); got != i*j {
							return fmt.Errorf("goroutine %d: Dispatch = %d, want %d", i, got, i*j)
						}
					}
					return nil
				})
			}
			require.NoError(t, g.Wait())
		})
	}
}

func TestPackageDispatch(t *testing.T) {
	assert.Equal(t, 3, Dispatch(func() int { return 3 }))
	tier, ok := Default().Peek()
	require.True(t, ok)
	assert.Equal(t, Default().Resolve(), tier)
}

func TestNewDispatcherRejectsMissingVariant(t *testing.T) {
	table := NewTable[Variant[int]](runBaseline[int], nil, runAVX2[int])
	assert.Panics(t, func() { NewDispatcherWithTable(table) })
}

func TestNewDispatcherRejectsBadStrategy(t *testing.T) {
	assert.Panics(t, func() { NewDispatcher[int](WithStrategy(Strategy(9))) })
}

func TestParseStrategy(t *testing.T) {
	for _, s := range strategies {
		got, err := ParseStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseStrategy("jump")
	assert.Error(t, err)
}

func BenchmarkDispatch(b *testing.B) {
	for _, s := range strategies {
		b.Run(s.String(), func(b *testing.B) {
			d := NewDispatcher[int](WithStrategy(s))
			var sink int
			for i := 0; i < b.N; i++ {
				sink += d.Dispatch(func() int { return i })
			}
			_ = sink
		})
	}
}
