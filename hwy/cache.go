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
	"sync/atomic"

	"github.com/grailbio/base/must"
	"github.com/sirupsen/logrus"
)

// logger is used by caches that were not given one with WithLogger.
var logger logrus.FieldLogger = logrus.StandardLogger()

// Cache holds the tier resolved for a dispatch site.
//
// The cell starts Unresolved and moves to Resolved(tier) on the first call
// to Resolve; there is no way back. Concurrent first callers may each run
// the detector and store its result. That race is benign only because the
// detector is deterministic, so every writer stores the same value. A
// detector that cannot promise this must be paired with WithSingleInit.
//
// The zero value is ready to use and detects with Detect.
type Cache struct {
	// cell is 0 while unresolved and tier+1 afterwards.
	cell atomic.Uint32

	detect     func() Tier
	name       string
	log        logrus.FieldLogger
	singleInit bool
}

var defaultCache Cache

// Default returns the process-wide cache shared by dispatch sites that
// were not given their own.
func Default() *Cache {
	return &defaultCache
}

// NewCache creates an unresolved cache.
func NewCache(opts ...Option) *Cache {
	return newConfig(opts).newCache()
}

// Resolve returns the cached tier, detecting it on first use.
// It is safe for concurrent use and never blocks.
func (c *Cache) Resolve() Tier {
	if v := c.cell.Load(); v != 0 {
		return Tier(v - 1)
	}
	return c.resolveSlow()
}

// Peek returns the cached tier without triggering detection.
func (c *Cache) Peek() (Tier, bool) {
	v := c.cell.Load()
	if v == 0 {
		return TierBaseline, false
	}
	return Tier(v - 1), true
}

//go:noinline
func (c *Cache) resolveSlow() Tier {
	detect, name := c.detect, c.name
	if detect == nil {
		detect, name = Detect, "host"
	}
	t := detect()
	if !t.Valid() {
		must.Neverf("hwy: detector %q returned tier %d, want < %d", name, uint32(t), uint32(NumTiers))
	}
	if c.singleInit {
		if !c.cell.CompareAndSwap(0, uint32(t)+1) {
			t = Tier(c.cell.Load() - 1)
		}
	} else {
		c.cell.Store(uint32(t) + 1)
	}
	log := c.log
	if log == nil {
		log = logger
	}
	log.WithFields(logrus.Fields{"tier": t.String(), "detector": name}).Debug("dispatch tier resolved")
	return t
}
