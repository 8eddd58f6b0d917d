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

import "github.com/sirupsen/logrus"

// Option configures a Cache or a Dispatcher.
type Option func(*config)

type config struct {
	detector     func() Tier
	detectorName string
	log          logrus.FieldLogger
	singleInit   bool

	// ownCache is set by any option that only makes sense on a private
	// cache, so NewDispatcher does not fall back to Default.
	ownCache bool

	cache    *Cache
	strategy Strategy
}

func newConfig(opts []Option) *config {
	cfg := &config{strategy: StrategyBranching}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (cfg *config) newCache() *Cache {
	return &Cache{
		detect:     cfg.detector,
		name:       cfg.detectorName,
		log:        cfg.log,
		singleInit: cfg.singleInit,
	}
}

// WithDetector replaces host detection. detect must be deterministic and
// side-effect free: concurrent first callers may each run it and the last
// store wins. It must return a valid Tier.
func WithDetector(detect func() Tier) Option {
	return func(cfg *config) {
		cfg.detector = detect
		cfg.detectorName = "custom"
		cfg.ownCache = true
	}
}

// WithProbe detects by mapping probe's flags through TierOf, honoring the
// same environment overrides as Detect.
func WithProbe(probe Probe) Option {
	return func(cfg *config) {
		cfg.detector = func() Tier { return detectWith(probe) }
		cfg.detectorName = "probe"
		cfg.ownCache = true
	}
}

// WithLogger sets the logger used when the tier is first resolved.
func WithLogger(log logrus.FieldLogger) Option {
	return func(cfg *config) {
		cfg.log = log
		cfg.ownCache = true
	}
}

// WithSingleInit makes the first stored tier final: later racing writers
// adopt it instead of overwriting it. Use it with detectors that are not
// guaranteed to be deterministic.
func WithSingleInit() Option {
	return func(cfg *config) {
		cfg.singleInit = true
		cfg.ownCache = true
	}
}

// WithCache makes a Dispatcher share c. Cache-building options are ignored
// when a cache is supplied.
func WithCache(c *Cache) Option {
	return func(cfg *config) {
		cfg.cache = c
	}
}

// WithStrategy selects how a Dispatcher routes to the tier's variant.
func WithStrategy(s Strategy) Option {
	return func(cfg *config) {
		cfg.strategy = s
	}
}
