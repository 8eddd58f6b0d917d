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
	"os"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
)

// Tier ranks the instruction-set feature sets a variant may assume.
// Higher tiers imply every capability of the lower ones.
type Tier uint32

const (
	// TierBaseline assumes nothing beyond the architecture baseline.
	TierBaseline Tier = iota

	// TierAVX requires AVX.
	TierAVX

	// TierAVX2 requires AVX2 and AVX.
	TierAVX2

	// NumTiers is the number of tiers. Every Table has exactly this many
	// entries.
	NumTiers
)

// String returns a human-readable name for the tier.
func (t Tier) String() string {
	switch t {
	case TierBaseline:
		return "baseline"
	case TierAVX:
		return "avx"
	case TierAVX2:
		return "avx2"
	default:
		return "unknown"
	}
}

// Valid reports whether t indexes a Table.
func (t Tier) Valid() bool {
	return t < NumTiers
}

// ParseTier parses a tier name as printed by Tier.String. A few aliases
// are accepted: "none" and "scalar" for baseline, "avx2+avx" for avx2.
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "baseline", "none", "scalar", "0":
		return TierBaseline, nil
	case "avx", "1":
		return TierAVX, nil
	case "avx2", "avx2+avx", "2":
		return TierAVX2, nil
	}
	return TierBaseline, errors.E(errors.Invalid, "hwy: unknown tier", strconv.Quote(s))
}

// Features is the subset of processor flags the detector looks at.
type Features struct {
	HasAVX  bool
	HasAVX2 bool
}

// Probe reads Features from the running processor. A probe must be
// deterministic: every call on the same machine returns the same value.
type Probe func() Features

// TierOf maps feature flags to the highest tier they fully satisfy.
func TierOf(f Features) Tier {
	if f.HasAVX2 && f.HasAVX {
		return TierAVX2
	} else if f.HasAVX {
		return TierAVX
	}
	return TierBaseline
}

// Detect returns the tier of the running processor, after applying the
// DISPATCH_NO_SIMD and DISPATCH_MAX_TIER environment overrides.
func Detect() Tier {
	return detectWith(HostFeatures)
}

func detectWith(probe Probe) Tier {
	if NoSimdEnv() {
		return TierBaseline
	}
	t := TierOf(probe())
	if limit, ok := MaxTierEnv(); ok && t > limit {
		t = limit
	}
	return t
}

// NoSimdEnv checks if the DISPATCH_NO_SIMD environment variable is set.
// When set, detection reports TierBaseline regardless of the processor.
func NoSimdEnv() bool {
	val := os.Getenv("DISPATCH_NO_SIMD")
	if val == "" {
		return false
	}
	// Any non-empty value is considered true, but also parse as bool
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

// MaxTierEnv returns the cap set by DISPATCH_MAX_TIER, if any. The cap
// only ever lowers the detected tier. Unparseable values are ignored.
func MaxTierEnv() (Tier, bool) {
	val := os.Getenv("DISPATCH_MAX_TIER")
	if val == "" {
		return 0, false
	}
	t, err := ParseTier(val)
	if err != nil {
		logger.WithError(err).Warn("ignoring DISPATCH_MAX_TIER")
		return 0, false
	}
	return t, true
}
