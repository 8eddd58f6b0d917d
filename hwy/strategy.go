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
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
)

// Strategy selects how a resolved tier is routed to its variant. The
// choice never changes results, only the code path.
type Strategy uint8

const (
	// StrategyBranching switches over the tier, one arm per variant.
	// Predicts well when the tier is stable, which it always is after
	// the first call.
	StrategyBranching Strategy = iota

	// StrategyIndirect indexes a Table by tier and calls through the
	// entry, trading the branch for an indirect call.
	StrategyIndirect
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyBranching:
		return "branching"
	case StrategyIndirect:
		return "indirect"
	default:
		return "unknown"
	}
}

// ParseStrategy parses "branching" or "indirect".
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "branching", "branch", "switch":
		return StrategyBranching, nil
	case "indirect", "table":
		return StrategyIndirect, nil
	}
	return StrategyBranching, errors.E(errors.Invalid, "hwy: unknown strategy", strconv.Quote(s))
}
