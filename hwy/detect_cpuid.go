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

import "github.com/klauspost/cpuid/v2"

// CPUIDFeatures reads the same flags through github.com/klauspost/cpuid.
// It is an independent source for cross-checking HostFeatures and may be
// passed to WithProbe. On non-x86 hosts both flags are false.
func CPUIDFeatures() Features {
	return Features{
		HasAVX:  cpuid.CPU.Supports(cpuid.AVX),
		HasAVX2: cpuid.CPU.Supports(cpuid.AVX2),
	}
}
