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

package main

import (
	"fmt"
	"io"
	"math/rand"
	"runtime"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/cpu"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ajroetker/go-dispatch/hwy"
	"github.com/ajroetker/go-dispatch/hwy/contrib/xor"
)

type flag struct {
	name string
	on   bool
	note string
}

func run(out io.Writer, log logrus.FieldLogger, opts options) error {
	cache := hwy.NewCache(hwy.WithDetector(opts.detector()), hwy.WithLogger(log))

	fmt.Fprintf(out, "GOOS: %s\n", runtime.GOOS)
	fmt.Fprintf(out, "GOARCH: %s\n", runtime.GOARCH)
	fmt.Fprintf(out, "NumCPU: %d\n", runtime.NumCPU())
	fmt.Fprintln(out)

	printFlags(out, "golang.org/x/sys/cpu", hostFlags())
	printFlags(out, "github.com/klauspost/cpuid", featureFlags(hwy.CPUIDFeatures()))
	fmt.Fprintln(out)

	hostTier := hwy.TierOf(hwy.HostFeatures())
	cpuidTier := hwy.TierOf(hwy.CPUIDFeatures())
	if hostTier != cpuidTier {
		log.WithFields(logrus.Fields{
			"sys/cpu": hostTier.String(),
			"cpuid":   cpuidTier.String(),
		}).Warn("feature sources disagree")
	}

	upper := cases.Upper(language.English)
	title := cases.Title(language.English)
	fmt.Fprintf(out, "Tier from x/sys/cpu: %s\n", upper.String(hostTier.String()))
	fmt.Fprintf(out, "Tier from cpuid:     %s\n", upper.String(cpuidTier.String()))
	fmt.Fprintf(out, "No-SIMD override:    %v\n", hwy.NoSimdEnv())
	if opts.hasMaxTier {
		fmt.Fprintf(out, "Tier cap:            %s\n", upper.String(opts.maxTier.String()))
	}
	fmt.Fprintf(out, "Selected tier:       %s\n", upper.String(cache.Resolve().String()))
	fmt.Fprintf(out, "Strategy:            %s\n", title.String(opts.strategy.String()))

	if opts.bench {
		fmt.Fprintln(out)
		runBench(out, cache, opts)
	}
	return nil
}

func hostFlags() []flag {
	if runtime.GOARCH == "arm64" {
		return []flag{
			{"HasASIMD", cpu.ARM64.HasASIMD, "NEON baseline"},
			{"HasSVE", cpu.ARM64.HasSVE, "not dispatched"},
			{"HasSVE2", cpu.ARM64.HasSVE2, "not dispatched"},
		}
	}
	return []flag{
		{"HasSSE2", cpu.X86.HasSSE2, "amd64 baseline"},
		{"HasAVX", cpu.X86.HasAVX, "tier avx"},
		{"HasAVX2", cpu.X86.HasAVX2, "tier avx2 with HasAVX"},
		{"HasAVX512F", cpu.X86.HasAVX512F, "not dispatched"},
		{"HasFMA", cpu.X86.HasFMA, "not dispatched"},
	}
}

func featureFlags(f hwy.Features) []flag {
	return []flag{
		{"AVX", f.HasAVX, "tier avx"},
		{"AVX2", f.HasAVX2, "tier avx2 with AVX"},
	}
}

func printFlags(out io.Writer, source string, flags []flag) {
	fmt.Fprintf(out, "=== %s ===\n", source)
	lo.ForEach(flags, func(f flag, _ int) {
		fmt.Fprintf(out, "  %-11s %-5v (%s)\n", f.name+":", f.on, f.note)
	})
	enabled := lo.Map(lo.Filter(flags, func(f flag, _ int) bool { return f.on }),
		func(f flag, _ int) string { return f.name })
	if len(enabled) == 0 {
		enabled = []string{"none"}
	}
	fmt.Fprintf(out, "  enabled: %s\n", strings.Join(enabled, ", "))
}

type benchArm struct {
	name string
	fn   func([]byte) byte
}

// runBench times every dispatch arm on 8 and 1024 random bytes.
func runBench(out io.Writer, cache *hwy.Cache, opts options) {
	branching := xor.NewReducer(cache, hwy.StrategyBranching)
	indirect := xor.NewReducer(cache, hwy.StrategyIndirect)
	lazy := hwy.NewLazy(xor.Kernels, cache)
	fancy := hwy.NewDispatcher[byte](hwy.WithCache(cache), hwy.WithStrategy(opts.strategy))

	arms := []benchArm{
		{"kernel branching", branching.Reduce},
		{"kernel indirect", indirect.Reduce},
		{"kernel lazy pointer", func(b []byte) byte { return lazy.Get()(b) }},
		{"fancy " + opts.strategy.String(), func(b []byte) byte { return xor.Fancy(fancy, b) }},
		{"no dispatch", xor.Reference},
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	fmt.Fprintf(out, "=== xor reduction, %d iterations ===\n", opts.iterations)
	for _, n := range []int{8, 1024} {
		in := make([]byte, n)
		rng.Read(in)
		want := xor.Reference(in)
		for _, arm := range arms {
			var acc byte
			start := time.Now()
			for i := 0; i < opts.iterations; i++ {
				acc ^= arm.fn(in)
			}
			elapsed := time.Since(start)
			if got := arm.fn(in); got != want {
				fmt.Fprintf(out, "  %-22s %5d B  MISMATCH got %#x want %#x\n", arm.name, n, got, want)
				continue
			}
			nsPerOp := float64(elapsed.Nanoseconds()) / float64(opts.iterations)
			fmt.Fprintf(out, "  %-22s %5d B  %8.2f ns/op  (acc %#02x)\n", arm.name, n, nsPerOp, acc)
		}
	}
}
