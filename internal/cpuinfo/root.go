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
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ajroetker/go-dispatch/hwy"
)

// options is the resolved configuration for one run.
type options struct {
	strategy   hwy.Strategy
	maxTier    hwy.Tier
	hasMaxTier bool
	bench      bool
	iterations int
}

func newRootCmd(out io.Writer) *cobra.Command {
	v := viper.New()
	log := logrus.New()

	cmd := &cobra.Command{
		Use:   "cpuinfo",
		Short: "Print CPU features and the selected dispatch tier",
		Long: `cpuinfo prints the processor flags seen through golang.org/x/sys/cpu and
github.com/klauspost/cpuid, the tier each source maps to, and the tier the
dispatch cache settles on.

Every flag may also be set from the environment with the DISPATCH_ prefix,
for example DISPATCH_STRATEGY=indirect.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.SetOutput(cmd.ErrOrStderr())
			log.SetFormatter(&logrus.TextFormatter{
				FullTimestamp:   true,
				TimestampFormat: "2006-01-02 15:04:05",
			})
			lvl, err := logrus.ParseLevel(v.GetString("log-level"))
			if err != nil {
				return err
			}
			log.SetLevel(lvl)

			opts, err := loadOptions(v)
			if err != nil {
				return err
			}
			return run(out, log, opts)
		},
	}

	flags := cmd.Flags()
	flags.String("strategy", hwy.StrategyBranching.String(), "dispatch strategy: branching or indirect")
	flags.String("max-tier", "", "cap the detected tier (baseline, avx, avx2)")
	flags.Bool("bench", false, "time each xor dispatch strategy")
	flags.Int("iterations", 1_000_000, "iterations per benchmark arm")
	flags.String("log-level", "info", "log level")

	v.SetEnvPrefix("DISPATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(flags)

	return cmd
}

func loadOptions(v *viper.Viper) (options, error) {
	var opts options
	s, err := hwy.ParseStrategy(v.GetString("strategy"))
	if err != nil {
		return opts, err
	}
	opts.strategy = s
	if name := v.GetString("max-tier"); name != "" {
		t, err := hwy.ParseTier(name)
		if err != nil {
			return opts, err
		}
		opts.maxTier, opts.hasMaxTier = t, true
	}
	opts.bench = v.GetBool("bench")
	opts.iterations = v.GetInt("iterations")
	if opts.iterations < 1 {
		opts.iterations = 1
	}
	return opts, nil
}

// detector returns the host detector, capped at opts.maxTier if set.
func (opts options) detector() func() hwy.Tier {
	return func() hwy.Tier {
		t := hwy.Detect()
		if opts.hasMaxTier && t > opts.maxTier {
			t = opts.maxTier
		}
		return t
	}
}
