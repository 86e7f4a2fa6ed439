// Copyright 2025 walteh LLC
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

package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/clipedit/cmd/clipedit/opts"
	"github.com/walteh/clipedit/pkg/log"
	"github.com/walteh/clipedit/pkg/operation"
)

// NewBatchCmd creates the batch command
func NewBatchCmd(o *opts.RootOpts) *cobra.Command {
	var (
		dryRun      bool
		async       bool
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "batch [root]",
		Short: "Apply the configured rules to files",
		Long: `Batch applies every rule from the config file to the files its glob
matches under root (default: the current directory). Rules run in config
order and each one is a replace-all.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			zlog := zerolog.Ctx(ctx)

			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			if len(o.Config.Rules) == 0 {
				return errors.New("no rules configured")
			}

			// structured file lines only when debugging
			level := zerolog.WarnLevel
			if zlog.GetLevel() <= zerolog.DebugLevel {
				level = zlog.GetLevel()
			}
			logger := log.New(o.Stdout, level)
			ctx = log.NewContext(ctx, logger)

			op, err := operation.NewReplaceOperation(operation.ReplaceOptions{
				Root:        root,
				Rules:       o.Config.Rules,
				DryRun:      dryRun,
				Concurrency: concurrency,
				Logger:      logger,
			})
			if err != nil {
				return errors.Errorf("creating batch operation: %w", err)
			}

			logger.Header("applying replacement rules")
			runErr := operation.NewRunner(zlog, async).Run(ctx, op)

			modified, total := 0, 0
			for _, r := range op.Results() {
				total++
				if r.Modified {
					modified++
				}
			}
			logger.LogNewline()
			if runErr != nil {
				logger.Errorf("batch failed: %v", runErr)
				return runErr
			}
			if dryRun {
				logger.Infof("%d of %d files would change", modified, total)
			} else {
				logger.Successf("%d of %d files changed", modified, total)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report changes without writing files")
	cmd.Flags().BoolVar(&async, "async", false, "run the batch in the background and honour cancellation")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "files processed in parallel (default GOMAXPROCS)")

	return cmd
}
