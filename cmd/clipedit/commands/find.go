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
	"fmt"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/clipedit/cmd/clipedit/opts"
	"github.com/walteh/clipedit/pkg/config"
	"github.com/walteh/clipedit/pkg/text"
)

// NewFindCmd creates the find command
func NewFindCmd(o *opts.RootOpts) *cobra.Command {
	var (
		in     inputFlags
		search searchFlags
		from   int
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find the next match",
		Long: `Find searches forward from --from and wraps to the top once.
Each match is printed as start:end followed by a tab and the matched text.
Offsets count code points.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			input, err := in.read(o)
			if err != nil {
				return err
			}

			sess := o.NewSession(ctx, input, nil)
			if err := sess.OpenDialog(ctx, config.ActionFind); err != nil {
				return err
			}
			sess.Select(text.Span{Start: from, End: from})

			if !all {
				found, err := sess.FindNext(ctx, search.query())
				if err != nil {
					return errors.Errorf("find: %w", err)
				}
				_, err = fmt.Fprintf(o.Stdout, "%s\t%s\n", found, found.Slice(input))
				return err
			}

			// every match once, stopping at the first repeat
			seen := map[text.Span]bool{}
			for {
				found, err := sess.FindNext(ctx, search.query())
				if err != nil {
					return errors.Errorf("find: %w", err)
				}
				if seen[found] {
					return nil
				}
				seen[found] = true
				if _, err := fmt.Fprintf(o.Stdout, "%s\t%s\n", found, found.Slice(input)); err != nil {
					return err
				}
			}
		},
	}

	in.register(cmd)
	search.register(cmd, o, false)
	cmd.Flags().IntVar(&from, "from", 0, "code-point offset to start searching at")
	cmd.Flags().BoolVar(&all, "all", false, "print every match")
	_ = cmd.MarkFlagRequired("find")

	return cmd
}
