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
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/clipedit/cmd/clipedit/opts"
)

// NewInfoCmd creates the info command
func NewInfoCmd(o *opts.RootOpts) *cobra.Command {
	var (
		in     inputFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Count characters, words and lines",
		Long: `Info reports statistics about the text.
Characters are code points, words are whitespace separated runs and a
trailing line break does not start a new line. The grapheme count is
reported as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			input, err := in.read(o)
			if err != nil {
				return err
			}

			sess := o.NewSession(ctx, input, nil)
			stats, err := sess.Information(ctx)
			if err != nil {
				return errors.Errorf("information: %w", err)
			}

			if asJSON {
				enc := json.NewEncoder(o.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(stats)
			}
			_, err = fmt.Fprintf(o.Stdout, "%s, %d graphemes\n", stats, stats.Graphemes)
			return err
		},
	}

	in.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the statistics as JSON")

	return cmd
}
