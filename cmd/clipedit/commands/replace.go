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
	"github.com/walteh/clipedit/pkg/config"
)

// NewReplaceCmd creates the replace command
func NewReplaceCmd(o *opts.RootOpts) *cobra.Command {
	var (
		in        inputFlags
		out       outputFlags
		search    searchFlags
		replace   string
		selection string
	)

	cmd := &cobra.Command{
		Use:   "replace",
		Short: "Replace one match",
		Long: `Replace replaces the text at --selection when it is a match.
Otherwise it replaces the next match after the selection, wrapping to the
top once. The edited text is written to stdout, the clipboard (--copy) or
back to the file (--in-place).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			sel, err := parseSpan(selection)
			if err != nil {
				return err
			}

			input, err := in.read(o)
			if err != nil {
				return err
			}

			sess, history, err := openSession(ctx, o, in, out, input)
			if err != nil {
				return err
			}
			if err := sess.OpenDialog(ctx, config.ActionReplace); err != nil {
				return err
			}
			sess.Select(sel)

			replaced, err := sess.Replace(ctx, search.request(replace))
			if err != nil {
				return errors.Errorf("replace: %w", err)
			}
			zerolog.Ctx(ctx).Debug().Stringer("selection", replaced).Msg("replaced")

			return writeOutput(ctx, o, in, out, sess, history)
		},
	}

	in.register(cmd)
	out.register(cmd)
	search.register(cmd, o, true)
	cmd.Flags().StringVar(&replace, "replace", "", "replacement text")
	cmd.Flags().StringVar(&selection, "selection", "", "current selection as start:end")
	_ = cmd.MarkFlagRequired("find")

	return cmd
}

// NewReplaceAllCmd creates the replace-all command
func NewReplaceAllCmd(o *opts.RootOpts) *cobra.Command {
	var (
		in      inputFlags
		out     outputFlags
		search  searchFlags
		replace string
	)

	cmd := &cobra.Command{
		Use:   "replace-all",
		Short: "Replace every match",
		Long: `Replace-all replaces every match in one left-to-right pass.
Replacement text is never searched again. Nothing is written when there is
no match.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			input, err := in.read(o)
			if err != nil {
				return err
			}

			sess, history, err := openSession(ctx, o, in, out, input)
			if err != nil {
				return err
			}
			if err := sess.OpenDialog(ctx, config.ActionReplace); err != nil {
				return err
			}

			if _, err := sess.ReplaceAll(ctx, search.request(replace)); err != nil {
				return errors.Errorf("replace all: %w", err)
			}

			return writeOutput(ctx, o, in, out, sess, history)
		},
	}

	in.register(cmd)
	out.register(cmd)
	search.register(cmd, o, true)
	cmd.Flags().StringVar(&replace, "replace", "", "replacement text")
	_ = cmd.MarkFlagRequired("find")

	return cmd
}
