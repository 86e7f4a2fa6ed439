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
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/clipedit/cmd/clipedit/opts"
	"github.com/walteh/clipedit/pkg/editor"
)

// SaveQuestion is asked before an edited buffer is saved
const SaveQuestion = "Save changes to the clipboard?"

// NewCopyCmd creates the copy command
func NewCopyCmd(o *opts.RootOpts) *cobra.Command {
	var in inputFlags

	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy text to the clipboard",
		Long: `Copy writes the input to the clipboard. With protect mode on, the
previous clipboard text is kept in the backup history first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			input, err := in.read(o)
			if err != nil {
				return err
			}

			sess, history, err := openSession(ctx, o, in, outputFlags{copy: true}, input)
			if err != nil {
				return err
			}
			return writeOutput(ctx, o, in, outputFlags{copy: true}, sess, history)
		},
	}

	in.register(cmd)

	return cmd
}

// NewRestoreCmd creates the restore command
func NewRestoreCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Restore the previous clipboard text",
		Long: `Restore copies the newest backup back to the clipboard and removes it
from the history. It needs protect mode.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			history, err := o.LoadHistory()
			if err != nil {
				return err
			}

			restoreErr := editor.Restore(ctx, editor.Options{
				Copier:    o.Copier,
				Announcer: o.Announcer,
				Beeper:    o.Beeper,
				History:   history,
				Config:    o.Config,
			})
			if errors.Is(restoreErr, editor.ErrProtectModeDisabled) || errors.Is(restoreErr, editor.ErrNoBackup) {
				return restoreErr
			}

			// the entry is consumed even when the write fails
			if err := o.SaveHistory(history); err != nil {
				return err
			}
			return restoreErr
		},
	}
}

// NewEditCmd creates the edit command
func NewEditCmd(o *opts.RootOpts) *cobra.Command {
	var saveAs string

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the clipboard text in $EDITOR",
		Long: `Edit opens the clipboard text in an editor. Saving copies the result
back to the clipboard, or writes it to --save-as. Closing with unsaved
changes asks before discarding them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			input, err := o.ReadClipboard()
			if err != nil {
				zerolog.Ctx(ctx).Debug().Err(err).Msg("clipboard unreadable, editing empty text")
				input = ""
			}

			history, err := o.LoadHistory()
			if err != nil {
				return err
			}

			sess := o.NewSession(ctx, input, history)
			res, err := editLoop(ctx, o, sess, saveAs)
			if err != nil {
				return err
			}
			if err := o.SaveHistory(history); err != nil {
				return err
			}
			if res.Kind == editor.ResultFailed {
				return errors.New(res.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&saveAs, "save-as", "", "write the result to this file instead of the clipboard")

	return cmd
}

// editLoop edits until the session is saved or canceled
func editLoop(ctx context.Context, o *opts.RootOpts, sess *editor.Session, saveAs string) (editor.Result, error) {
	for {
		edited, err := o.Edit(ctx, sess.Text())
		if err != nil {
			return editor.Result{}, errors.Errorf("editing: %w", err)
		}
		sess.SetText(edited)

		if !sess.IsDirty() {
			res, _ := sess.Cancel(ctx, nil)
			return res, nil
		}

		if o.Confirm(SaveQuestion) {
			if saveAs != "" {
				return sess.SaveAs(ctx, saveAs), nil
			}
			return sess.Save(ctx), nil
		}

		res, closed := sess.Cancel(ctx, func() bool { return o.Confirm(editor.MsgDiscardChanges) })
		if closed {
			return res, nil
		}
	}
}
