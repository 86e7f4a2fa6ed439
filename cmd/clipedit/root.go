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

package main

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/clipedit/cmd/clipedit/commands"
	"github.com/walteh/clipedit/cmd/clipedit/opts"
	"github.com/walteh/clipedit/pkg/backup"
	"github.com/walteh/clipedit/pkg/config"
)

// rootFlags are the persistent flags shared by every command
type rootFlags struct {
	configFile  string
	historyFile string
	debug       bool
	quiet       bool
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, f *rootFlags) {
	historyPath, _ := backup.DefaultPath()

	cmd.PersistentFlags().StringVarP(&f.configFile, "config", "c", ".clipedit.yaml", "config file path (missing file means defaults)")
	cmd.PersistentFlags().StringVar(&f.historyFile, "history", historyPath, "backup history file")
	cmd.PersistentFlags().BoolVarP(&f.debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&f.quiet, "quiet", "q", false, "disable feedback tones")
}

// setupLogging returns ctx carrying a console zerolog logger on w
func setupLogging(ctx context.Context, w io.Writer, debug bool) context.Context {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger().Level(level)
	return logger.WithContext(ctx)
}

// newRootCmd creates the clipedit root command without subcommands
func newRootCmd(o *opts.RootOpts, f *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clipedit",
		Short: "Edit clipboard text with find and replace",
		Long: `clipedit edits the clipboard as plain text: find with wrap-around,
replace one or all matches with optional case preservation, count
characters, words and lines, and keep a backup of what the clipboard held
before each save.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetIn(o.Stdin)
	cmd.SetOut(o.Stdout)
	cmd.SetErr(o.Stderr)

	addRootFlags(cmd, f)
	return cmd
}

// addCommands registers the commands the config enables
func addCommands(root *cobra.Command, o *opts.RootOpts) {
	e := o.Config.Editor

	if e.ShortcutActive(config.ActionInformation) {
		root.AddCommand(commands.NewInfoCmd(o))
	}
	if e.ShortcutActive(config.ActionFind) {
		root.AddCommand(commands.NewFindCmd(o))
	}
	if e.ShortcutActive(config.ActionReplace) {
		root.AddCommand(
			commands.NewReplaceCmd(o),
			commands.NewReplaceAllCmd(o),
		)
	}

	root.AddCommand(
		commands.NewCopyCmd(o),
		commands.NewRestoreCmd(o),
		commands.NewEditCmd(o),
		commands.NewBatchCmd(o),
		newVersionCmd(o),
	)
}

// run builds the command tree for args and executes it
func run(ctx context.Context, args []string, o *opts.RootOpts) error {
	f := &rootFlags{}
	root := newRootCmd(o, f)
	root.SetArgs(args)

	// the config decides which commands exist, so read the root flags first
	root.FParseErrWhitelist.UnknownFlags = true
	_ = root.ParseFlags(args)
	root.FParseErrWhitelist.UnknownFlags = false

	ctx = setupLogging(ctx, o.Stderr, f.debug)

	cfg, err := config.LoadOrDefault(ctx, f.configFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
	if f.quiet {
		cfg.Editor.Sound = false
	}
	o.Config = cfg
	o.HistoryPath = f.historyFile

	addCommands(root, o)

	return root.ExecuteContext(ctx)
}
