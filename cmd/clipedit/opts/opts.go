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

package opts

import (
	"context"
	"io"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/clipedit/pkg/backup"
	"github.com/walteh/clipedit/pkg/config"
	"github.com/walteh/clipedit/pkg/editor"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config      *config.Config
	HistoryPath string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Copier    editor.Copier
	Announcer editor.Announcer
	Beeper    editor.Beeper

	// ReadClipboard returns the current clipboard text
	ReadClipboard func() (string, error)

	// Edit lets the user change text interactively
	Edit func(ctx context.Context, text string) (string, error)

	// Confirm asks a yes/no question
	Confirm func(question string) bool
}

// LoadHistory reads the backup history sized by the config
func (o *RootOpts) LoadHistory() (*backup.History, error) {
	if o.HistoryPath == "" {
		return backup.New(o.Config.Editor.BackupLevels), nil
	}
	h, err := backup.LoadFile(o.HistoryPath, o.Config.Editor.BackupLevels)
	if err != nil {
		return nil, errors.Errorf("loading backup history: %w", err)
	}
	return h, nil
}

// SaveHistory persists h when a history path is configured
func (o *RootOpts) SaveHistory(h *backup.History) error {
	if o.HistoryPath == "" {
		return nil
	}
	if err := h.SaveFile(o.HistoryPath); err != nil {
		return errors.Errorf("saving backup history: %w", err)
	}
	return nil
}

// NewSession opens an editor session over initial using the shared collaborators
func (o *RootOpts) NewSession(ctx context.Context, initial string, history *backup.History) *editor.Session {
	return editor.New(ctx, initial, editor.Options{
		Copier:    o.Copier,
		Announcer: o.Announcer,
		Beeper:    o.Beeper,
		History:   history,
		Config:    o.Config,
	})
}
