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
	"os"
	"os/exec"

	"github.com/pterm/pterm"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/clipedit/cmd/clipedit/opts"
	"github.com/walteh/clipedit/pkg/clipboard"
	"github.com/walteh/clipedit/pkg/log"
)

// bellBeeper rings the terminal bell for every tone
type bellBeeper struct {
	w io.Writer
}

func (b bellBeeper) Beep(hz, ms int) {
	_, _ = io.WriteString(b.w, "\a")
}

// editorCommand returns the user's editor, falling back to vi
func editorCommand() string {
	for _, key := range []string{"VISUAL", "EDITOR"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return "vi"
}

// editInEditor writes text to a temp file, opens it in the user's editor
// and returns what was saved
func editInEditor(ctx context.Context, text string) (string, error) {
	f, err := os.CreateTemp("", "clipedit-*.txt")
	if err != nil {
		return "", errors.Errorf("creating temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return "", errors.Errorf("writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", errors.Errorf("closing temp file: %w", err)
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", editorCommand()+` "$1"`, "clipedit", path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", errors.Errorf("running editor: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Errorf("reading edited text: %w", err)
	}
	return string(data), nil
}

// confirm asks question interactively
func confirm(question string) bool {
	ok, err := pterm.DefaultInteractiveConfirm.Show(question)
	if err != nil {
		return false
	}
	return ok
}

// systemOpts wires the real clipboard, terminal and editor
func systemOpts() *opts.RootOpts {
	return &opts.RootOpts{
		Stdin:         os.Stdin,
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		Copier:        clipboard.NewSystemCopier(),
		Announcer:     log.NewAnnouncer(os.Stderr),
		Beeper:        bellBeeper{w: os.Stderr},
		ReadClipboard: clipboard.ReadText,
		Edit:          editInEditor,
		Confirm:       confirm,
	}
}
