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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/clipedit/cmd/clipedit/commands"
	"github.com/walteh/clipedit/cmd/clipedit/opts"
	"github.com/walteh/clipedit/pkg/backup"
	"github.com/walteh/clipedit/pkg/editor"
)

// fakeClipboard is a clipboard that always reads back the last good copy
type fakeClipboard struct {
	text    string
	readErr error
	fail    bool
	copies  []string
}

func (c *fakeClipboard) Copy(_ context.Context, t string) bool {
	c.copies = append(c.copies, t)
	if c.fail {
		return false
	}
	c.text = t
	return true
}

func (c *fakeClipboard) Read() (string, error) {
	if c.readErr != nil {
		return "", c.readErr
	}
	return c.text, nil
}

type recordingAnnouncer struct {
	msgs []editor.Message
}

func (a *recordingAnnouncer) Announce(_ context.Context, msg editor.Message) {
	a.msgs = append(a.msgs, msg)
}

type countingBeeper struct {
	count int
}

func (b *countingBeeper) Beep(int, int) {
	b.count++
}

type cli struct {
	dir       string
	config    string
	history   string
	stdout    *bytes.Buffer
	clipboard *fakeClipboard
	announcer *recordingAnnouncer
	beeper    *countingBeeper
	edits     []string
	answers   []bool
	questions []string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	dir := t.TempDir()
	return &cli{
		dir:       dir,
		config:    filepath.Join(dir, "missing.yaml"),
		history:   filepath.Join(dir, "history.yaml"),
		stdout:    &bytes.Buffer{},
		clipboard: &fakeClipboard{},
		announcer: &recordingAnnouncer{},
		beeper:    &countingBeeper{},
	}
}

func (c *cli) writeConfig(t *testing.T, content string) {
	t.Helper()
	c.config = filepath.Join(c.dir, "clipedit.yaml")
	require.NoError(t, os.WriteFile(c.config, []byte(content), 0o644), "writing config")
}

func (c *cli) run(t *testing.T, stdin string, args ...string) error {
	t.Helper()
	c.stdout.Reset()

	o := &opts.RootOpts{
		Stdin:         strings.NewReader(stdin),
		Stdout:        c.stdout,
		Stderr:        &bytes.Buffer{},
		Copier:        c.clipboard,
		Announcer:     c.announcer,
		Beeper:        c.beeper,
		ReadClipboard: c.clipboard.Read,
		Edit: func(_ context.Context, text string) (string, error) {
			if len(c.edits) == 0 {
				return text, nil
			}
			next := c.edits[0]
			c.edits = c.edits[1:]
			return next, nil
		},
		Confirm: func(question string) bool {
			c.questions = append(c.questions, question)
			if len(c.answers) == 0 {
				return false
			}
			next := c.answers[0]
			c.answers = c.answers[1:]
			return next
		},
	}

	full := append([]string{}, args...)
	full = append(full, "--config", c.config, "--history", c.history)
	return run(context.Background(), full, o)
}

func (c *cli) backups(t *testing.T) []string {
	t.Helper()
	h, err := backup.LoadFile(c.history, 20)
	require.NoError(t, err, "loading history")
	return h.Entries()
}

func TestRun_TextCommands(t *testing.T) {
	tests := []struct {
		name        string
		stdin       string
		args        []string
		want        string
		errContains string
	}{
		{
			name:  "info",
			stdin: "hello world\nbye",
			args:  []string{"info"},
			want:  "15 characters, 3 words, 2 lines, 15 graphemes\n",
		},
		{
			name:        "info_empty",
			stdin:       "",
			args:        []string{"info"},
			errContains: "text is empty",
		},
		{
			name:  "find_from_offset",
			stdin: "cat dog cat",
			args:  []string{"find", "--find", "cat", "--from", "1"},
			want:  "8:11\tcat\n",
		},
		{
			name:  "find_wraps",
			stdin: "cat dog",
			args:  []string{"find", "--find", "cat", "--from", "5"},
			want:  "0:3\tcat\n",
		},
		{
			name:  "find_all",
			stdin: "Cat dog cat concat",
			args:  []string{"find", "--find", "cat", "--all"},
			want:  "0:3\tCat\n8:11\tcat\n",
		},
		{
			name:  "find_all_from_overlapping_match",
			stdin: "aaa",
			args:  []string{"find", "--find", "aa", "--whole-words=false", "--from", "1", "--all"},
			want:  "1:3\taa\n0:2\taa\n",
		},
		{
			name:  "find_all_from_middle",
			stdin: "cat cat cat",
			args:  []string{"find", "--find", "cat", "--from", "5", "--all"},
			want:  "8:11\tcat\n0:3\tcat\n4:7\tcat\n",
		},
		{
			name:  "find_substrings",
			stdin: "concat",
			args:  []string{"find", "--find", "cat", "--whole-words=false"},
			want:  "3:6\tcat\n",
		},
		{
			name:        "find_missing",
			stdin:       "dog",
			args:        []string{"find", "--find", "cat"},
			errContains: "text not found",
		},
		{
			name:        "find_requires_query",
			stdin:       "dog",
			args:        []string{"find"},
			errContains: "find",
		},
		{
			name:  "replace_all_preserves_case",
			stdin: "Cat cat CAT",
			args:  []string{"replace-all", "--find", "cat", "--replace", "dog"},
			want:  "Dog dog DOG",
		},
		{
			name:  "replace_all_literal",
			stdin: "Cat cat",
			args:  []string{"replace-all", "--find", "cat", "--replace", "dog", "--preserve-case=false"},
			want:  "dog dog",
		},
		{
			name:        "replace_all_nothing",
			stdin:       "bird",
			args:        []string{"replace-all", "--find", "cat", "--replace", "dog"},
			errContains: "no replacements made",
		},
		{
			name:  "replace_selection",
			stdin: "cat cat",
			args:  []string{"replace", "--find", "cat", "--replace", "dog", "--selection", "4:7"},
			want:  "cat dog",
		},
		{
			name:  "replace_next_match",
			stdin: "cat cat",
			args:  []string{"replace", "--find", "cat", "--replace", "dog"},
			want:  "dog cat",
		},
		{
			name:        "replace_bad_selection",
			stdin:       "cat",
			args:        []string{"replace", "--find", "cat", "--selection", "3"},
			errContains: "invalid selection",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCLI(t)

			err := c.run(t, tt.stdin, tt.args...)
			if tt.errContains != "" {
				require.Error(t, err, "expected an error")
				assert.Contains(t, err.Error(), tt.errContains, "error message")
				return
			}
			require.NoError(t, err, "running command")
			assert.Equal(t, tt.want, c.stdout.String(), "stdout")
		})
	}
}

func TestRun_FileInPlace(t *testing.T) {
	c := newCLI(t)
	path := filepath.Join(c.dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("the cat sat"), 0o600), "writing input")

	err := c.run(t, "", "replace-all", "--file", path, "--in-place", "--find", "cat", "--replace", "dog")
	require.NoError(t, err, "replace-all in place")

	data, err := os.ReadFile(path)
	require.NoError(t, err, "reading output")
	assert.Equal(t, "the dog sat", string(data), "file content")
	assert.Empty(t, c.stdout.String(), "nothing on stdout")

	info, err := os.Stat(path)
	require.NoError(t, err, "stat output")
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "permissions kept")
}

func TestRun_InPlaceNeedsFile(t *testing.T) {
	c := newCLI(t)

	err := c.run(t, "cat", "replace-all", "--in-place", "--find", "cat", "--replace", "dog")
	require.Error(t, err, "in-place without a file")
	assert.Contains(t, err.Error(), "--in-place requires --file", "error message")
}

func TestRun_CopyAndRestore(t *testing.T) {
	c := newCLI(t)
	c.clipboard.text = "original"

	require.NoError(t, c.run(t, "a cat", "replace-all", "--find", "cat", "--replace", "dog", "--copy"), "replace-all to clipboard")
	assert.Equal(t, "a dog", c.clipboard.text, "clipboard updated")
	assert.Equal(t, []string{"original"}, c.backups(t), "previous clipboard backed up")

	require.NoError(t, c.run(t, "second", "copy"), "copy stdin")
	assert.Equal(t, "second", c.clipboard.text, "clipboard updated")
	assert.Equal(t, []string{"a dog"}, c.backups(t), "one backup level by default")

	require.NoError(t, c.run(t, "", "restore"), "restore")
	assert.Equal(t, "a dog", c.clipboard.text, "clipboard restored")
	assert.Empty(t, c.backups(t), "backup consumed")

	err := c.run(t, "", "restore")
	require.Error(t, err, "nothing left to restore")
	assert.True(t, errors.Is(err, editor.ErrNoBackup), "no backup error")
}

func TestRun_CopyFailure(t *testing.T) {
	c := newCLI(t)
	c.clipboard.text = "original"
	c.clipboard.fail = true

	err := c.run(t, "new", "copy")
	require.Error(t, err, "copy should fail")
	assert.Contains(t, err.Error(), editor.MsgClipboardFailed, "error message")
	assert.Equal(t, []string{"original"}, c.backups(t), "backup kept even when the copy fails")
}

func TestRun_RestoreWithoutProtectMode(t *testing.T) {
	c := newCLI(t)
	c.writeConfig(t, "editor:\n  protect_mode: false\n")

	err := c.run(t, "", "restore")
	require.Error(t, err, "restore needs protect mode")
	assert.True(t, errors.Is(err, editor.ErrProtectModeDisabled), "protect mode error")
	assert.Equal(t, 0, c.beeper.count, "no tone")
}

func TestRun_HiddenCommands(t *testing.T) {
	tests := []struct {
		name      string
		config    string
		command   []string
		available bool
	}{
		{
			name:      "hidden_with_shortcuts",
			config:    "editor:\n  find_button: false\n",
			command:   []string{"find", "--find", "cat"},
			available: true,
		},
		{
			name:      "hidden_without_shortcuts",
			config:    "editor:\n  find_button: false\n  shortcuts_when_hidden: false\n",
			command:   []string{"find", "--find", "cat"},
			available: false,
		},
		{
			name:      "replace_hidden",
			config:    "editor:\n  replace_button: false\n  shortcuts_when_hidden: false\n",
			command:   []string{"replace-all", "--find", "cat", "--replace", "dog"},
			available: false,
		},
		{
			name:      "info_hidden",
			config:    "editor:\n  information_button: false\n  shortcuts_when_hidden: false\n",
			command:   []string{"info"},
			available: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCLI(t)
			c.writeConfig(t, tt.config)

			err := c.run(t, "cat", tt.command...)
			if tt.available {
				require.NoError(t, err, "command should run")
				return
			}
			require.Error(t, err, "command should be unavailable")
			assert.Contains(t, err.Error(), "unknown command", "error message")
		})
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	c := newCLI(t)
	c.writeConfig(t, "editor:\n  backup_levels: 0\n")

	err := c.run(t, "", "version")
	require.Error(t, err, "invalid config")
	assert.Contains(t, err.Error(), "loading config", "error message")
}

func TestRun_Edit(t *testing.T) {
	tests := []struct {
		name          string
		clipboard     string
		edits         []string
		answers       []bool
		saveAs        bool
		wantClipboard string
		wantBackups   []string
		wantQuestions []string
	}{
		{
			name:          "save_to_clipboard",
			clipboard:     "hello",
			edits:         []string{"hello world"},
			answers:       []bool{true},
			wantClipboard: "hello world",
			wantBackups:   []string{"hello"},
			wantQuestions: []string{commands.SaveQuestion},
		},
		{
			name:          "unchanged_closes",
			clipboard:     "hello",
			wantClipboard: "hello",
			wantBackups:   []string{},
		},
		{
			name:          "discard_changes",
			clipboard:     "hello",
			edits:         []string{"bye"},
			answers:       []bool{false, true},
			wantClipboard: "hello",
			wantBackups:   []string{},
			wantQuestions: []string{commands.SaveQuestion, editor.MsgDiscardChanges},
		},
		{
			name:          "keep_editing_then_save",
			clipboard:     "hello",
			edits:         []string{"bye", "bye now"},
			answers:       []bool{false, false, true},
			wantClipboard: "bye now",
			wantBackups:   []string{"hello"},
			wantQuestions: []string{commands.SaveQuestion, editor.MsgDiscardChanges, commands.SaveQuestion},
		},
		{
			name:          "save_as_file",
			clipboard:     "hello",
			edits:         []string{"to disk"},
			answers:       []bool{true},
			saveAs:        true,
			wantClipboard: "hello",
			wantBackups:   []string{},
			wantQuestions: []string{commands.SaveQuestion},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCLI(t)
			c.clipboard.text = tt.clipboard
			c.edits = tt.edits
			c.answers = tt.answers

			args := []string{"edit"}
			out := filepath.Join(c.dir, "saved.txt")
			if tt.saveAs {
				args = append(args, "--save-as", out)
			}

			require.NoError(t, c.run(t, "", args...), "edit")
			assert.Equal(t, tt.wantClipboard, c.clipboard.text, "clipboard")
			assert.Equal(t, tt.wantBackups, c.backups(t), "backups")
			assert.Equal(t, tt.wantQuestions, c.questions, "questions asked")

			if tt.saveAs {
				data, err := os.ReadFile(out)
				require.NoError(t, err, "reading saved file")
				assert.Equal(t, tt.edits[len(tt.edits)-1], string(data), "saved file")
			}
		})
	}
}

func TestRun_Batch(t *testing.T) {
	c := newCLI(t)
	root := filepath.Join(c.dir, "tree")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0o755), "creating tree")
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("foo bar"), 0o644), "writing a.txt")
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "b.txt"), []byte("Foo"), 0o644), "writing b.txt")
	require.NoError(t, os.WriteFile(filepath.Join(root, "c.md"), []byte("foo"), 0o644), "writing c.md")

	c.writeConfig(t, `rules:
  - name: rename
    find: foo
    replace: baz
    whole_words_only: true
    preserve_case: true
    files: "**/*.txt"
`)

	require.NoError(t, c.run(t, "", "batch", "--dry-run", root), "dry run")
	data, err := os.ReadFile(filepath.Join(root, "a.txt"))
	require.NoError(t, err, "reading a.txt")
	assert.Equal(t, "foo bar", string(data), "dry run leaves files alone")

	require.NoError(t, c.run(t, "", "batch", root), "batch")

	want := map[string]string{
		"a.txt":     "baz bar",
		"sub/b.txt": "Baz",
		"c.md":      "foo",
	}
	for name, content := range want {
		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name)))
		require.NoError(t, err, "reading %s", name)
		assert.Equal(t, content, string(data), "content of %s", name)
	}
}

func TestRun_BatchWithoutRules(t *testing.T) {
	c := newCLI(t)

	err := c.run(t, "", "batch", c.dir)
	require.Error(t, err, "batch needs rules")
	assert.Contains(t, err.Error(), "no rules configured", "error message")
}

func TestRun_Tones(t *testing.T) {
	c := newCLI(t)
	require.NoError(t, c.run(t, "cat", "find", "--find", "cat"), "find")
	assert.Equal(t, 3, c.beeper.count, "open, dialog and found tones")

	q := newCLI(t)
	require.NoError(t, q.run(t, "cat", "find", "--find", "cat", "--quiet"), "quiet find")
	assert.Equal(t, 0, q.beeper.count, "quiet disables tones")
}

func TestRun_Version(t *testing.T) {
	c := newCLI(t)

	require.NoError(t, c.run(t, "", "version"), "version")
	assert.Contains(t, c.stdout.String(), "clipedit version info", "version output")
}
