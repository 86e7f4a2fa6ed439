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

package clipboard

import (
	"io"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
	"gitlab.com/tozd/go/errors"
)

// 🖥️ SystemWriter writes through github.com/atotto/clipboard
type SystemWriter struct{}

// WriteText implements Writer. Empty text is rejected.
func (SystemWriter) WriteText(text string) error {
	if text == "" {
		return errors.WithStack(ErrEmptyText)
	}
	if clipboard.Unsupported {
		return errors.New("system clipboard is not supported on this platform")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return errors.Errorf("writing system clipboard: %w", err)
	}
	return nil
}

// ReadText returns the current system clipboard text
func ReadText() (string, error) {
	if clipboard.Unsupported {
		return "", errors.New("system clipboard is not supported on this platform")
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", errors.Errorf("reading system clipboard: %w", err)
	}
	return text, nil
}

// 🔧 Command is a clipboard tool that reads the new contents from stdin
type Command struct {
	Name string
	Args []string
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// DefaultCommands are tried in order by CommandOpener
var DefaultCommands = []Command{
	{Name: "pbcopy"},
	{Name: "wl-copy"},
	{Name: "xclip", Args: []string{"-selection", "clipboard"}},
	{Name: "xsel", Args: []string{"--clipboard", "--input"}},
	{Name: "clip.exe"},
}

// 🔧 CommandOpener opens a clipboard session by piping into a platform tool
type CommandOpener struct {
	Commands []Command
	lookPath func(string) (string, error)
}

// NewCommandOpener creates a CommandOpener over DefaultCommands
func NewCommandOpener() *CommandOpener {
	return &CommandOpener{
		Commands: DefaultCommands,
		lookPath: exec.LookPath,
	}
}

// Open implements Opener by starting the first available command
func (o *CommandOpener) Open() (Session, error) {
	lookPath := o.lookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	for _, c := range o.Commands {
		path, err := lookPath(c.Name)
		if err != nil {
			continue
		}

		cmd := exec.Command(path, c.Args...)
		stdin, err := cmd.StdinPipe()
		if err != nil {
			return nil, errors.Errorf("creating stdin pipe for %s: %w", c, err)
		}
		if err := cmd.Start(); err != nil {
			return nil, errors.Errorf("starting %s: %w", c, err)
		}
		return &commandSession{cmd: cmd, stdin: stdin}, nil
	}

	return nil, errors.New("no clipboard command available")
}

// commandSession writes to a running clipboard command
type commandSession struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
}

func (s *commandSession) SetText(text string) error {
	if _, err := io.WriteString(s.stdin, text); err != nil {
		return errors.Errorf("writing to clipboard command: %w", err)
	}
	return nil
}

func (s *commandSession) Close() error {
	cerr := s.stdin.Close()
	if err := s.cmd.Wait(); err != nil {
		return errors.Errorf("waiting for clipboard command: %w", err)
	}
	if cerr != nil {
		return errors.Errorf("closing clipboard command input: %w", cerr)
	}
	return nil
}
