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
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/clipedit/cmd/clipedit/opts"
	"github.com/walteh/clipedit/pkg/backup"
	"github.com/walteh/clipedit/pkg/editor"
	"github.com/walteh/clipedit/pkg/text"
)

// inputFlags select where the text comes from
type inputFlags struct {
	file      string
	clipboard bool
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "read text from a file")
	cmd.Flags().BoolVar(&f.clipboard, "clipboard", false, "read text from the clipboard")
	cmd.MarkFlagsMutuallyExclusive("file", "clipboard")
}

// read returns the input text: file, clipboard or stdin
func (f *inputFlags) read(o *opts.RootOpts) (string, error) {
	switch {
	case f.file != "":
		data, err := os.ReadFile(f.file)
		if err != nil {
			return "", errors.Errorf("reading %s: %w", f.file, err)
		}
		return string(data), nil
	case f.clipboard:
		t, err := o.ReadClipboard()
		if err != nil {
			return "", errors.Errorf("reading clipboard: %w", err)
		}
		return t, nil
	default:
		data, err := io.ReadAll(o.Stdin)
		if err != nil {
			return "", errors.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
}

// outputFlags select where an edited buffer goes
type outputFlags struct {
	copy    bool
	inPlace bool
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.copy, "copy", false, "write the result to the clipboard")
	cmd.Flags().BoolVar(&f.inPlace, "in-place", false, "write the result back to --file")
	cmd.MarkFlagsMutuallyExclusive("copy", "in-place")
}

// searchFlags are the find options, seeded from the config
type searchFlags struct {
	find         string
	matchCase    bool
	wholeWords   bool
	preserveCase bool
}

func (f *searchFlags) register(cmd *cobra.Command, o *opts.RootOpts, withReplace bool) {
	cmd.Flags().StringVar(&f.find, "find", "", "text to find")
	cmd.Flags().BoolVar(&f.matchCase, "match-case", o.Config.Search.MatchCase, "match case")
	cmd.Flags().BoolVar(&f.wholeWords, "whole-words", o.Config.Search.WholeWordsOnly, "match whole words only")
	if withReplace {
		cmd.Flags().BoolVar(&f.preserveCase, "preserve-case", o.Config.Search.PreserveCase, "keep the case shape of each match")
	}
}

func (f *searchFlags) query() text.Query {
	return text.Query{
		FindText:       f.find,
		MatchCase:      f.matchCase,
		WholeWordsOnly: f.wholeWords,
	}
}

func (f *searchFlags) request(replace string) text.ReplacementRequest {
	return text.ReplacementRequest{
		Query:        f.query(),
		ReplaceText:  replace,
		PreserveCase: f.preserveCase,
	}
}

// openSession starts a session over input. When the result is copied to the
// clipboard, the session starts from the current clipboard so that protect
// mode backs up what is about to be overwritten.
func openSession(ctx context.Context, o *opts.RootOpts, in inputFlags, out outputFlags, input string) (*editor.Session, *backup.History, error) {
	history, err := o.LoadHistory()
	if err != nil {
		return nil, nil, err
	}

	initial := input
	if out.copy && !in.clipboard {
		if current, err := o.ReadClipboard(); err == nil {
			initial = current
		} else {
			zerolog.Ctx(ctx).Debug().Err(err).Msg("could not read clipboard for backup")
		}
	}

	sess := o.NewSession(ctx, initial, history)
	if initial != input {
		sess.SetText(input)
	}
	sess.Select(text.Span{})
	return sess, history, nil
}

// writeOutput sends the buffer to the clipboard, back to the file or to stdout
func writeOutput(ctx context.Context, o *opts.RootOpts, in inputFlags, out outputFlags, sess *editor.Session, history *backup.History) error {
	switch {
	case out.copy:
		res := sess.Save(ctx)
		if err := o.SaveHistory(history); err != nil {
			return err
		}
		if res.Kind != editor.ResultSaved {
			return errors.New(res.Message)
		}
		return nil
	case out.inPlace:
		if in.file == "" {
			return errors.New("--in-place requires --file")
		}
		info, err := os.Stat(in.file)
		if err != nil {
			return errors.Errorf("stat %s: %w", in.file, err)
		}
		if err := os.WriteFile(in.file, []byte(sess.Text()), info.Mode().Perm()); err != nil {
			return errors.Errorf("writing %s: %w", in.file, err)
		}
		return nil
	default:
		_, err := fmt.Fprint(o.Stdout, sess.Text())
		return err
	}
}

// parseSpan parses "start:end" code-point offsets
func parseSpan(s string) (text.Span, error) {
	if s == "" {
		return text.Span{}, nil
	}
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return text.Span{}, errors.Errorf("invalid selection %q, want start:end", s)
	}
	start, err := strconv.Atoi(a)
	if err != nil {
		return text.Span{}, errors.Errorf("invalid selection start %q: %w", a, err)
	}
	end, err := strconv.Atoi(b)
	if err != nil {
		return text.Span{}, errors.Errorf("invalid selection end %q: %w", b, err)
	}
	if start < 0 || end < start {
		return text.Span{}, errors.Errorf("invalid selection %q", s)
	}
	return text.Span{Start: start, End: end}, nil
}
