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

// Package clipboard writes text to the system clipboard with a fallback
// mechanism when the primary write fails.
package clipboard

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrEmptyText is returned by writers that refuse to write an empty string
var ErrEmptyText = errors.Base("empty clipboard text")

// 🔌 Writer is a one-shot clipboard write
type Writer interface {
	WriteText(text string) error
}

// 🔌 Opener starts an explicit clipboard session
type Opener interface {
	Open() (Session, error)
}

// 📋 Session is an open clipboard; Close must always be called once Open succeeds
type Session interface {
	SetText(text string) error
	Close() error
}

// 📋 Copier writes through the primary writer and falls back to a session
// from the secondary opener
type Copier struct {
	primary   Writer
	secondary Opener
}

// NewCopier creates a Copier; either tier may be nil
func NewCopier(primary Writer, secondary Opener) *Copier {
	return &Copier{
		primary:   primary,
		secondary: secondary,
	}
}

// NewSystemCopier creates a Copier backed by the system clipboard
func NewSystemCopier() *Copier {
	return NewCopier(SystemWriter{}, NewCommandOpener())
}

// 🎯 Copy writes text to the clipboard and reports whether any tier succeeded.
// Failures are logged, never returned.
func (c *Copier) Copy(ctx context.Context, text string) bool {
	logger := zerolog.Ctx(ctx)

	err := c.writePrimary(text)
	if err == nil {
		logger.Debug().Int("bytes", len(text)).Msg("clipboard written by primary writer")
		return true
	}
	logger.Debug().Err(err).Msg("primary clipboard write failed, trying fallback")

	err = c.writeSecondary(text)
	if err == nil {
		logger.Debug().Int("bytes", len(text)).Msg("clipboard written by fallback session")
		return true
	}
	logger.Debug().Err(err).Msg("fallback clipboard write failed")

	return false
}

func (c *Copier) writePrimary(text string) (err error) {
	if c.primary == nil {
		return errors.New("no primary clipboard writer")
	}
	defer recoverInto(&err)

	return c.primary.WriteText(text)
}

func (c *Copier) writeSecondary(text string) (err error) {
	if c.secondary == nil {
		return errors.New("no fallback clipboard opener")
	}
	defer recoverInto(&err)

	sess, err := c.secondary.Open()
	if err != nil {
		return errors.Errorf("opening clipboard: %w", err)
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil && err == nil {
			err = errors.Errorf("closing clipboard: %w", cerr)
		}
	}()

	if err := sess.SetText(text); err != nil {
		return errors.Errorf("setting clipboard text: %w", err)
	}
	return nil
}

// recoverInto turns a panic in a clipboard backend into an error
func recoverInto(err *error) {
	if r := recover(); r != nil {
		*err = errors.Errorf("clipboard panic: %v", r)
	}
}
