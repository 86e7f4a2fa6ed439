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

// Package editor holds an editing session over a copy of the clipboard text:
// the buffer, the selection, find and replace, and the ways a session ends.
package editor

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/clipedit/pkg/backup"
	"github.com/walteh/clipedit/pkg/config"
	"github.com/walteh/clipedit/pkg/text"
)

var (
	// ErrClosed is returned by operations on a finished session
	ErrClosed = errors.Base("session is closed")

	// ErrActionDisabled is returned when an action has neither button nor shortcut
	ErrActionDisabled = errors.Base("action is disabled")

	// ErrProtectModeDisabled is returned by Restore when backups are off
	ErrProtectModeDisabled = errors.Base("protect mode is disabled")

	// ErrNoBackup is returned by Restore when the history is empty
	ErrNoBackup = errors.Base("no backup available")

	// ErrRestoreFailed is returned by Restore when the clipboard write fails
	ErrRestoreFailed = errors.Base("failed to restore clipboard")
)

// 🔌 Copier writes text to the clipboard
type Copier interface {
	Copy(ctx context.Context, text string) bool
}

// ResultKind is how a session ended
type ResultKind int

const (
	ResultSaved ResultKind = iota
	ResultCanceled
	ResultFailed
)

func (k ResultKind) String() string {
	switch k {
	case ResultSaved:
		return "saved"
	case ResultCanceled:
		return "canceled"
	default:
		return "failed"
	}
}

// 🏁 Result describes the end of a session; Message may be empty
type Result struct {
	Kind    ResultKind
	Message string
}

// ⚙️ Options are the collaborators of a Session
type Options struct {
	Copier    Copier
	Announcer Announcer
	Beeper    Beeper
	History   *backup.History
	Config    *config.Config
}

// 📝 Session edits a copy of the clipboard text
type Session struct {
	mu        sync.Mutex
	copier    Copier
	announcer Announcer
	beeper    Beeper
	history   *backup.History
	cfg       *config.Config

	initial string
	buffer  string
	sel     text.Span
	closed  bool
}

// 🏭 New opens a session over initial and plays the open tone
func New(ctx context.Context, initial string, opts Options) *Session {
	s := &Session{
		copier:    opts.Copier,
		announcer: opts.Announcer,
		beeper:    opts.Beeper,
		history:   opts.History,
		cfg:       opts.Config,
		initial:   initial,
		buffer:    initial,
	}
	if s.announcer == nil {
		s.announcer = noopAnnouncer{}
	}
	if s.beeper == nil {
		s.beeper = noopBeeper{}
	}
	if s.cfg == nil {
		s.cfg = config.Default()
	}

	zerolog.Ctx(ctx).Debug().Int("chars", len([]rune(initial))).Msg("editor session opened")
	s.play(ToneOpen)
	return s
}

// Text returns the buffer
func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer
}

// SetText replaces the buffer and collapses the selection to its end
func (s *Session) SetText(t string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer = t
	n := len([]rune(t))
	s.sel = text.Span{Start: n, End: n}
}

// Selection returns the current selection
func (s *Session) Selection() text.Span {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel
}

// Select sets the selection, clamped to the buffer
func (s *Session) Select(sp text.Span) text.Span {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel = sp.Clamp(len([]rune(s.buffer)))
	return s.sel
}

// IsDirty reports whether the buffer differs from the initial text
func (s *Session) IsDirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer != s.initial
}

// Closed reports whether the session has ended
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// OpenDialog checks that a is reachable and plays the dialog tone
func (s *Session) OpenDialog(ctx context.Context, a config.Action) error {
	if !s.cfg.Editor.ShortcutActive(a) {
		return errors.WithDetails(ErrActionDisabled, "action", string(a))
	}
	s.play(ToneDialog)
	return nil
}

// 🔍 FindNext selects the next match after the selection, wrapping to the top
func (s *Session) FindNext(ctx context.Context, q text.Query) (text.Span, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return text.Span{}, errors.WithStack(ErrClosed)
	}
	if err := q.Validate(); err != nil {
		s.announce(ctx, MessageFailure, MsgFindTextEmpty)
		return text.Span{}, err
	}

	found, ok := text.FindNextWrap(s.buffer, q, s.sel.End)
	if !ok {
		s.notFound(ctx)
		return text.Span{}, errors.WithStack(text.ErrNotFound)
	}

	s.sel = found
	s.play(ToneFound)
	zerolog.Ctx(ctx).Debug().Stringer("span", found).Msg("match selected")
	return found, nil
}

// 🔄 Replace replaces the selected match, or the next one, and selects the
// inserted text
func (s *Session) Replace(ctx context.Context, req text.ReplacementRequest) (text.Span, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return text.Span{}, errors.WithStack(ErrClosed)
	}
	if err := req.Validate(); err != nil {
		s.announce(ctx, MessageFailure, MsgFindTextEmpty)
		return text.Span{}, err
	}

	out := text.ReplaceOne(s.buffer, s.sel, req)
	if !out.Replaced {
		s.notFound(ctx)
		return text.Span{}, errors.WithStack(text.ErrNotFound)
	}

	s.buffer = out.Buffer
	s.sel = out.Selection
	s.play(ToneFound)
	return out.Selection, nil
}

// 🔄 ReplaceAll replaces every match and announces the count
func (s *Session) ReplaceAll(ctx context.Context, req text.ReplacementRequest) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, errors.WithStack(ErrClosed)
	}
	if err := req.Validate(); err != nil {
		s.announce(ctx, MessageFailure, MsgFindTextEmpty)
		return 0, err
	}

	updated, n := text.ReplaceAll(s.buffer, req)
	if n == 0 {
		s.notFound(ctx)
		return 0, errors.WithStack(text.ErrNoReplacementsMade)
	}

	s.buffer = updated
	end := len([]rune(updated))
	s.sel = s.sel.Clamp(end)
	s.play(ToneSaved)
	s.announce(ctx, MessageInfo, ReplacementsMessage(n))
	return n, nil
}

// 📊 Information announces the buffer statistics
func (s *Session) Information(ctx context.Context) (text.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.buffer == "" {
		s.announce(ctx, MessageFailure, MsgClipboardEmpty)
		return text.Stats{}, errors.WithStack(text.ErrEmptyText)
	}

	stats := text.Summarize(s.buffer)
	s.play(ToneInfo)
	s.announce(ctx, MessageInfo, fmt.Sprintf(msgInformationFormat, stats))
	return stats, nil
}

// 💾 Save backs up the initial text and copies the buffer to the clipboard
func (s *Session) Save(ctx context.Context) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Result{Kind: ResultFailed, Message: ErrClosed.Error()}
	}

	if s.cfg.Editor.ProtectMode && s.history != nil {
		s.history.Push(s.initial)
	}

	if s.copier != nil && s.copier.Copy(ctx, s.buffer) {
		return s.finish(ctx, ResultSaved, MsgClipboardUpdated)
	}
	return s.finish(ctx, ResultFailed, MsgClipboardFailed)
}

// 💾 SaveAs writes the buffer to path as UTF-8
func (s *Session) SaveAs(ctx context.Context, path string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Result{Kind: ResultFailed, Message: ErrClosed.Error()}
	}

	s.play(ToneDialog)
	if err := os.WriteFile(path, []byte(s.buffer), 0o644); err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("path", path).Msg("save as failed")
		return s.finish(ctx, ResultFailed, fmt.Sprintf(msgSaveErrorFormat, err))
	}
	return s.finish(ctx, ResultSaved, MsgFileSaved)
}

// ❌ Cancel ends the session without saving. A dirty buffer asks confirm
// first; false is returned when the user keeps editing.
func (s *Session) Cancel(ctx context.Context, confirm func() bool) (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Result{Kind: ResultCanceled}, true
	}

	if s.buffer == s.initial {
		return s.finish(ctx, ResultCanceled, ""), true
	}
	if confirm == nil || !confirm() {
		return Result{}, false
	}
	return s.finish(ctx, ResultCanceled, MsgChangesCanceled), true
}

// ♻️ Restore copies the newest backup back to the clipboard
func (s *Session) Restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return restore(ctx, s.cfg, s.history, s.copier, s.announcer, s.beeper)
}

// ♻️ Restore copies the newest backup back to the clipboard without a session
func Restore(ctx context.Context, opts Options) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	announcer := opts.Announcer
	if announcer == nil {
		announcer = noopAnnouncer{}
	}
	beeper := opts.Beeper
	if beeper == nil {
		beeper = noopBeeper{}
	}
	return restore(ctx, cfg, opts.History, opts.Copier, announcer, beeper)
}

func restore(ctx context.Context, cfg *config.Config, history *backup.History, copier Copier, announcer Announcer, beeper Beeper) error {
	play := func(t Tone) {
		if cfg.Editor.Sound {
			beeper.Beep(t.Hz, t.Ms)
		}
	}

	if !cfg.Editor.ProtectMode {
		announcer.Announce(ctx, Message{Kind: MessageFailure, Text: MsgProtectDisabled})
		return errors.WithStack(ErrProtectModeDisabled)
	}
	if history == nil || history.Len() == 0 {
		play(ToneFailed)
		announcer.Announce(ctx, Message{Kind: MessageFailure, Text: MsgNoBackup})
		return errors.WithStack(ErrNoBackup)
	}

	previous, _ := history.Pop()
	if copier != nil && copier.Copy(ctx, previous) {
		play(ToneSaved)
		announcer.Announce(ctx, Message{Kind: MessageSuccess, Text: MsgClipboardRestored})
		return nil
	}

	play(ToneFailed)
	announcer.Announce(ctx, Message{Kind: MessageFailure, Text: MsgRestoreFailed})
	return errors.WithStack(ErrRestoreFailed)
}

// finish ends the session with the tone for kind and an optional message
func (s *Session) finish(ctx context.Context, kind ResultKind, msg string) Result {
	s.closed = true

	msgKind := MessageInfo
	switch kind {
	case ResultSaved:
		s.play(ToneSaved)
		msgKind = MessageSuccess
	case ResultCanceled:
		s.play(ToneCanceled)
	default:
		s.play(ToneFailed)
		msgKind = MessageFailure
	}

	if msg != "" {
		s.announce(ctx, msgKind, msg)
	}
	zerolog.Ctx(ctx).Debug().Stringer("result", kind).Msg("editor session closed")
	return Result{Kind: kind, Message: msg}
}

func (s *Session) notFound(ctx context.Context) {
	s.play(ToneFailed)
	s.announce(ctx, MessageFailure, MsgTextNotFound)
}

func (s *Session) announce(ctx context.Context, kind MessageKind, msg string) {
	s.announcer.Announce(ctx, Message{Kind: kind, Text: msg})
}

func (s *Session) play(t Tone) {
	if s.cfg.Editor.Sound {
		s.beeper.Beep(t.Hz, t.Ms)
	}
}
