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

package editor

import (
	"context"
	"fmt"
)

// 🔔 Tone is a feedback beep
type Tone struct {
	Hz int
	Ms int
}

var (
	ToneOpen     = Tone{Hz: 550, Ms: 60}
	ToneDialog   = Tone{Hz: 500, Ms: 50}
	ToneFound    = Tone{Hz: 750, Ms: 40}
	ToneInfo     = Tone{Hz: 660, Ms: 60}
	ToneSaved    = Tone{Hz: 880, Ms: 70}
	ToneCanceled = Tone{Hz: 440, Ms: 70}
	ToneFailed   = Tone{Hz: 330, Ms: 100}
)

// 🔌 Beeper plays a tone
type Beeper interface {
	Beep(hz, ms int)
}

// MessageKind classifies an announcement
type MessageKind int

const (
	MessageInfo MessageKind = iota
	MessageSuccess
	MessageFailure
)

func (k MessageKind) String() string {
	switch k {
	case MessageSuccess:
		return "success"
	case MessageFailure:
		return "failure"
	default:
		return "info"
	}
}

// 📢 Message is something the user should hear or read
type Message struct {
	Kind MessageKind
	Text string
}

func (m Message) String() string {
	return m.Text
}

// 🔌 Announcer reports messages to the user
type Announcer interface {
	Announce(ctx context.Context, msg Message)
}

// User facing message texts
const (
	MsgFindTextEmpty      = "Find text is empty"
	MsgTextNotFound       = "Text not found"
	MsgClipboardEmpty     = "Clipboard is empty"
	MsgClipboardUpdated   = "Clipboard updated"
	MsgClipboardFailed    = "Failed to update clipboard"
	MsgFileSaved          = "File saved"
	MsgChangesCanceled    = "Changes canceled"
	MsgProtectDisabled    = "Protect mode is disabled"
	MsgNoBackup           = "No backup available"
	MsgClipboardRestored  = "Previous clipboard restored"
	MsgRestoreFailed      = "Failed to restore clipboard"
	MsgDiscardChanges     = "You have unsaved changes. Discard them?"
	msgReplacementsFormat = "%d replacements"
	msgSaveErrorFormat    = "Error saving file: %s"
	msgInformationFormat  = "Clipboard information: %s"
)

// ReplacementsMessage formats the replace-all count
func ReplacementsMessage(n int) string {
	return fmt.Sprintf(msgReplacementsFormat, n)
}

// noopBeeper and noopAnnouncer stand in for missing collaborators
type noopBeeper struct{}

func (noopBeeper) Beep(int, int) {}

type noopAnnouncer struct{}

func (noopAnnouncer) Announce(context.Context, Message) {}
