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

package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"

	"github.com/walteh/clipedit/pkg/editor"
)

// 📢 Announcer prints editor messages with pterm prefix printers
type Announcer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewAnnouncer creates an Announcer writing to out
func NewAnnouncer(out io.Writer) *Announcer {
	return &Announcer{out: out}
}

// Announce implements editor.Announcer
func (a *Announcer) Announce(ctx context.Context, msg editor.Message) {
	var printer *pterm.PrefixPrinter
	switch msg.Kind {
	case editor.MessageSuccess:
		printer = pterm.Success.WithPrefix(pterm.Prefix{Text: "✅", Style: pterm.Success.Prefix.Style})
	case editor.MessageFailure:
		printer = pterm.Error.WithPrefix(pterm.Prefix{Text: "❌", Style: pterm.Error.Prefix.Style})
	default:
		printer = pterm.Info.WithPrefix(pterm.Prefix{Text: "ℹ️", Style: pterm.Info.Prefix.Style})
	}

	a.mu.Lock()
	fmt.Fprint(a.out, printer.Sprintln(msg.Text))
	a.mu.Unlock()

	zerolog.Ctx(ctx).Debug().
		Str("kind", msg.Kind.String()).
		Str("message", msg.Text).
		Msg("announced")
}
