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

package text

import (
	"strings"
	"unicode/utf8"
)

// 📦 ReplaceOutcome is the result of a single replacement
type ReplaceOutcome struct {
	// Buffer is the buffer after the replacement (unchanged when nothing was replaced)
	Buffer string

	// Selection spans the inserted text, or the original selection when nothing was replaced
	Selection Span

	// Replaced is false when no match exists anywhere in the buffer
	Replaced bool
}

// 🎯 ReplaceOne replaces the selection if it is a match, otherwise moves to
// the next match (wrapping to the top) and replaces that.
func ReplaceOne(buffer string, sel Span, req ReplacementRequest) ReplaceOutcome {
	runes := []rune(buffer)
	sel = sel.Clamp(len(runes))

	if !SelectionMatches(buffer, sel, req.Query) {
		found, ok := FindNextWrap(buffer, req.Query, sel.End)
		if !ok {
			return ReplaceOutcome{Buffer: buffer, Selection: sel}
		}
		sel = found
	}

	replacement := req.replacementFor(string(runes[sel.Start:sel.End]))

	var sb strings.Builder
	sb.Grow(len(buffer) + len(replacement))
	sb.WriteString(string(runes[:sel.Start]))
	sb.WriteString(replacement)
	sb.WriteString(string(runes[sel.End:]))

	return ReplaceOutcome{
		Buffer:    sb.String(),
		Selection: Span{Start: sel.Start, End: sel.Start + utf8.RuneCountInString(replacement)},
		Replaced:  true,
	}
}

// 🔄 ReplaceAll rewrites every acceptable match in one left-to-right pass and
// returns the new buffer and the number of replacements. A zero count means
// nothing was replaced.
func ReplaceAll(buffer string, req ReplacementRequest) (string, int) {
	m := newMatcher(buffer, req.Query)
	if len(m.needle) == 0 {
		return buffer, 0
	}

	var sb strings.Builder
	sb.Grow(len(buffer))
	count := 0
	i := 0
	for {
		idx := m.index(i)
		if idx < 0 {
			sb.WriteString(string(m.runes[i:]))
			break
		}
		end := idx + len(m.needle)
		if m.accept(idx, end) {
			sb.WriteString(string(m.runes[i:idx]))
			sb.WriteString(req.replacementFor(string(m.runes[idx:end])))
			count++
			i = end
			continue
		}
		// rejected: keep its first rune and retry one position later
		sb.WriteString(string(m.runes[i : idx+1]))
		i = idx + 1
	}
	return sb.String(), count
}
