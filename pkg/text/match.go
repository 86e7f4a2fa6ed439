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

import "unicode"

// IsWordChar reports whether r is a word character (letter, number, or underscore).
func IsWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_'
}

// IsWordBoundary reports whether [start, end) is not adjacent to a word
// character on either side.
func IsWordBoundary(runes []rune, start, end int) bool {
	if start > 0 && IsWordChar(runes[start-1]) {
		return false
	}
	if end < len(runes) && IsWordChar(runes[end]) {
		return false
	}
	return true
}

// 🔍 FindNext returns the first acceptable match of q at or after from.
// Offsets are code points. An empty find text never matches.
func FindNext(buffer string, q Query, from int) (Span, bool) {
	return newMatcher(buffer, q).next(from)
}

// 🔁 FindNextWrap searches from `from` and, failing that, from the start of
// the buffer.
func FindNextWrap(buffer string, q Query, from int) (Span, bool) {
	m := newMatcher(buffer, q)
	if span, ok := m.next(from); ok {
		return span, true
	}
	return m.next(0)
}

// SelectionMatches reports whether sel already covers an acceptable match of q.
func SelectionMatches(buffer string, sel Span, q Query) bool {
	m := newMatcher(buffer, q)
	sel = sel.Clamp(len(m.runes))
	if sel.Empty() || sel.Len() != len(m.needle) {
		return false
	}
	for i, r := range m.needle {
		if m.haystack[sel.Start+i] != r {
			return false
		}
	}
	if !q.WholeWordsOnly {
		return true
	}
	return IsWordBoundary(m.runes, sel.Start, sel.End)
}

// matcher holds one snapshot of a buffer prepared for searching
type matcher struct {
	runes    []rune // original buffer, used for boundary checks
	haystack []rune // runes, folded when the query ignores case
	needle   []rune
	whole    bool
}

func newMatcher(buffer string, q Query) *matcher {
	runes := []rune(buffer)
	m := &matcher{
		runes:    runes,
		haystack: runes,
		needle:   []rune(q.FindText),
		whole:    q.WholeWordsOnly,
	}
	if !q.MatchCase {
		m.haystack = fold(runes)
		m.needle = fold(m.needle)
	}
	return m
}

// next scans left to right from `from`. A candidate rejected by the
// whole-word rule is skipped by one rune, not by its length.
func (m *matcher) next(from int) (Span, bool) {
	if len(m.needle) == 0 {
		return Span{}, false
	}
	i := clamp(from, 0, len(m.runes))
	for {
		idx := m.index(i)
		if idx < 0 {
			return Span{}, false
		}
		end := idx + len(m.needle)
		if m.accept(idx, end) {
			return Span{Start: idx, End: end}, true
		}
		i = idx + 1
	}
}

func (m *matcher) accept(start, end int) bool {
	return !m.whole || IsWordBoundary(m.runes, start, end)
}

// index returns the first raw occurrence of the needle at or after from, or -1.
func (m *matcher) index(from int) int {
	n := len(m.needle)
	for i := from; i+n <= len(m.haystack); i++ {
		if m.haystack[i] != m.needle[0] {
			continue
		}
		j := 1
		for j < n && m.haystack[i+j] == m.needle[j] {
			j++
		}
		if j == n {
			return i
		}
	}
	return -1
}

// fold lower-cases rune by rune so folded offsets line up with the input.
func fold(runes []rune) []rune {
	out := make([]rune, len(runes))
	for i, r := range runes {
		out[i] = unicode.ToLower(r)
	}
	return out
}
