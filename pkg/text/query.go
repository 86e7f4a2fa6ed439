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
	"fmt"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrEmptyQuery is returned when a search is attempted with no find text
	ErrEmptyQuery = errors.Base("find text is empty")

	// ErrNotFound is returned when no acceptable match exists
	ErrNotFound = errors.Base("text not found")

	// ErrNoReplacementsMade is returned when a replace-all found nothing to replace
	ErrNoReplacementsMade = errors.Base("no replacements made")

	// ErrEmptyText is returned when an operation needs a non-empty buffer
	ErrEmptyText = errors.Base("text is empty")
)

// 📏 Span is a half-open [Start, End) interval of code-point offsets
type Span struct {
	Start int
	End   int
}

// Len returns the number of code points covered by the span
func (s Span) Len() int {
	return s.End - s.Start
}

// Empty reports whether the span covers nothing
func (s Span) Empty() bool {
	return s.Start == s.End
}

// Slice returns the text covered by the span, clamped to text
func (s Span) Slice(text string) string {
	runes := []rune(text)
	s = s.Clamp(len(runes))
	return string(runes[s.Start:s.End])
}

// Clamp returns the span restricted to [0, n] with Start <= End
func (s Span) Clamp(n int) Span {
	s.Start = clamp(s.Start, 0, n)
	s.End = clamp(s.End, s.Start, n)
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Start, s.End)
}

// 🔍 Query describes what to search for
type Query struct {
	FindText       string
	MatchCase      bool
	WholeWordsOnly bool
}

// Validate checks that the query can be searched for
func (q Query) Validate() error {
	if q.FindText == "" {
		return errors.WithStack(ErrEmptyQuery)
	}
	return nil
}

// 🔄 ReplacementRequest is a query plus what to put in place of each match
type ReplacementRequest struct {
	Query        Query
	ReplaceText  string
	PreserveCase bool
}

// Validate checks the request's query
func (r ReplacementRequest) Validate() error {
	return r.Query.Validate()
}

// replacementFor returns the text that replaces matched
func (r ReplacementRequest) replacementFor(matched string) string {
	if !r.PreserveCase {
		return r.ReplaceText
	}
	return ApplyReplacementCase(matched, r.ReplaceText)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
