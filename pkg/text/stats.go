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
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// 📊 Stats summarizes a block of text
type Stats struct {
	Chars     int `json:"chars"`     // code points
	Words     int `json:"words"`     // whitespace-delimited tokens
	Lines     int `json:"lines"`     // line-break-delimited segments, 0 for empty text
	Graphemes int `json:"graphemes"` // user-perceived characters
}

// Summarize counts characters, words and lines in text
func Summarize(text string) Stats {
	return Stats{
		Chars:     utf8.RuneCountInString(text),
		Words:     len(strings.Fields(text)),
		Lines:     countLines(text),
		Graphemes: uniseg.GraphemeClusterCount(text),
	}
}

func (s Stats) String() string {
	return fmt.Sprintf("%d characters, %d words, %d lines", s.Chars, s.Words, s.Lines)
}

// countLines counts lines the way a splitlines would: a trailing break does
// not open another line.
func countLines(text string) int {
	lines := 0
	tail := false
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if !isLineBreak(r) {
			tail = true
			continue
		}
		if r == '\r' && i+1 < len(runes) && runes[i+1] == '\n' {
			i++
		}
		lines++
		tail = false
	}
	if tail {
		lines++
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
