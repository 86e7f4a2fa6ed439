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
	"unicode"
	"unicode/utf8"
)

// 🔠 ApplyReplacementCase re-cases replacement after the letters in matched.
//
// Rules, first match wins:
//  1. no letters in matched: replacement as is
//  2. every letter upper: replacement upper-cased
//  3. every letter lower: replacement lower-cased
//  4. first letter upper: replacement capitalized (empty stays empty)
//  5. otherwise: replacement as is
func ApplyReplacementCase(matched, replacement string) string {
	var letters []rune
	for _, r := range matched {
		if unicode.IsLetter(r) {
			letters = append(letters, r)
		}
	}
	if len(letters) == 0 {
		return replacement
	}
	if all(letters, unicode.IsUpper) {
		return strings.ToUpper(replacement)
	}
	if all(letters, unicode.IsLower) {
		return strings.ToLower(replacement)
	}
	if unicode.IsUpper(letters[0]) {
		return capitalize(replacement)
	}
	return replacement
}

// capitalize title-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToTitle(first)) + strings.ToLower(s[size:])
}

func all(runes []rune, pred func(rune) bool) bool {
	for _, r := range runes {
		if !pred(r) {
			return false
		}
	}
	return true
}
