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
	"context"
	"io"

	"github.com/bmatcuk/doublestar/v4"
)

// ReplacementRule defines a replace-all applied to files matching a glob
type ReplacementRule struct {
	// Request is the search and replacement to apply
	Request ReplacementRequest

	// FileFilterGlob is a doublestar pattern selecting which files the rule applies to
	FileFilterGlob string
}

// AppliesTo reports whether the rule's glob matches path
func (r ReplacementRule) AppliesTo(path string) bool {
	if r.FileFilterGlob == "" {
		return false
	}
	ok, err := doublestar.Match(r.FileFilterGlob, path)
	return err == nil && ok
}

// ReplacementResult contains the results of a text replacement operation
type ReplacementResult struct {
	// WasModified indicates if any replacements were made
	WasModified bool

	// ReplacementCount is the number of replacements made
	ReplacementCount int

	// OriginalContent is the content before replacements
	OriginalContent []byte

	// ModifiedContent is the content after replacements
	ModifiedContent []byte
}

// TextReplacer defines the interface for rule-based text replacement
type TextReplacer interface {
	// ReplaceText applies a set of replacement rules to the content, in order
	ReplaceText(ctx context.Context, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error)

	// ValidateRules checks that all rules are valid
	ValidateRules(rules []ReplacementRule) error
}
