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
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

var _ TextReplacer = (*Engine)(nil)

// Engine implements TextReplacer on top of ReplaceAll
type Engine struct{}

// NewEngine creates a new Engine
func NewEngine() *Engine {
	return &Engine{}
}

// ReplaceText implements TextReplacer.ReplaceText
func (e *Engine) ReplaceText(ctx context.Context, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error) {
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &ReplacementResult{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
	}

	current := string(originalContent)
	for i, rule := range rules {
		if rule.Request.Query.FindText == "" {
			continue
		}

		next, count := ReplaceAll(current, rule.Request)
		if count > 0 {
			result.WasModified = result.WasModified || next != current
			result.ReplacementCount += count
		}

		zerolog.Ctx(ctx).Trace().
			Int("rule", i).
			Str("find", rule.Request.Query.FindText).
			Int("count", count).
			Msg("applied replacement rule")

		current = next
	}

	result.ModifiedContent = []byte(current)
	return result, nil
}

// ValidateRules implements TextReplacer.ValidateRules
func (e *Engine) ValidateRules(rules []ReplacementRule) error {
	for i, rule := range rules {
		if err := rule.Request.Query.Validate(); err != nil {
			return errors.Errorf("rule %d: %w", i, err)
		}
		if rule.FileFilterGlob == "" {
			return errors.Errorf("rule %d: file_filter_glob is required", i)
		}
		if !doublestar.ValidatePattern(rule.FileFilterGlob) {
			return errors.Errorf("rule %d: invalid file_filter_glob %q", i, rule.FileFilterGlob)
		}
	}
	return nil
}
