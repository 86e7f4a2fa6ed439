package text

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rule(find, replace, glob string) ReplacementRule {
	return ReplacementRule{
		Request: ReplacementRequest{
			Query:       Query{FindText: find},
			ReplaceText: replace,
		},
		FileFilterGlob: glob,
	}
}

func TestEngine_ReplaceText(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		rules        []ReplacementRule
		want         string
		wantCount    int
		wantModified bool
	}{
		{
			name:         "simple_replacement",
			content:      "Hello World",
			rules:        []ReplacementRule{rule("World", "Universe", "*.txt")},
			want:         "Hello Universe",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:         "multiple_rules_in_order",
			content:      "Hello World",
			rules:        []ReplacementRule{rule("hello", "hi", "*"), rule("hi", "hey", "*")},
			want:         "hey World",
			wantCount:    2,
			wantModified: true,
		},
		{
			name:    "preserve_case",
			content: "Hello hello HELLO",
			rules: []ReplacementRule{{
				Request: ReplacementRequest{
					Query:        Query{FindText: "hello", WholeWordsOnly: true},
					ReplaceText:  "bye",
					PreserveCase: true,
				},
			}},
			want:         "Bye bye BYE",
			wantCount:    3,
			wantModified: true,
		},
		{
			name:    "no_match",
			content: "Hello World",
			rules:   []ReplacementRule{rule("Goodbye", "Hi", "*")},
			want:    "Hello World",
		},
		{
			name:    "empty_content",
			content: "",
			rules:   []ReplacementRule{rule("World", "Universe", "*")},
			want:    "",
		},
		{
			name:    "empty_rules",
			content: "Hello World",
			want:    "Hello World",
		},
		{
			name:    "empty_find_is_skipped",
			content: "Hello World",
			rules:   []ReplacementRule{rule("", "x", "*")},
			want:    "Hello World",
		},
		{
			name:      "same_text_counts_but_not_modified",
			content:   "abc",
			rules:     []ReplacementRule{rule("abc", "abc", "*")},
			want:      "abc",
			wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewEngine().ReplaceText(context.Background(), strings.NewReader(tt.content), tt.rules)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.content, string(result.OriginalContent))
			assert.Equal(t, tt.want, string(result.ModifiedContent))
			assert.Equal(t, tt.wantCount, result.ReplacementCount)
			assert.Equal(t, tt.wantModified, result.WasModified)
		})
	}
}

func TestEngine_ValidateRules(t *testing.T) {
	tests := []struct {
		name      string
		rules     []ReplacementRule
		wantError string
	}{
		{
			name:  "valid_rules",
			rules: []ReplacementRule{rule("foo", "bar", "**/*.txt")},
		},
		{
			name:      "missing_find_text",
			rules:     []ReplacementRule{rule("", "bar", "*.txt")},
			wantError: "rule 0: find text is empty",
		},
		{
			name:      "missing_file_filter",
			rules:     []ReplacementRule{rule("foo", "bar", "*.txt"), rule("foo", "bar", "")},
			wantError: "rule 1: file_filter_glob is required",
		},
		{
			name:      "invalid_file_filter",
			rules:     []ReplacementRule{rule("foo", "bar", "[.txt")},
			wantError: "invalid file_filter_glob",
		},
		{
			name: "empty_rules",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewEngine().ValidateRules(tt.rules)
			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestReplacementRule_AppliesTo(t *testing.T) {
	r := rule("a", "b", "docs/**/*.md")
	assert.True(t, r.AppliesTo("docs/guide/intro.md"))
	assert.True(t, r.AppliesTo("docs/readme.md"))
	assert.False(t, r.AppliesTo("src/main.go"))
	assert.False(t, rule("a", "b", "").AppliesTo("anything"))
}
