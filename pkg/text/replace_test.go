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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplaceOne(t *testing.T) {
	tests := []struct {
		name         string
		buffer       string
		sel          Span
		req          ReplacementRequest
		want         string
		wantSel      Span
		wantReplaced bool
	}{
		{
			name:         "selection_is_match",
			buffer:       "foo bar foo",
			sel:          Span{Start: 0, End: 3},
			req:          ReplacementRequest{Query: Query{FindText: "foo"}, ReplaceText: "baz"},
			want:         "baz bar foo",
			wantSel:      Span{Start: 0, End: 3},
			wantReplaced: true,
		},
		{
			name:         "caret_moves_to_next_match",
			buffer:       "foo bar foo",
			sel:          Span{Start: 4, End: 4},
			req:          ReplacementRequest{Query: Query{FindText: "foo"}, ReplaceText: "baz"},
			want:         "foo bar baz",
			wantSel:      Span{Start: 8, End: 11},
			wantReplaced: true,
		},
		{
			name:         "wraps_to_top",
			buffer:       "foo bar foo",
			sel:          Span{Start: 11, End: 11},
			req:          ReplacementRequest{Query: Query{FindText: "foo"}, ReplaceText: "baz"},
			want:         "baz bar foo",
			wantSel:      Span{Start: 0, End: 3},
			wantReplaced: true,
		},
		{
			name:    "not_found",
			buffer:  "abc",
			sel:     Span{Start: 1, End: 2},
			req:     ReplacementRequest{Query: Query{FindText: "x"}, ReplaceText: "y"},
			want:    "abc",
			wantSel: Span{Start: 1, End: 2},
		},
		{
			name:         "selection_grows_with_replacement",
			buffer:       "a cat",
			sel:          Span{Start: 2, End: 5},
			req:          ReplacementRequest{Query: Query{FindText: "cat", WholeWordsOnly: true}, ReplaceText: "tiger"},
			want:         "a tiger",
			wantSel:      Span{Start: 2, End: 7},
			wantReplaced: true,
		},
		{
			name:         "preserve_case",
			buffer:       "Hello world",
			sel:          Span{Start: 0, End: 5},
			req:          ReplacementRequest{Query: Query{FindText: "hello"}, ReplaceText: "goodbye", PreserveCase: true},
			want:         "Goodbye world",
			wantSel:      Span{Start: 0, End: 7},
			wantReplaced: true,
		},
		{
			name:         "delete_match",
			buffer:       "a-b",
			sel:          Span{},
			req:          ReplacementRequest{Query: Query{FindText: "-"}},
			want:         "ab",
			wantSel:      Span{Start: 1, End: 1},
			wantReplaced: true,
		},
		{
			name:         "whole_word_selection_not_match_moves_on",
			buffer:       "catalog cat",
			sel:          Span{Start: 0, End: 3},
			req:          ReplacementRequest{Query: Query{FindText: "cat", WholeWordsOnly: true}, ReplaceText: "dog"},
			want:         "catalog dog",
			wantSel:      Span{Start: 8, End: 11},
			wantReplaced: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReplaceOne(tt.buffer, tt.sel, tt.req)
			assert.Equal(t, tt.want, got.Buffer, "buffer should match")
			assert.Equal(t, tt.wantSel, got.Selection, "selection should match")
			assert.Equal(t, tt.wantReplaced, got.Replaced, "replaced should match")
		})
	}
}

func TestReplaceOne_ContinuesAfterInsertedText(t *testing.T) {
	req := ReplacementRequest{Query: Query{FindText: "x"}, ReplaceText: "xy"}

	first := ReplaceOne("x x x", Span{}, req)
	assert.Equal(t, "xy x x", first.Buffer)
	assert.Equal(t, Span{Start: 0, End: 2}, first.Selection)

	second := ReplaceOne(first.Buffer, first.Selection, req)
	assert.Equal(t, "xy xy x", second.Buffer)
	assert.Equal(t, Span{Start: 3, End: 5}, second.Selection)
}

func TestReplaceAll(t *testing.T) {
	tests := []struct {
		name      string
		buffer    string
		req       ReplacementRequest
		want      string
		wantCount int
	}{
		{
			name:      "non_overlapping",
			buffer:    "aaaa",
			req:       ReplacementRequest{Query: Query{FindText: "aa"}, ReplaceText: "b"},
			want:      "bb",
			wantCount: 2,
		},
		{
			name:   "preserve_case_whole_words",
			buffer: "foo Foo FOO",
			req: ReplacementRequest{
				Query:        Query{FindText: "foo", WholeWordsOnly: true},
				ReplaceText:  "bar",
				PreserveCase: true,
			},
			want:      "bar Bar BAR",
			wantCount: 3,
		},
		{
			name:      "without_preserve_case",
			buffer:    "foo Foo FOO",
			req:       ReplacementRequest{Query: Query{FindText: "foo"}, ReplaceText: "bar"},
			want:      "bar bar bar",
			wantCount: 3,
		},
		{
			name:      "match_case",
			buffer:    "Foo foo",
			req:       ReplacementRequest{Query: Query{FindText: "foo", MatchCase: true}, ReplaceText: "bar"},
			want:      "Foo bar",
			wantCount: 1,
		},
		{
			name:      "whole_word_skips_inner",
			buffer:    "concatenate cat",
			req:       ReplacementRequest{Query: Query{FindText: "cat", WholeWordsOnly: true}, ReplaceText: "dog"},
			want:      "concatenate dog",
			wantCount: 1,
		},
		{
			name:      "adjacent_rejections_keep_text",
			buffer:    "aaa",
			req:       ReplacementRequest{Query: Query{FindText: "aa", WholeWordsOnly: true}, ReplaceText: "b"},
			want:      "aaa",
			wantCount: 0,
		},
		{
			name:      "rejection_then_accept",
			buffer:    "a_a a",
			req:       ReplacementRequest{Query: Query{FindText: "a", WholeWordsOnly: true}, ReplaceText: "b"},
			want:      "a_a b",
			wantCount: 1,
		},
		{
			name:      "delete",
			buffer:    "a, b, c",
			req:       ReplacementRequest{Query: Query{FindText: ", "}},
			want:      "abc",
			wantCount: 2,
		},
		{
			name:   "unicode",
			buffer: "ÉCOLE école",
			req: ReplacementRequest{
				Query:        Query{FindText: "école", WholeWordsOnly: true},
				ReplaceText:  "schule",
				PreserveCase: true,
			},
			want:      "SCHULE schule",
			wantCount: 2,
		},
		{
			name:      "no_match",
			buffer:    "hello",
			req:       ReplacementRequest{Query: Query{FindText: "bye"}, ReplaceText: "x"},
			want:      "hello",
			wantCount: 0,
		},
		{
			name:      "empty_query",
			buffer:    "hello",
			req:       ReplacementRequest{ReplaceText: "x"},
			want:      "hello",
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, count := ReplaceAll(tt.buffer, tt.req)
			assert.Equal(t, tt.want, got, "buffer should match")
			assert.Equal(t, tt.wantCount, count, "count should match")
		})
	}
}

func TestReplaceAll_SecondPassFindsNothing(t *testing.T) {
	req := ReplacementRequest{Query: Query{FindText: "cat"}, ReplaceText: "dog", PreserveCase: true}

	once, count := ReplaceAll("Cat cat CAT concatenate", req)
	assert.Equal(t, "Dog dog DOG condogenate", once)
	assert.Equal(t, 4, count)

	twice, count := ReplaceAll(once, req)
	assert.Equal(t, once, twice)
	assert.Zero(t, count)
}
