package text_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/walteh/clipedit/pkg/text"
)

func ExampleFindNext() {
	q := text.Query{FindText: "cat", WholeWordsOnly: true}

	span, ok := text.FindNext("concatenate the cat", q, 0)
	fmt.Println(span, ok)

	// Output:
	// 16:19 true
}

func ExampleReplaceAll() {
	req := text.ReplacementRequest{
		Query:        text.Query{FindText: "foo", WholeWordsOnly: true},
		ReplaceText:  "bar",
		PreserveCase: true,
	}

	out, count := text.ReplaceAll("foo Foo FOO", req)
	fmt.Println(out)
	fmt.Println(count)

	// Output:
	// bar Bar BAR
	// 3
}

func ExampleReplaceOne() {
	req := text.ReplacementRequest{Query: text.Query{FindText: "cat"}, ReplaceText: "tiger"}

	outcome := text.ReplaceOne("a cat and a cat", text.Span{Start: 6, End: 6}, req)
	fmt.Println(outcome.Buffer)
	fmt.Println(outcome.Selection)

	// Output:
	// a cat and a tiger
	// 12:17
}

func ExampleSummarize() {
	fmt.Println(text.Summarize("a b\nc"))

	// Output:
	// 5 characters, 3 words, 2 lines
}

func ExampleEngine_ReplaceText() {
	engine := text.NewEngine()

	rules := []text.ReplacementRule{
		{
			Request: text.ReplacementRequest{
				Query:       text.Query{FindText: "World"},
				ReplaceText: "Universe",
			},
			FileFilterGlob: "*.txt",
		},
		{
			Request: text.ReplacementRequest{
				Query:       text.Query{FindText: "Hello"},
				ReplaceText: "Hi",
			},
			FileFilterGlob: "*.txt",
		},
	}

	result, err := engine.ReplaceText(context.Background(), strings.NewReader("Hello World!"), rules)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Original: %s\n", result.OriginalContent)
	fmt.Printf("Modified: %s\n", result.ModifiedContent)
	fmt.Printf("Changes: %d\n", result.ReplacementCount)
	fmt.Printf("Was Modified: %v\n", result.WasModified)

	// Output:
	// Original: Hello World!
	// Modified: Hi Universe!
	// Changes: 2
	// Was Modified: true
}

func ExampleEngine_ValidateRules() {
	engine := text.NewEngine()

	rules := []text.ReplacementRule{
		{
			Request:        text.ReplacementRequest{Query: text.Query{FindText: "foo"}, ReplaceText: "bar"},
			FileFilterGlob: "*.txt",
		},
		{
			Request: text.ReplacementRequest{Query: text.Query{FindText: "baz"}, ReplaceText: "qux"},
		},
	}

	err := engine.ValidateRules(rules)
	fmt.Printf("Validation error: %v\n", err)

	// Output:
	// Validation error: rule 1: file_filter_glob is required
}
