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

package operation

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/walteh/clipedit/pkg/config"
	"github.com/walteh/clipedit/pkg/log"
	"github.com/walteh/clipedit/pkg/text"
)

// ⚙️ ReplaceOptions configures a batch replacement
type ReplaceOptions struct {
	// Root is the directory globs are resolved against
	Root string

	// Rules are applied to each file in order
	Rules []config.Rule

	// DryRun computes results without writing files
	DryRun bool

	// Concurrency bounds parallel file processing; zero means GOMAXPROCS
	Concurrency int

	// Replacer defaults to text.NewEngine()
	Replacer text.TextReplacer

	// Logger prints per-file lines when set
	Logger *log.Logger
}

// 📄 FileResult is the outcome for one file
type FileResult struct {
	Path         string
	Rules        []string
	Replacements int
	Modified     bool
	Err          error
}

// 🔄 ReplaceOperation applies config rules to files under a root
type ReplaceOperation struct {
	opts ReplaceOptions

	mu      sync.Mutex
	results []FileResult
}

var _ Operation = (*ReplaceOperation)(nil)

// 🏭 NewReplaceOperation validates the rules and creates the operation
func NewReplaceOperation(opts ReplaceOptions) (*ReplaceOperation, error) {
	if opts.Root == "" {
		opts.Root = "."
	}
	if opts.Replacer == nil {
		opts.Replacer = text.NewEngine()
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.GOMAXPROCS(0)
	}

	rules := make([]text.ReplacementRule, 0, len(opts.Rules))
	for _, r := range opts.Rules {
		rules = append(rules, r.ReplacementRule())
	}
	if err := opts.Replacer.ValidateRules(rules); err != nil {
		return nil, errors.Errorf("validating rules: %w", err)
	}

	return &ReplaceOperation{opts: opts}, nil
}

// 🏃 Execute matches files to rules and rewrites them concurrently
func (op *ReplaceOperation) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	op.mu.Lock()
	op.results = nil
	op.mu.Unlock()

	plan, err := op.plan()
	if err != nil {
		return err
	}
	logger.Debug().Int("files", len(plan)).Str("root", op.opts.Root).Msg("planned batch replacement")

	if op.opts.Logger != nil {
		op.opts.Logger.StartBatchOperation(ctx, log.BatchOperation{
			Root:   op.opts.Root,
			Rules:  len(op.opts.Rules),
			DryRun: op.opts.DryRun,
		})
		defer op.opts.Logger.EndBatchOperation(ctx)
	}

	paths := make([]string, 0, len(plan))
	for p := range plan {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(op.opts.Concurrency)
	for _, path := range paths {
		path := path
		rules := plan[path]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := op.processFile(gctx, path, rules)
			op.record(gctx, res)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return errors.Errorf("replacing files: %w", err)
	}

	failed := 0
	for _, r := range op.Results() {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return errors.Errorf("%d of %d files failed", failed, len(paths))
	}
	return nil
}

// Results returns the per-file outcomes sorted by path
func (op *ReplaceOperation) Results() []FileResult {
	op.mu.Lock()
	defer op.mu.Unlock()

	out := make([]FileResult, len(op.results))
	copy(out, op.results)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// plannedRule is a rule with its position in the config
type plannedRule struct {
	index int
	rule  config.Rule
}

// plan maps each file under the root to the rules that apply to it, in
// config order
func (op *ReplaceOperation) plan() (map[string][]plannedRule, error) {
	files, err := doublestar.Glob(os.DirFS(op.opts.Root), "**", doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Errorf("listing files under %s: %w", op.opts.Root, err)
	}

	rules := make([]text.ReplacementRule, len(op.opts.Rules))
	for i, r := range op.opts.Rules {
		rules[i] = r.ReplacementRule()
	}

	plan := map[string][]plannedRule{}
	for _, f := range files {
		for i, r := range rules {
			if r.AppliesTo(f) {
				plan[f] = append(plan[f], plannedRule{index: i, rule: op.opts.Rules[i]})
			}
		}
	}
	return plan, nil
}

func (op *ReplaceOperation) processFile(ctx context.Context, path string, rules []plannedRule) FileResult {
	res := FileResult{Path: path}
	replacements := make([]text.ReplacementRule, 0, len(rules))
	for _, pr := range rules {
		name := pr.rule.Name
		if name == "" {
			name = fmt.Sprintf("#%d", pr.index)
		}
		res.Rules = append(res.Rules, name)
		replacements = append(replacements, pr.rule.ReplacementRule())
	}

	full := filepath.Join(op.opts.Root, filepath.FromSlash(path))
	data, err := os.ReadFile(full)
	if err != nil {
		res.Err = errors.Errorf("reading %s: %w", path, err)
		return res
	}

	out, err := op.opts.Replacer.ReplaceText(ctx, bytes.NewReader(data), replacements)
	if err != nil {
		res.Err = errors.Errorf("replacing in %s: %w", path, err)
		return res
	}
	res.Replacements = out.ReplacementCount
	res.Modified = out.WasModified

	if !out.WasModified || op.opts.DryRun {
		return res
	}

	info, err := os.Stat(full)
	if err != nil {
		res.Err = errors.Errorf("stat %s: %w", path, err)
		return res
	}
	if err := os.WriteFile(full, out.ModifiedContent, info.Mode().Perm()); err != nil {
		res.Err = errors.Errorf("writing %s: %w", path, err)
	}
	return res
}

func (op *ReplaceOperation) record(ctx context.Context, res FileResult) {
	op.mu.Lock()
	op.results = append(op.results, res)
	op.mu.Unlock()

	if res.Err != nil {
		zerolog.Ctx(ctx).Error().Err(res.Err).Str("file", res.Path).Msg("batch replacement failed")
	}

	if op.opts.Logger == nil {
		return
	}

	status := "no change"
	switch {
	case res.Err != nil:
		status = "FAILED"
	case res.Modified && op.opts.DryRun:
		status = fmt.Sprintf("would replace %d", res.Replacements)
	case res.Modified:
		status = fmt.Sprintf("%d replacements", res.Replacements)
	}

	op.opts.Logger.LogFileOperation(ctx, log.FileOperation{
		Path:         res.Path,
		Rules:        strings.Join(res.Rules, ","),
		Status:       status,
		IsModified:   res.Modified,
		IsDryRun:     op.opts.DryRun,
		IsFailed:     res.Err != nil,
		Replacements: res.Replacements,
	})
}
