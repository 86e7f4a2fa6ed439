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

package config

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/clipedit/pkg/text"
)

const (
	// MinBackupLevels is the smallest accepted backup_levels value
	MinBackupLevels = 1
	// MaxBackupLevels is the largest accepted backup_levels value
	MaxBackupLevels = 20
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes, starting from Default()
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🎬 Action names an editor command that may have a button and a shortcut
type Action string

const (
	ActionInformation Action = "information"
	ActionFind        Action = "find"
	ActionReplace     Action = "replace"
)

// 🖥️ EditorConfig holds the editor preferences
type EditorConfig struct {
	ProtectMode         bool `json:"protect_mode" yaml:"protect_mode"`                   // Keep a backup before overwriting the clipboard
	BackupLevels        int  `json:"backup_levels" yaml:"backup_levels"`                 // How many backups to keep
	InformationButton   bool `json:"information_button" yaml:"information_button"`       // Show the information command
	FindButton          bool `json:"find_button" yaml:"find_button"`                     // Show the find command
	ReplaceButton       bool `json:"replace_button" yaml:"replace_button"`               // Show the replace commands
	ShortcutsWhenHidden bool `json:"shortcuts_when_hidden" yaml:"shortcuts_when_hidden"` // Keep shortcuts for hidden commands
	Sound               bool `json:"sound" yaml:"sound"`                                 // Play feedback tones
}

// ButtonVisible reports whether the command for a is shown
func (e EditorConfig) ButtonVisible(a Action) bool {
	switch a {
	case ActionInformation:
		return e.InformationButton
	case ActionFind:
		return e.FindButton
	case ActionReplace:
		return e.ReplaceButton
	}
	return false
}

// ShortcutActive reports whether a can be triggered, visible or not
func (e EditorConfig) ShortcutActive(a Action) bool {
	return e.ButtonVisible(a) || e.ShortcutsWhenHidden
}

// 🔍 SearchDefaults seeds the find and replace options
type SearchDefaults struct {
	MatchCase      bool `json:"match_case" yaml:"match_case"`
	WholeWordsOnly bool `json:"whole_words_only" yaml:"whole_words_only"`
	PreserveCase   bool `json:"preserve_case" yaml:"preserve_case"`
}

// Query builds a text.Query for find using these defaults
func (s SearchDefaults) Query(find string) text.Query {
	return text.Query{
		FindText:       find,
		MatchCase:      s.MatchCase,
		WholeWordsOnly: s.WholeWordsOnly,
	}
}

// Request builds a text.ReplacementRequest using these defaults
func (s SearchDefaults) Request(find, replace string) text.ReplacementRequest {
	return text.ReplacementRequest{
		Query:        s.Query(find),
		ReplaceText:  replace,
		PreserveCase: s.PreserveCase,
	}
}

// 🔄 Rule is a batch replacement applied to files matching Files
type Rule struct {
	Name           string `json:"name,omitempty" yaml:"name,omitempty"`
	Find           string `json:"find" yaml:"find"`
	Replace        string `json:"replace" yaml:"replace"`
	MatchCase      bool   `json:"match_case,omitempty" yaml:"match_case,omitempty"`
	WholeWordsOnly bool   `json:"whole_words_only,omitempty" yaml:"whole_words_only,omitempty"`
	PreserveCase   bool   `json:"preserve_case,omitempty" yaml:"preserve_case,omitempty"`
	Files          string `json:"files" yaml:"files"` // doublestar glob, relative to the batch root
}

// Request converts the rule into a text.ReplacementRequest
func (r Rule) Request() text.ReplacementRequest {
	return text.ReplacementRequest{
		Query: text.Query{
			FindText:       r.Find,
			MatchCase:      r.MatchCase,
			WholeWordsOnly: r.WholeWordsOnly,
		},
		ReplaceText:  r.Replace,
		PreserveCase: r.PreserveCase,
	}
}

// ReplacementRule converts the rule into a text.ReplacementRule
func (r Rule) ReplacementRule() text.ReplacementRule {
	return text.ReplacementRule{
		Request:        r.Request(),
		FileFilterGlob: r.Files,
	}
}

// 📚 Config represents the complete configuration
type Config struct {
	Editor EditorConfig   `json:"editor" yaml:"editor"`
	Search SearchDefaults `json:"search" yaml:"search"`
	Rules  []Rule         `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// 🏭 Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			ProtectMode:         true,
			BackupLevels:        1,
			InformationButton:   true,
			FindButton:          true,
			ReplaceButton:       true,
			ShortcutsWhenHidden: true,
			Sound:               true,
		},
		Search: SearchDefaults{
			MatchCase:      false,
			WholeWordsOnly: true,
			PreserveCase:   true,
		},
	}
}

// ReplacementRules returns every rule as a text.ReplacementRule
func (cfg *Config) ReplacementRules() []text.ReplacementRule {
	rules := make([]text.ReplacementRule, 0, len(cfg.Rules))
	for _, r := range cfg.Rules {
		rules = append(rules, r.ReplacementRule())
	}
	return rules
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	cfg, err := parse(ctx, path, data)
	if err != nil {
		return nil, err
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	logger.Debug().Str("config", cfg.String()).Msg("configuration loaded")
	return cfg, nil
}

// 🎯 LoadOrDefault loads path, returning Default() when the file does not exist
func LoadOrDefault(ctx context.Context, path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no configuration file, using defaults")
		return Default(), nil
	}
	return Load(ctx, path)
}

// parse picks a parser by extension; unknown extensions try YAML then HCL
func parse(ctx context.Context, path string, data []byte) (*Config, error) {
	if p := GetParser(path); p != nil {
		cfg, err := p.Parse(ctx, data)
		if err != nil {
			return nil, errors.Errorf("parsing config: %w", err)
		}
		return cfg, nil
	}

	cfg, yerr := (&YAMLParser{}).Parse(ctx, data)
	if yerr == nil {
		return cfg, nil
	}
	cfg, herr := (&HCLParser{}).Parse(ctx, data)
	if herr == nil {
		return cfg, nil
	}

	return nil, errors.Errorf("failed to parse %s as YAML (%s) or HCL: %w", path, yerr.Error(), herr)
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.Editor.BackupLevels < MinBackupLevels || cfg.Editor.BackupLevels > MaxBackupLevels {
		return errors.Errorf("editor.backup_levels must be between %d and %d, got %d",
			MinBackupLevels, MaxBackupLevels, cfg.Editor.BackupLevels)
	}

	for i, r := range cfg.Rules {
		if r.Find == "" {
			return errors.Errorf("rules[%d].find is required", i)
		}
		if r.Files == "" {
			return errors.Errorf("rules[%d].files is required", i)
		}
		if !doublestar.ValidatePattern(r.Files) {
			return errors.Errorf("rules[%d].files: invalid glob %q", i, r.Files)
		}
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("protect=%t backups=%d sound=%t match_case=%t whole_words=%t preserve_case=%t rules=%d",
		cfg.Editor.ProtectMode,
		cfg.Editor.BackupLevels,
		cfg.Editor.Sound,
		cfg.Search.MatchCase,
		cfg.Search.WholeWordsOnly,
		cfg.Search.PreserveCase,
		len(cfg.Rules),
	)
}
