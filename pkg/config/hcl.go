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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// hclConfig mirrors Config; pointers mark attributes that may be omitted
type hclConfig struct {
	Editor *struct {
		ProtectMode         *bool `hcl:"protect_mode,optional"`
		BackupLevels        *int  `hcl:"backup_levels,optional"`
		InformationButton   *bool `hcl:"information_button,optional"`
		FindButton          *bool `hcl:"find_button,optional"`
		ReplaceButton       *bool `hcl:"replace_button,optional"`
		ShortcutsWhenHidden *bool `hcl:"shortcuts_when_hidden,optional"`
		Sound               *bool `hcl:"sound,optional"`
	} `hcl:"editor,block"`
	Search *struct {
		MatchCase      *bool `hcl:"match_case,optional"`
		WholeWordsOnly *bool `hcl:"whole_words_only,optional"`
		PreserveCase   *bool `hcl:"preserve_case,optional"`
	} `hcl:"search,block"`
	Rules []struct {
		Name           string `hcl:"name,label"`
		Find           string `hcl:"find"`
		Replace        string `hcl:"replace,optional"`
		MatchCase      bool   `hcl:"match_case,optional"`
		WholeWordsOnly bool   `hcl:"whole_words_only,optional"`
		PreserveCase   bool   `hcl:"preserve_case,optional"`
		Files          string `hcl:"files"`
	} `hcl:"rule,block"`
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"max_backup_levels": cty.NumberIntVal(MaxBackupLevels),
		},
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model, over the defaults
	cfg := Default()

	if e := hclCfg.Editor; e != nil {
		setBool(&cfg.Editor.ProtectMode, e.ProtectMode)
		setBool(&cfg.Editor.InformationButton, e.InformationButton)
		setBool(&cfg.Editor.FindButton, e.FindButton)
		setBool(&cfg.Editor.ReplaceButton, e.ReplaceButton)
		setBool(&cfg.Editor.ShortcutsWhenHidden, e.ShortcutsWhenHidden)
		setBool(&cfg.Editor.Sound, e.Sound)
		if e.BackupLevels != nil {
			cfg.Editor.BackupLevels = *e.BackupLevels
		}
	}

	if s := hclCfg.Search; s != nil {
		setBool(&cfg.Search.MatchCase, s.MatchCase)
		setBool(&cfg.Search.WholeWordsOnly, s.WholeWordsOnly)
		setBool(&cfg.Search.PreserveCase, s.PreserveCase)
	}

	for _, r := range hclCfg.Rules {
		cfg.Rules = append(cfg.Rules, Rule{
			Name:           r.Name,
			Find:           r.Find,
			Replace:        r.Replace,
			MatchCase:      r.MatchCase,
			WholeWordsOnly: r.WholeWordsOnly,
			PreserveCase:   r.PreserveCase,
			Files:          r.Files,
		})
	}

	return cfg, nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
