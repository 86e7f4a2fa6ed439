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

package backup

import (
	"io/fs"
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// historyFile is the on-disk layout, newest entry first
type historyFile struct {
	Entries []string `yaml:"entries"`
}

// Entries returns a copy of the stored texts, newest first
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]string, len(h.items))
	copy(out, h.items)
	return out
}

// 📂 LoadFile reads a history saved by SaveFile. A missing file gives an
// empty history.
func LoadFile(path string, levels int) (*History, error) {
	h := New(levels)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return h, nil
	}
	if err != nil {
		return nil, errors.Errorf("reading history: %w", err)
	}

	var f historyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Errorf("parsing history: %w", err)
	}

	h.items = f.Entries
	h.trim()
	return h, nil
}

// 💾 SaveFile writes the history to path, creating parent directories
func (h *History) SaveFile(path string) error {
	data, err := yaml.Marshal(historyFile{Entries: h.Entries()})
	if err != nil {
		return errors.Errorf("encoding history: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.Errorf("creating history directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Errorf("writing history: %w", err)
	}
	return nil
}

// DefaultPath is the history file under the user cache directory
func DefaultPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", errors.Errorf("locating cache directory: %w", err)
	}
	return filepath.Join(dir, "clipedit", "history.yaml"), nil
}
