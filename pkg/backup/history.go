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

// Package backup keeps previous clipboard contents so they can be restored.
package backup

import "sync"

// 🗄️ History is a bounded stack of previous clipboard texts, newest first
type History struct {
	mu     sync.Mutex
	levels int
	items  []string
}

// New creates a History holding at most levels entries (minimum 1)
func New(levels int) *History {
	return &History{levels: max(1, levels)}
}

// Push stores text as the newest entry, dropping the oldest past the limit
func (h *History) Push(text string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.items = append([]string{text}, h.items...)
	h.trim()
}

// Pop removes and returns the newest entry
func (h *History) Pop() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.items) == 0 {
		return "", false
	}
	text := h.items[0]
	h.items = h.items[1:]
	return text, true
}

// Peek returns the newest entry without removing it
func (h *History) Peek() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.items) == 0 {
		return "", false
	}
	return h.items[0], true
}

// Len returns the number of stored entries
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.items)
}

// SetLevels changes the limit; excess entries are dropped on the next Push
func (h *History) SetLevels(levels int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.levels = max(1, levels)
}

func (h *History) trim() {
	if len(h.items) > h.levels {
		h.items = h.items[:h.levels]
	}
}
