// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"sync"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// CopiedDuration is how long a code block shows its "copied" state.
const CopiedDuration = 2 * time.Second

// WriteClipboard writes text to the system clipboard. Tests replace it.
var WriteClipboard = clipboard.WriteAll

// =============================================================================
// COPY STATE
// =============================================================================

type copyKey struct {
	messageID string
	index     int
}

// CopyState tracks which code blocks are inside their copied window. Each
// block has its own deadline; copying again restarts it.
type CopyState struct {
	mu        sync.Mutex
	deadlines map[copyKey]time.Time
}

// NewCopyState creates an empty copy state.
func NewCopyState() *CopyState {
	return &CopyState{deadlines: make(map[copyKey]time.Time)}
}

// Mark starts the copied window for a block.
func (s *CopyState) Mark(messageID string, index int, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deadlines[copyKey{messageID, index}] = now.Add(CopiedDuration)
}

// IsCopied reports whether the block is inside its copied window.
func (s *CopyState) IsCopied(messageID string, index int, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	deadline, ok := s.deadlines[copyKey{messageID, index}]
	return ok && now.Before(deadline)
}

// Expire drops finished windows and reports whether any were dropped.
func (s *CopyState) Expire(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := false
	for k, deadline := range s.deadlines {
		if !now.Before(deadline) {
			delete(s.deadlines, k)
			changed = true
		}
	}
	return changed
}

// =============================================================================
// COPY MESSAGES
// =============================================================================

// CopyExpiredMsg is delivered when a copied window may have ended.
type CopyExpiredMsg struct {
	Time time.Time
}

// CopyExpireCmd schedules the end of a copied window.
func CopyExpireCmd() tea.Cmd {
	return tea.Tick(CopiedDuration, func(t time.Time) tea.Msg {
		return CopyExpiredMsg{Time: t}
	})
}

// CopyCode writes a code segment's content to the clipboard.
func CopyCode(code string) error {
	return WriteClipboard(code)
}
