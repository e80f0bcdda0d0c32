// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// =============================================================================
// PROSE RENDERING
// =============================================================================

// ProseRenderer renders prose segments as terminal markdown. Renderers are
// cached per wrap width since building one is not cheap.
type ProseRenderer struct {
	mu    sync.Mutex
	style string
	cache map[int]*glamour.TermRenderer
}

// NewProseRenderer creates a renderer. An empty style selects glamour's
// auto style; "notty" renders plain text.
func NewProseRenderer(style string) *ProseRenderer {
	return &ProseRenderer{
		style: style,
		cache: make(map[int]*glamour.TermRenderer),
	}
}

func (p *ProseRenderer) renderer(width int) *glamour.TermRenderer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if r, ok := p.cache[width]; ok {
		return r
	}

	styleOpt := glamour.WithAutoStyle()
	if p.style != "" {
		styleOpt = glamour.WithStandardStyle(p.style)
	}
	r, err := glamour.NewTermRenderer(
		styleOpt,
		glamour.WithWordWrap(width),
		glamour.WithPreservedNewLines(),
	)
	if err != nil {
		r = nil
	}
	p.cache[width] = r
	return r
}

// Render renders markdown at the given width. It returns the input unchanged
// if rendering fails.
func (p *ProseRenderer) Render(text string, width int) string {
	if width < 20 {
		width = 20
	}
	r := p.renderer(width)
	if r == nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}
