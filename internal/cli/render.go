// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"

	"github.com/jeranaias/kbchat/internal/highlight"
	"github.com/jeranaias/kbchat/internal/segment"
	"github.com/jeranaias/kbchat/internal/ui/components"
	"github.com/jeranaias/kbchat/internal/ui/styles"
)

// ReplyRenderer formats a reply for line-mode output.
type ReplyRenderer struct {
	colored bool
	width   int
	palette *styles.Palette
	prose   *components.ProseRenderer
}

// NewReplyRenderer creates a renderer. When colored is false Render returns
// replies untouched, so piped output stays plain markdown.
func NewReplyRenderer(syntaxStyle string, colored bool, width int) *ReplyRenderer {
	return &ReplyRenderer{
		colored: colored,
		width:   width,
		palette: styles.MustPalette(syntaxStyle),
		prose:   components.NewProseRenderer(""),
	}
}

// Render renders prose through glamour and code through the token palette.
func (r *ReplyRenderer) Render(reply string) string {
	if !r.colored {
		return reply
	}

	var parts []string
	for _, seg := range segment.Parse(reply) {
		if seg.IsCode() {
			parts = append(parts, r.renderCode(seg))
			continue
		}
		if prose := r.prose.Render(seg.Content, r.width); prose != "" {
			parts = append(parts, prose)
		}
	}
	return strings.Join(parts, "\n\n")
}

func (r *ReplyRenderer) renderCode(seg segment.Segment) string {
	lines := []string{DimStyle.Render("[" + seg.Language + "]")}
	for _, line := range highlight.Highlight(seg.Content) {
		lines = append(lines, "  "+r.palette.RenderLine(line))
	}
	return strings.Join(lines, "\n")
}
