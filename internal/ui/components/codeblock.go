// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/kbchat/internal/highlight"
	"github.com/jeranaias/kbchat/internal/segment"
	"github.com/jeranaias/kbchat/internal/ui/styles"
)

// =============================================================================
// CODE BLOCK RENDERER
// =============================================================================

// CodeBlock is one code segment of an assistant message, ready to render.
type CodeBlock struct {
	Index    int // 1-based position among the message's code segments
	Language string
	Code     string
	Copied   bool
	MaxWidth int
}

// NewCodeBlock creates a code block for the index-th code segment.
func NewCodeBlock(index int, seg segment.Segment) CodeBlock {
	return CodeBlock{
		Index:    index,
		Language: seg.Language,
		Code:     seg.Content,
		MaxWidth: 80,
	}
}

// SetMaxWidth sets the maximum width for the code block.
func (c *CodeBlock) SetMaxWidth(width int) {
	c.MaxWidth = width
}

// Render renders the code block: a header with the language and copy state,
// then the highlighted lines with line numbers.
func (c CodeBlock) Render(theme *styles.Theme) string {
	lines := highlight.Highlight(c.Code)

	gutter := len(strconv.Itoa(len(lines)))
	lineNumStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Width(gutter).
		Align(lipgloss.Right).
		MarginRight(1)

	rendered := make([]string, 0, len(lines))
	for i, line := range lines {
		rendered = append(rendered, lineNumStyle.Render(strconv.Itoa(i+1))+theme.Palette.RenderLine(line))
	}

	maxWidth := c.MaxWidth - 2
	if maxWidth < 20 {
		maxWidth = 20
	}

	return theme.CodeBlock.
		MaxWidth(maxWidth).
		Render(c.renderHeader(theme) + "\n" + strings.Join(rendered, "\n"))
}

func (c CodeBlock) renderHeader(theme *styles.Theme) string {
	lang := theme.CodeLanguage.Render(c.Language)

	var state string
	switch {
	case c.Copied:
		state = theme.CodeCopied.Render(styles.StatusIndicators.Success + " copied")
	case c.Index >= 1 && c.Index <= 9:
		state = theme.CodeHint.Render("alt+" + strconv.Itoa(c.Index) + " copy")
	}

	if state == "" {
		return lang
	}
	return lang + theme.CodeHeader.Render("  ") + state
}
