// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// Syntax colors for code segments
	Palette *Palette

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// MESSAGE STYLES
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	UserLabel       lipgloss.Style
	AssistantLabel  lipgloss.Style
	Timestamp       lipgloss.Style

	// ==========================================================================
	// CODE BLOCK STYLES
	// ==========================================================================

	CodeBlock    lipgloss.Style
	CodeHeader   lipgloss.Style
	CodeLanguage lipgloss.Style
	CodeCopied   lipgloss.Style
	CodeHint     lipgloss.Style

	// ==========================================================================
	// INPUT / STATUS STYLES
	// ==========================================================================

	InputContainer        lipgloss.Style
	InputContainerWaiting lipgloss.Style
	StatusBar             lipgloss.Style
	StatusKey             lipgloss.Style
	StatusValue           lipgloss.Style
	Typing                lipgloss.Style

	// ==========================================================================
	// EMPTY STATE
	// ==========================================================================

	WelcomeBox   lipgloss.Style
	WelcomeTitle lipgloss.Style
	WelcomeText  lipgloss.Style
}

// NewTheme creates a new theme with all styles configured. syntaxStyle names
// the chroma style used for code; an unknown name falls back to chroma's
// default.
func NewTheme(syntaxStyle string) *Theme {
	colorProfile := termenv.ColorProfile()
	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
		Palette:      MustPalette(syntaxStyle),
	}

	t.initStyles()
	return t
}

// SetPalette swaps the syntax palette, e.g. after a config reload.
func (t *Theme) SetPalette(p *Palette) {
	if p != nil {
		t.Palette = p
		t.initCodeStyles()
	}
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Header
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 1).
		MarginLeft(4)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(AssistantBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(AssistantBubbleBorder).
		Padding(0, 1).
		MarginRight(4)

	t.UserLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.AssistantLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.initCodeStyles()

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Cyan).
		Padding(0, 1)

	t.InputContainerWaiting = t.InputContainer.
		BorderForeground(Overlay)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 1)

	t.StatusKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim)

	t.StatusValue = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(SurfaceDim)

	t.Typing = lipgloss.NewStyle().
		Foreground(Purple).
		Italic(true)

	// Empty state
	t.WelcomeBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(1, 3).
		Align(lipgloss.Center)

	t.WelcomeTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.WelcomeText = lipgloss.NewStyle().
		Foreground(TextSecondary)
}

func (t *Theme) initCodeStyles() {
	t.CodeBlock = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(CodeBorder).
		Padding(0, 1)
	if t.Palette != nil && t.Palette.Background != "" && t.HasTrueColor {
		t.CodeBlock = t.CodeBlock.Background(t.Palette.Background)
	}

	t.CodeHeader = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.CodeLanguage = lipgloss.NewStyle().
		Bold(true).
		Foreground(Amber)

	t.CodeCopied = lipgloss.NewStyle().
		Bold(true).
		Foreground(Emerald)

	t.CodeHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// BubbleWidth returns the width available to a message bubble.
func (t *Theme) BubbleWidth() int {
	switch t.GetLayoutMode() {
	case LayoutNarrow:
		return max(t.Width-2, 20)
	case LayoutMedium:
		return t.Width - 8
	default:
		return min(t.Width-12, 110)
	}
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
