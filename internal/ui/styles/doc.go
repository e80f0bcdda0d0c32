// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the kbchat TUI.

All interface colors use Lip Gloss AdaptiveColor for automatic light/dark
terminal detection.

# Color System (colors.go)

	Purple, Cyan, Emerald - accents for assistant, user and success
	Rose, Amber           - errors and warnings
	Surface*, Text*       - layered surfaces and text hierarchy

# Syntax Palette (palette.go)

Code segments are colored per highlight.Class. The colors come from a named
chroma style, so any style chroma ships (dracula, monokai, catppuccin-*) can
be chosen with ui.syntax_style:

	palette, err := styles.NewPalette("dracula")
	line := palette.RenderLine(highlight.HighlightLine("echo $HOME"))

# Theme System (theme.go)

	theme := styles.NewTheme(cfg.UI.SyntaxStyle)
	if theme.IsDark {
		// Dark terminal detected
	}

# Spinners (animations.go)

	DotsSpinner - "Assistant is typing" indicator
	LineSpinner - line-mode wait indicator
*/
package styles
