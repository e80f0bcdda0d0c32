// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"fmt"

	"github.com/alecthomas/chroma/v2"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/kbchat/internal/highlight"
)

// =============================================================================
// SYNTAX PALETTE
// =============================================================================

// classTokens maps each highlight class to the chroma token type whose color
// it borrows from the active style.
var classTokens = map[highlight.Class]chroma.TokenType{
	highlight.ClassPlain:    chroma.Text,
	highlight.ClassNumber:   chroma.LiteralNumber,
	highlight.ClassKeyword1: chroma.Keyword,
	highlight.ClassKeyword3: chroma.NameBuiltin,
	highlight.ClassKeyword4: chroma.KeywordConstant,
	highlight.ClassOperator: chroma.Operator,
	highlight.ClassString:   chroma.LiteralString,
	highlight.ClassComment:  chroma.Comment,
	highlight.ClassVariable: chroma.NameVariable,
}

// Palette holds one lipgloss style per highlight class.
type Palette struct {
	Name       string
	Background lipgloss.Color
	styles     map[highlight.Class]lipgloss.Style
}

// NewPalette builds a palette from a registered chroma style.
func NewPalette(name string) (*Palette, error) {
	style, ok := chromastyles.Registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown syntax style %q", name)
	}
	return paletteFrom(name, style), nil
}

// MustPalette is like NewPalette but falls back to chroma's fallback style.
func MustPalette(name string) *Palette {
	p, err := NewPalette(name)
	if err != nil {
		return paletteFrom(chromastyles.Fallback.Name, chromastyles.Fallback)
	}
	return p
}

func paletteFrom(name string, style *chroma.Style) *Palette {
	p := &Palette{
		Name:   name,
		styles: make(map[highlight.Class]lipgloss.Style, len(classTokens)+1),
	}

	if bg := style.Get(chroma.Background).Background; bg.IsSet() {
		p.Background = lipgloss.Color(bg.String())
	}

	for _, class := range highlight.Classes() {
		token, ok := classTokens[class]
		if !ok {
			p.styles[class] = lipgloss.NewStyle()
			continue
		}
		p.styles[class] = styleForEntry(style.Get(token))
	}
	return p
}

func styleForEntry(entry chroma.StyleEntry) lipgloss.Style {
	s := lipgloss.NewStyle()
	if entry.Colour.IsSet() {
		s = s.Foreground(lipgloss.Color(entry.Colour.String()))
	}
	if entry.Bold == chroma.Yes {
		s = s.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		s = s.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		s = s.Underline(true)
	}
	return s
}

// Style returns the style for a class. Unknown classes render unstyled.
func (p *Palette) Style(class highlight.Class) lipgloss.Style {
	if s, ok := p.styles[class]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

// RenderLine paints one highlighted line.
func (p *Palette) RenderLine(line highlight.Line) string {
	out := make([]byte, 0, len(line.Text())*2)
	for _, tok := range line {
		if tok.Text == "" {
			continue
		}
		if tok.Class == highlight.ClassNone {
			out = append(out, tok.Text...)
			continue
		}
		out = append(out, p.Style(tok.Class).Render(tok.Text)...)
	}
	return string(out)
}
