// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package highlight tokenizes shell-like code into colored tokens.
//
// Each line is scanned independently by a small ordered lexer and every
// token is assigned a palette Class. The lexer never drops input: joining
// the text of a line's tokens yields the line unchanged.
package highlight

import (
	"strings"
	"unicode/utf8"
)

// Token is a classified substring of one code line.
type Token struct {
	Text  string
	Class Class
}

// Line is the ordered token list for one line of code.
type Line []Token

// Text joins the token texts back into the original line.
func (l Line) Text() string {
	var b strings.Builder
	for _, tok := range l {
		b.WriteString(tok.Text)
	}
	return b.String()
}

// Highlight splits code on newlines and tokenizes every line.
func Highlight(code string) []Line {
	rawLines := strings.Split(code, "\n")
	lines := make([]Line, 0, len(rawLines))
	for _, raw := range rawLines {
		lines = append(lines, HighlightLine(raw))
	}
	return lines
}

// HighlightLine tokenizes a single line.
func HighlightLine(line string) Line {
	if indent, comment, ok := splitCommentLine(line); ok {
		return Line{
			{Text: indent, Class: ClassNone},
			{Text: comment, Class: ClassComment},
		}
	}

	raw := scan(line)
	if len(raw) == 0 {
		return Line{{Text: line, Class: ClassPlain}}
	}

	out := make(Line, len(raw))
	for i, text := range raw {
		out[i] = Token{Text: text, Class: Classify(text)}
	}
	return out
}

// Classify assigns a palette class to a token. The checks run in a fixed
// order and the first hit wins, so a keyword never falls through to the
// operator or default classes.
func Classify(tok string) Class {
	switch {
	case isAllDigits(tok):
		return ClassNumber
	case controlKeywords[tok]:
		return ClassKeyword1
	case commandKeywords[tok]:
		return ClassKeyword3
	case literalKeywords[tok]:
		return ClassKeyword4
	case len(tok) == 1 && isOperatorByte(tok[0]):
		return ClassOperator
	case isQuoted(tok):
		return ClassString
	case strings.HasPrefix(tok, "#"):
		return ClassComment
	case strings.HasPrefix(tok, "$"):
		return ClassVariable
	default:
		return ClassPlain
	}
}

// splitCommentLine matches ^(\s*)(#.*)$ where '.' excludes line terminators.
func splitCommentLine(line string) (indent, comment string, ok bool) {
	i := 0
	for i < len(line) {
		r, size := utf8.DecodeRuneInString(line[i:])
		if !isSpace(r) {
			break
		}
		i += size
	}
	if i >= len(line) || line[i] != '#' {
		return "", "", false
	}
	rest := line[i:]
	if strings.ContainsAny(rest, "\r\n\u2028\u2029") {
		return "", "", false
	}
	return line[:i], rest, true
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isQuoted(s string) bool {
	if len(s) < 2 {
		return false
	}
	first, last := s[0], s[len(s)-1]
	return (first == '"' && last == '"') || (first == '\'' && last == '\'')
}
