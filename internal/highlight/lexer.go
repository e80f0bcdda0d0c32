// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package highlight

import "unicode/utf8"

// scan cuts a line into raw token texts. At each position the alternatives
// are tried in order and the first that matches wins:
//
//	\$?\w+ | [!#(),;\[\]{}+<=>-] | \d+ | "[^"]*" | '[^']*' | \s+
//
// Text that no alternative matches is collected into a gap token that runs
// until the next position where one does.
func scan(line string) []string {
	var tokens []string
	gapStart := -1
	pos := 0

	for pos < len(line) {
		n := matchAt(line, pos)
		if n == 0 {
			if gapStart < 0 {
				gapStart = pos
			}
			_, size := utf8.DecodeRuneInString(line[pos:])
			pos += size
			continue
		}
		if gapStart >= 0 {
			tokens = append(tokens, line[gapStart:pos])
			gapStart = -1
		}
		tokens = append(tokens, line[pos:pos+n])
		pos += n
	}

	if gapStart >= 0 {
		tokens = append(tokens, line[gapStart:])
	}
	return tokens
}

// matchAt returns the byte length of the first alternative matching at pos,
// or 0 when none does.
func matchAt(s string, pos int) int {
	if n := matchWord(s, pos); n > 0 {
		return n
	}
	if isOperatorByte(s[pos]) {
		return 1
	}
	if n := matchDigits(s, pos); n > 0 {
		return n
	}
	if n := matchQuoted(s, pos, '"'); n > 0 {
		return n
	}
	if n := matchQuoted(s, pos, '\''); n > 0 {
		return n
	}
	return matchSpace(s, pos)
}

// matchWord matches \$?\w+.
func matchWord(s string, pos int) int {
	i := pos
	if s[i] == '$' {
		i++
	}
	start := i
	for i < len(s) && isWordByte(s[i]) {
		i++
	}
	if i == start {
		return 0
	}
	return i - pos
}

// matchDigits matches \d+. Any run it could match already matches \w+, so
// it only documents the grammar.
func matchDigits(s string, pos int) int {
	i := pos
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i - pos
}

// matchQuoted matches a quote, any run of non-quote characters, and the
// closing quote.
func matchQuoted(s string, pos int, quote byte) int {
	if s[pos] != quote {
		return 0
	}
	for i := pos + 1; i < len(s); i++ {
		if s[i] == quote {
			return i + 1 - pos
		}
	}
	return 0
}

// matchSpace matches \s+.
func matchSpace(s string, pos int) int {
	i := pos
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !isSpace(r) {
			break
		}
		i += size
	}
	return i - pos
}

func isWordByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// isSpace reports whether r is in the ECMAScript \s class.
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', 0x00A0, 0x1680,
		0x2028, 0x2029, 0x202F, 0x205F, 0x3000, 0xFEFF:
		return true
	}
	return r >= 0x2000 && r <= 0x200A
}
