// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package segment splits a chat message into prose and fenced code segments.
package segment

import "strings"

// =============================================================================
// SEGMENT TYPES
// =============================================================================

// Kind distinguishes prose from code.
type Kind int

const (
	KindProse Kind = iota
	KindCode
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindProse:
		return "prose"
	case KindCode:
		return "code"
	default:
		return "unknown"
	}
}

// DefaultLanguage is assigned to code segments whose opening fence carries
// no language tag.
const DefaultLanguage = "bash"

// Fence is the marker that opens and closes a code block.
const Fence = "```"

// Segment is one contiguous prose or code region of a message.
type Segment struct {
	Kind     Kind
	Content  string
	Language string // only set for KindCode
}

// IsCode reports whether the segment is a fenced code block.
func (s Segment) IsCode() bool {
	return s.Kind == KindCode
}

// Prose creates a prose segment.
func Prose(content string) Segment {
	return Segment{Kind: KindProse, Content: content}
}

// Code creates a code segment. An empty language falls back to DefaultLanguage.
func Code(language, content string) Segment {
	if language == "" {
		language = DefaultLanguage
	}
	return Segment{Kind: KindCode, Content: content, Language: language}
}

// =============================================================================
// PARSER
// =============================================================================

// fencedBlock is one matched ``` region. Offsets are byte offsets into the
// source text; end is exclusive and points past the closing fence.
type fencedBlock struct {
	start    int
	end      int
	language string
	body     string
}

// Parse splits text into an ordered list of segments.
//
// A block opens with ``` optionally followed by a word-character language
// tag and then a newline, and closes at the next ```. Prose between blocks
// is trimmed and dropped when blank. Code bodies are trimmed. When the text
// contains no block at all, a single prose segment holding the untouched text
// is returned.
func Parse(text string) []Segment {
	blocks := findBlocks(text)
	if len(blocks) == 0 {
		return []Segment{Prose(text)}
	}

	segments := make([]Segment, 0, len(blocks)*2+1)
	last := 0
	for _, b := range blocks {
		if b.start > last {
			if prose := strings.TrimSpace(text[last:b.start]); prose != "" {
				segments = append(segments, Prose(prose))
			}
		}
		segments = append(segments, Code(b.language, strings.TrimSpace(b.body)))
		last = b.end
	}

	if last < len(text) {
		if prose := strings.TrimSpace(text[last:]); prose != "" {
			segments = append(segments, Prose(prose))
		}
	}

	return segments
}

// CodeBlocks returns only the code segments, in order.
func CodeBlocks(segments []Segment) []Segment {
	var blocks []Segment
	for _, s := range segments {
		if s.IsCode() {
			blocks = append(blocks, s)
		}
	}
	return blocks
}

// findBlocks scans left to right for fenced blocks. A fence that does not
// open a valid block is skipped one byte at a time, so a later fence can
// still open one.
func findBlocks(text string) []fencedBlock {
	var blocks []fencedBlock
	pos := 0
	for pos < len(text) {
		idx := strings.Index(text[pos:], Fence)
		if idx < 0 {
			break
		}
		start := pos + idx
		block, ok := matchBlockAt(text, start)
		if !ok {
			pos = start + 1
			continue
		}
		blocks = append(blocks, block)
		pos = block.end
	}
	return blocks
}

// matchBlockAt tries to match a complete block whose opening fence starts at
// start.
func matchBlockAt(text string, start int) (fencedBlock, bool) {
	i := start + len(Fence)

	tagStart := i
	for i < len(text) && isWordByte(text[i]) {
		i++
	}
	language := text[tagStart:i]

	if i >= len(text) || text[i] != '\n' {
		return fencedBlock{}, false
	}
	bodyStart := i + 1

	closeIdx := strings.Index(text[bodyStart:], Fence)
	if closeIdx < 0 {
		return fencedBlock{}, false
	}
	bodyEnd := bodyStart + closeIdx

	return fencedBlock{
		start:    start,
		end:      bodyEnd + len(Fence),
		language: language,
		body:     text[bodyStart:bodyEnd],
	}, true
}

// isWordByte matches the ASCII word class [A-Za-z0-9_].
func isWordByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
