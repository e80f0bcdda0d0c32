// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package highlight

// Class is the palette key assigned to a token.
type Class int

const (
	// ClassNone marks text that is emitted uncolored (leading whitespace of a
	// comment line).
	ClassNone Class = iota
	ClassPlain
	ClassNumber
	ClassKeyword1 // control flow
	ClassKeyword3 // command-like words
	ClassKeyword4 // literal and boolean words
	ClassOperator
	ClassString
	ClassComment
	ClassVariable
)

var classNames = map[Class]string{
	ClassNone:     "none",
	ClassPlain:    "plain",
	ClassNumber:   "number",
	ClassKeyword1: "keyword1",
	ClassKeyword3: "keyword3",
	ClassKeyword4: "keyword4",
	ClassOperator: "operator",
	ClassString:   "string",
	ClassComment:  "comment",
	ClassVariable: "variable",
}

// String returns the palette key name.
func (c Class) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return "unknown"
}

// Classes lists every palette key in declaration order.
func Classes() []Class {
	return []Class{
		ClassNone, ClassPlain, ClassNumber, ClassKeyword1, ClassKeyword3,
		ClassKeyword4, ClassOperator, ClassString, ClassComment, ClassVariable,
	}
}

// =============================================================================
// KEYWORD TABLES
// =============================================================================

var controlKeywords = wordSet(
	"then", "else", "function", "break", "do", "until", "use", "try", "catch",
	"return", "if", "fi", "while", "case", "esac", "for", "done", "in",
)

var commandKeywords = wordSet(
	"print", "echo", "lower", "trim", "edit", "const", "chmod", "cd", "ls",
	"grep", "awk", "sed",
)

var literalKeywords = wordSet(
	"true", "false", "null", "and", "or", "not",
)

// operatorChars is the fixed set of single structural characters.
const operatorChars = "!#(),;[]{}+<=>-"

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

func isOperatorByte(c byte) bool {
	for i := 0; i < len(operatorChars); i++ {
		if operatorChars[i] == c {
			return true
		}
	}
	return false
}
