// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package highlight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHighlight_WholeLineComment(t *testing.T) {
	lines := Highlight("# a comment")

	require.Len(t, lines, 1)
	assert.Equal(t, Line{
		{Text: "", Class: ClassNone},
		{Text: "# a comment", Class: ClassComment},
	}, lines[0])
}

func TestHighlight_IndentedComment(t *testing.T) {
	line := HighlightLine("    #  indented (note)")

	assert.Equal(t, Line{
		{Text: "    ", Class: ClassNone},
		{Text: "#  indented (note)", Class: ClassComment},
	}, line)
}

func TestHighlight_KeywordsWinOverOtherClasses(t *testing.T) {
	line := HighlightLine("if true; then")

	assert.Equal(t, Line{
		{Text: "if", Class: ClassKeyword1},
		{Text: " ", Class: ClassPlain},
		{Text: "true", Class: ClassKeyword4},
		{Text: ";", Class: ClassOperator},
		{Text: " ", Class: ClassPlain},
		{Text: "then", Class: ClassKeyword1},
	}, line)
}

func TestHighlight_ShellSample(t *testing.T) {
	line := HighlightLine(`echo "hi $USER" > out.txt # done`)

	want := Line{
		{Text: "echo", Class: ClassKeyword3},
		{Text: " ", Class: ClassPlain},
		{Text: `"hi $USER"`, Class: ClassString},
		{Text: " ", Class: ClassPlain},
		{Text: ">", Class: ClassOperator},
		{Text: " ", Class: ClassPlain},
		{Text: "out", Class: ClassPlain},
		{Text: ".", Class: ClassPlain},
		{Text: "txt", Class: ClassPlain},
		{Text: " ", Class: ClassPlain},
		{Text: "#", Class: ClassOperator},
		{Text: " ", Class: ClassPlain},
		{Text: "done", Class: ClassKeyword1},
	}
	assert.Equal(t, want, line)
}

func TestClassify_Order(t *testing.T) {
	tests := []struct {
		tok  string
		want Class
	}{
		{"42", ClassNumber},
		{"007", ClassNumber},
		{"for", ClassKeyword1},
		{"esac", ClassKeyword1},
		{"grep", ClassKeyword3},
		{"const", ClassKeyword3},
		{"null", ClassKeyword4},
		{"not", ClassKeyword4},
		{"If", ClassPlain},
		{"-", ClassOperator},
		{"{", ClassOperator},
		{"'single'", ClassString},
		{`""`, ClassString},
		{`"mixed'`, ClassPlain},
		{"#!", ClassComment},
		{"$HOME", ClassVariable},
		{"$", ClassVariable},
		{"$1", ClassVariable},
		{"12ab", ClassPlain},
		{"./run.sh", ClassPlain},
	}

	for _, tc := range tests {
		t.Run(tc.tok, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.tok))
		})
	}
}

func TestHighlight_GapTokensCoverUnmatchedText(t *testing.T) {
	line := HighlightLine("a|b && c/d")

	texts := make([]string, len(line))
	for i, tok := range line {
		texts[i] = tok.Text
	}
	assert.Equal(t, []string{"a", "|", "b", " ", "&&", " ", "c", "/", "d"}, texts)
}

func TestHighlight_UnterminatedQuoteIsGap(t *testing.T) {
	line := HighlightLine(`echo "oops`)

	require.Len(t, line, 4)
	assert.Equal(t, Token{Text: `"`, Class: ClassPlain}, line[2])
	assert.Equal(t, Token{Text: "oops", Class: ClassPlain}, line[3])
}

func TestHighlight_DollarBrace(t *testing.T) {
	line := HighlightLine("${HOME}")

	assert.Equal(t, Line{
		{Text: "$", Class: ClassVariable},
		{Text: "{", Class: ClassOperator},
		{Text: "HOME", Class: ClassPlain},
		{Text: "}", Class: ClassOperator},
	}, line)
}

func TestHighlight_EmptyLine(t *testing.T) {
	lines := Highlight("ls\n\ncd /tmp")

	require.Len(t, lines, 3)
	assert.Equal(t, Line{{Text: "", Class: ClassPlain}}, lines[1])
}

func TestHighlight_CommentWithCarriageReturnIsTokenized(t *testing.T) {
	line := HighlightLine("# note\r")

	assert.Equal(t, ClassOperator, line[0].Class)
	assert.Equal(t, "# note\r", line.Text())
}

func TestHighlight_LosslessAcrossSamples(t *testing.T) {
	samples := []string{
		"for f in *.go; do gofmt -l \"$f\"; done",
		"while read -r line; do echo $line | awk '{print $1}'; done < input",
		"  x=$(( 1 + 2 )) ; [ $x -eq 3 ] && echo ok",
		"héllo wörld → ünïcode",
		"\t\tchmod +x ./deploy.sh",
		"",
	}

	for _, s := range samples {
		lines := Highlight(s)
		got := make([]string, len(lines))
		for i, l := range lines {
			got[i] = l.Text()
		}
		assert.Equal(t, s, strings.Join(got, "\n"))
	}
}

func TestClass_String(t *testing.T) {
	for _, c := range Classes() {
		assert.NotEqual(t, "unknown", c.String())
	}
	assert.Equal(t, "unknown", Class(99).String())
}
