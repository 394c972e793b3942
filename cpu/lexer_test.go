package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func lex(t *testing.T, program ...string) []Line {
	lx := &Lexer{}
	lines, err := lx.Lex(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(t, err)
	return lines
}

func TestLexerComments(t *testing.T) {
	assert := assert.New(t)

	lines := lex(t,
		"# leading comment",
		"",
		"push 5 # trailing comment",
		"   ",
		"halt",
	)

	assert.Equal(2, len(lines))
	assert.Equal(Line{LineNo: 3, Text: "push 5 ", Mnemonic: "push", Args: []string{"5"}}, lines[0])
	assert.Equal("halt", lines[1].Mnemonic)
	assert.Equal(5, lines[1].LineNo)
	assert.Empty(lines[1].Args)
}

func TestLexerLabelForms(t *testing.T) {
	assert := assert.New(t)

	lines := lex(t,
		"start:",
		":also",
		"loop: dup",
	)

	assert.Equal(4, len(lines))
	assert.Equal("start", lines[0].Label)
	assert.True(lines[0].IsLabel())
	assert.Equal("also", lines[1].Label)
	assert.Equal("loop", lines[2].Label)
	assert.Equal("dup", lines[3].Mnemonic)
	assert.Equal(3, lines[3].LineNo)
}

func TestLexerMultipleLabels(t *testing.T) {
	assert := assert.New(t)

	lines := lex(t, "here: AND_ALSO: halt")

	assert.Equal(3, len(lines))
	assert.Equal("here", lines[0].Label)
	assert.Equal("AND_ALSO", lines[1].Label)
	assert.Equal("halt", lines[2].Mnemonic)
}

func TestLexerExpressionToken(t *testing.T) {
	assert := assert.New(t)

	lines := lex(t, "push $(2 * (3 + 4))")

	assert.Equal(1, len(lines))
	assert.Equal([]string{"$(2 * (3 + 4))"}, lines[0].Args)
}

func TestLexerCharToken(t *testing.T) {
	assert := assert.New(t)

	lines := lex(t,
		"push ' '",
		"push '#' # not a comment start",
		`push '\n'`,
	)

	assert.Equal(3, len(lines))
	assert.Equal([]string{"' '"}, lines[0].Args)
	assert.Equal([]string{"'#'"}, lines[1].Args)
	assert.Equal([]string{`'\n'`}, lines[2].Args)
}

func TestLexerStructuresOnly(t *testing.T) {
	assert := assert.New(t)

	// Semantic junk is not the lexer's problem; it must pass through.
	lines := lex(t, "frobnicate a b c")

	assert.Equal(1, len(lines))
	assert.Equal("frobnicate", lines[0].Mnemonic)
	assert.Equal([]string{"a", "b", "c"}, lines[0].Args)
}
