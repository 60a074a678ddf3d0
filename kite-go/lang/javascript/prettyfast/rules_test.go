package prettyfast

import (
	"testing"

	"github.com/kiteco/prettyfast/kite-go/lang/javascript/jsscanner"
	"github.com/stretchr/testify/assert"
)

func last(typ *jsscanner.Type, line int) *lastToken {
	pos := jsscanner.Position{Line: line}
	return &lastToken{typ: typ, start: pos, end: pos}
}

func tokAt(typ *jsscanner.Type, line int) *jsscanner.Token {
	pos := jsscanner.Position{Line: line}
	return &jsscanner.Token{Type: typ, Start: pos, End: pos}
}

func TestIsArrayLiteral(t *testing.T) {
	bracket := tokAt(jsscanner.BracketL, 1)

	assert.True(t, isArrayLiteral(bracket, nil))
	assert.True(t, isArrayLiteral(bracket, last(jsscanner.Eq, 1)))
	assert.True(t, isArrayLiteral(bracket, last(jsscanner.PlusAssign, 1)))
	assert.True(t, isArrayLiteral(bracket, last(jsscanner.Comma, 1)))
	assert.True(t, isArrayLiteral(bracket, last(jsscanner.Typeof, 1)))
	assert.False(t, isArrayLiteral(bracket, last(jsscanner.Name, 1)))
	assert.False(t, isArrayLiteral(bracket, last(jsscanner.ParenR, 1)))
	assert.False(t, isArrayLiteral(tokAt(jsscanner.ParenL, 1), nil))
}

func TestIsASI(t *testing.T) {
	assert.False(t, isASI(tokAt(jsscanner.Name, 2), nil))
	assert.False(t, isASI(tokAt(jsscanner.Name, 1), last(jsscanner.Name, 1)))
	assert.True(t, isASI(tokAt(jsscanner.Name, 2), last(jsscanner.Name, 1)))
	assert.True(t, isASI(tokAt(jsscanner.Name, 2), last(jsscanner.Return, 1)))
	assert.True(t, isASI(tokAt(jsscanner.Plus, 2), last(jsscanner.Name, 1)))
	assert.False(t, isASI(tokAt(jsscanner.Name, 2), last(jsscanner.Plus, 1)))
	assert.False(t, isASI(tokAt(jsscanner.Dot, 2), last(jsscanner.Name, 1)))
	assert.False(t, isASI(tokAt(jsscanner.Name, 2), last(jsscanner.CoalesceAssign, 1)))

	yield := last(jsscanner.Name, 1)
	yield.value = "yield"
	assert.True(t, isASI(tokAt(jsscanner.ParenL, 2), yield))

	// a token spanning lines is compared by where it ends
	tmpl := &lastToken{
		typ:   jsscanner.Template,
		start: jsscanner.Position{Line: 1},
		end:   jsscanner.Position{Line: 3},
	}
	assert.False(t, isASI(tokAt(jsscanner.DollarBraceL, 3), tmpl))
}

func TestIsLineDelimiter(t *testing.T) {
	semi := tokAt(jsscanner.Semi, 1)
	assert.True(t, isLineDelimiter(semi, false, stack{}))
	assert.False(t, isLineDelimiter(semi, false, stack{frameParen}))
	assert.True(t, isLineDelimiter(semi, false, stack{frameParen, frameBrace}))

	colon := tokAt(jsscanner.Colon, 1)
	assert.True(t, isLineDelimiter(colon, false, stack{frameSwitch, frameBrace, frameCase}))
	assert.False(t, isLineDelimiter(colon, false, stack{frameTernary}))

	assert.True(t, isLineDelimiter(tokAt(jsscanner.BracketL, 1), true, stack{}))
	assert.False(t, isLineDelimiter(tokAt(jsscanner.BracketL, 1), false, stack{}))
}

func TestNeedsSpaceAfter(t *testing.T) {
	cases := []struct {
		desc     string
		tok      *jsscanner.Type
		last     *jsscanner.Type
		expected bool
	}{
		{"name after keyword", jsscanner.Name, jsscanner.Var, true},
		{"dot after keyword", jsscanner.Dot, jsscanner.This, false},
		{"paren after this", jsscanner.ParenR, jsscanner.This, false},
		{"semicolon after return", jsscanner.Semi, jsscanner.Return, false},
		{"name after return", jsscanner.Name, jsscanner.Return, true},
		{"brace after paren", jsscanner.BraceL, jsscanner.ParenR, true},
		{"semicolon after paren", jsscanner.Semi, jsscanner.ParenR, false},
		{"two names", jsscanner.Name, jsscanner.Name, true},
		{"brace after name", jsscanner.BraceL, jsscanner.Name, true},
		{"paren after name", jsscanner.ParenL, jsscanner.Name, false},
		{"dot after number", jsscanner.Dot, jsscanner.Num, true},
		{"assignment", jsscanner.Eq, jsscanner.Name, true},
		{"binary operator", jsscanner.StrictEq, jsscanner.Name, true},
		{"question mark", jsscanner.Question, jsscanner.Name, true},
		{"after comma", jsscanner.Name, jsscanner.Comma, true},
		{"after template substitution", jsscanner.Name, jsscanner.DollarBraceL, true},
		{"after loop keyword", jsscanner.ParenL, jsscanner.While, true},
	}

	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			assert.Equal(t, c.expected, needsSpaceAfter(tokAt(c.tok, 1), last(c.last, 1)))
		})
	}

	assert.False(t, needsSpaceAfter(tokAt(jsscanner.Plus, 1), nil))
	assert.True(t, needsSpaceAfter(tokAt(jsscanner.Question, 1), nil))
}

func TestStack(t *testing.T) {
	var s stack
	assert.Equal(t, frameNone, s.top())
	s.pop()

	s.push(frameSwitch)
	s.push(frameBrace)
	assert.Equal(t, frameBrace, s.top())
	assert.Equal(t, frameSwitch, s.at(2))
	assert.Equal(t, frameNone, s.at(3))
	assert.Equal(t, "switch", s.at(2).String())

	s.pop()
	s.pop()
	assert.Len(t, s, 0)
}

func TestDecrementsIndent(t *testing.T) {
	braceR := tokAt(jsscanner.BraceR, 1)
	assert.True(t, decrementsIndent(braceR, stack{frameBrace}))
	assert.True(t, decrementsIndent(braceR, stack{}))
	assert.False(t, decrementsIndent(braceR, stack{frameTemplate}))

	bracketR := tokAt(jsscanner.BracketR, 1)
	assert.True(t, decrementsIndent(bracketR, stack{frameArrayLiteral}))
	assert.False(t, decrementsIndent(bracketR, stack{frameBracket}))
}

func TestSanitize(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"plain", "plain"},
		{"it's", `it\'s`},
		{`a"b`, `a"b`},
		{"a\\b", `a\\b`},
		{"line\nbreak\r\n", `line\nbreak\r\n`},
		{"\t\v\f", `\t\v\f`},
		{"\x00", `\x00`},
		{"\u2028\u2029", `\u2028\u2029`},
		{"café \U0001F600", "café \U0001F600"},
		{"\xed\xa0\xbd", `\uD83D`},
		{"a\xed\xb8\x80b", `a\uDE00b`},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, sanitize(c.in), "input %q", c.in)
	}
}

func TestReindentComment(t *testing.T) {
	assert.Equal(t, " one line ", reindentComment(" one line ", 4, "  "))

	text := "*\n     * a\n     * b\n     "
	assert.Equal(t, "*\n   * a\n   * b\n   ", reindentComment(text, 4, "  "))

	// lines indented less than the comment keep their remaining text
	assert.Equal(t, "\n\tx\n\ty", reindentComment("\nx\n  y", 4, "\t"))
}
