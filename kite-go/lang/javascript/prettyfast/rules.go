package prettyfast

import "github.com/kiteco/prettyfast/kite-go/lang/javascript/jsscanner"

func set(labels ...string) map[string]bool {
	m := make(map[string]bool, len(labels))
	for _, l := range labels {
		m[l] = true
	}
	return m
}

// binaryOperators and assignOperators are shared by the sets below.
var (
	binaryOperators = []string{
		"*", "/", "%", "**", "<<", ">>", ">>>", "<", ">", "<=", ">=",
		"instanceof", "in", "==", "!=", "===", "!==", "&", "^", "|", "&&", "||", "??",
	}
	assignOperators = []string{
		"=", "*=", "/=", "%=", "+=", "-=", "<<=", ">>=", ">>>=", "&=", "^=", "|=",
		"**=", "&&=", "||=", "??=",
	}
)

// preArrayLiteral lists the tokens after which a '[' opens an array literal
// rather than an index or computed member access.
var preArrayLiteral = set(
	"typeof", "void", "delete", "case", "do", "=", "in", "{", "*", "/", "%",
	"else", ";", "++", "--", "+", "-", "~", "!", ":", "?", ">>", ">>>", "<<",
	"||", "&&", "<", ">", "<=", ">=", "instanceof", "&", "^", "|", "==", "!=",
	"===", "!==", ",", "}",
)

// preventASIAfter lists the tokens that cannot end a statement.
var preventASIAfter = set(append(append([]string{
	"+", "-", ".", "delete", "void", "typeof", "~", "!", "new", "(", ",",
}, binaryOperators...), assignOperators...)...)

// preventASIBefore lists the tokens that cannot start a statement. Unlike
// preventASIAfter it leaves out + and - which may be unary.
var preventASIBefore = set(append(append([]string{
	".", "(", ",",
}, binaryOperators...), assignOperators...)...)

// noSpaceAfterParen lists the tokens written directly after a ')'.
var noSpaceAfterParen = set(")", "]", ";", ",", ".")

// noSpaceAfterKeyword lists the keywords that are not followed by a space
// when the next token is neither a '.' nor covered by another rule.
var noSpaceAfterKeyword = set("debugger", "null", "true", "false", "this", "default")

func isArrayLiteral(tok *jsscanner.Token, last *lastToken) bool {
	if tok.Type != jsscanner.BracketL {
		return false
	}
	if last == nil {
		return true
	}
	if last.typ.IsAssign {
		return true
	}
	return preArrayLiteral[last.typ.Label]
}

// isASI returns true if a statement boundary is assumed between last and tok.
func isASI(tok *jsscanner.Token, last *lastToken) bool {
	if last == nil {
		return false
	}
	if tok.Start.Line <= last.end.Line {
		return false
	}
	if last.typ == jsscanner.Return || last.typ == jsscanner.Name && last.value == "yield" {
		return true
	}
	if preventASIAfter[last.typ.Label] || preventASIBefore[tok.Type.Label] {
		return false
	}
	return true
}

// isLineDelimiter returns true if a newline is written after the token.
func isLineDelimiter(tok *jsscanner.Token, arrayLiteral bool, s stack) bool {
	if arrayLiteral {
		return true
	}
	switch tok.Type {
	case jsscanner.Semi, jsscanner.Comma:
		return s.top() != frameParen
	case jsscanner.BraceL:
		return true
	case jsscanner.Colon:
		top := s.top()
		return top == frameCase || top == frameDefault
	}
	return false
}

func isIdentifierLike(typ *jsscanner.Type) bool {
	switch typ {
	case jsscanner.Name, jsscanner.Num, jsscanner.PrivateID:
		return true
	}
	return typ.Keyword != ""
}

// needsSpaceBeforeLastToken returns true if the last token always wants a
// space after it.
func needsSpaceBeforeLastToken(last *lastToken) bool {
	if last.typ.IsLoop || last.typ.IsAssign || last.typ.Binop != 0 {
		return true
	}
	switch last.typ {
	case jsscanner.Question, jsscanner.Colon, jsscanner.Comma, jsscanner.Semi, jsscanner.DollarBraceL:
		return true
	}
	return false
}

func needsSpaceBetweenTokens(tok *jsscanner.Token, last *lastToken) bool {
	if needsSpaceBeforeLastToken(last) {
		return true
	}

	ttl := tok.Type.Label
	if last.typ == jsscanner.Num && tok.Type == jsscanner.Dot {
		return true
	}

	if ltk := last.typ.Keyword; ltk != "" && tok.Type != jsscanner.Dot {
		switch ltk {
		case "break", "continue", "return":
			return tok.Type != jsscanner.Semi
		}
		if !noSpaceAfterKeyword[ltk] {
			return true
		}
	}

	if last.typ == jsscanner.ParenR && !noSpaceAfterParen[ttl] {
		return true
	}
	if isIdentifierLike(tok.Type) && isIdentifierLike(last.typ) {
		return true
	}
	return tok.Type == jsscanner.BraceL && last.typ == jsscanner.Name
}

// needsSpaceAfter returns true if a space is written between last and tok
// when no other whitespace was.
func needsSpaceAfter(tok *jsscanner.Token, last *lastToken) bool {
	if last != nil && needsSpaceBetweenTokens(tok, last) {
		return true
	}
	if tok.Type.IsAssign {
		return true
	}
	if tok.Type.Binop != 0 && last != nil {
		return true
	}
	return tok.Type == jsscanner.Question
}

// needsSpaceAfterClosingBrace lists the keywords written on the same line as
// a preceding '}'.
func needsSpaceAfterClosingBrace(tok *jsscanner.Token) bool {
	switch tok.Type {
	case jsscanner.Else, jsscanner.Catch, jsscanner.Finally:
		return true
	}
	return false
}

// needsLineBreakAfterClosingBrace returns false for the tokens that continue
// an expression ending with a '}'.
func needsLineBreakAfterClosingBrace(tok *jsscanner.Token) bool {
	switch tok.Type {
	case jsscanner.ParenL, jsscanner.Semi, jsscanner.Comma, jsscanner.ParenR,
		jsscanner.Dot, jsscanner.Template, jsscanner.BackQuote:
		return false
	}
	return true
}
