package prettyfast

import "github.com/kiteco/prettyfast/kite-go/lang/javascript/jsscanner"

// frame is an entry on the printer's stack of open syntactic contexts.
type frame int

const (
	frameNone frame = iota
	frameBrace
	frameParen
	frameBracket
	frameArrayLiteral
	frameTernary
	frameTemplate
	frameDo
	frameSwitch
	frameCase
	frameDefault
)

var frameNames = [...]string{
	frameNone:         "",
	frameBrace:        "{",
	frameParen:        "(",
	frameBracket:      "[",
	frameArrayLiteral: "[\n",
	frameTernary:      "?",
	frameTemplate:     "${",
	frameDo:           "do",
	frameSwitch:       "switch",
	frameCase:         "case",
	frameDefault:      "default",
}

func (f frame) String() string {
	return frameNames[f]
}

type stack []frame

func (s *stack) push(f frame) {
	*s = append(*s, f)
}

func (s *stack) pop() {
	if len(*s) > 0 {
		*s = (*s)[:len(*s)-1]
	}
}

// top returns the innermost frame, or frameNone if the stack is empty.
func (s stack) top() frame {
	return s.at(1)
}

// at returns the n-th frame from the top, counting from 1.
func (s stack) at(n int) frame {
	if n > len(s) {
		return frameNone
	}
	return s[len(s)-n]
}

// frameFor returns the frame a token opens, if any. Keywords only count when
// they have not been reclassified as names.
func frameFor(tok *jsscanner.Token, arrayLiteral bool) (frame, bool) {
	switch tok.Type {
	case jsscanner.BraceL:
		return frameBrace, true
	case jsscanner.ParenL:
		return frameParen, true
	case jsscanner.BracketL:
		if arrayLiteral {
			return frameArrayLiteral, true
		}
		return frameBracket, true
	case jsscanner.Question:
		return frameTernary, true
	case jsscanner.DollarBraceL:
		return frameTemplate, true
	case jsscanner.Do:
		return frameDo, true
	case jsscanner.Switch:
		return frameSwitch, true
	case jsscanner.Case:
		return frameCase, true
	case jsscanner.Default:
		return frameDefault, true
	}
	return frameNone, false
}

// shouldPop returns true if the token closes the innermost frame.
func shouldPop(tok *jsscanner.Token, s stack) bool {
	switch tok.Type {
	case jsscanner.BracketR, jsscanner.ParenR, jsscanner.BraceR:
		return true
	case jsscanner.Colon:
		top := s.top()
		return top == frameCase || top == frameDefault || top == frameTernary
	case jsscanner.While:
		return s.top() == frameDo
	}
	return false
}

func decrementsIndent(tok *jsscanner.Token, s stack) bool {
	switch tok.Type {
	case jsscanner.BraceR:
		return s.top() != frameTemplate
	case jsscanner.BracketR:
		return s.top() == frameArrayLiteral
	}
	return false
}

func incrementsIndent(tok *jsscanner.Token, arrayLiteral bool) bool {
	return tok.Type == jsscanner.BraceL || arrayLiteral || tok.Type == jsscanner.Switch
}
