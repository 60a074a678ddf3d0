package jsscanner

// A slash can start either a regular expression or a division, and a closing
// brace can end a block, an object literal or a template substitution. The
// scanner decides by tracking the syntactic context it is in, without parsing.
type context struct {
	token         string
	isExpr        bool
	preserveSpace bool
}

var (
	bStat = &context{token: "{"}
	bExpr = &context{token: "{", isExpr: true}
	bTmpl = &context{token: "${"}
	pStat = &context{token: "("}
	pExpr = &context{token: "(", isExpr: true}
	qTmpl = &context{token: "`", isExpr: true, preserveSpace: true}
	fStat = &context{token: "function"}
	fExpr = &context{token: "function", isExpr: true}
)

func (s *Scanner) curContext() *context {
	return s.ctx[len(s.ctx)-1]
}

func (s *Scanner) popContext() *context {
	c := s.ctx[len(s.ctx)-1]
	s.ctx = s.ctx[:len(s.ctx)-1]
	return c
}

// braceIsBlock decides whether an opening brace following prev starts a block
// statement or an expression.
func (s *Scanner) braceIsBlock(prev *Type) bool {
	parent := s.curContext()
	if parent == fExpr || parent == fStat {
		return true
	}
	if prev == Colon && (parent == bStat || parent == bExpr) {
		return !parent.isExpr
	}
	if prev == Return || (prev == Name && s.exprAllowed) {
		return s.newlineBefore
	}
	switch prev {
	case Else, Semi, EOF, ParenR, Arrow:
		return true
	case BraceL:
		return parent == bStat
	case Var, Const, Name:
		// a destructuring pattern
		return false
	}
	return !s.exprAllowed
}

// updateContext is called after every token with the type of the token that
// preceded it.
func (s *Scanner) updateContext(typ, prev *Type, value string) {
	if typ.Keyword != "" && prev == Dot {
		s.exprAllowed = false
		return
	}

	switch typ {
	case ParenR, BraceR:
		if len(s.ctx) == 1 {
			s.exprAllowed = true
			return
		}
		out := s.popContext()
		if out == bStat && s.curContext().token == "function" {
			out = s.popContext()
		}
		s.exprAllowed = !out.isExpr

	case BraceL:
		if s.braceIsBlock(prev) {
			s.ctx = append(s.ctx, bStat)
		} else {
			s.ctx = append(s.ctx, bExpr)
		}
		s.exprAllowed = true

	case DollarBraceL:
		s.ctx = append(s.ctx, bTmpl)
		s.exprAllowed = true

	case ParenL:
		if prev == If || prev == For || prev == With || prev == While {
			s.ctx = append(s.ctx, pStat)
		} else {
			s.ctx = append(s.ctx, pExpr)
		}
		s.exprAllowed = true

	case Inc, Dec:

	case Function, Class:
		if prev.BeforeExpr && prev != Else &&
			!(prev == Semi && s.curContext() != pStat) &&
			!(prev == Return && s.newlineBefore) &&
			!((prev == Colon || prev == BraceL) && s.curContext() == bStat) {
			s.ctx = append(s.ctx, fExpr)
		} else {
			s.ctx = append(s.ctx, fStat)
		}
		s.exprAllowed = false

	case BackQuote:
		if s.curContext() == qTmpl {
			s.popContext()
		} else {
			s.ctx = append(s.ctx, qTmpl)
		}
		s.exprAllowed = false

	case Name:
		// yield and await take an operand, "of" does in for-of heads.
		s.exprAllowed = prev != Dot &&
			((value == "of" && !s.exprAllowed) || value == "yield" || value == "await")

	default:
		s.exprAllowed = typ.BeforeExpr
	}
}
