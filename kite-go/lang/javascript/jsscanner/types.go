package jsscanner

// Type describes a kind of JavaScript token. Punctuators and operators each
// get their own Type whose Label is the operator text, keywords carry their
// word in both Label and Keyword.
type Type struct {
	Label   string
	Keyword string

	// BeforeExpr is set when an expression may follow the token, which is
	// what makes a following slash start a regular expression.
	BeforeExpr bool
	// StartsExpr is set when the token can start an expression.
	StartsExpr bool
	IsLoop     bool
	IsAssign   bool
	Prefix     bool
	Postfix    bool
	// Binop is the binary operator precedence, zero for non-binary operators.
	Binop int
}

func (t *Type) String() string {
	return t.Label
}

// Value tokens
var (
	Num       = &Type{Label: "num", StartsExpr: true}
	Regexp    = &Type{Label: "regexp", StartsExpr: true}
	String    = &Type{Label: "string", StartsExpr: true}
	Name      = &Type{Label: "name", StartsExpr: true}
	PrivateID = &Type{Label: "privateId", StartsExpr: true}
	EOF       = &Type{Label: "eof"}
)

// Punctuation
var (
	BracketL     = &Type{Label: "[", BeforeExpr: true, StartsExpr: true}
	BracketR     = &Type{Label: "]"}
	BraceL       = &Type{Label: "{", BeforeExpr: true, StartsExpr: true}
	BraceR       = &Type{Label: "}"}
	ParenL       = &Type{Label: "(", BeforeExpr: true, StartsExpr: true}
	ParenR       = &Type{Label: ")"}
	Comma        = &Type{Label: ",", BeforeExpr: true}
	Semi         = &Type{Label: ";", BeforeExpr: true}
	Colon        = &Type{Label: ":", BeforeExpr: true}
	Dot          = &Type{Label: "."}
	Question     = &Type{Label: "?", BeforeExpr: true}
	QuestionDot  = &Type{Label: "?."}
	Arrow        = &Type{Label: "=>", BeforeExpr: true}
	Template     = &Type{Label: "template"}
	Ellipsis     = &Type{Label: "...", BeforeExpr: true}
	BackQuote    = &Type{Label: "`", StartsExpr: true}
	DollarBraceL = &Type{Label: "${", BeforeExpr: true, StartsExpr: true}
)

// Operators
var (
	Eq = assign("=")

	PlusAssign     = assign("+=")
	MinusAssign    = assign("-=")
	StarAssign     = assign("*=")
	SlashAssign    = assign("/=")
	ModuloAssign   = assign("%=")
	ShlAssign      = assign("<<=")
	ShrAssign      = assign(">>=")
	UShrAssign     = assign(">>>=")
	AndAssign      = assign("&=")
	OrAssign       = assign("|=")
	XorAssign      = assign("^=")
	StarStarAssign = assign("**=")
	LogAndAssign   = assign("&&=")
	LogOrAssign    = assign("||=")
	CoalesceAssign = assign("??=")

	Inc = &Type{Label: "++", Prefix: true, Postfix: true, StartsExpr: true}
	Dec = &Type{Label: "--", Prefix: true, Postfix: true, StartsExpr: true}

	Not    = &Type{Label: "!", BeforeExpr: true, Prefix: true, StartsExpr: true}
	Tilde  = &Type{Label: "~", BeforeExpr: true, Prefix: true, StartsExpr: true}
	Plus   = &Type{Label: "+", BeforeExpr: true, Prefix: true, StartsExpr: true, Binop: 9}
	Minus  = &Type{Label: "-", BeforeExpr: true, Prefix: true, StartsExpr: true, Binop: 9}
	StarOp = &Type{Label: "*", BeforeExpr: true, Binop: 10}
	Slash  = binop("/", 10)
	Modulo = binop("%", 10)
	// StarStar has no precedence so it never counts as a binary operator
	// for spacing.
	StarStar = &Type{Label: "**", BeforeExpr: true}

	LogOr    = binop("||", 1)
	Coalesce = binop("??", 1)
	LogAnd   = binop("&&", 2)
	BitOr    = binop("|", 3)
	BitXor   = binop("^", 4)
	BitAnd   = binop("&", 5)

	Equal       = binop("==", 6)
	NotEqual    = binop("!=", 6)
	StrictEq    = binop("===", 6)
	StrictNotEq = binop("!==", 6)

	Less      = binop("<", 7)
	Greater   = binop(">", 7)
	LessEq    = binop("<=", 7)
	GreaterEq = binop(">=", 7)

	Shl  = binop("<<", 8)
	Shr  = binop(">>", 8)
	UShr = binop(">>>", 8)
)

// Comments. They are never returned by Next, only passed to OnComment.
var (
	LineComment  = &Type{Label: "//"}
	BlockComment = &Type{Label: "/*"}
	Hashbang     = &Type{Label: "#!"}
)

var keywords = make(map[string]*Type)

// Keywords
var (
	Break      = kw("break", Type{})
	Case       = kw("case", Type{BeforeExpr: true})
	Catch      = kw("catch", Type{})
	Continue   = kw("continue", Type{})
	Debugger   = kw("debugger", Type{})
	Default    = kw("default", Type{BeforeExpr: true})
	Do         = kw("do", Type{IsLoop: true, BeforeExpr: true})
	Else       = kw("else", Type{BeforeExpr: true})
	Finally    = kw("finally", Type{})
	For        = kw("for", Type{IsLoop: true})
	Function   = kw("function", Type{StartsExpr: true})
	If         = kw("if", Type{})
	Return     = kw("return", Type{BeforeExpr: true})
	Switch     = kw("switch", Type{})
	Throw      = kw("throw", Type{BeforeExpr: true})
	Try        = kw("try", Type{})
	Var        = kw("var", Type{})
	Const      = kw("const", Type{})
	While      = kw("while", Type{IsLoop: true})
	With       = kw("with", Type{})
	New        = kw("new", Type{BeforeExpr: true, StartsExpr: true})
	This       = kw("this", Type{StartsExpr: true})
	Super      = kw("super", Type{StartsExpr: true})
	Class      = kw("class", Type{StartsExpr: true})
	Extends    = kw("extends", Type{BeforeExpr: true})
	Export     = kw("export", Type{})
	Import     = kw("import", Type{StartsExpr: true})
	Null       = kw("null", Type{StartsExpr: true})
	True       = kw("true", Type{StartsExpr: true})
	False      = kw("false", Type{StartsExpr: true})
	In         = kw("in", Type{BeforeExpr: true, Binop: 7})
	Instanceof = kw("instanceof", Type{BeforeExpr: true, Binop: 7})
	Typeof     = kw("typeof", Type{BeforeExpr: true, Prefix: true, StartsExpr: true})
	Void       = kw("void", Type{BeforeExpr: true, Prefix: true, StartsExpr: true})
	Delete     = kw("delete", Type{BeforeExpr: true, Prefix: true, StartsExpr: true})
)

// LookupKeyword returns the keyword type for word, or nil if word is not a
// reserved word. Contextual words such as let, yield, async and of are names.
func LookupKeyword(word string) *Type {
	return keywords[word]
}

func binop(label string, prec int) *Type {
	return &Type{Label: label, BeforeExpr: true, Binop: prec}
}

func assign(label string) *Type {
	return &Type{Label: label, BeforeExpr: true, IsAssign: true}
}

func kw(word string, t Type) *Type {
	t.Label = word
	t.Keyword = word
	keywords[word] = &t
	return &t
}
