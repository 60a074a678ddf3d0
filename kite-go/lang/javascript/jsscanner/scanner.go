package jsscanner

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const bom = 0xFEFF

// Scanner splits JavaScript source into tokens. Comments are not returned by
// Next, they are passed to OnComment as they are encountered.
type Scanner struct {
	// OnComment, if not nil, is called for every comment in source order.
	OnComment func(Token)

	src []byte

	ch       rune // current character, -1 at end of input
	offset   int  // byte offset of ch
	rdOffset int  // byte offset after ch
	line     int  // line of ch
	col      int  // column of ch in UTF-16 code units

	prev          *Type // type of the last token returned
	exprAllowed   bool
	newlineBefore bool // a line terminator precedes the current token
	atStart       bool
	ctx           []*context

	err error
}

// NewScanner returns a scanner positioned at the start of src.
func NewScanner(src []byte) *Scanner {
	s := &Scanner{
		src:         src,
		ch:          -1,
		line:        1,
		prev:        EOF,
		exprAllowed: true,
		atStart:     true,
		ctx:         []*context{bStat},
	}
	s.next()
	if s.ch == bom {
		s.next()
	}
	return s
}

// Tokenize returns every token of src, comments included, in source order.
// The last token is always EOF. The first lexical error aborts tokenization.
func Tokenize(src []byte) ([]Token, error) {
	var toks []Token
	s := NewScanner(src)
	s.OnComment = func(c Token) {
		toks = append(toks, c)
	}
	for {
		tok, err := s.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks, nil
		}
	}
}

// Next returns the next token. After the EOF token it keeps returning EOF.
func (s *Scanner) Next() (Token, error) {
	if s.err != nil {
		return Token{}, s.err
	}

	s.newlineBefore = false
	if !s.curContext().preserveSpace {
		s.skipSpace()
	}

	var tok Token
	switch {
	case s.err != nil:
	case s.curContext() == qTmpl:
		tok = s.scanTemplate()
	case s.ch < 0:
		tok = Token{Type: EOF, Start: s.pos(), End: s.pos()}
	default:
		tok = s.scanToken()
	}
	if s.err != nil {
		return Token{}, s.err
	}

	s.updateContext(tok.Type, s.prev, tok.Value)
	s.prev = tok.Type
	return tok, nil
}

func (s *Scanner) pos() Position {
	return Position{Line: s.line, Column: s.col, Offset: s.offset}
}

func (s *Scanner) error(pos Position, msg string) {
	if s.err == nil {
		s.err = PosError{Pos: pos, Msg: msg}
	}
}

// next advances past the current character and decodes the one after it.
func (s *Scanner) next() {
	if s.ch >= 0 {
		switch s.ch {
		case '\n', '\u2028', '\u2029':
			s.line++
			s.col = 0
		case '\r':
			if s.peek() == '\n' {
				s.col++
			} else {
				s.line++
				s.col = 0
			}
		default:
			s.col += utf16Len(s.ch)
		}
	}

	if s.rdOffset >= len(s.src) {
		s.offset = len(s.src)
		s.ch = -1
		return
	}
	s.offset = s.rdOffset
	r, w := rune(s.src[s.rdOffset]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(s.src[s.rdOffset:])
	}
	s.rdOffset += w
	s.ch = r
}

// peek returns the byte after the current character without advancing.
func (s *Scanner) peek() byte {
	if s.rdOffset < len(s.src) {
		return s.src[s.rdOffset]
	}
	return 0
}

func utf16Len(r rune) int {
	if r >= 0x10000 && r <= unicode.MaxRune {
		return 2
	}
	return 1
}

func isLineTerminator(ch rune) bool {
	return ch == '\n' || ch == '\r' || ch == '\u2028' || ch == '\u2029'
}

func isSpace(ch rune) bool {
	switch ch {
	case ' ', '\t', '\v', '\f', 0xA0, bom:
		return true
	}
	return ch > 0x7F && unicode.Is(unicode.Zs, ch)
}

// IsIdentifierStart returns true if ch may start an identifier.
func IsIdentifierStart(ch rune) bool {
	switch {
	case 'a' <= ch && ch <= 'z', 'A' <= ch && ch <= 'Z', ch == '$', ch == '_':
		return true
	case ch < 0x80:
		return false
	}
	return unicode.IsLetter(ch) || unicode.Is(unicode.Nl, ch) || unicode.Is(unicode.Other_ID_Start, ch)
}

// IsIdentifierChar returns true if ch may appear after the first character of
// an identifier.
func IsIdentifierChar(ch rune) bool {
	switch {
	case IsIdentifierStart(ch), '0' <= ch && ch <= '9':
		return true
	case ch < 0x80:
		return false
	case ch == '\u200c', ch == '\u200d':
		return true
	}
	return unicode.In(ch, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc, unicode.Other_ID_Continue)
}

func digitVal(ch rune) int {
	switch {
	case '0' <= ch && ch <= '9':
		return int(ch - '0')
	case 'a' <= ch && ch <= 'f':
		return int(ch - 'a' + 10)
	case 'A' <= ch && ch <= 'F':
		return int(ch - 'A' + 10)
	}
	return 16
}

func (s *Scanner) skipSpace() {
	if s.atStart && s.ch == '#' && s.peek() == '!' {
		s.skipLineComment(Hashbang, 2)
	}
	s.atStart = false
	for s.ch >= 0 {
		switch {
		case isLineTerminator(s.ch):
			s.newlineBefore = true
			s.next()
		case isSpace(s.ch):
			s.next()
		case s.ch == '/' && s.peek() == '*':
			s.skipBlockComment()
			if s.err != nil {
				return
			}
		case s.ch == '/' && s.peek() == '/':
			s.skipLineComment(LineComment, 2)
		default:
			return
		}
	}
}

func (s *Scanner) skipLineComment(typ *Type, prefix int) {
	start := s.pos()
	for s.ch >= 0 && !isLineTerminator(s.ch) {
		s.next()
	}
	s.comment(typ, start, string(s.src[start.Offset+prefix:s.offset]))
}

func (s *Scanner) skipBlockComment() {
	start := s.pos()
	s.next()
	s.next()
	for {
		if s.ch < 0 {
			s.error(start, "unterminated comment")
			return
		}
		if s.ch == '*' && s.peek() == '/' {
			break
		}
		if isLineTerminator(s.ch) {
			s.newlineBefore = true
		}
		s.next()
	}
	text := string(s.src[start.Offset+2 : s.offset])
	s.next()
	s.next()
	s.comment(BlockComment, start, text)
}

func (s *Scanner) comment(typ *Type, start Position, text string) {
	if s.OnComment != nil {
		s.OnComment(Token{Type: typ, Value: text, Start: start, End: s.pos()})
	}
}

// scanToken reads a token in ordinary code. The current character is not
// whitespace and not the end of input.
func (s *Scanner) scanToken() Token {
	start := s.pos()
	tok := Token{Start: start}

	switch ch := s.ch; {
	case IsIdentifierStart(ch) || ch == '\\':
		tok.Value = s.scanIdentifier()
		if kw := LookupKeyword(tok.Value); kw != nil {
			tok.Type = kw
		} else {
			tok.Type = Name
		}

	case '0' <= ch && ch <= '9', ch == '.' && '0' <= s.peek() && s.peek() <= '9':
		tok.Type = Num
		tok.Value = s.scanNumber()

	case ch == '"' || ch == '\'':
		tok.Type = String
		tok.Value = s.scanString(ch)

	case ch == '/' && s.exprAllowed:
		tok.Type = Regexp
		tok.Value = s.scanRegexp()

	case ch == '#':
		s.next()
		if !IsIdentifierStart(s.ch) && s.ch != '\\' {
			s.error(start, "unexpected character '#'")
			return tok
		}
		tok.Type = PrivateID
		tok.Value = s.scanIdentifier()

	default:
		s.next()
		tok.Type = s.scanPunctuation(ch)
		if tok.Type == nil {
			s.error(start, "unexpected character "+strconv.QuoteRune(ch))
			return tok
		}
	}

	tok.End = s.pos()
	return tok
}

func (s *Scanner) switch2(tok0, tok1 *Type) *Type {
	if s.ch == '=' {
		s.next()
		return tok1
	}
	return tok0
}

func (s *Scanner) switch3(tok0, tok1 *Type, ch2 rune, tok2 *Type) *Type {
	if s.ch == '=' {
		s.next()
		return tok1
	}
	if s.ch == ch2 {
		s.next()
		return tok2
	}
	return tok0
}

// scanPunctuation reads the rest of a punctuator or operator whose first
// character ch has already been consumed.
func (s *Scanner) scanPunctuation(ch rune) *Type {
	switch ch {
	case '(':
		return ParenL
	case ')':
		return ParenR
	case ';':
		return Semi
	case ',':
		return Comma
	case '[':
		return BracketL
	case ']':
		return BracketR
	case '{':
		return BraceL
	case '}':
		return BraceR
	case ':':
		return Colon
	case '`':
		return BackQuote
	case '~':
		return Tilde
	case '.':
		if s.ch == '.' && s.peek() == '.' {
			s.next()
			s.next()
			return Ellipsis
		}
		return Dot
	case '?':
		switch {
		case s.ch == '.' && !('0' <= s.peek() && s.peek() <= '9'):
			s.next()
			return QuestionDot
		case s.ch == '?':
			s.next()
			return s.switch2(Coalesce, CoalesceAssign)
		}
		return Question
	case '/':
		return s.switch2(Slash, SlashAssign)
	case '%':
		return s.switch2(Modulo, ModuloAssign)
	case '^':
		return s.switch2(BitXor, XorAssign)
	case '*':
		if s.ch == '*' {
			s.next()
			return s.switch2(StarStar, StarStarAssign)
		}
		return s.switch2(StarOp, StarAssign)
	case '|':
		if s.ch == '|' {
			s.next()
			return s.switch2(LogOr, LogOrAssign)
		}
		return s.switch2(BitOr, OrAssign)
	case '&':
		if s.ch == '&' {
			s.next()
			return s.switch2(LogAnd, LogAndAssign)
		}
		return s.switch2(BitAnd, AndAssign)
	case '+':
		return s.switch3(Plus, PlusAssign, '+', Inc)
	case '-':
		return s.switch3(Minus, MinusAssign, '-', Dec)
	case '<':
		if s.ch == '<' {
			s.next()
			return s.switch2(Shl, ShlAssign)
		}
		return s.switch2(Less, LessEq)
	case '>':
		if s.ch == '>' {
			s.next()
			if s.ch == '>' {
				s.next()
				return s.switch2(UShr, UShrAssign)
			}
			return s.switch2(Shr, ShrAssign)
		}
		return s.switch2(Greater, GreaterEq)
	case '=':
		switch s.ch {
		case '>':
			s.next()
			return Arrow
		case '=':
			s.next()
			return s.switch2(Equal, StrictEq)
		}
		return Eq
	case '!':
		if s.ch == '=' {
			s.next()
			return s.switch2(NotEqual, StrictNotEq)
		}
		return Not
	}
	return nil
}

// scanIdentifier reads an identifier, decoding \u escapes.
func (s *Scanner) scanIdentifier() string {
	var b strings.Builder
	first := true
	for {
		switch {
		case s.ch == '\\':
			pos := s.pos()
			s.next()
			if s.ch != 'u' {
				s.error(pos, "expecting unicode escape sequence \\uXXXX")
				return b.String()
			}
			s.next()
			r := s.scanCodePoint(pos)
			if s.err != nil {
				return b.String()
			}
			if first && !IsIdentifierStart(r) || !first && !IsIdentifierChar(r) {
				s.error(pos, "invalid unicode escape")
				return b.String()
			}
			b.WriteRune(r)
		case first && IsIdentifierStart(s.ch), !first && IsIdentifierChar(s.ch):
			b.WriteRune(s.ch)
			s.next()
		default:
			return b.String()
		}
		first = false
	}
}

// scanCodePoint reads the hex digits of a \u escape, either four digits or a
// braced code point. The "\u" has already been consumed.
func (s *Scanner) scanCodePoint(pos Position) rune {
	if s.ch == '{' {
		s.next()
		var r rune
		n := 0
		for s.ch != '}' {
			d := digitVal(s.ch)
			if d >= 16 {
				s.error(pos, "bad character escape sequence")
				return utf8.RuneError
			}
			r = r*16 + rune(d)
			if r > unicode.MaxRune {
				s.error(pos, "code point out of bounds")
				return utf8.RuneError
			}
			n++
			s.next()
		}
		s.next()
		if n == 0 {
			s.error(pos, "bad character escape sequence")
		}
		return r
	}
	return s.scanHex(pos, 4)
}

func (s *Scanner) scanHex(pos Position, n int) rune {
	var r rune
	for i := 0; i < n; i++ {
		d := digitVal(s.ch)
		if d >= 16 {
			s.error(pos, "bad character escape sequence")
			return utf8.RuneError
		}
		r = r*16 + rune(d)
		s.next()
	}
	return r
}

func (s *Scanner) scanDigits(base int) {
	for digitVal(s.ch) < base || s.ch == '_' {
		s.next()
	}
}

// scanNumber returns the raw text of a numeric literal.
func (s *Scanner) scanNumber() string {
	start := s.pos()

	if s.ch == '0' {
		base := 0
		switch s.peek() {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			s.next()
			s.next()
			if digitVal(s.ch) >= base {
				s.error(start, "expected number in radix "+strconv.Itoa(base))
				return ""
			}
			s.scanDigits(base)
			if s.ch == 'n' {
				s.next()
			}
			goto exit
		}
	}

	s.scanDigits(10)
	if s.ch == 'n' {
		s.next()
		goto exit
	}
	if s.ch == '.' {
		s.next()
		s.scanDigits(10)
	}
	if s.ch == 'e' || s.ch == 'E' {
		s.next()
		if s.ch == '+' || s.ch == '-' {
			s.next()
		}
		if digitVal(s.ch) >= 10 {
			s.error(start, "invalid number")
			return ""
		}
		s.scanDigits(10)
	}

exit:
	if IsIdentifierStart(s.ch) {
		s.error(s.pos(), "identifier directly after number")
		return ""
	}
	return string(s.src[start.Offset:s.offset])
}

// scanString reads a quoted string literal and returns its decoded contents.
// Lone surrogate escapes are kept as their three byte generalized UTF-8 form.
func (s *Scanner) scanString(quote rune) string {
	start := s.pos()
	s.next()

	var b strings.Builder
	for s.ch != quote {
		switch {
		case s.ch < 0, s.ch == '\n', s.ch == '\r':
			s.error(start, "unterminated string constant")
			return ""
		case s.ch == '\\':
			s.scanEscape(&b)
			if s.err != nil {
				return ""
			}
		default:
			b.WriteRune(s.ch)
			s.next()
		}
	}
	s.next()
	return b.String()
}

func (s *Scanner) scanEscape(b *strings.Builder) {
	pos := s.pos()
	s.next()

	ch := s.ch
	if ch < 0 {
		s.error(pos, "unterminated string constant")
		return
	}
	s.next()

	switch ch {
	case 'n':
		b.WriteByte('\n')
	case 'r':
		b.WriteByte('\r')
	case 't':
		b.WriteByte('\t')
	case 'b':
		b.WriteByte('\b')
	case 'v':
		b.WriteByte('\v')
	case 'f':
		b.WriteByte('\f')
	case 'x':
		b.WriteRune(s.scanHex(pos, 2))
	case 'u':
		r := s.scanCodePoint(pos)
		if s.err != nil {
			return
		}
		if utf16IsHigh(r) && s.ch == '\\' && s.peek() == 'u' {
			// try to pair with a following low surrogate escape
			save := *s
			s.next()
			s.next()
			lo := s.scanCodePoint(pos)
			if s.err == nil && utf16IsLow(lo) {
				b.WriteRune(0x10000 + (r-0xD800)<<10 + (lo - 0xDC00))
				return
			}
			*s = save
		}
		writeCodePoint(b, r)
	case '\r':
		if s.ch == '\n' {
			s.next()
		}
	case '\n', '\u2028', '\u2029':
	default:
		if '0' <= ch && ch <= '7' {
			v := int(ch - '0')
			for i := 0; i < 2 && '0' <= s.ch && s.ch <= '7'; i++ {
				nv := v*8 + int(s.ch-'0')
				if nv > 255 {
					break
				}
				v = nv
				s.next()
			}
			b.WriteRune(rune(v))
			return
		}
		b.WriteRune(ch)
	}
}

func utf16IsHigh(r rune) bool { return 0xD800 <= r && r < 0xDC00 }
func utf16IsLow(r rune) bool  { return 0xDC00 <= r && r < 0xE000 }

// writeCodePoint writes r as UTF-8. Surrogates, which UTF-8 cannot encode, are
// written with the same three byte layout so they survive the round trip.
func writeCodePoint(b *strings.Builder, r rune) {
	if 0xD800 <= r && r < 0xE000 {
		b.WriteByte(byte(0xE0 | r>>12))
		b.WriteByte(byte(0x80 | (r>>6)&0x3F))
		b.WriteByte(byte(0x80 | r&0x3F))
		return
	}
	b.WriteRune(r)
}

// scanRegexp returns the raw text of a regular expression literal, flags included.
func (s *Scanner) scanRegexp() string {
	start := s.pos()
	s.next()

	var escaped, inClass bool
	for {
		if s.ch < 0 || isLineTerminator(s.ch) {
			s.error(start, "unterminated regular expression")
			return ""
		}
		if escaped {
			escaped = false
		} else {
			switch s.ch {
			case '[':
				inClass = true
			case ']':
				inClass = false
			case '\\':
				escaped = true
			}
			if s.ch == '/' && !inClass {
				break
			}
		}
		s.next()
	}
	s.next()
	for IsIdentifierChar(s.ch) {
		s.next()
	}
	return string(s.src[start.Offset:s.offset])
}

// scanTemplate reads the next token inside a template literal: a chunk of
// literal text, or the "${" or "`" that ends one.
func (s *Scanner) scanTemplate() Token {
	start := s.pos()
	for {
		switch {
		case s.ch < 0:
			s.error(start, "unterminated template")
			return Token{}
		case s.ch == '`' || s.ch == '$' && s.peek() == '{':
			if s.offset == start.Offset && s.prev == Template {
				typ := BackQuote
				if s.ch == '$' {
					typ = DollarBraceL
					s.next()
				}
				s.next()
				return Token{Type: typ, Start: start, End: s.pos()}
			}
			return Token{
				Type:  Template,
				Value: string(s.src[start.Offset:s.offset]),
				Start: start,
				End:   s.pos(),
			}
		case s.ch == '\\':
			s.next()
			if s.ch >= 0 {
				s.next()
			}
		default:
			s.next()
		}
	}
}
