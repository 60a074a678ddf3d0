package prettyfast

import (
	"strings"
	"time"

	"github.com/kiteco/prettyfast/kite-go/lang/javascript/jsscanner"
	"github.com/kiteco/prettyfast/kite-golib/errors"
	"github.com/kiteco/prettyfast/kite-golib/sourcemap"
)

// Options configures Prettify.
type Options struct {
	// Indent is written once per indentation level, e.g. "  " or "\t".
	Indent string

	// URL names the input in the source map.
	URL string

	// SourceMap receives a mapping for every token written. If nil, Prettify
	// creates a sourcemap.Generator.
	SourceMap sourcemap.Sink

	// PrefixWithNewline starts the output with a newline, for code that is
	// spliced after an opening tag.
	PrefixWithNewline bool

	// The input may be a fragment of a larger original file, e.g. an inline
	// script. OriginalStartLine is the 1-based line it starts on and
	// OriginalStartColumn the 0-based column of its first character.
	// GeneratedStartLine is the 1-based line the output will be placed at.
	// Zero leaves the corresponding position unshifted.
	OriginalStartLine   int
	OriginalStartColumn int
	GeneratedStartLine  int
}

// Result of Prettify.
type Result struct {
	Code string
	// Map is opts.SourceMap, or the generator created in its place.
	Map sourcemap.Sink
	// Tokens is the number of tokens written, comments included.
	Tokens int
}

// Generator returns the map as a *sourcemap.Generator, or nil if the caller
// supplied a different Sink.
func (r *Result) Generator() *sourcemap.Generator {
	g, _ := r.Map.(*sourcemap.Generator)
	return g
}

// Prettify tokenizes src and re-emits it with normalized whitespace and
// indentation, recording where each token came from.
func Prettify(src []byte, opts Options) (*Result, error) {
	defer prettifyDuration.DeferRecord(time.Now())
	inputBytes.Record(int64(len(src)))

	toks, err := jsscanner.Tokenize(src)
	if err != nil {
		tokenizeErrors.Add(1)
		return nil, errors.Wrapf(err, "tokenizing %s", displayName(opts.URL))
	}
	return PrettifyTokens(toks, opts), nil
}

// PrettifyTokens formats an already tokenized input. Comments must be
// interleaved with the other tokens in source order. A missing trailing EOF
// token is assumed.
func PrettifyTokens(toks []jsscanner.Token, opts Options) *Result {
	if opts.SourceMap == nil {
		opts.SourceMap = sourcemap.NewGenerator(opts.URL)
	}

	p := &printer{
		opts:   opts,
		line:   1,
		indent: opts.Indent,
	}
	if opts.PrefixWithNewline {
		p.write("\n")
	}

	for i := range toks {
		tok := toks[i]
		var next *jsscanner.Token
		if i+1 < len(toks) {
			next = &toks[i+1]
		}
		p.handleToken(&tok, next)
	}
	if len(toks) == 0 || toks[len(toks)-1].Type != jsscanner.EOF {
		p.handleToken(&jsscanner.Token{Type: jsscanner.EOF}, nil)
	}

	tokenCount.Record(int64(len(toks)))
	return &Result{
		Code:   p.buf.String(),
		Map:    opts.SourceMap,
		Tokens: len(toks),
	}
}

func displayName(url string) string {
	if url == "" {
		return "<input>"
	}
	return url
}

// lastToken is what the printer remembers about the previous token.
type lastToken struct {
	typ          *jsscanner.Type
	value        string
	start        jsscanner.Position
	end          jsscanner.Position
	arrayLiteral bool
}

type printer struct {
	opts   Options
	indent string
	buf    strings.Builder

	// position in the output that the next write starts at. Lines are 1-based
	// and columns count UTF-16 code units, like the positions of tokens.
	line   int
	column int

	// last token handled, comments included. nil before the first one.
	last *lastToken

	// open syntactic contexts, innermost last.
	stack stack

	// current indentation level. It can go negative on unbalanced input, in
	// which case nothing is indented.
	indentLevel int

	// whether the previous token was followed by a newline or a space. Both
	// are reset for every token and set by whatever was written after it.
	addedNewline bool
	addedSpace   bool
}

// handleToken writes a single token and the whitespace before it, and, when
// the token ends a line, the newline after it.
func (p *printer) handleToken(tok *jsscanner.Token, next *jsscanner.Token) {
	if tok.IsComment() {
		p.handleComment(tok, next)
		p.remember(tok, false)
		return
	}

	// a keyword used as a property name is a plain name
	if tok.Type.Keyword != "" && p.last != nil && p.last.typ == jsscanner.Dot {
		tok.Type = jsscanner.Name
	}

	if tok.Type == jsscanner.EOF {
		if !p.addedNewline {
			p.write("\n")
		}
		p.remember(tok, false)
		return
	}

	arrayLiteral := isArrayLiteral(tok, p.last)

	if f, ok := frameFor(tok, arrayLiteral); ok {
		p.stack.push(f)
	}

	if decrementsIndent(tok, p.stack) {
		p.indentLevel--
		// the brace closing a switch body also ends the indentation of its cases
		if tok.Type == jsscanner.BraceR && p.stack.at(2) == frameSwitch {
			p.indentLevel--
		}
	}

	p.prependWhiteSpace(tok)
	p.writeToken(tok)
	p.addedSpace = false

	// a comment on the same line is written after the token, before the newline
	if next == nil || !next.IsComment() || next.Start.Line != tok.End.Line {
		p.maybeAppendNewline(tok, arrayLiteral)
	}

	if shouldPop(tok, p.stack) {
		p.stack.pop()
		if tok.Type == jsscanner.BraceR && p.stack.top() == frameSwitch {
			p.stack.pop()
		}
	}

	if incrementsIndent(tok, arrayLiteral) {
		p.indentLevel++
	}

	p.remember(tok, arrayLiteral)
}

func (p *printer) remember(tok *jsscanner.Token, arrayLiteral bool) {
	if p.last == nil {
		p.last = &lastToken{}
	}
	*p.last = lastToken{
		typ:          tok.Type,
		value:        tok.Value,
		start:        tok.Start,
		end:          tok.End,
		arrayLiteral: arrayLiteral,
	}
}

// prependWhiteSpace writes whatever whitespace goes between the last token
// and tok.
func (p *printer) prependWhiteSpace(tok *jsscanner.Token) {
	newlineAdded := p.addedNewline
	spaceAdded := p.addedSpace

	if p.last != nil && p.last.typ == jsscanner.BraceR {
		if (tok.Type == jsscanner.While && p.stack.top() == frameDo) || needsSpaceAfterClosingBrace(tok) {
			p.write(" ")
			spaceAdded = true
		} else if needsLineBreakAfterClosingBrace(tok) {
			p.write("\n")
			newlineAdded = true
		}
	}

	if (tok.Type == jsscanner.Colon && p.stack.top() == frameTernary) ||
		(tok.Type == jsscanner.BraceR && p.stack.top() == frameTemplate) {
		p.write(" ")
		spaceAdded = true
	}

	if p.last != nil && p.last.typ != jsscanner.BraceR && p.last.typ != jsscanner.Dot &&
		tok.Type == jsscanner.Else {
		p.write(" ")
		spaceAdded = true
	}

	ensureNewline := func() {
		if !newlineAdded {
			p.write("\n")
			newlineAdded = true
		}
	}
	if isASI(tok, p.last) {
		ensureNewline()
	}
	if decrementsIndent(tok, p.stack) {
		ensureNewline()
	}

	if newlineAdded {
		level := p.indentLevel
		if tok.Type == jsscanner.Case || tok.Type == jsscanner.Default {
			level--
		}
		p.write(p.indentation(level))
	} else if !spaceAdded && needsSpaceAfter(tok, p.last) {
		p.write(" ")
	}
}

func (p *printer) maybeAppendNewline(tok *jsscanner.Token, arrayLiteral bool) {
	if !isLineDelimiter(tok, arrayLiteral, p.stack) {
		p.addedNewline = false
		return
	}
	p.write("\n")
	p.addedNewline = true
}

func (p *printer) handleComment(tok *jsscanner.Token, next *jsscanner.Token) {
	level := p.indentLevel
	if p.last != nil && p.last.end.Line == tok.Start.Line {
		// trailing comment
		level = 0
		p.write(" ")
	} else if p.last != nil && !p.addedNewline {
		p.write("\n")
	}

	newlineAfter := true
	switch tok.Type {
	case jsscanner.BlockComment:
		if next != nil && next.Start.Line == tok.End.Line {
			newlineAfter = false
		}
		p.write(p.indentation(level))
		p.write("/*")
		p.write(reindentComment(tok.Value, tok.Start.Column, p.indentation(p.indentLevel)))
		p.write("*/")
		if newlineAfter {
			p.write("\n")
		} else {
			p.write(" ")
		}
	case jsscanner.Hashbang:
		p.write("#!" + tok.Value + "\n")
	default:
		p.write(p.indentation(level) + "//" + tok.Value + "\n")
	}

	p.addedNewline = newlineAfter
	p.addedSpace = !newlineAfter
}

// reindentComment replaces the indentation the comment's continuation lines
// had in the input, relative to the column the comment started at, with
// indent.
func reindentComment(text string, column int, indent string) string {
	if !strings.ContainsRune(text, '\n') {
		return text
	}
	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		line := lines[i]
		n := 0
		for n < len(line) && n < column && (line[n] == ' ' || line[n] == '\t') {
			n++
		}
		lines[i] = indent + line[n:]
	}
	return strings.Join(lines, "\n")
}

func (p *printer) indentation(level int) string {
	if level <= 0 {
		return ""
	}
	return strings.Repeat(p.indent, level)
}

func (p *printer) writeToken(tok *jsscanner.Token) {
	orig := sourcemap.Position{Line: tok.Start.Line, Column: tok.Start.Column}
	if tok.Start.Line == 1 && p.opts.OriginalStartColumn > 0 {
		orig.Column += p.opts.OriginalStartColumn
	}
	if p.opts.OriginalStartLine > 0 {
		orig.Line += p.opts.OriginalStartLine - 1
	}

	gen := sourcemap.Position{Line: p.line, Column: p.column}
	if p.opts.GeneratedStartLine > 0 {
		gen.Line += p.opts.GeneratedStartLine - 1
	}

	p.opts.SourceMap.AddMapping(sourcemap.Mapping{
		Generated: gen,
		Original:  orig,
		Source:    p.opts.URL,
	})
	p.write(tokenText(tok))
}

// write appends s to the output and advances the output position.
func (p *printer) write(s string) {
	p.buf.WriteString(s)
	for _, r := range s {
		if r == '\n' {
			p.line++
			p.column = 0
			continue
		}
		if r >= 0x10000 {
			p.column += 2
		} else {
			p.column++
		}
	}
}

// tokenText returns the text a token is written as.
func tokenText(tok *jsscanner.Token) string {
	switch tok.Type {
	case jsscanner.String:
		return "'" + sanitize(tok.Value) + "'"
	case jsscanner.Regexp, jsscanner.Template, jsscanner.Num, jsscanner.Name:
		return tok.Value
	case jsscanner.PrivateID:
		return "#" + tok.Value
	}
	if tok.Value != "" {
		return tok.Value
	}
	return tok.Type.Label
}
