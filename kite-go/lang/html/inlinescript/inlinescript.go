package inlinescript

import (
	"bytes"
	"io"
	"strings"

	"github.com/kiteco/prettyfast/kite-go/lang/javascript/jsscanner"
	"github.com/kiteco/prettyfast/kite-go/lang/javascript/prettyfast"
	"github.com/kiteco/prettyfast/kite-golib/errors"
	"github.com/kiteco/prettyfast/kite-golib/linenumber"
	"github.com/kiteco/prettyfast/kite-golib/sourcemap"
	"golang.org/x/net/html"
)

// scriptTypes lists the values of a <script> type attribute whose body is
// JavaScript.
var scriptTypes = map[string]bool{
	"":                         true,
	"module":                   true,
	"text/javascript":          true,
	"application/javascript":   true,
	"text/ecmascript":          true,
	"application/ecmascript":   true,
	"application/x-javascript": true,
	"text/jsx":                 true,
}

// Result of Prettify.
type Result struct {
	Code string
	Map  sourcemap.Sink
	// Scripts is the number of inline scripts that were pretty printed.
	Scripts int
}

// Prettify copies an HTML document, pretty printing the body of every inline
// JavaScript <script> element. All scripts share one source map, with
// positions relative to the whole document. opts.Indent, opts.URL and
// opts.SourceMap apply to every script; the position offsets are computed.
//
// A lexical error in any script fails the whole document, with the error
// position translated to the document.
func Prettify(src []byte, opts prettyfast.Options) (*Result, error) {
	if opts.SourceMap == nil {
		opts.SourceMap = sourcemap.NewGenerator(opts.URL)
	}
	pages.Add(1)

	r := &rewriter{
		lines: linenumber.NewMap(src),
		opts:  opts,
		line:  1,
	}

	z := html.NewTokenizer(bytes.NewReader(src))
	var inScript bool
	for {
		tt := z.Next()

		// TagName and TagAttr modify the buffer Raw points into
		raw := string(z.Raw())
		start := r.offset
		r.offset += len(raw)

		switch tt {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				return nil, errors.Wrapf(z.Err(), "reading %s", name(opts.URL))
			}
			r.write(raw)
			return &Result{
				Code:    r.out.String(),
				Map:     opts.SourceMap,
				Scripts: r.scripts,
			}, nil
		case html.StartTagToken:
			inScript = isInlineScript(z)
		case html.EndTagToken, html.SelfClosingTagToken:
			inScript = false
		case html.TextToken:
			if inScript && strings.TrimSpace(raw) != "" {
				if err := r.script(raw, start); err != nil {
					return nil, err
				}
				continue
			}
		}
		r.write(raw)
	}
}

// isInlineScript returns true if the current start tag opens a <script>
// without a src attribute and with a JavaScript type.
func isInlineScript(z *html.Tokenizer) bool {
	tag, hasAttr := z.TagName()
	if string(tag) != "script" {
		return false
	}

	typ := ""
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		switch string(key) {
		case "src":
			return false
		case "type":
			typ = string(val)
		}
	}

	// parameters such as charset do not change the language
	if i := strings.IndexByte(typ, ';'); i >= 0 {
		typ = typ[:i]
	}
	return scriptTypes[strings.ToLower(strings.TrimSpace(typ))]
}

type rewriter struct {
	lines *linenumber.Map
	opts  prettyfast.Options

	out strings.Builder
	// 1-based line of the output that the next write starts on
	line int
	// byte offset into src of the next token
	offset int

	scripts int
}

func (r *rewriter) write(s string) {
	r.out.WriteString(s)
	r.line += strings.Count(s, "\n")
}

// script pretty prints a script body that starts at offset in the document.
// The body always starts on a line of its own, after the opening tag.
func (r *rewriter) script(body string, offset int) error {
	line, col := r.lines.LineCol(offset)
	start := jsscanner.Position{Line: line + 1, Column: col, Offset: offset}

	opts := r.opts
	opts.PrefixWithNewline = true
	opts.OriginalStartLine = start.Line
	opts.OriginalStartColumn = start.Column
	opts.GeneratedStartLine = r.line

	res, err := prettyfast.Prettify([]byte(body), opts)
	if err != nil {
		if perr, ok := errors.Cause(err).(jsscanner.PosError); ok {
			scriptErrors.Add(1)
			perr.Pos = shift(perr.Pos, start)
			return errors.Wrapf(perr, "tokenizing inline script in %s", name(r.opts.URL))
		}
		return err
	}

	r.write(res.Code)
	r.scripts++
	scripts.Add(1)
	return nil
}

// shift translates a position in a script body to a position in the document
// given where the body starts.
func shift(pos, start jsscanner.Position) jsscanner.Position {
	if pos.Line == 1 {
		pos.Column += start.Column
	}
	pos.Line += start.Line - 1
	pos.Offset += start.Offset
	return pos
}

func name(url string) string {
	if url == "" {
		return "<document>"
	}
	return url
}
