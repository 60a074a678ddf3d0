package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/chroma/quick"
	gosourcemap "github.com/go-sourcemap/sourcemap"
	"github.com/kiteco/prettyfast/kite-go/lang/html/inlinescript"
	"github.com/kiteco/prettyfast/kite-go/lang/javascript/jsscanner"
	"github.com/kiteco/prettyfast/kite-go/lang/javascript/prettyfast"
	"github.com/kiteco/prettyfast/kite-golib/errors"
	"github.com/kiteco/prettyfast/kite-golib/kitelog"
	"github.com/kiteco/prettyfast/kite-golib/sourcemap"
	"github.com/kr/pretty"
	"github.com/spf13/afero"
)

// stdinURL names stdin in source maps when no url is configured.
const stdinURL = "stdin.js"

type options struct {
	conf    prettyfast.Config
	out     string
	mapPath string
	html    bool
	check   bool
	tokens  bool
	lookup  string
	color   bool
}

type runner struct {
	opts   options
	fs     afero.Fs
	logger *kitelog.Logger
	stdout io.Writer
}

// run handles a single input; name is empty for stdin. It returns false when
// check mode finds the input unformatted.
func (r *runner) run(name string, src []byte) (bool, error) {
	defer r.logger.Durations.Flush(r.logger)

	if r.opts.tokens {
		return true, r.dumpTokens(name, src)
	}

	opts := r.opts.conf.Options()
	if opts.URL == "" {
		opts.URL = stdinURL
		if name != "" {
			opts.URL = filepath.Base(name)
		}
	}
	file := r.opts.out
	if file == "" {
		file = opts.URL
	}
	g := sourcemap.NewGenerator(filepath.Base(file))
	opts.SourceMap = g

	start := time.Now()
	code, err := r.prettify(name, src, opts)
	if err != nil {
		return false, err
	}
	r.logger.Durations.Since("prettify", start)

	if r.opts.check {
		if diff := prettyfast.Diff(string(src), code); diff != "" {
			fmt.Fprintf(r.stdout, "--- %s\n%s", displayName(name), diff)
			return false, nil
		}
		return true, nil
	}

	if r.opts.mapPath != "" {
		start = time.Now()
		g.SetSourceContent(opts.URL, string(src))
		buf, err := g.MarshalJSON()
		if err != nil {
			return false, errors.Wrapf(err, "encoding source map")
		}
		r.logger.Durations.Since("encode", start)
		if err := afero.WriteFile(r.fs, r.opts.mapPath, buf, 0644); err != nil {
			return false, errors.WithStack(err)
		}
	}

	start = time.Now()
	if r.opts.out != "" {
		if err := afero.WriteFile(r.fs, r.opts.out, []byte(code), 0644); err != nil {
			return false, errors.WithStack(err)
		}
	} else if r.opts.lookup == "" {
		if err := r.print(code); err != nil {
			return false, err
		}
	}
	r.logger.Durations.Since("write", start)

	if r.opts.lookup != "" {
		return true, r.printLookup(g)
	}
	return true, nil
}

func (r *runner) prettify(name string, src []byte, opts prettyfast.Options) (string, error) {
	if r.opts.html || isHTML(name) {
		res, err := inlinescript.Prettify(src, opts)
		if err != nil {
			return "", err
		}
		r.logger.Printf("%s: formatted %d inline scripts", displayName(name), res.Scripts)
		return res.Code, nil
	}

	res, err := prettyfast.Prettify(src, opts)
	if err != nil {
		return "", err
	}
	return res.Code, nil
}

// print writes code to stdout, highlighted for a terminal if requested.
func (r *runner) print(code string) error {
	if !r.opts.color {
		_, err := io.WriteString(r.stdout, code)
		return err
	}
	if err := quick.Highlight(r.stdout, code, "javascript", "terminal256", "monokai"); err != nil {
		return errors.Wrapf(err, "highlighting output")
	}
	return nil
}

// tokenDump is the part of a token worth printing.
type tokenDump struct {
	Type  string
	Value string
	Start jsscanner.Position
	End   jsscanner.Position
}

func (r *runner) dumpTokens(name string, src []byte) error {
	toks, err := jsscanner.Tokenize(src)
	if err != nil {
		return errors.Wrapf(err, "tokenizing %s", displayName(name))
	}
	for _, tok := range toks {
		pretty.Fprintf(r.stdout, "%# v\n", tokenDump{
			Type:  tok.Type.Label,
			Value: tok.Value,
			Start: tok.Start,
			End:   tok.End,
		})
	}
	return nil
}

// printLookup resolves the generated position given with -lookup through the
// map that was just produced.
func (r *runner) printLookup(g *sourcemap.Generator) error {
	line, col, err := parseLookup(r.opts.lookup)
	if err != nil {
		return err
	}

	buf, err := g.MarshalJSON()
	if err != nil {
		return errors.Wrapf(err, "encoding source map")
	}
	consumer, err := gosourcemap.Parse(g.File(), buf)
	if err != nil {
		return errors.Wrapf(err, "decoding source map")
	}

	source, _, origLine, origCol, ok := consumer.Source(line, col)
	if !ok {
		// the decoder skips segments pointing at 1:0 of a source
		m, found := lastMappingBefore(g.Mappings(), line, col)
		if !found {
			return errors.Errorf("no mapping for %d:%d", line, col)
		}
		source, origLine, origCol = m.Source, m.Original.Line, m.Original.Column
	}
	fmt.Fprintf(r.stdout, "%d:%d -> %s:%d:%d\n", line, col, source, origLine, origCol)
	return nil
}

// lastMappingBefore returns the last mapping on the generated line that starts
// at or before col.
func lastMappingBefore(mappings []sourcemap.Mapping, line, col int) (sourcemap.Mapping, bool) {
	var best sourcemap.Mapping
	var found bool
	for _, m := range mappings {
		if m.Generated.Line != line || m.Generated.Column > col {
			continue
		}
		if !found || m.Generated.Column >= best.Generated.Column {
			best, found = m, true
		}
	}
	return best, found
}

// parseLookup parses a 1-based line and 0-based column written as LINE:COL.
func parseLookup(s string) (int, int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, errors.Errorf("expected LINE:COL, got %q", s)
	}
	line, err := strconv.Atoi(parts[0])
	if err != nil || line < 1 {
		return 0, 0, errors.Errorf("invalid line in %q", s)
	}
	col, err := strconv.Atoi(parts[1])
	if err != nil || col < 0 {
		return 0, 0, errors.Errorf("invalid column in %q", s)
	}
	return line, col, nil
}

func isHTML(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		return true
	}
	return false
}

func displayName(name string) string {
	if name == "" {
		return "<stdin>"
	}
	return name
}
