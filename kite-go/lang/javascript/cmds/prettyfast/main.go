package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/kiteco/prettyfast/kite-go/lang/javascript/prettyfast"
	"github.com/kiteco/prettyfast/kite-golib/errors"
	"github.com/kiteco/prettyfast/kite-golib/kitelog"
	"github.com/spf13/afero"
)

func main() {
	args := struct {
		Files   []string `arg:"positional" help:"files to format, stdin when none are given"`
		Indent  int      `help:"spaces per indentation level (default 2)"`
		Tabs    bool     `help:"indent with tabs"`
		URL     string   `arg:"--url" help:"source name recorded in the source map"`
		Out     string   `help:"write the output to this file instead of stdout"`
		Map     string   `help:"write the source map to this file"`
		HTML    bool     `arg:"--html" help:"format the inline scripts of an HTML document (implied by .html and .htm)"`
		Check   bool     `help:"print a diff and exit 1 when an input is not already formatted"`
		Tokens  bool     `help:"dump the tokens instead of formatting"`
		Lookup  string   `help:"print the original position of a generated LINE:COL"`
		Watch   bool     `help:"format again whenever an input file changes"`
		Color   bool     `help:"highlight the output for a terminal"`
		Config  string   `help:"YAML config file, flags take precedence"`
		Verbose bool     `arg:"-v" help:"log timings and metrics to stderr"`
	}{}
	arg.MustParse(&args)

	conf := prettyfast.DefaultConfig()
	if args.Config != "" {
		f, err := os.Open(args.Config)
		if err != nil {
			log.Fatalln(err)
		}
		conf, err = prettyfast.LoadConfig(f)
		f.Close()
		if err != nil {
			log.Fatalln(errors.Wrapf(err, "loading %s", args.Config))
		}
	}
	if args.Indent > 0 {
		conf.IndentSize = args.Indent
	}
	if args.Tabs {
		conf.Tabs = true
	}
	if args.URL != "" {
		conf.URL = args.URL
	}

	if len(args.Files) > 1 && (args.Out != "" || args.Map != "" || args.Lookup != "") {
		log.Fatalln("-out, -map and -lookup take a single input")
	}
	if args.Watch && len(args.Files) == 0 {
		log.Fatalln("-watch needs at least one file")
	}

	logger := kitelog.Discard
	if args.Verbose {
		logger = kitelog.New(os.Stderr, "[prettyfast] ").WithDurations()
	}

	r := &runner{
		opts: options{
			conf:    conf,
			out:     args.Out,
			mapPath: args.Map,
			html:    args.HTML,
			check:   args.Check,
			tokens:  args.Tokens,
			lookup:  args.Lookup,
			color:   args.Color,
		},
		fs:     afero.NewOsFs(),
		logger: logger,
		stdout: os.Stdout,
	}

	if args.Watch {
		if err := r.watch(args.Files); err != nil {
			log.Fatalln(err)
		}
		return
	}

	unformatted, err := r.runAll(args.Files)
	if args.Verbose {
		logger.Println("\n" + prettyfast.Stats().Summary())
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if unformatted > 0 {
		os.Exit(1)
	}
}

// runAll formats every file, or stdin when there are none, and returns the
// number of inputs that check mode found unformatted.
func (r *runner) runAll(files []string) (int, error) {
	if len(files) == 0 {
		start := time.Now()
		src, err := ioutil.ReadAll(os.Stdin)
		if err != nil {
			return 0, errors.Wrapf(err, "reading stdin")
		}
		r.logger.Durations.Since("read", start)

		ok, err := r.run("", src)
		if !ok {
			return 1, err
		}
		return 0, err
	}

	var unformatted int
	var errs errors.Errors
	for _, name := range files {
		ok, err := r.runFile(name)
		if err != nil {
			errs = errors.Append(errs, err)
			continue
		}
		if !ok {
			unformatted++
		}
	}
	if errs != nil {
		return unformatted, errs
	}
	return unformatted, nil
}

func (r *runner) runFile(name string) (bool, error) {
	start := time.Now()
	src, err := afero.ReadFile(r.fs, name)
	if err != nil {
		return false, errors.WithStack(err)
	}
	r.logger.Durations.Since("read", start)
	return r.run(name, src)
}
