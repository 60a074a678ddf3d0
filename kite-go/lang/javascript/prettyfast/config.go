package prettyfast

import (
	"io"
	"io/ioutil"
	"strings"

	"github.com/kiteco/prettyfast/kite-golib/errors"
	yaml "gopkg.in/yaml.v2"
)

// DefaultIndentSize is the number of spaces per level when nothing else is configured.
const DefaultIndentSize = 2

// Config is the on-disk form of Options, e.g.
//
//	indent_size: 4
//	url: app.js
//	original_start_line: 12
type Config struct {
	IndentSize          int    `yaml:"indent_size"`
	Tabs                bool   `yaml:"tabs"`
	URL                 string `yaml:"url"`
	PrefixNewline       bool   `yaml:"prefix_newline"`
	OriginalStartLine   int    `yaml:"original_start_line"`
	OriginalStartColumn int    `yaml:"original_start_column"`
	GeneratedStartLine  int    `yaml:"generated_start_line"`
}

// DefaultConfig indents with two spaces and leaves everything else unset.
func DefaultConfig() Config {
	return Config{IndentSize: DefaultIndentSize}
}

// LoadConfig reads a YAML config. Fields missing from r keep their defaults.
func LoadConfig(r io.Reader) (Config, error) {
	buf, err := ioutil.ReadAll(r)
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading config")
	}

	conf := DefaultConfig()
	if err := yaml.UnmarshalStrict(buf, &conf); err != nil {
		return Config{}, errors.Wrapf(err, "parsing config")
	}
	if err := conf.Validate(); err != nil {
		return Config{}, err
	}
	return conf, nil
}

// Validate returns an error for values that cannot describe a position or an indent.
func (c Config) Validate() error {
	switch {
	case c.IndentSize < 0:
		return errors.Errorf("indent_size must not be negative, got %d", c.IndentSize)
	case c.OriginalStartLine < 0:
		return errors.Errorf("original_start_line must not be negative, got %d", c.OriginalStartLine)
	case c.OriginalStartColumn < 0:
		return errors.Errorf("original_start_column must not be negative, got %d", c.OriginalStartColumn)
	case c.GeneratedStartLine < 0:
		return errors.Errorf("generated_start_line must not be negative, got %d", c.GeneratedStartLine)
	}
	return nil
}

// IndentString returns the string written for one level of indentation.
func (c Config) IndentString() string {
	if c.Tabs {
		return "\t"
	}
	return strings.Repeat(" ", c.IndentSize)
}

// Options returns the Options the config describes, without a source map sink.
func (c Config) Options() Options {
	return Options{
		Indent:              c.IndentString(),
		URL:                 c.URL,
		PrefixWithNewline:   c.PrefixNewline,
		OriginalStartLine:   c.OriginalStartLine,
		OriginalStartColumn: c.OriginalStartColumn,
		GeneratedStartLine:  c.GeneratedStartLine,
	}
}
