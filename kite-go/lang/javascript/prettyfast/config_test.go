package prettyfast

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	conf, err := LoadConfig(strings.NewReader(`
indent_size: 4
url: app.js
original_start_line: 12
original_start_column: 8
`))
	require.NoError(t, err)
	assert.Equal(t, 4, conf.IndentSize)
	assert.Equal(t, "app.js", conf.URL)

	opts := conf.Options()
	assert.Equal(t, "    ", opts.Indent)
	assert.Equal(t, "app.js", opts.URL)
	assert.Equal(t, 12, opts.OriginalStartLine)
	assert.Equal(t, 8, opts.OriginalStartColumn)
	assert.Equal(t, 0, opts.GeneratedStartLine)
	assert.Nil(t, opts.SourceMap)
}

func TestLoadConfig_Defaults(t *testing.T) {
	conf, err := LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), conf)
	assert.Equal(t, "  ", conf.IndentString())

	conf, err = LoadConfig(strings.NewReader("tabs: true\n"))
	require.NoError(t, err)
	assert.Equal(t, "\t", conf.IndentString())
}

func TestLoadConfig_Errors(t *testing.T) {
	for _, src := range []string{
		"indent: 4\n",
		"indent_size: -1\n",
		"original_start_line: -3\n",
		"indent_size: [\n",
	} {
		_, err := LoadConfig(strings.NewReader(src))
		assert.Error(t, err, "config %q", src)
	}
}
