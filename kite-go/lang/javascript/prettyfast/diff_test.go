package prettyfast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiff(t *testing.T) {
	assert.Equal(t, "", Diff("a\nb\n", "a\nb\n"))
	assert.Equal(t, " a\n-b\n+c\n", Diff("a\nb\n", "a\nc\n"))
	assert.Equal(t, "+x\n", Diff("", "x\n"))
}
