package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type posError struct {
	line int
}

func (e posError) Error() string {
	return "bad token"
}

func TestWrapf(t *testing.T) {
	require.Nil(t, WrapfOrNil(nil, "reading %s", "a.js"))

	err := Wrapf(nil, "reading %s", "a.js")
	require.Error(t, err)
	assert.Equal(t, "reading a.js", err.Error())

	cause := posError{line: 3}
	err = Wrapf(cause, "tokenizing %s", "a.js")
	assert.Equal(t, "tokenizing a.js: bad token", err.Error())
	assert.Equal(t, cause, Cause(err))

	var target posError
	require.True(t, As(err, &target))
	assert.Equal(t, 3, target.line)
}
