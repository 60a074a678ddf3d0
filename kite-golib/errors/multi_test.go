package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppend_Nil(t *testing.T) {
	assert.Nil(t, Append(nil, nil))

	err := New("a.js: not found")
	errs := Append(nil, err)
	require.NotNil(t, errs)
	assert.Equal(t, []error{err}, errs.Slice())

	assert.Equal(t, errs, Append(errs, nil))
}

func TestAppend_Flattens(t *testing.T) {
	var first, second Errors
	first = Append(first, New("a"))
	first = Append(first, New("b"))
	second = Append(second, New("c"))

	all := Append(first, second)
	require.Equal(t, 3, all.Len())
	assert.Equal(t, "a\nb\nc", all.Error())

	// appending does not touch the lists passed in
	assert.Equal(t, 2, first.Len())
	assert.Equal(t, 1, second.Len())
}

func TestAppend_SliceIsACopy(t *testing.T) {
	errs := Append(nil, New("a"))
	s := errs.Slice()
	s[0] = New("b")
	assert.Equal(t, "a", errs.Error())
}
