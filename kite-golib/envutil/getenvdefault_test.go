package envutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetenvDefault(t *testing.T) {
	os.Unsetenv("ENVUTIL_TEST_STR")
	assert.Equal(t, "def", GetenvDefault("ENVUTIL_TEST_STR", "def"))

	os.Setenv("ENVUTIL_TEST_STR", "")
	defer os.Unsetenv("ENVUTIL_TEST_STR")
	assert.Equal(t, "", GetenvDefault("ENVUTIL_TEST_STR", "def"))
}

func TestGetenvDefaultInt(t *testing.T) {
	os.Setenv("ENVUTIL_TEST_INT", "9090")
	defer os.Unsetenv("ENVUTIL_TEST_INT")
	assert.Equal(t, 9090, GetenvDefaultInt("ENVUTIL_TEST_INT", 1))
	assert.Equal(t, 1, GetenvDefaultInt("ENVUTIL_TEST_MISSING", 1))
}

func TestGetenvDefaultBytes(t *testing.T) {
	os.Setenv("ENVUTIL_TEST_BYTES", "2MiB")
	defer os.Unsetenv("ENVUTIL_TEST_BYTES")
	assert.EqualValues(t, 2<<20, GetenvDefaultBytes("ENVUTIL_TEST_BYTES", 0))
	assert.EqualValues(t, 10, GetenvDefaultBytes("ENVUTIL_TEST_MISSING", 10))
}
