package kitelog

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurations_Flush(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "[test] ").WithDurations()

	logger.Durations.Record("tokenize", 2*time.Millisecond)
	logger.Durations.Record("format", 150*time.Microsecond)
	logger.Durations.Flush(logger)

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "[test] "), out)
	assert.Contains(t, out, "   tokenize2ms\n")
	assert.Contains(t, out, "   format  150µs\n")
	assert.Empty(t, logger.Durations)

	// nothing is written once the durations have been flushed
	buf.Reset()
	logger.Durations.Flush(logger)
	assert.Empty(t, buf.String())
}
