package gkeutil

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_SplitsByLevel(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger := NewLogger(zapcore.AddSync(&stdout), zapcore.AddSync(&stderr))

	logger.Info("prettified", zap.Int("tokens", 12))
	logger.Error("tokenizing failed")

	var info map[string]interface{}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &info))
	assert.Equal(t, "info", info["level"])
	assert.Equal(t, "prettified", info["msg"])
	assert.EqualValues(t, 12, info["tokens"])
	assert.Contains(t, info, "caller")

	var errLine map[string]interface{}
	require.NoError(t, json.Unmarshal(stderr.Bytes(), &errLine))
	assert.Equal(t, "error", errLine["level"])
	assert.Equal(t, "tokenizing failed", errLine["msg"])
}
