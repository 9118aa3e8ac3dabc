package app

import (
	"testing"

	"github.com/spectramap/cubegraph/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerLevels(t *testing.T) {
	out := &testutil.SafeBuffer{}
	logger := newLogger("warn", "text", out)

	logger.Info("quiet")
	logger.Warn("loud")

	assert.NotContains(t, out.String(), "quiet")
	assert.Contains(t, out.String(), "loud")
}

func TestNewLoggerUnknownLevelDefaultsToInfo(t *testing.T) {
	out := &testutil.SafeBuffer{}
	logger := newLogger("chatty", "text", out)

	logger.Debug("hidden")
	logger.Info("shown")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "shown")
}

func TestNewLoggerJSONFormat(t *testing.T) {
	out := &testutil.SafeBuffer{}
	logger := newLogger("info", "json", out)

	logger.Info("structured")
	assert.Contains(t, out.String(), `"msg":"structured"`)
}
