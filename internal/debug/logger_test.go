package debug

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetOutput(t *testing.T) {
	t.Cleanup(func() { SetOutput(io.Discard) })
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	assert.False(t, Enabled())

	var buf bytes.Buffer
	SetOutput(&buf)
	assert.True(t, Enabled())

	Log("loaded %d nations", 3)
	Logger().Debug("nation skipped", "id", "VAT")

	out := buf.String()
	assert.Contains(t, out, "loaded 3 nations")
	assert.Contains(t, out, "id=VAT")
}

func TestLogLevelAndFormatFromEnv(t *testing.T) {
	t.Cleanup(func() { SetOutput(io.Discard) })
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "json")

	var buf bytes.Buffer
	SetOutput(&buf)

	Log("hidden")
	Logger().Warn("shown", "map", "earth")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"map":"earth"`)
}
