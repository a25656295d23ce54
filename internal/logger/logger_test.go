package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
	zap "go.uber.org/zap"
)

func TestCaptureRoutesPackageHelpers(t *testing.T) {
	logs, restore := Capture()
	defer restore()

	Debug("debug message", "key", "value")
	Warn("warn message")
	Error("error message", "count", 3)

	require.Equal(t, 3, logs.Len())
	entries := logs.All()
	assert.Equal(t, "debug message", entries[0].Message)
	assert.Equal(t, "value", entries[0].ContextMap()["key"])
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, int64(3), entries[2].ContextMap()["count"])
}

func TestFromContext(t *testing.T) {
	ctx, logs := TestContext()
	L(ctx).Info("from context")
	Sugar(With(ctx, zap.String("component", "test"))).Infow("child")

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "test", logs.All()[1].ContextMap()["component"])

	assert.NotNil(t, FromContext(context.Background()))
	assert.NotNil(t, FromContext(NopContext()))
}

func TestInitWritesLogFile(t *testing.T) {
	dir := t.TempDir()
	restore := SetLogger(zap.NewNop())
	defer restore()

	require.NoError(t, Init(true, dir))
	Info("written to file")
	Close()

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}
