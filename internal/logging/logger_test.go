package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	for _, lv := range []string{"debug", "info", "warn", "error"} {
		l, err := New(Config{Level: lv})
		require.NoError(t, err, lv)
		want, _ := zapcore.ParseLevel(lv)
		assert.True(t, l.Core().Enabled(want), lv)
		assert.False(t, l.Core().Enabled(want-1), lv)
	}
}

func TestNewInvalid(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
	assert.NotNil(t, NewOrNop(Config{Level: "loud"}))
}

func TestNewWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calc.log")
	l, err := New(Config{Level: "info", OutputPaths: []string{path}})
	require.NoError(t, err)
	l.Info("evaluated", zap.String("command", "1+1"))
	require.NoError(t, l.Sync())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(b, &entry))
	assert.Equal(t, "evaluated", entry["message"])
	assert.Equal(t, "1+1", entry["command"])
	assert.Contains(t, entry, "timestamp")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	l, err := New(cfg)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
}
