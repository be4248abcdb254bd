package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, uint(3), cfg.Precision)
	assert.True(t, cfg.Exact)
	assert.Equal(t, "warn", cfg.Level)
	assert.False(t, cfg.Development)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	t.Setenv("CALC_PRECISION", "12")
	t.Setenv("CALC_EXACT", "false")
	t.Setenv("CALC_LOG_LEVEL", "debug")
	t.Setenv("CALC_LOG_DEV", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, uint(12), cfg.Precision)
	assert.False(t, cfg.Exact)
	assert.Equal(t, "debug", cfg.Level)
	assert.True(t, cfg.Development)
}

func TestLoadIgnoresNestedNames(t *testing.T) {
	t.Setenv("CALC_DISPLAY_PRECISION", "9")
	t.Setenv("CALC_LOGGING_LOG_LEVEL", "debug")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadInvalid(t *testing.T) {
	cases := map[string]string{
		"CALC_PRECISION": "many",
		"CALC_EXACT":     "perhaps",
	}
	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			t.Setenv(k, v)
			_, err := Load()
			assert.ErrorContains(t, err, "failed to load config")
			assert.Equal(t, Default(), LoadOrDefault())
		})
	}
	t.Run("zero", func(t *testing.T) {
		t.Setenv("CALC_PRECISION", "0")
		_, err := Load()
		assert.Error(t, err)
	})
}
