package config

import (
	"encoding/base64"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8585", cfg.Port)
	assert.Equal(t, "http://localhost:9091", cfg.Gateway.URL)
	assert.Equal(t, "images", cfg.Gateway.Bucket)
	assert.Len(t, cfg.SessionKey, 32)
	assert.Len(t, cfg.CSRFKey, 32)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("GATEWAY_URL", "https://gw.example.com")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "https://gw.example.com", cfg.Gateway.URL)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestSlogLevelMapping(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"nonsense", slog.LevelInfo},
	}
	for _, tt := range tests {
		cfg := Config{LogLevel: tt.in}
		assert.Equal(t, tt.want, cfg.SlogLevel(), "level %q", tt.in)
	}
}

func TestDecodeKey(t *testing.T) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	encoded := base64.StdEncoding.EncodeToString(key)
	assert.Equal(t, key, decodeKey("SESSION_KEY", encoded))

	// Unset, invalid or short keys fall back to random development keys.
	assert.Len(t, decodeKey("SESSION_KEY", ""), 32)
	assert.Len(t, decodeKey("SESSION_KEY", "not base64!!"), 32)
	short := base64.StdEncoding.EncodeToString([]byte("short"))
	assert.Len(t, decodeKey("SESSION_KEY", short), 32)
	assert.NotEqual(t, decodeKey("SESSION_KEY", ""), decodeKey("SESSION_KEY", ""))
}
