// Package config loads the application's configuration from environment
// variables, with an optional .env file for development.
package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port         string `envconfig:"PORT" default:"8585"`
	AppEnv       string `envconfig:"APP_ENV" default:"development"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	CookieDomain string `envconfig:"COOKIE_DOMAIN"`
	CookieSecure bool   `envconfig:"COOKIE_SECURE" default:"false"`

	Gateway GatewayConfig

	// Base64-encoded 32+ byte keys. Left unset, random development keys
	// are generated and sessions do not survive a restart.
	SessionKeyB64 string `envconfig:"SESSION_KEY"`
	CSRFKeyB64    string `envconfig:"CSRF_KEY"`

	SessionKey []byte `ignored:"true"`
	CSRFKey    []byte `ignored:"true"`
}

// GatewayConfig points at the backend platform holding the site's data,
// auth and file storage.
type GatewayConfig struct {
	URL    string `envconfig:"GATEWAY_URL" default:"http://localhost:9091"`
	APIKey string `envconfig:"GATEWAY_API_KEY" default:"dev-anon-key"`
	Bucket string `envconfig:"GATEWAY_BUCKET" default:"images"`
}

func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Could not read .env file", "error", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", err)
	}

	cfg.SessionKey = decodeKey("SESSION_KEY", cfg.SessionKeyB64)
	cfg.CSRFKey = decodeKey("CSRF_KEY", cfg.CSRFKeyB64)

	return &cfg, nil
}

// SlogLevel maps the configured log level onto slog's levels.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// decodeKey returns the base64-decoded key, or a random development key
// when the variable is unset or invalid.
func decodeKey(name, encoded string) []byte {
	if encoded == "" {
		slog.Warn("Key not set; generating a random development key. Set it in production.", "key", name)
		return randomBytes(32)
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(decoded) < 32 {
		slog.Warn("Key is invalid or shorter than 32 bytes; generating a random development key.", "key", name)
		return randomBytes(32)
	}
	return decoded
}

func randomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the platform is broken; refuse to
		// limp along with a guessable key.
		panic(fmt.Sprintf("config: cannot read random bytes: %v", err))
	}
	return b
}
