package testsupport

import (
	"path/filepath"
	"testing"

	"altotriage/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config whose state and log directories live in a
// per-test temp directory.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure test directories: %v", err)
	}
	return &cfg
}

// WithParsePolicy sets triage.on_parse_error.
func WithParsePolicy(policy string) ConfigOption {
	return func(c *config.Config) {
		c.Triage.OnParseError = policy
	}
}

// WithImageBounds toggles validation.check_image_bounds.
func WithImageBounds(enabled bool) ConfigOption {
	return func(c *config.Config) {
		c.Validation.CheckImageBounds = enabled
	}
}

// WithLedger toggles the run ledger.
func WithLedger(enabled bool) ConfigOption {
	return func(c *config.Config) {
		c.Ledger.Enabled = enabled
	}
}
