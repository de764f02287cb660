package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTriage()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.InputDir) == "" {
		if value, ok := os.LookupEnv("ALTOTRIAGE_INPUT_DIR"); ok {
			c.Paths.InputDir = strings.TrimSpace(value)
		}
	}
	if c.Paths.InputDir, err = expandPath(strings.TrimSpace(c.Paths.InputDir)); err != nil {
		return fmt.Errorf("paths.input_dir: %w", err)
	}
	if value, ok := os.LookupEnv("ALTOTRIAGE_STATE_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.StateDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTriage() {
	c.Triage.AnnotationExtension = normalizeExtension(c.Triage.AnnotationExtension, defaultAnnotationExtension)
	c.Triage.ImageExtension = normalizeExtension(c.Triage.ImageExtension, defaultImageExtension)
	c.Triage.Namespace = strings.TrimSpace(c.Triage.Namespace)
	if c.Triage.Namespace == "" {
		c.Triage.Namespace = defaultNamespace
	}
	c.Triage.ValidSuffix = strings.TrimSpace(c.Triage.ValidSuffix)
	if c.Triage.ValidSuffix == "" {
		c.Triage.ValidSuffix = defaultValidSuffix
	}
	c.Triage.NoPolygonSuffix = strings.TrimSpace(c.Triage.NoPolygonSuffix)
	if c.Triage.NoPolygonSuffix == "" {
		c.Triage.NoPolygonSuffix = defaultNoPolygonSuffix
	}
	if c.Triage.PolygonTokens == 0 {
		c.Triage.PolygonTokens = defaultPolygonTokens
	}
	c.Triage.OnParseError = strings.ToLower(strings.TrimSpace(c.Triage.OnParseError))
	if c.Triage.OnParseError == "" {
		c.Triage.OnParseError = ParseErrorSkip
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	if value, ok := os.LookupEnv("ALTOTRIAGE_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// normalizeExtension trims the value and ensures a leading dot.
func normalizeExtension(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	if !strings.HasPrefix(value, ".") {
		value = "." + value
	}
	return value
}
