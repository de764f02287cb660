package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTriage(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTriage() error {
	t := c.Triage
	if t.AnnotationExtension == t.ImageExtension {
		return errors.New("triage.annotation_extension and triage.image_extension must differ")
	}
	if t.ValidSuffix == t.NoPolygonSuffix {
		return errors.New("triage.valid_suffix and triage.no_polygon_suffix must differ")
	}
	for key, suffix := range map[string]string{
		"triage.valid_suffix":      t.ValidSuffix,
		"triage.no_polygon_suffix": t.NoPolygonSuffix,
	} {
		if strings.ContainsAny(suffix, `/\`) {
			return fmt.Errorf("%s must not contain path separators", key)
		}
	}
	if t.PolygonTokens <= 0 || t.PolygonTokens%2 != 0 {
		return errors.New("triage.polygon_tokens must be a positive even number")
	}
	switch t.OnParseError {
	case ParseErrorSkip, ParseErrorAbort:
	default:
		return fmt.Errorf("triage.on_parse_error must be %q or %q, got %q", ParseErrorSkip, ParseErrorAbort, t.OnParseError)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}
