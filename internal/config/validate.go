package config

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"mriseq/internal/textutil"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateReference(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateReference() error {
	if c.Reference.Dir == "" {
		return errors.New("reference.dir must be set (or export MRISEQ_REFERENCE_DIR)")
	}
	if utf8.RuneCountInString(c.Reference.Delimiter) != 1 {
		return fmt.Errorf("reference.delimiter must be a single character, got %q", c.Reference.Delimiter)
	}
	switch c.DelimiterRune() {
	case '"', '\r', '\n', utf8.RuneError:
		return fmt.Errorf("reference.delimiter %q is not usable", c.Reference.Delimiter)
	}
	if _, err := textutil.LookupCharset(c.Reference.Charset); err != nil {
		return fmt.Errorf("reference.charset: %w", err)
	}
	switch c.Reference.Source {
	case SourceCSV, SourceSnapshot:
	default:
		return fmt.Errorf("reference.source: unsupported value %q (want %q or %q)", c.Reference.Source, SourceCSV, SourceSnapshot)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
