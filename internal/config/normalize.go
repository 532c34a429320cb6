package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeReference(); err != nil {
		return err
	}
	if err := c.normalizeSnapshot(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeReference() error {
	if value, ok := os.LookupEnv("MRISEQ_REFERENCE_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Reference.Dir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Reference.Dir) == "" {
		c.Reference.Dir = defaultReferenceDir
	}
	var err error
	if c.Reference.Dir, err = expandPath(c.Reference.Dir); err != nil {
		return fmt.Errorf("reference.dir: %w", err)
	}
	c.Reference.FileName = strings.TrimSpace(c.Reference.FileName)
	if c.Reference.FileName == "" {
		c.Reference.FileName = defaultReferenceFileName
	}
	// Tabs are spelled out in TOML files more often than escaped.
	switch c.Reference.Delimiter {
	case "":
		c.Reference.Delimiter = defaultDelimiter
	case "tab", `\t`:
		c.Reference.Delimiter = "\t"
	}
	c.Reference.Charset = strings.ToLower(strings.TrimSpace(c.Reference.Charset))
	if c.Reference.Charset == "" {
		c.Reference.Charset = defaultCharset
	}
	c.Reference.Source = strings.ToLower(strings.TrimSpace(c.Reference.Source))
	if c.Reference.Source == "" {
		c.Reference.Source = defaultSource
	}
	return nil
}

func (c *Config) normalizeSnapshot() error {
	if strings.TrimSpace(c.Snapshot.Path) == "" {
		c.Snapshot.Path = defaultSnapshotPath
	}
	var err error
	if c.Snapshot.Path, err = expandPath(c.Snapshot.Path); err != nil {
		return fmt.Errorf("snapshot.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if format == "" {
		format = defaultLogFormat
	}
	c.Logging.Format = format

	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if level == "" {
		level = defaultLogLevel
	}
	c.Logging.Level = level

	var err error
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}
