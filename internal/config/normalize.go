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
	if err := c.normalizeDatabase(); err != nil {
		return err
	}
	c.normalizeCollections()
	return c.normalizeLogging()
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.Handlist, err = expandPath(strings.TrimSpace(c.Paths.Handlist)); err != nil {
		return fmt.Errorf("paths.handlist: %w", err)
	}
	if c.Paths.Incipits, err = expandPath(strings.TrimSpace(c.Paths.Incipits)); err != nil {
		return fmt.Errorf("paths.incipits: %w", err)
	}
	if c.Paths.Schema, err = expandPath(strings.TrimSpace(c.Paths.Schema)); err != nil {
		return fmt.Errorf("paths.schema: %w", err)
	}

	c.Paths.OutputDir = strings.TrimSpace(c.Paths.OutputDir)
	if c.Paths.OutputDir == "" {
		if value, ok := os.LookupEnv(envOutputDir); ok && strings.TrimSpace(value) != "" {
			c.Paths.OutputDir = strings.TrimSpace(value)
		} else {
			c.Paths.OutputDir = defaultOutputDir
		}
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDatabase() error {
	c.Database.Path = strings.TrimSpace(c.Database.Path)
	if c.Database.Path == "" {
		c.Database.Path = defaultDatabasePath
	}
	var err error
	if c.Database.Path, err = expandPath(c.Database.Path); err != nil {
		return fmt.Errorf("database.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeCollections() {
	if len(c.Collections.DisplayNames) > 0 {
		names := make(map[string]string, len(c.Collections.DisplayNames))
		for abbr, name := range c.Collections.DisplayNames {
			names[strings.TrimSpace(abbr)] = strings.TrimSpace(name)
		}
		c.Collections.DisplayNames = names
	}
	c.Collections.SinglePage = trimList(c.Collections.SinglePage)
	c.Collections.Fields = trimList(c.Collections.Fields)
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}

// trimList trims entries and drops blanks. A nil list stays nil so the
// built-in defaults apply.
func trimList(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
