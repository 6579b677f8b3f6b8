package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateCollections(); err != nil {
		return err
	}
	if c.Database.Enabled && c.Database.Path == "" {
		return errors.New("database.path must be set when database.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateCollections() error {
	for abbr, name := range c.Collections.DisplayNames {
		if abbr == "" || name == "" {
			return fmt.Errorf("collections.display_names: empty entry %q = %q", abbr, name)
		}
	}
	registry := c.Registry()
	for _, abbr := range c.Collections.SinglePage {
		if !registry.Known(abbr) {
			return fmt.Errorf("collections.single_page: unknown collection %q", abbr)
		}
	}
	for _, abbr := range c.Collections.Fields {
		if !registry.Known(abbr) {
			return fmt.Errorf("collections.fields: unknown collection %q", abbr)
		}
	}
	return nil
}
