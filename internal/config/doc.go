// Package config loads, normalizes, and validates pemm configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// PEMM_OUTPUT_DIR. The collection table lives here too: display names have
// changed between handlist revisions, so a config file may override the
// built-in mapping instead of the code guessing a canonical set.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
