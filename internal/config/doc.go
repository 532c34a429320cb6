// Package config loads, normalizes, and validates mriseq configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// MRISEQ_REFERENCE_DIR. The Config type centralizes where the reference table
// lives, how it is decoded, where its SQLite snapshot is kept, and how logs
// are written.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
