// Package config loads, normalizes, and validates altotriage configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, loads a working-directory .env file, and
// honours environment fallbacks such as ALTOTRIAGE_INPUT_DIR. The Config type
// centralizes every knob the triage engine and CLI need, so annotation
// conventions, destination suffixes, and state directories are discovered in
// one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical extensions, and clear validation errors.
package config
