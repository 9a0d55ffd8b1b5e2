// Package config loads service settings from defaults, an optional
// config.yaml, a .env file and environment variables, and validates them
// before any component is built.
package config
