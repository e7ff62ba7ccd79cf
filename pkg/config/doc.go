// Package config handles configuration management for locfold.
// It supports loading configuration from multiple sources including
// TOML files, environment variables, and command-line flags.
package config
