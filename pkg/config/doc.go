// Package config handles configuration management for linkfarm.
// It merges built-in defaults, TOML configuration files, environment
// variables and command-line flags into one Config, and resolves that into
// the validated options record the engine runs with.
package config
