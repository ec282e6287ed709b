// Package paths provides centralized path handling for linkfarm.
//
// It covers three concerns:
//
//   - XDG locations for the store and the global configuration file
//   - shell-style expansion of user supplied paths (~ and $VAR)
//   - the pure path arithmetic the engine relies on: dot- segment mapping
//     and path-segment aware containment tests
//
// # Environment Variables
//
//   - LINKFARM_DATA_DIR: Override the data directory (default: $XDG_DATA_HOME/linkfarm)
//   - LINKFARM_CONFIG_DIR: Override the config directory (default: $XDG_CONFIG_HOME/linkfarm)
//
// The store lives at <data dir>/store.bin and the global configuration at
// <config dir>/linkfarm.toml.
package paths
