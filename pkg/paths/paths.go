package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/linkfarm/pkg/errors"
)

// Environment variable names
const (
	// EnvDataDir overrides the XDG data directory for linkfarm
	EnvDataDir = "LINKFARM_DATA_DIR"

	// EnvConfigDir overrides the XDG config directory for linkfarm
	EnvConfigDir = "LINKFARM_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Fixed names. These are not user-configurable.
const (
	// AppDirName is the directory name used under the XDG base directories
	AppDirName = "linkfarm"

	// StoreFileName is the name of the persisted store
	StoreFileName = "store.bin"

	// ConfigFileName is the name of both the global and the local config file
	ConfigFileName = "linkfarm.toml"

	// DotPrefix is the path segment prefix mapped to "." in dotfiles mode
	DotPrefix = "dot-"
)

// DataDir returns the data directory holding the store
func DataDir() string {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.DataHome, AppDirName)
}

// StorePath returns the default location of the store file
func StorePath() string {
	return filepath.Join(DataDir(), StoreFileName)
}

// ConfigDir returns the directory holding the global configuration file
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// GlobalConfigPath returns the path of the global configuration file
func GlobalConfigPath() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~user is not supported
	return path
}

// Expand performs shell-style expansion of a user supplied path: a leading ~
// and $VAR / ${VAR} references. Referencing an undefined variable is an error
// so that a typo never turns into a link farm rooted somewhere unexpected.
func Expand(path string) (string, error) {
	var missing []string
	expanded := os.Expand(ExpandHome(path), func(name string) string {
		value, ok := os.LookupEnv(name)
		if !ok {
			missing = append(missing, name)
		}
		return value
	})
	if len(missing) > 0 {
		return "", errors.Newf(errors.ErrInvalidInput, "undefined variable %q in path %q", missing[0], path).
			WithDetail("path", path)
	}
	return expanded, nil
}

// MapDotfiles replaces the "dot-" prefix of every segment of a relative path
// with ".". Segments without the prefix are left alone.
func MapDotfiles(rel string) string {
	segments := strings.Split(rel, string(filepath.Separator))
	for i, seg := range segments {
		if strings.HasPrefix(seg, DotPrefix) {
			segments[i] = "." + strings.TrimPrefix(seg, DotPrefix)
		}
	}
	return strings.Join(segments, string(filepath.Separator))
}

// IsWithin reports whether path equals root or lies below it. The test is
// segment aware: /a/bc is not within /a/b.
func IsWithin(path, root string) bool {
	path = filepath.Clean(path)
	root = filepath.Clean(root)
	if path == root {
		return true
	}
	if root == string(filepath.Separator) {
		return strings.HasPrefix(path, root)
	}
	return strings.HasPrefix(path, root+string(filepath.Separator))
}

// Canonical returns the absolute path with every symlink resolved
func Canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// CanonicalOrClean returns the canonical path if it can be resolved and the
// cleaned absolute path otherwise, for paths that may no longer exist.
func CanonicalOrClean(path string) string {
	if canonical, err := Canonical(path); err == nil {
		return canonical
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
