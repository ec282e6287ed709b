package config

import (
	_ "embed"
	"errors"
	"os"
	"strings"

	lferrors "github.com/arthur-debert/linkfarm/pkg/errors"
	"github.com/arthur-debert/linkfarm/pkg/logging"
	"github.com/arthur-debert/linkfarm/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables that set config keys
const EnvPrefix = "LINKFARM_"

//go:embed embedded/defaults.toml
var defaultConfig []byte

// Config holds the user-configurable settings
type Config struct {
	Verbose  bool   `koanf:"verbose" toml:"verbose"`
	Dotfiles bool   `koanf:"dotfiles" toml:"dotfiles"`
	Target   string `koanf:"target" toml:"target"`
	Adopt    bool   `koanf:"adopt" toml:"adopt"`
}

// Keys lists the configuration keys
var Keys = []string{"verbose", "dotfiles", "target", "adopt"}

// LoadOptions says where configuration comes from
type LoadOptions struct {
	// GlobalPath is the per-user config file; missing is fine
	GlobalPath string

	// LocalPath is the config file in the working directory; missing is fine
	LocalPath string

	// Flags holds the command-line values that were explicitly set, by key
	Flags map[string]interface{}
}

// DefaultLoadOptions returns the standard file locations with no flags
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		GlobalPath: paths.GlobalConfigPath(),
		LocalPath:  paths.ConfigFileName,
	}
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// Load merges, lowest precedence first: built-in defaults, the global config
// file, the local config file, LINKFARM_* environment variables, and flags.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Built-in defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, lferrors.Wrap(err, lferrors.ErrConfigParse, "failed to load built-in defaults")
	}

	// 2. Config files
	for _, path := range []string{opts.GlobalPath, opts.LocalPath} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, lferrors.Wrapf(err, lferrors.ErrConfigLoad, "failed to access config file %s", path).
				WithDetail("path", path)
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, lferrors.Wrapf(err, lferrors.ErrConfigParse, "failed to parse config file %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, lferrors.Wrap(err, lferrors.ErrConfigLoad, "failed to load environment")
	}

	// 4. Explicitly set flags
	if len(opts.Flags) > 0 {
		if err := k.Load(confmap.Provider(opts.Flags, "."), nil); err != nil {
			return nil, lferrors.Wrap(err, lferrors.ErrConfigLoad, "failed to load flags")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, lferrors.Wrap(err, lferrors.ErrConfigParse, "failed to unmarshal configuration")
	}

	logger.Debug().
		Bool("verbose", cfg.Verbose).
		Bool("dotfiles", cfg.Dotfiles).
		Str("target", cfg.Target).
		Bool("adopt", cfg.Adopt).
		Msg("Configuration loaded")
	return &cfg, nil
}

// envKey maps LINKFARM_TARGET to "target". Variables that do not name a
// config key, such as LINKFARM_DATA_DIR, are ignored.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, known := range Keys {
		if key == known {
			return key
		}
	}
	return ""
}
