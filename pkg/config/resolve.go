package config

import (
	"bytes"

	"github.com/arthur-debert/linkfarm/pkg/errors"
	"github.com/arthur-debert/linkfarm/pkg/paths"
	"github.com/arthur-debert/linkfarm/pkg/types"
	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

var validate = validator.New()

// Resolve turns cfg plus the per-invocation arguments into the options
// record the engine runs with. verbosity is the number of -v flags; the
// verbose key raises it to at least 1.
func Resolve(cfg *Config, command types.Command, packages []string, verbosity int, dryRun bool) (types.Options, error) {
	if cfg.Verbose && verbosity < 1 {
		verbosity = 1
	}

	opts := types.Options{
		Command:   command,
		Packages:  packages,
		Target:    cfg.Target,
		StorePath: paths.StorePath(),
		Dotfiles:  cfg.Dotfiles,
		Adopt:     cfg.Adopt,
		DryRun:    dryRun,
		Verbosity: verbosity,
	}

	if err := validate.Struct(opts); err != nil {
		return opts, errors.Wrap(err, errors.ErrConfigValid, "invalid options")
	}
	return opts, nil
}

const generatedHeader = `# linkfarm configuration
#
# Place this file at $XDG_CONFIG_HOME/linkfarm/linkfarm.toml for every run,
# or as ./linkfarm.toml for runs started in this directory.

`

// Generate renders cfg as a TOML configuration file
func Generate(cfg *Config) ([]byte, error) {
	body, err := toml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}

	var buf bytes.Buffer
	buf.WriteString(generatedHeader)
	buf.Write(body)
	return buf.Bytes(), nil
}
