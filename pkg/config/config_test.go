package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/linkfarm/pkg/errors"
	"github.com/arthur-debert/linkfarm/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate clears the LINKFARM_* config variables for the duration of the test
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, key := range Keys {
		name := EnvPrefix + strings.ToUpper(key)
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
	t.Setenv("LINKFARM_DATA_DIR", filepath.Join(dir, "data"))
	t.Setenv("LINKFARM_CONFIG_DIR", filepath.Join(dir, "config"))
	return dir
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, &Config{Target: "~"}, cfg)
}

func TestLoad_MissingFilesAreFine(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(LoadOptions{
		GlobalPath: filepath.Join(dir, "nope", "linkfarm.toml"),
		LocalPath:  filepath.Join(dir, "linkfarm.toml"),
	})
	require.NoError(t, err)
	assert.Equal(t, "~", cfg.Target)
}

func TestLoad_Precedence(t *testing.T) {
	dir := isolate(t)
	global := writeFile(t, filepath.Join(dir, "config", "linkfarm.toml"), "target = \"/global\"\ndotfiles = true\n")
	local := writeFile(t, filepath.Join(dir, "work", "linkfarm.toml"), "target = \"/local\"\n")

	t.Run("local file overrides global file", func(t *testing.T) {
		cfg, err := Load(LoadOptions{GlobalPath: global, LocalPath: local})
		require.NoError(t, err)
		assert.Equal(t, "/local", cfg.Target)
		assert.True(t, cfg.Dotfiles)
	})

	t.Run("environment overrides files", func(t *testing.T) {
		t.Setenv("LINKFARM_TARGET", "/from-env")
		t.Setenv("LINKFARM_ADOPT", "true")

		cfg, err := Load(LoadOptions{GlobalPath: global, LocalPath: local})
		require.NoError(t, err)
		assert.Equal(t, "/from-env", cfg.Target)
		assert.True(t, cfg.Adopt)
	})

	t.Run("flags override everything", func(t *testing.T) {
		t.Setenv("LINKFARM_TARGET", "/from-env")

		cfg, err := Load(LoadOptions{
			GlobalPath: global,
			LocalPath:  local,
			Flags:      map[string]interface{}{"target": "/from-flag", "dotfiles": false},
		})
		require.NoError(t, err)
		assert.Equal(t, "/from-flag", cfg.Target)
		assert.False(t, cfg.Dotfiles)
	})
}

func TestLoad_IgnoresUnrelatedEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("LINKFARM_SOMETHING", "x")

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, &Config{Target: "~"}, cfg)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := isolate(t)
	bad := writeFile(t, filepath.Join(dir, "linkfarm.toml"), "target = [unterminated\n")

	_, err := Load(LoadOptions{LocalPath: bad})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	assert.Equal(t, bad, errors.GetErrorDetails(err)["path"])
}

func TestResolve(t *testing.T) {
	dir := isolate(t)

	opts, err := Resolve(&Config{Target: "/t", Dotfiles: true}, types.CommandLink, []string{"pkg"}, 0, true)
	require.NoError(t, err)
	assert.Equal(t, types.Options{
		Command:   types.CommandLink,
		Packages:  []string{"pkg"},
		Target:    "/t",
		StorePath: filepath.Join(dir, "data", "store.bin"),
		Dotfiles:  true,
		DryRun:    true,
	}, opts)
}

func TestResolve_Verbosity(t *testing.T) {
	isolate(t)

	tests := []struct {
		name    string
		verbose bool
		flags   int
		want    int
	}{
		{"quiet", false, 0, 0},
		{"verbose key", true, 0, 1},
		{"flags win when higher", true, 3, 3},
		{"flags alone", false, 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := Resolve(&Config{Target: "/t", Verbose: tt.verbose}, types.CommandUnlink, []string{"p"}, tt.flags, false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, opts.Verbosity)
		})
	}
}

func TestResolve_Invalid(t *testing.T) {
	isolate(t)

	tests := []struct {
		name     string
		cfg      Config
		command  types.Command
		packages []string
	}{
		{"no packages", Config{Target: "/t"}, types.CommandLink, nil},
		{"blank package", Config{Target: "/t"}, types.CommandLink, []string{""}},
		{"no target", Config{}, types.CommandLink, []string{"p"}},
		{"unknown command", Config{Target: "/t"}, types.Command("stow"), []string{"p"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(&tt.cfg, tt.command, tt.packages, 0, false)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
		})
	}
}

func TestGenerate(t *testing.T) {
	dir := isolate(t)

	out, err := Generate(&Config{Target: "~/dotfiles-target", Dotfiles: true})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "# linkfarm configuration"))
	assert.Contains(t, string(out), "dotfiles = true")

	// The generated file loads back to the same settings
	path := writeFile(t, filepath.Join(dir, "linkfarm.toml"), string(out))
	cfg, err := Load(LoadOptions{LocalPath: path})
	require.NoError(t, err)
	assert.Equal(t, &Config{Target: "~/dotfiles-target", Dotfiles: true}, cfg)
}
