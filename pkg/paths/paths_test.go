package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/linkfarm/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataDirOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvDataDir, dir)

	assert.Equal(t, dir, DataDir())
	assert.Equal(t, filepath.Join(dir, StoreFileName), StorePath())
}

func TestConfigDirOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)

	assert.Equal(t, dir, ConfigDir())
	assert.Equal(t, filepath.Join(dir, ConfigFileName), GlobalConfigPath())
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"tilde only", "~", home},
		{"tilde slash", "~/config", filepath.Join(home, "config")},
		{"other user", "~bob/config", "~bob/config"},
		{"absolute", "/etc/hosts", "/etc/hosts"},
		{"relative", "a/b", "a/b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpandHome(tt.input))
		})
	}
}

func TestExpand(t *testing.T) {
	t.Setenv("LINKFARM_TEST_ROOT", "/srv/farm")

	got, err := Expand("$LINKFARM_TEST_ROOT/sub")
	require.NoError(t, err)
	assert.Equal(t, "/srv/farm/sub", got)

	got, err = Expand("${LINKFARM_TEST_ROOT}/x")
	require.NoError(t, err)
	assert.Equal(t, "/srv/farm/x", got)

	got, err = Expand("/plain/path")
	require.NoError(t, err)
	assert.Equal(t, "/plain/path", got)
}

func TestExpandUndefinedVariable(t *testing.T) {
	_, err := Expand("$LINKFARM_SURELY_UNDEFINED_VAR/x")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestMapDotfiles(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"dot-bashrc", ".bashrc"},
		{"dot-config/nvim/init.lua", ".config/nvim/init.lua"},
		{"dot-a/dot-b", ".a/.b"},
		{"plain/dot-file", "plain/.file"},
		{"nodot-file", "nodot-file"},
		{"dot", "dot"},
		{"dot-", "."},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapDotfiles(tt.input))
		})
	}
}

func TestIsWithin(t *testing.T) {
	assert.True(t, IsWithin("/a/b", "/a/b"))
	assert.True(t, IsWithin("/a/b/c", "/a/b"))
	assert.True(t, IsWithin("/a/b/c/", "/a/b"))
	assert.False(t, IsWithin("/a/bc", "/a/b"))
	assert.False(t, IsWithin("/a", "/a/b"))
	assert.True(t, IsWithin("/anything", "/"))
}

func TestCanonical(t *testing.T) {
	dir := t.TempDir()
	realDir, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)

	file := filepath.Join(realDir, "f")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	link := filepath.Join(realDir, "l")
	require.NoError(t, os.Symlink(file, link))

	got, err := Canonical(link)
	require.NoError(t, err)
	assert.Equal(t, file, got)

	_, err = Canonical(filepath.Join(realDir, "missing"))
	assert.Error(t, err)

	assert.Equal(t, filepath.Join(realDir, "missing"), CanonicalOrClean(filepath.Join(realDir, "x", "..", "missing")))
}
