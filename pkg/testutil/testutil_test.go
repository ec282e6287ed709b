package testutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentPackage(t *testing.T) {
	env := NewEnvironment(t)

	pkg := env.Package("shell", FileTree{
		"dot-bashrc": "export A=1",
		"dot-config": FileTree{
			"app": FileTree{"conf": "x"},
		},
	})

	assert.Equal(t, filepath.Join(env.PackagesDir, "shell"), pkg)
	AssertRegularFile(t, filepath.Join(pkg, "dot-bashrc"), "export A=1")
	AssertDir(t, filepath.Join(pkg, "dot-config", "app"))
	AssertDir(t, env.Target)
	assert.Equal(t, filepath.Join(env.Root, "data"), os.Getenv("LINKFARM_DATA_DIR"))
}

func TestFaultyFS(t *testing.T) {
	env := NewEnvironment(t)
	boom := errors.New("boom")
	path := env.TargetPath("x")

	fs := NewFaultyFS(env.FS).FailOn(OpWriteFile, path, boom)

	err := fs.WriteFile(path, []byte("x"), 0644)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	AssertNotExists(t, path)

	other := env.TargetPath("y")
	require.NoError(t, fs.WriteFile(other, []byte("y"), 0644))
	assert.Equal(t, 2, fs.Calls(OpWriteFile))
}

func TestSnapshot(t *testing.T) {
	env := NewEnvironment(t)
	env.WithTargetTree(FileTree{"a": "1", "d": FileTree{"b": "2"}})
	require.NoError(t, os.Symlink("/nowhere", env.TargetPath("l")))

	snap := Snapshot(t, env.Target)
	assert.Equal(t, map[string]string{
		".":   "dir",
		"a":   "file:1",
		"d":   "dir",
		"d/b": "file:2",
		"l":   "link:/nowhere",
	}, snap)
}
