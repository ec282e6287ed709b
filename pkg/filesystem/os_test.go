package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	fs := NewOS()
	assert.NotNil(t, fs)

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")
	testContent := []byte("hello world")

	err := fs.WriteFile(testFile, testContent, 0644)
	require.NoError(t, err)

	info, err := fs.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, "test.txt", info.Name())
	assert.Equal(t, int64(len(testContent)), info.Size())

	content, err := fs.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, testContent, content)

	subDir := filepath.Join(tmpDir, "sub", "dir")
	err = fs.MkdirAll(subDir, 0755)
	require.NoError(t, err)

	entries, err := fs.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2) // test.txt and sub/

	err = fs.Remove(testFile)
	require.NoError(t, err)
	_, err = fs.Stat(testFile)
	assert.True(t, os.IsNotExist(err))
}

func TestOSSymlinks(t *testing.T) {
	fs := NewOS()
	tmpDir := t.TempDir()

	realFile := filepath.Join(tmpDir, "realFile.txt")
	require.NoError(t, fs.WriteFile(realFile, []byte("x"), 0644))

	hop := filepath.Join(tmpDir, "hop")
	require.NoError(t, fs.Symlink(realFile, hop))

	link := filepath.Join(tmpDir, "link")
	require.NoError(t, fs.Symlink("hop", link))

	raw, err := fs.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, "hop", raw)

	info, err := fs.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)

	resolved, err := fs.EvalSymlinks(link)
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(realFile)
	require.NoError(t, err)
	assert.Equal(t, want, resolved)

	moved := filepath.Join(tmpDir, "moved")
	require.NoError(t, fs.Rename(link, moved))
	_, err = fs.Lstat(link)
	assert.True(t, os.IsNotExist(err))
}
