package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/linkfarm/pkg/errors"
	"github.com/arthur-debert/linkfarm/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingTouchesNothing(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "nested", "data", "store.bin")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, path, s.Path())

	// nothing is created until Save
	_, err = os.Stat(filepath.Join(root, "nested"))
	assert.True(t, os.IsNotExist(err))

	s.Insert("/t/a", "/p/a")
	require.NoError(t, s.Save())
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.bin")

	s := New(path)
	s.Insert("/home/u/.bashrc", "/pkgs/shell/dot-bashrc")
	s.Insert("/home/u/.config", "/pkgs/shell/dot-config")
	require.NoError(t, s.Save())
	assert.False(t, s.Dirty())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s.Entries(), loaded.Entries())

	source, ok := loaded.Get("/home/u/.bashrc")
	assert.True(t, ok)
	assert.Equal(t, "/pkgs/shell/dot-bashrc", source)
}

func TestSaveIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	a := New(filepath.Join(dir, "a.bin"))
	b := New(filepath.Join(dir, "b.bin"))
	for _, target := range []string{"/t/c", "/t/a", "/t/b"} {
		a.Insert(target, "/p"+target)
	}
	for _, target := range []string{"/t/b", "/t/c", "/t/a"} {
		b.Insert(target, "/p"+target)
	}
	require.NoError(t, a.Save())
	require.NoError(t, b.Save())

	dataA, err := os.ReadFile(a.Path())
	require.NoError(t, err)
	dataB, err := os.ReadFile(b.Path())
	require.NoError(t, err)
	assert.Equal(t, dataA, dataB)
}

func TestSaveLeavesNoTemporaryFiles(t *testing.T) {
	dir := t.TempDir()
	s := New(filepath.Join(dir, "store.bin"))
	s.Insert("/t/x", "/p/x")
	require.NoError(t, s.Save())
	require.NoError(t, s.Save())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "store.bin", entries[0].Name())
}

func TestLoadCorruptStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.bin")
	require.NoError(t, os.WriteFile(path, []byte("this is not msgpack"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrStoreLoad))
	assert.True(t, errors.IsFatal(err))
}

func TestLoadTrailingBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.bin")
	data := append(encode(map[string]string{"/t/a": "/p/a"}), 0x01)
	require.NoError(t, os.WriteFile(path, data, 0644))

	_, err := Load(path)
	assert.True(t, errors.IsErrorCode(err, errors.ErrStoreLoad))
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.bin")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestSaveWithoutPath(t *testing.T) {
	err := New("").Save()
	assert.True(t, errors.IsErrorCode(err, errors.ErrStoreSave))
}

func TestInsertRetire(t *testing.T) {
	s := New("")
	assert.False(t, s.Dirty())

	s.Insert("/t/a", "/p/a")
	assert.True(t, s.Has("/t/a"))
	assert.True(t, s.Dirty())

	s.Retire("/t/a")
	assert.False(t, s.Has("/t/a"))
	assert.Equal(t, 0, s.Len())

	// retiring an unknown entry is a no-op
	s.Retire("/t/nope")
	assert.Equal(t, 0, s.Len())
}

func TestUnder(t *testing.T) {
	s := New("")
	s.Insert("/home/u/.vimrc", "/pkgs/vim/dot-vimrc")
	s.Insert("/home/u/.bashrc", "/pkgs/shell/dot-bashrc")
	s.Insert("/home/u2/.vimrc", "/pkgs/vim/dot-vimrc")
	s.Insert("/home/u/.gitconfig", "/pkgs/vimextra/gitconfig")

	got := s.Under("/home/u", "/pkgs/vim")
	assert.Equal(t, []types.Link{
		{Source: "/pkgs/vim/dot-vimrc", Target: "/home/u/.vimrc"},
	}, got)
}
