package testutil

import (
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/arthur-debert/linkfarm/pkg/types"
)

// Op names a filesystem operation that can be made to fail
type Op string

const (
	OpStat         Op = "stat"
	OpLstat        Op = "lstat"
	OpReadFile     Op = "readfile"
	OpWriteFile    Op = "writefile"
	OpMkdirAll     Op = "mkdirall"
	OpReadDir      Op = "readdir"
	OpSymlink      Op = "symlink"
	OpReadlink     Op = "readlink"
	OpEvalSymlinks Op = "evalsymlinks"
	OpRemove       Op = "remove"
	OpRename       Op = "rename"
)

// FaultyFS wraps a types.FS and returns injected errors for chosen
// operation/path pairs. Everything else is passed through.
type FaultyFS struct {
	types.FS

	mu     sync.Mutex
	faults map[Op]map[string]error
	calls  map[Op]int
}

// NewFaultyFS wraps inner
func NewFaultyFS(inner types.FS) *FaultyFS {
	return &FaultyFS{
		FS:     inner,
		faults: make(map[Op]map[string]error),
		calls:  make(map[Op]int),
	}
}

// FailOn makes op fail with err whenever it is called on path. For Rename
// and Symlink the path is the destination.
func (f *FaultyFS) FailOn(op Op, path string, err error) *FaultyFS {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.faults[op] == nil {
		f.faults[op] = make(map[string]error)
	}
	f.faults[op][filepath.Clean(path)] = err
	return f
}

// Calls returns how often op was invoked
func (f *FaultyFS) Calls(op Op) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *FaultyFS) check(op Op, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls[op]++
	if err, ok := f.faults[op][filepath.Clean(path)]; ok {
		return &fs.PathError{Op: string(op), Path: path, Err: err}
	}
	return nil
}

func (f *FaultyFS) Stat(name string) (fs.FileInfo, error) {
	if err := f.check(OpStat, name); err != nil {
		return nil, err
	}
	return f.FS.Stat(name)
}

func (f *FaultyFS) Lstat(name string) (fs.FileInfo, error) {
	if err := f.check(OpLstat, name); err != nil {
		return nil, err
	}
	return f.FS.Lstat(name)
}

func (f *FaultyFS) ReadFile(name string) ([]byte, error) {
	if err := f.check(OpReadFile, name); err != nil {
		return nil, err
	}
	return f.FS.ReadFile(name)
}

func (f *FaultyFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if err := f.check(OpWriteFile, name); err != nil {
		return err
	}
	return f.FS.WriteFile(name, data, perm)
}

func (f *FaultyFS) MkdirAll(path string, perm fs.FileMode) error {
	if err := f.check(OpMkdirAll, path); err != nil {
		return err
	}
	return f.FS.MkdirAll(path, perm)
}

func (f *FaultyFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if err := f.check(OpReadDir, name); err != nil {
		return nil, err
	}
	return f.FS.ReadDir(name)
}

func (f *FaultyFS) Symlink(oldname, newname string) error {
	if err := f.check(OpSymlink, newname); err != nil {
		return err
	}
	return f.FS.Symlink(oldname, newname)
}

func (f *FaultyFS) Readlink(name string) (string, error) {
	if err := f.check(OpReadlink, name); err != nil {
		return "", err
	}
	return f.FS.Readlink(name)
}

func (f *FaultyFS) EvalSymlinks(path string) (string, error) {
	if err := f.check(OpEvalSymlinks, path); err != nil {
		return "", err
	}
	return f.FS.EvalSymlinks(path)
}

func (f *FaultyFS) Remove(name string) error {
	if err := f.check(OpRemove, name); err != nil {
		return err
	}
	return f.FS.Remove(name)
}

func (f *FaultyFS) Rename(oldpath, newpath string) error {
	if err := f.check(OpRename, newpath); err != nil {
		return err
	}
	return f.FS.Rename(oldpath, newpath)
}
