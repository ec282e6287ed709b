package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/linkfarm/pkg/filesystem"
	"github.com/arthur-debert/linkfarm/pkg/store"
	"github.com/arthur-debert/linkfarm/pkg/types"
)

// Environment is an isolated link farm in a temp directory
type Environment struct {
	// Root is the canonical temp directory everything lives under
	Root string

	// PackagesDir holds package trees created with Package
	PackagesDir string

	// Target is the target root links are created in
	Target string

	// StorePath is where the store file lives
	StorePath string

	// FS is the real filesystem
	FS types.FS

	t *testing.T
}

// NewEnvironment creates an isolated environment. The XDG and linkfarm
// location variables are pointed inside it so nothing leaks into the
// user's home.
func NewEnvironment(t *testing.T) *Environment {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to resolve temp dir: %v", err)
	}

	env := &Environment{
		Root:        root,
		PackagesDir: filepath.Join(root, "packages"),
		Target:      filepath.Join(root, "target"),
		StorePath:   filepath.Join(root, "data", "store.bin"),
		FS:          filesystem.NewOS(),
		t:           t,
	}

	for _, dir := range []string{env.PackagesDir, env.Target} {
		if err := env.FS.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}

	t.Setenv("HOME", filepath.Join(root, "home"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	t.Setenv("LINKFARM_DATA_DIR", filepath.Join(root, "data"))
	t.Setenv("LINKFARM_CONFIG_DIR", filepath.Join(root, "config"))

	return env
}

// Package creates a package directory with the given tree and returns its path
func (env *Environment) Package(name string, tree FileTree) string {
	env.t.Helper()

	pkg := filepath.Join(env.PackagesDir, name)
	if err := env.FS.MkdirAll(pkg, 0755); err != nil {
		env.t.Fatalf("Failed to create package directory: %v", err)
	}
	createFileTree(env.t, env.FS, pkg, tree)
	return pkg
}

// WithTargetTree creates files and directories under the target root
func (env *Environment) WithTargetTree(tree FileTree) {
	env.t.Helper()
	createFileTree(env.t, env.FS, env.Target, tree)
}

// TargetPath joins elements onto the target root
func (env *Environment) TargetPath(elem ...string) string {
	return filepath.Join(append([]string{env.Target}, elem...)...)
}

// Options returns link options for the given packages in this environment
func (env *Environment) Options(command types.Command, packages ...string) types.Options {
	return types.Options{
		Command:   command,
		Packages:  packages,
		Target:    env.Target,
		StorePath: env.StorePath,
	}
}

// LoadStore loads the environment's store file
func (env *Environment) LoadStore() *store.Store {
	env.t.Helper()

	s, err := store.Load(env.StorePath)
	if err != nil {
		env.t.Fatalf("Failed to load store: %v", err)
	}
	return s
}

// FileTree represents a directory structure for testing. String values are
// file contents, nested FileTree values are directories.
type FileTree map[string]interface{}

// createFileTree recursively creates a file tree
func createFileTree(t *testing.T, fs types.FS, basePath string, tree FileTree) {
	t.Helper()

	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			if err := fs.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
				t.Fatalf("Failed to create directory for %s: %v", fullPath, err)
			}
			if err := fs.WriteFile(fullPath, []byte(v), 0644); err != nil {
				t.Fatalf("Failed to write file %s: %v", fullPath, err)
			}
		case FileTree:
			if err := fs.MkdirAll(fullPath, 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", fullPath, err)
			}
			createFileTree(t, fs, fullPath, v)
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}
