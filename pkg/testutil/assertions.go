package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// AssertSymlink checks that path is a symlink whose raw value is dest
func AssertSymlink(t *testing.T, path, dest string) {
	t.Helper()

	info, err := os.Lstat(path)
	if err != nil {
		t.Errorf("Expected symlink at %s: %v", path, err)
		return
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Errorf("Expected %s to be a symlink, got mode %s", path, info.Mode())
		return
	}
	got, err := os.Readlink(path)
	if err != nil {
		t.Errorf("Failed to read link %s: %v", path, err)
		return
	}
	if got != dest {
		t.Errorf("Symlink %s points to %q, expected %q", path, got, dest)
	}
}

// AssertDir checks that path is a real directory, not a link to one
func AssertDir(t *testing.T, path string) {
	t.Helper()

	info, err := os.Lstat(path)
	if err != nil {
		t.Errorf("Expected directory at %s: %v", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("Expected %s to be a directory, got mode %s", path, info.Mode())
	}
}

// AssertRegularFile checks that path is a regular file with the given content
func AssertRegularFile(t *testing.T, path, content string) {
	t.Helper()

	info, err := os.Lstat(path)
	if err != nil {
		t.Errorf("Expected file at %s: %v", path, err)
		return
	}
	if !info.Mode().IsRegular() {
		t.Errorf("Expected %s to be a regular file, got mode %s", path, info.Mode())
		return
	}
	AssertFileContent(t, path, content)
}

// AssertFileContent checks the content read through path, following links
func AssertFileContent(t *testing.T, path, content string) {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("Failed to read %s: %v", path, err)
		return
	}
	if string(data) != content {
		t.Errorf("Content of %s is %q, expected %q", path, string(data), content)
	}
}

// AssertNotExists checks that nothing, not even a broken link, exists at path
func AssertNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Lstat(path); err == nil {
		t.Errorf("Expected %s not to exist", path)
	} else if !os.IsNotExist(err) {
		t.Errorf("Unexpected error checking %s: %v", path, err)
	}
}

// Snapshot records every path under root with its type and link value or
// content, for comparing trees before and after an operation.
func Snapshot(t *testing.T, root string) map[string]string {
	t.Helper()

	snap := make(map[string]string)
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		switch {
		case info.Mode()&os.ModeSymlink != 0:
			dest, err := os.Readlink(path)
			if err != nil {
				return err
			}
			snap[rel] = "link:" + dest
		case info.IsDir():
			snap[rel] = "dir"
		default:
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			snap[rel] = "file:" + string(data)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to snapshot %s: %v", root, err)
	}
	return snap
}
