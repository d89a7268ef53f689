// Package testutil provides test helpers for capri tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// WriteTree writes files, keyed by slash-separated relative path, below a
// new temporary directory and returns the directory.
func WriteTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		WriteFile(t, dir, filepath.FromSlash(name), content)
	}
	return dir
}

// MemFS returns an in-memory filesystem holding files below root.
func MemFS(t *testing.T, root string, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}
	return fs
}

// IsolateHome points HOME at a fresh temporary directory and clears every
// CAPRI_* variable for the duration of the test.
func IsolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, name := range []string{
		"CAPRI_CONFIG", "CAPRI_ROOT", "CAPRI_EXTENSION", "CAPRI_ASYNC",
		"CAPRI_MAX_FETCHES", "CAPRI_LOG_TIMESTAMPS",
	} {
		t.Setenv(name, "")
	}
	return home
}
