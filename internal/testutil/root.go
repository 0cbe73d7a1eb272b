// Package testutil builds throwaway note roots for tests.
package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"
)

// TestRoot represents a temporary note root for testing
type TestRoot struct {
	Path  string
	Files map[string]string
}

// CreateTempRoot creates a temporary root directory populated with files.
// Keys are slash-separated paths relative to the root. A key ending in "/"
// creates an empty directory.
func CreateTempRoot(t *testing.T, files map[string]string) *TestRoot {
	t.Helper()

	root := &TestRoot{
		Path:  t.TempDir(),
		Files: make(map[string]string),
	}

	for relPath, content := range files {
		if strings.HasSuffix(relPath, "/") {
			root.AddDir(t, relPath)
			continue
		}
		root.AddFile(t, relPath, content)
	}

	return root
}

// Join returns the absolute path of a slash-separated relative path
func (r *TestRoot) Join(relPath string) string {
	return filepath.Join(r.Path, filepath.FromSlash(relPath))
}

// AddFile writes a file into the root, creating parent directories
func (r *TestRoot) AddFile(t *testing.T, relPath, content string) {
	t.Helper()

	fullPath := r.Join(relPath)

	// Create parent directories
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", fullPath, err)
	}

	r.Files[relPath] = content
}

// AddDir creates an empty directory inside the root
func (r *TestRoot) AddDir(t *testing.T, relPath string) {
	t.Helper()

	if err := os.MkdirAll(r.Join(relPath), 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", relPath, err)
	}
}

// ReadFile returns the content of a file inside the root
func (r *TestRoot) ReadFile(t *testing.T, relPath string) string {
	t.Helper()

	data, err := os.ReadFile(r.Join(relPath))
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", relPath, err)
	}
	return string(data)
}

// Exists reports whether a path exists inside the root
func (r *TestRoot) Exists(relPath string) bool {
	_, err := os.Lstat(r.Join(relPath))
	return err == nil
}

// Tree lists every regular file below the root as sorted slash paths
func (r *TestRoot) Tree(t *testing.T) []string {
	t.Helper()

	var files []string
	err := filepath.WalkDir(r.Path, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(r.Path, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to walk root: %v", err)
	}

	sort.Strings(files)
	return files
}

// WaitForCondition waits for a condition to be true or times out
func WaitForCondition(t *testing.T, condition func() bool, timeout, interval time.Duration) bool {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(interval)
	}
	return false
}

// AssertEventually asserts that a condition becomes true within a timeout
func AssertEventually(t *testing.T, condition func() bool, timeout, interval time.Duration, msg string) {
	t.Helper()

	if !WaitForCondition(t, condition, timeout, interval) {
		t.Fatalf("Condition not met within %v: %s", timeout, msg)
	}
}
