// Package testutil provides shared test helpers for setting up project
// trees.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/marloe/standup/internal/storage"
)

// TestTree creates a temporary projects tree with a storage.Provider.
func TestTree(t *testing.T) (string, storage.Provider) {
	t.Helper()
	root := t.TempDir()
	store, err := storage.NewFS(root)
	if err != nil {
		t.Fatal(err)
	}
	return root, store
}

// AddProject creates a project directory, with an overview file when
// content is non-empty, and returns the directory path.
func AddProject(t *testing.T, root, name, content string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if content != "" {
		if err := os.WriteFile(filepath.Join(dir, "_OVERVIEW.md"), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}
