// Package storage defines the file-system abstraction over the projects tree.
package storage

import "io/fs"

// Provider is the interface for project-tree file operations. All paths are
// relative to the tree root.
type Provider interface {
	// Root returns the absolute path of the tree root.
	Root() string
	// ListDirs returns the names of the immediate subdirectories of dir,
	// sorted by name.
	ListDirs(dir string) ([]string, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically replaces the file at path with content.
	Write(path string, content []byte) error
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
}
