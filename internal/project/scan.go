package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/marloe/standup/internal/document"
	"github.com/marloe/standup/internal/storage"
)

// Scan walks the immediate subdirectories of the tree and returns one
// Project per directory, name-sorted. Directories whose names start with a
// dot or underscore are skipped. A missing overview file is not an error:
// the project is included with Doc == nil so the dashboard can still show
// it. Read failures attach Err to the project instead of aborting the scan;
// only an unreadable tree root fails the whole call.
//
// There is no caching: callers rescan on every dashboard entry so external
// edits are always reflected.
func Scan(store storage.Provider) ([]Project, error) {
	names, err := store.ListDirs("")
	if err != nil {
		return nil, fmt.Errorf("project: scan: %w", err)
	}

	var out []Project
	for _, name := range names {
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			continue
		}
		p := Project{Name: name, Path: filepath.Join(store.Root(), name)}
		data, err := store.Read(filepath.Join(name, OverviewFile))
		switch {
		case err == nil:
			p.Doc = document.Parse(string(data))
		case errors.Is(err, os.ErrNotExist):
			// Absent overview: listed, dimmed, never hidden.
		default:
			p.Err = err
		}
		out = append(out, p)
	}
	return out, nil
}

// FromDirectory loads a single project given its absolute directory path.
func FromDirectory(dir string) Project {
	p := Project{Name: filepath.Base(dir), Path: dir}
	data, err := os.ReadFile(filepath.Join(dir, OverviewFile))
	switch {
	case err == nil:
		p.Doc = document.Parse(string(data))
	case errors.Is(err, os.ErrNotExist):
	default:
		p.Err = err
	}
	return p
}
