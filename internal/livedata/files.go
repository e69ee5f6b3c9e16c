package livedata

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Directories skipped when scanning for recently modified files.
var skipDirs = map[string]struct{}{
	".git": {}, "node_modules": {}, "__pycache__": {}, ".next": {},
	"build": {}, "dist": {}, ".dart_tool": {}, ".gradle": {},
	".venv": {}, "venv": {}, ".tox": {}, ".mypy_cache": {},
	".pytest_cache": {}, "vendor": {},
}

var skipExtensions = map[string]struct{}{
	".pyc": {}, ".pyo": {}, ".DS_Store": {},
}

// LastModified returns the age and name of the most recently modified file
// under codePath, e.g. "2d ago  (main.go)", or the placeholder.
func LastModified(codePath string) string {
	if codePath == "" {
		return Placeholder
	}
	if info, err := os.Stat(codePath); err != nil || !info.IsDir() {
		return Placeholder
	}

	var newest time.Time
	var newestName string

	_ = filepath.WalkDir(codePath, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() {
			if _, skip := skipDirs[d.Name()]; skip && p != codePath {
				return filepath.SkipDir
			}
			return nil
		}
		if _, skip := skipExtensions[filepath.Ext(d.Name())]; skip {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.ModTime().After(newest) {
			newest = info.ModTime()
			newestName = d.Name()
		}
		return nil
	})

	if newestName == "" {
		return Placeholder
	}
	return relativeTime(time.Since(newest)) + "  (" + newestName + ")"
}

// relativeTime renders a duration as a coarse human age.
func relativeTime(d time.Duration) string {
	secs := int64(d.Seconds())
	switch {
	case secs < 60:
		return "just now"
	case secs < 3600:
		return fmt.Sprintf("%dm ago", secs/60)
	case secs < 86400:
		return fmt.Sprintf("%dh ago", secs/3600)
	case secs < 604800:
		return fmt.Sprintf("%dd ago", secs/86400)
	case secs < 2592000:
		return fmt.Sprintf("%dw ago", secs/604800)
	default:
		return fmt.Sprintf("%dmo ago", secs/2592000)
	}
}
