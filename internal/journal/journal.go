// Package journal implements the daily work log: timestamped entries
// appended to per-day markdown files, with a SQLite index for search. The
// markdown files are the source of truth; the index is rebuilt from them.
package journal

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// EntrySep separates the time and project name in an entry heading.
const EntrySep = "—"

// recentDays bounds how many day files the entry list reads.
const recentDays = 7

// Entry is one logged unit of work.
type Entry struct {
	Date    string // YYYY-MM-DD
	Time    string // HH:MM
	Project string
	Note    string
	File    string
}

// Service reads and writes the journal. db may be nil (index unavailable);
// search then degrades to a linear scan over recent entries.
type Service struct {
	dir    string
	db     *DB
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a journal service over dir. Passing a nil db disables
// indexed search but nothing else.
func NewService(dir string, db *DB, logger *slog.Logger) *Service {
	return &Service{dir: dir, db: db, logger: logger, now: time.Now}
}

// todayFile returns the path of today's journal file.
func (s *Service) todayFile() string {
	return filepath.Join(s.dir, s.now().Format("2006-01-02")+".md")
}

// Log appends a timestamped entry for a project to today's file, creating
// the file with a header on first write, then resyncs the index.
func (s *Service) Log(projectName, note string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("journal: create dir: %w", err)
	}

	path := s.todayFile()
	entry := fmt.Sprintf("\n## %s %s %s\n%s\n", s.now().Format("15:04"), EntrySep, projectName, note)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("journal: open %s: %w", path, err)
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.Size() == 0 {
		header := fmt.Sprintf("# Journal %s %s\n", EntrySep, s.now().Format("2006-01-02"))
		if _, err := f.WriteString(header); err != nil {
			return fmt.Errorf("journal: write header: %w", err)
		}
	}
	if _, err := f.WriteString(entry); err != nil {
		return fmt.Errorf("journal: append: %w", err)
	}

	s.syncIndex()
	return nil
}

// Recent returns up to limit entries from the newest day files, newest day
// first, preserving in-day order.
func (s *Service) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	files, err := s.dayFiles()
	if err != nil {
		return nil, err
	}

	var out []Entry
	for i, path := range files {
		if i >= recentDays || len(out) >= limit {
			break
		}
		data, err := os.ReadFile(path)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("journal: read failed", slog.String("path", path), slog.String("error", err.Error()))
			}
			continue
		}
		date := strings.TrimSuffix(filepath.Base(path), ".md")
		out = append(out, parseEntries(date, path, string(data))...)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Search finds entries matching query. With an index available it searches
// all history; otherwise it filters recent entries linearly.
func (s *Service) Search(query string) ([]Entry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.Recent(20)
	}
	if s.db != nil {
		entries, err := s.db.Search(query, 50)
		if err == nil {
			return entries, nil
		}
		if s.logger != nil {
			s.logger.Warn("journal: indexed search failed, falling back", slog.String("error", err.Error()))
		}
	}

	recent, err := s.Recent(100)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	var out []Entry
	for _, e := range recent {
		if strings.Contains(strings.ToLower(e.Project), q) || strings.Contains(strings.ToLower(e.Note), q) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Sync brings the index up to date with the day files: changed files are
// reparsed and replaced, rows for deleted files are removed. No-op without
// an index.
func (s *Service) Sync() error {
	if s.db == nil {
		return nil
	}
	files, err := s.dayFiles()
	if err != nil {
		return err
	}
	indexed, err := s.db.AllChecksums()
	if err != nil {
		return err
	}

	onDisk := make(map[string]struct{}, len(files))
	for _, path := range files {
		date := strings.TrimSuffix(filepath.Base(path), ".md")
		onDisk[date] = struct{}{}

		data, err := os.ReadFile(path)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("journal: sync read failed", slog.String("path", path), slog.String("error", err.Error()))
			}
			continue
		}
		sum := checksum(data)
		if indexed[date] == sum {
			continue
		}
		if err := s.db.ReplaceDay(date, sum, parseEntries(date, path, string(data))); err != nil {
			return err
		}
	}

	for date := range indexed {
		if _, ok := onDisk[date]; !ok {
			if err := s.db.DeleteDay(date); err != nil {
				return err
			}
		}
	}
	return nil
}

// syncIndex is Sync with logging instead of error propagation, for the
// write path where the file append already succeeded.
func (s *Service) syncIndex() {
	if err := s.Sync(); err != nil && s.logger != nil {
		s.logger.Warn("journal: index sync failed", slog.String("error", err.Error()))
	}
}

// dayFiles returns the day files, newest first.
func (s *Service) dayFiles() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.md"))
	if err != nil {
		return nil, fmt.Errorf("journal: list: %w", err)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(matches)))
	return matches, nil
}

// parseEntries extracts "## HH:MM — project" entries from one day file.
func parseEntries(date, path, text string) []Entry {
	var out []Entry
	var cur *Entry
	var lines []string

	flush := func() {
		if cur == nil {
			return
		}
		cur.Note = strings.TrimSpace(strings.Join(lines, "\n"))
		out = append(out, *cur)
		cur = nil
		lines = nil
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "## ") && strings.Contains(line, EntrySep) {
			flush()
			header := strings.TrimSpace(line[3:])
			timePart, projectPart, _ := strings.Cut(header, EntrySep)
			cur = &Entry{
				Date:    date,
				Time:    strings.TrimSpace(timePart),
				Project: strings.TrimSpace(projectPart),
				File:    path,
			}
			continue
		}
		if cur != nil {
			lines = append(lines, line)
		}
	}
	flush()
	return out
}

func checksum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
