//go:build !sqlite_fts5

package journal

import (
	"database/sql"
	"fmt"
)

func initFTS(_ *sql.DB) error {
	// FTS5 not compiled in; search uses a LIKE fallback on the entries table.
	return nil
}

func ftsInsert(_ *sql.Tx, _ int64, _ Entry) error { return nil }

func ftsDeleteDay(_ *sql.Tx, _ string) error { return nil }

// Search performs a LIKE-based search (fallback when FTS5 is not compiled in).
func (db *DB) Search(query string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	like := "%" + query + "%"
	rows, err := db.conn.Query(`
		SELECT date, time, project, note, file
		FROM entries
		WHERE project LIKE ? OR note LIKE ?
		ORDER BY date DESC, id ASC
		LIMIT ?
	`, like, like, limit)
	if err != nil {
		return nil, fmt.Errorf("journal: search: %w", err)
	}
	return scanEntries(rows)
}
