//go:build sqlite_fts5

package journal

import (
	"database/sql"
	"fmt"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS entries_fts USING fts5(
			entry_id UNINDEXED,
			project,
			note,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsInsert(tx *sql.Tx, id int64, e Entry) error {
	if _, err := tx.Exec(`INSERT INTO entries_fts (entry_id, project, note) VALUES (?, ?, ?)`,
		id, e.Project, e.Note); err != nil {
		return fmt.Errorf("journal: insert fts: %w", err)
	}
	return nil
}

func ftsDeleteDay(tx *sql.Tx, date string) error {
	if _, err := tx.Exec(`
		DELETE FROM entries_fts WHERE entry_id IN (SELECT id FROM entries WHERE date = ?)
	`, date); err != nil {
		return fmt.Errorf("journal: delete fts: %w", err)
	}
	return nil
}

// Search performs an FTS5 full-text search over project names and notes.
func (db *DB) Search(query string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.conn.Query(`
		SELECT e.date, e.time, e.project, e.note, e.file
		FROM entries_fts f
		JOIN entries e ON e.id = f.entry_id
		WHERE entries_fts MATCH ?
		ORDER BY e.date DESC, e.id ASC
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("journal: search: %w", err)
	}
	return scanEntries(rows)
}
