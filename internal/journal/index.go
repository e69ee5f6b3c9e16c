package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS days (
	date     TEXT PRIMARY KEY,
	checksum TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS entries (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	date    TEXT NOT NULL,
	time    TEXT NOT NULL,
	project TEXT NOT NULL,
	note    TEXT NOT NULL DEFAULT '',
	file    TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_entries_date ON entries(date);
`

// DB wraps a sql.DB with journal index operations.
type DB struct {
	conn *sql.DB
}

// OpenDB opens (or creates) the SQLite index and applies the schema.
func OpenDB(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("journal: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("journal: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("journal: apply schema: %w", err)
	}
	if err := initFTS(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("journal: apply fts schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// ReplaceDay swaps out every indexed entry for one day within a transaction.
func (db *DB) ReplaceDay(date, sum string, entries []Entry) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("journal: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if _, err := tx.Exec(`
		INSERT INTO days (date, checksum) VALUES (?, ?)
		ON CONFLICT(date) DO UPDATE SET checksum = excluded.checksum
	`, date, sum); err != nil {
		return fmt.Errorf("journal: upsert day: %w", err)
	}

	if err := deleteDayTx(tx, date); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO entries (date, time, project, note, file) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("journal: prepare insert: %w", err)
	}
	defer stmt.Close()
	for _, e := range entries {
		res, err := stmt.Exec(e.Date, e.Time, e.Project, e.Note, e.File)
		if err != nil {
			return fmt.Errorf("journal: insert entry: %w", err)
		}
		id, _ := res.LastInsertId()
		if err := ftsInsert(tx, id, e); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DeleteDay removes a day and its entries from the index.
func (db *DB) DeleteDay(date string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("journal: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := deleteDayTx(tx, date); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM days WHERE date = ?`, date); err != nil {
		return fmt.Errorf("journal: delete day: %w", err)
	}
	return tx.Commit()
}

func deleteDayTx(tx *sql.Tx, date string) error {
	if err := ftsDeleteDay(tx, date); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM entries WHERE date = ?`, date); err != nil {
		return fmt.Errorf("journal: delete entries: %w", err)
	}
	return nil
}

// AllChecksums returns the stored checksum per indexed day.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT date, checksum FROM days`)
	if err != nil {
		return nil, fmt.Errorf("journal: all checksums: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var date, sum string
		if err := rows.Scan(&date, &sum); err != nil {
			return nil, err
		}
		out[date] = sum
	}
	return out, rows.Err()
}

// scanEntries collects Entry rows from a query result.
func scanEntries(rows *sql.Rows) ([]Entry, error) {
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Date, &e.Time, &e.Project, &e.Note, &e.File); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
