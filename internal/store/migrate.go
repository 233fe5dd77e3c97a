package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrSchemaMismatch means the postings table exists but is not a valid
// prefix of the current schema. Exporting to it would corrupt data, so the
// caller must fail loudly rather than write.
var ErrSchemaMismatch = errors.New("postings table schema mismatch")

// Columns added after the first release. They are appended to existing
// tables rather than requiring a rebuild, matching the additive policy of
// the row schema: old rows keep empty values in the new columns.
var addedColumns = []string{"status", "status_reason", "track_match"}

// requiredColumns is the full current row schema, in column order.
var requiredColumns = []string{
	"added_at", "category", "title", "company", "location",
	"date_posted", "date_confidence", "apply_url", "posting_url",
	"source", "hash",
	"status", "status_reason", "track_match",
}

// Migrate brings the database to the current schema. Safe to run on every
// startup.
func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS postings (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  added_at TEXT NOT NULL,
  category TEXT NOT NULL DEFAULT '',
  title TEXT NOT NULL,
  company TEXT NOT NULL,
  location TEXT NOT NULL DEFAULT '',
  date_posted TEXT NOT NULL DEFAULT '',
  date_confidence TEXT NOT NULL DEFAULT 'unknown',
  apply_url TEXT NOT NULL DEFAULT '',
  posting_url TEXT NOT NULL,
  source TEXT NOT NULL DEFAULT '',
  hash TEXT NOT NULL
);
`); err != nil {
		return err
	}

	// A pre-existing table must at least carry the original column set;
	// anything else is not ours to write into.
	for _, col := range requiredColumns[:len(requiredColumns)-len(addedColumns)] {
		if !columnExists(tx, "postings", col) {
			return fmt.Errorf("%w: missing column %q", ErrSchemaMismatch, col)
		}
	}

	// Additive migration for tables created before these columns existed.
	for _, col := range addedColumns {
		if columnExists(tx, "postings", col) {
			continue
		}
		stmt := fmt.Sprintf(`ALTER TABLE postings ADD COLUMN %s TEXT NOT NULL DEFAULT '';`, col)
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_postings_hash
ON postings(hash);
`); err != nil {
		return err
	}

	for _, col := range requiredColumns {
		if !columnExists(tx, "postings", col) {
			return fmt.Errorf("%w: missing column %q", ErrSchemaMismatch, col)
		}
	}

	return tx.Commit()
}

func columnExists(q interface {
	QueryRow(query string, args ...any) *sql.Row
}, table, col string) bool {
	query := fmt.Sprintf(`
SELECT 1
FROM pragma_table_info('%s')
WHERE name = ?
LIMIT 1;
`, table)

	var one int
	err := q.QueryRow(query, col).Scan(&one)
	return err == nil
}
