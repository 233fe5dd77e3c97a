package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"internship-engine/internal/dedup"
	"internship-engine/internal/domain"
)

// InsertPostingIgnore appends one posting row unless a row with the same
// fingerprint already exists (idempotent skip via the unique hash index).
// Reports whether a row was actually added.
func InsertPostingIgnore(ctx context.Context, db *sql.DB, p domain.Posting, addedAt time.Time) (added bool, err error) {
	datePosted := ""
	if p.DatePosted != nil {
		datePosted = p.DatePosted.Format("2006-01-02")
	}

	_, err = db.ExecContext(ctx, `
INSERT OR IGNORE INTO postings
  (added_at, category, title, company, location, date_posted, date_confidence,
   apply_url, posting_url, source, hash, status, status_reason, track_match)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		addedAt.Format("2006-01-02"),
		string(p.Category),
		p.Title,
		p.Company,
		p.Location,
		datePosted,
		string(p.DateConfidence),
		p.ApplyURL,
		p.PostingURL,
		p.Source,
		dedup.Fingerprint(p),
		string(p.ActiveStatus),
		p.ActiveReason,
		p.TrackMatch,
	)
	if err != nil {
		return false, fmt.Errorf("insert posting: %w", err)
	}

	// INSERT OR IGNORE doesn't report rows affected reliably across
	// drivers; changes() does.
	var changes int
	if err := db.QueryRowContext(ctx, `SELECT changes();`).Scan(&changes); err != nil {
		return true, nil
	}
	return changes > 0, nil
}

// ExportPostings appends every posting not already present, returning how
// many rows were added. Duplicates (by fingerprint) are skipped silently.
func ExportPostings(ctx context.Context, db *sql.DB, postings []domain.Posting, addedAt time.Time) (int, error) {
	added := 0
	for _, p := range postings {
		ok, err := InsertPostingIgnore(ctx, db, p, addedAt)
		if err != nil {
			return added, err
		}
		if ok {
			added++
		}
	}
	return added, nil
}

// ExportedRow is one persisted posting, read back for listings.
type ExportedRow struct {
	AddedAt        string
	Category       string
	Title          string
	Company        string
	Location       string
	DatePosted     string
	DateConfidence string
	ApplyURL       string
	PostingURL     string
	Source         string
	Hash           string
	Status         string
	StatusReason   string
	TrackMatch     string
}

// ListPostings returns up to limit rows, newest first.
func ListPostings(ctx context.Context, db *sql.DB, limit int) ([]ExportedRow, error) {
	if limit <= 0 {
		limit = 200
	}

	rows, err := db.QueryContext(ctx, `
SELECT added_at, category, title, company, location, date_posted,
       date_confidence, apply_url, posting_url, source, hash,
       status, status_reason, track_match
FROM postings
ORDER BY id DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ExportedRow
	for rows.Next() {
		var r ExportedRow
		if err := rows.Scan(
			&r.AddedAt, &r.Category, &r.Title, &r.Company, &r.Location,
			&r.DatePosted, &r.DateConfidence, &r.ApplyURL, &r.PostingURL,
			&r.Source, &r.Hash, &r.Status, &r.StatusReason, &r.TrackMatch,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
