// Package record persists correction records to a SQLite database so that
// audits of the same page can be compared across runs.
package record

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/readwell/readwell/internal/colour"
	"github.com/readwell/readwell/internal/engine"
	"github.com/readwell/readwell/internal/host"
)

// Schema for the corrections table. Applied by Open.
const Schema = `
CREATE TABLE IF NOT EXISTS corrections (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	url TEXT NOT NULL,
	element TEXT NOT NULL,
	original TEXT NOT NULL,
	corrected TEXT NOT NULL,
	contrast REAL NOT NULL,
	timestamp INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_corrections_url ON corrections(url);
CREATE INDEX IF NOT EXISTS idx_corrections_ts ON corrections(timestamp);
`

// Stored is one persisted correction row.
type Stored struct {
	URL       string
	Element   host.ElementID
	Original  colour.RGB
	Corrected colour.RGB
	Contrast  float64
	Timestamp time.Time
}

// Store wraps a SQLite database holding correction history.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the
// schema. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("record: open %s: %w", path, err)
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("record: init schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes every record from a completed pass under the given URL.
// Rows go in a single transaction so a partial pass never persists.
func (s *Store) Save(ctx context.Context, url string, records *engine.Records) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("record: begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO corrections (url, element, original, corrected, contrast, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("record: prepare: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records.All() {
		_, err := stmt.ExecContext(ctx,
			url,
			string(rec.Element),
			rec.Original.Hex(),
			rec.Corrected.Hex(),
			rec.Contrast,
			rec.Timestamp.UnixMilli(),
		)
		if err != nil {
			return fmt.Errorf("record: insert %s: %w", rec.Element, err)
		}
	}
	return tx.Commit()
}

// ForURL returns stored corrections for a URL, newest first.
func (s *Store) ForURL(ctx context.Context, url string) ([]Stored, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT element, original, corrected, contrast, timestamp
		FROM corrections WHERE url = ? ORDER BY timestamp DESC, id DESC`, url)
	if err != nil {
		return nil, fmt.Errorf("record: query %s: %w", url, err)
	}
	defer rows.Close()

	var out []Stored
	for rows.Next() {
		var (
			st                  Stored
			original, corrected string
			ts                  int64
		)
		if err := rows.Scan(&st.Element, &original, &corrected, &st.Contrast, &ts); err != nil {
			return nil, fmt.Errorf("record: scan: %w", err)
		}
		st.URL = url
		st.Timestamp = time.UnixMilli(ts)
		if st.Original, err = parseHex(original); err != nil {
			return nil, fmt.Errorf("record: row for %s: %w", st.Element, err)
		}
		if st.Corrected, err = parseHex(corrected); err != nil {
			return nil, fmt.Errorf("record: row for %s: %w", st.Element, err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// Count returns the number of stored corrections across all URLs.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM corrections`).Scan(&n)
	return n, err
}

func parseHex(s string) (colour.RGB, error) {
	layer, err := colour.ParseCSS(s)
	if err != nil {
		return colour.RGB{}, err
	}
	return layer.Colour, nil
}
