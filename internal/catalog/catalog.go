// Package catalog records normalization runs in a SQLite database so a
// corpus maintainer can audit what was rewritten and when.
package catalog

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/corpustools/teitidy/core/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	input      TEXT NOT NULL,
	output     TEXT NOT NULL,
	divisions  INTEGER NOT NULL,
	formatted  INTEGER NOT NULL,
	warnings   INTEGER NOT NULL,
	created_at TEXT NOT NULL
);`

// Run is one recorded normalization run.
type Run struct {
	ID        int64
	Input     string
	Output    string
	Divisions int
	Formatted int
	Warnings  int
	CreatedAt time.Time
}

// Catalog is an open run catalog.
type Catalog struct {
	db *sql.DB
}

// Open opens the catalog database at path, creating it and its schema when
// missing.
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "initializing catalog schema")
	}
	return &Catalog{db: db}, nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Record inserts a run and returns its assigned id. CreatedAt defaults to
// the current time when zero.
func (c *Catalog) Record(run Run) (int64, error) {
	created := run.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	res, err := c.db.Exec(
		`INSERT INTO runs (input, output, divisions, formatted, warnings, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.Input, run.Output, run.Divisions, run.Formatted, run.Warnings,
		created.Format(time.RFC3339),
	)
	if err != nil {
		return 0, errors.Wrap(err, "recording run")
	}
	return res.LastInsertId()
}

// Runs returns all recorded runs, most recent first.
func (c *Catalog) Runs() ([]Run, error) {
	rows, err := c.db.Query(
		`SELECT id, input, output, divisions, formatted, warnings, created_at
		 FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "listing runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var created string
		if err := rows.Scan(&r.ID, &r.Input, &r.Output, &r.Divisions,
			&r.Formatted, &r.Warnings, &created); err != nil {
			return nil, errors.Wrap(err, "scanning run")
		}
		r.CreatedAt, err = time.Parse(time.RFC3339, created)
		if err != nil {
			return nil, errors.NewParse("timestamp", "", err.Error())
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
