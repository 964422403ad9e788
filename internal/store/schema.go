// schema.go defines the SQLite database schema and provides schema execution helpers.
//
// Schema files are embedded from the sql/ directory and executed in alphabetical
// order (hence the numeric prefixes like 001_, 002_). Each file uses
// IF NOT EXISTS so Init is idempotent.

package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jpl-au/concord/internal/books"
)

//go:embed sql/*.sql
var schemas embed.FS

var (
	// ErrNotFound indicates the requested translation does not exist.
	ErrNotFound = errors.New("translation not found")
	// ErrUnknownBook is returned when an import names a book abbreviation
	// the books table does not hold.
	ErrUnknownBook = errors.New("unknown book")
	// ErrEmptyImport is returned when an import carries no verses.
	ErrEmptyImport = errors.New("import has no verses")
	// ErrSubjectNotFound indicates the named subject does not exist.
	ErrSubjectNotFound = errors.New("subject not found")
	// ErrSubjectVerseNotFound indicates a subject holds no verse with the
	// given id.
	ErrSubjectVerseNotFound = errors.New("subject verse not found")
	// ErrSubjectName is returned when a subject name is blank.
	ErrSubjectName = errors.New("subject name is required")
)

// ExecEmbedded executes all .sql files from an embedded filesystem in alphabetical order.
// The dir parameter specifies the directory within the embed.FS to read from.
func ExecEmbedded(db *sql.DB, fsys embed.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("read schema directory: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := dir + "/" + entry.Name()
		data, err := fsys.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if _, err := db.Exec(string(data)); err != nil {
			return fmt.Errorf("exec %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// execSchema executes the embedded core schema files.
func execSchema(db *sql.DB) error {
	return ExecEmbedded(db, schemas, "sql")
}

// seedBooks inserts the canonical books, leaving existing rows alone.
func seedBooks(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO books (name, abbreviation, osis, order_index) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare seed: %w", err)
	}
	defer stmt.Close()

	for _, b := range books.Canonical() {
		if _, err := stmt.Exec(b.Name, b.Abbrev, b.OSIS, b.Order); err != nil {
			return fmt.Errorf("seed %s: %w", b.Name, err)
		}
	}
	return tx.Commit()
}
