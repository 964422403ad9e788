// sqlite_ops.go provides SQLite connection management and low-level operations.
//
// The driver itself is registered in driver_purego.go or driver_cgo.go
// depending on the cgo_sqlite build tag; this file only refers to it by
// DriverName.
//
// WAL mode lets the MCP server read while an import writes. The 5-second
// busy timeout avoids "database is locked" during concurrent access without
// waiting forever on a stuck connection.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLiteStore implements Store on a SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// DriverName returns the database/sql driver this build uses.
func DriverName() string { return driverName }

// Open opens the SQLite database file at path. The caller should call Close
// on the returned store.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	pragmas := []struct{ stmt, what string }{
		{`PRAGMA journal_mode=WAL`, "setting WAL mode"},
		{`PRAGMA busy_timeout=5000`, "setting busy timeout"},
		// With WAL, NORMAL is safe against corruption and much faster than FULL.
		{`PRAGMA synchronous=NORMAL`, "setting synchronous mode"},
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p.stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p.what, err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// Init creates tables and indexes if they don't exist and seeds the
// canonical books. Safe to call multiple times.
func (s *SQLiteStore) Init() error {
	if err := execSchema(s.db); err != nil {
		return err
	}
	return seedBooks(s.db)
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying connection.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// scanner abstracts sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanVerse(sc scanner) (Verse, error) {
	var v Verse
	err := sc.Scan(&v.Translation, &v.Book, &v.Chapter, &v.Verse, &v.Text)
	return v, err
}

// scanVerses drains rows into a slice.
func scanVerses(rows *sql.Rows) ([]Verse, error) {
	var out []Verse
	for rows.Next() {
		v, err := scanVerse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan verse: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func scanTranslation(sc scanner) (Translation, error) {
	var t Translation
	err := sc.Scan(&t.ID, &t.Abbrev, &t.Name, &t.Checksum, &t.ImportedAt, &t.Verses)
	return t, err
}

// scanOneTranslation converts sql.ErrNoRows to ErrNotFound.
func scanOneTranslation(row *sql.Row) (*Translation, error) {
	t, err := scanTranslation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan translation: %w", err)
	}
	return &t, nil
}

// Tx executes fn within a database transaction. fn's error rolls back;
// success commits. Rollback is deferred to cover panics and early returns.
//
//	err := s.Tx(ctx, func(tx *sql.Tx) error {
//	    if _, err := tx.ExecContext(ctx, `DELETE ...`); err != nil {
//	        return err  // triggers rollback
//	    }
//	    return nil  // triggers commit
//	})
func (s *SQLiteStore) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
