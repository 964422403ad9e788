// Package repo provides corpus initialisation and discovery for concord.
//
// A concord repository is a .concord directory holding one or more corpus
// databases: concord.db by default, concord-<name>.db for named corpora
// (for example a second set of translations kept apart). Discovery walks
// up from the working directory like git does, stopping at the first
// .concord directory containing the target database.
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/concord/internal/store"
)

const (
	// Dir is the directory name for the concord repository.
	Dir = ".concord"
	// DBFile is the default database filename.
	DBFile = "concord.db"
)

// DBFileName returns the database filename for a given name.
// Empty name returns the default "concord.db".
// A name like "greek" returns "concord-greek.db".
// A name already ending in ".db" is returned as-is.
func DBFileName(name string) string {
	if name == "" {
		return DBFile
	}
	if strings.HasSuffix(name, ".db") {
		return name
	}
	return dbPrefix + name + ".db"
}

const dbPrefix = "concord-"

// ErrNotInitialised is returned when no concord repository is found.
var ErrNotInitialised = errors.New("concord not initialised (run 'concord init')")

// Init creates .concord and an empty corpus database with the canonical
// books seeded. Config is not written; see "concord config".
//
// Parameters:
//   - force: reinitialise an existing database (its translations are lost)
//   - db: database name (empty for default "concord.db")
//   - local: add database to .gitignore (not committed)
//   - dir: target directory (empty for current directory)
func Init(force bool, db string, local bool, dir string) error {
	if dir == "" {
		dir = "."
	}
	repoDir := filepath.Join(dir, Dir)
	dbPath := filepath.Join(repoDir, DBFileName(db))

	// Check if already exists
	if _, err := os.Stat(dbPath); err == nil {
		if !force {
			return fmt.Errorf("database %s already exists (use --force to reinitialise)", DBFileName(db))
		}
		// Remove existing DB for reinit
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("remove database: %w", err)
		}
	}

	// Create directory
	if err := os.MkdirAll(repoDir, 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	// Create and initialise DB
	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	if err := s.Init(); err != nil {
		return fmt.Errorf("init store: %w", err)
	}

	if err := writeDefaultIgnore(repoDir); err != nil {
		return fmt.Errorf("write gitignore: %w", err)
	}

	// --local only controls whether the database is committed.
	if local {
		if err := IgnoreDB(db, repoDir); err != nil {
			return fmt.Errorf("ignore database: %w", err)
		}
	}

	return nil
}

// Discover walks up the directory tree looking for a .concord database.
// The db parameter specifies which database to find (empty for default).
// Returns the full path to the database if found.
func Discover(db string) (string, error) {
	dbFile := DBFileName(db)
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		dbPath := filepath.Join(dir, Dir, dbFile)
		if _, err := os.Stat(dbPath); err == nil {
			return dbPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}

// Resolve returns the database path for db. A non-empty dir names the
// project directory directly and skips discovery; the database must exist.
func Resolve(db, dir string) (string, error) {
	if dir == "" {
		return Discover(db)
	}
	dbPath := filepath.Join(dir, Dir, DBFileName(db))
	if _, err := os.Stat(dbPath); err != nil {
		return "", fmt.Errorf("%s: %w", dbPath, ErrNotInitialised)
	}
	return dbPath, nil
}

// DiscoverDir finds the .concord directory, walking up the tree.
func DiscoverDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		repoDir := filepath.Join(dir, Dir)
		if info, err := os.Stat(repoDir); err == nil && info.IsDir() {
			return repoDir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}

// DBInfo holds database metadata.
type DBInfo struct {
	Name  string `json:"name,omitempty"` // Short name (empty for default, "greek" for concord-greek.db)
	File  string `json:"file"`           // Filename (concord.db, concord-greek.db)
	Path  string `json:"path"`           // Full path
	Local bool   `json:"local"`          // True if gitignored
}

// ListDBs returns all databases in the .concord directory with their status.
// If dir is empty, discovers the .concord directory from the working directory.
func ListDBs(dir string) ([]DBInfo, error) {
	if dir == "" {
		var err error
		dir, err = DiscoverDir()
		if err != nil {
			return nil, fmt.Errorf("discover .concord directory: %w", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read .concord directory: %w", err)
	}

	var dbs []DBInfo
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), ".db") {
			continue
		}

		// Extract short name from filename
		name := ""
		if e.Name() == DBFile {
			name = ""
		} else if strings.HasPrefix(e.Name(), dbPrefix) {
			name = strings.TrimSuffix(strings.TrimPrefix(e.Name(), dbPrefix), ".db")
		} else {
			continue
		}

		ignored, err := IsIgnored(name, dir)
		if err != nil {
			ignored = false // unreadable .gitignore: treat as shared
		}
		dbs = append(dbs, DBInfo{
			Name:  name,
			File:  e.Name(),
			Path:  filepath.Join(dir, e.Name()),
			Local: ignored,
		})
	}

	return dbs, nil
}
