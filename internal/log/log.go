// Package log provides centralised audit logging for concord operations.
// Logs are stored in ~/.concord/log/concord-log.db and track all CLI
// commands and MCP tool invocations across projects.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("search:ref", "lookup").
//		Author(cmd.Author()).
//		Target(q).
//		Resolved(r.String()).
//		Count(len(res.Items)).
//		Write(err)
//
//	log.Event("search:search", "search").
//		Author(cmd.Author()).
//		Detail("query", q).
//		Detail("translations", names).
//		Write(err)
//
// The source parameter follows the format "{extension}:{command}" for CLI
// commands or "mcp:{tool}" for MCP tools. Examples: "search:read",
// "corpus:import", "mcp:concord_search".
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jpl-au/concord/internal/store"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source string // e.g., "search:search", "mcp:concord_read"
	Author string // who performed the action
	Action string // verb: search, lookup, read, import, etc.
	Target string // input: query, reference or translation acted on

	// Output fields - populated after operation succeeds
	Resolved string // output: canonical form of Target (if different)
	Count    int    // output: rows returned or written

	// Timing
	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool           // whether operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write]
// to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
//
// The source identifies where the operation originated:
//   - CLI commands: "{extension}:{command}" (e.g., "search:read", "corpus:import")
//   - MCP tools: "mcp:{tool}" (e.g., "mcp:concord_search")
//
// The action describes what operation was performed:
//   - "search", "lookup", "read", "compare", "import", "delete", "list", etc.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Author sets who performed the operation.
//
// For CLI commands, use cmd.Author() which returns the configured author.
// For MCP tools, use "mcp" as the author.
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// Target sets what the operation was asked to act on: a query string, a
// reference, a translation abbreviation or a file path.
func (b *Builder) Target(target string) *Builder {
	b.entry.Target = target
	return b
}

// Resolved sets the canonical form of the target (output), such as a
// reference after book resolution.
//
//	l.Resolved(r.String())  // "1 Corinthians 13:4-8"
func (b *Builder) Resolved(s string) *Builder {
	b.entry.Resolved = s
	return b
}

// Count sets how many rows the operation returned or wrote (output).
func (b *Builder) Count(n int) *Builder {
	b.entry.Count = n
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
//
// Use for operation-specific data that doesn't fit standard fields:
// search flags, translation lists, notices, etc. Can be called multiple
// times to add multiple details.
//
//	log.Event("search:search", "search").
//		Detail("unique", true).
//		Detail("notices", len(res.Notices))
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry to the database, deriving success/failure from err.
//
// If err is nil, the entry is logged as successful.
// If err is non-nil, the entry is logged as failed with the error message.
//
//	res, err := eng.Search(ctx, q, opts)
//	log.Event("search:search", "search").Target(q).Count(len(res.Items)).Write(err)
//	if err != nil {
//		return err
//	}
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open(store.DriverName(), p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetProject sets the project identifier for subsequent log entries.
// The dir should be the absolute path to the .concord directory.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
