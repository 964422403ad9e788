// interfaces.go defines the storage abstraction for the verse corpus.
//
// The interfaces are granular so consumers only depend on what they use:
// the engine needs Catalog and Searcher, the importer needs Writer, and
// maintenance commands need Maintainer, and the subject extension needs
// Subjects.

package store

import (
	"context"
	"database/sql"

	"github.com/jpl-au/concord/internal/books"
	"github.com/jpl-au/concord/internal/query"
)

// Catalog lists what the corpus contains.
type Catalog interface {
	// Translations returns every imported translation in import order.
	Translations(ctx context.Context) ([]Translation, error)

	// TranslationByAbbrev returns ErrNotFound when no such translation exists.
	TranslationByAbbrev(ctx context.Context, abbrev string) (*Translation, error)

	// TranslationByChecksum finds a translation imported from identical
	// bytes. Returns ErrNotFound when there is none.
	TranslationByChecksum(ctx context.Context, checksum string) (*Translation, error)

	// Books returns the book table in canonical order.
	Books(ctx context.Context) ([]books.Book, error)
}

// Searcher answers the engine's three read queries. Each call covers one
// translation.
type Searcher interface {
	// LookupRange returns the verses of r in ascending verse order. The
	// book is matched by full name, case-insensitively.
	LookupRange(ctx context.Context, translation string, r query.VerseRange) ([]Verse, error)

	// SearchWords returns every verse satisfying q, in canonical order.
	SearchWords(ctx context.Context, translation string, q query.Compiled) ([]Verse, error)

	// Window returns up to count verses of a chapter starting at verse
	// start. Book may be a full name or an abbreviation. A count of zero or
	// less returns the rest of the chapter.
	Window(ctx context.Context, translation, book string, chapter, start, count int) ([]Verse, error)
}

// Writer replaces translation content.
type Writer interface {
	// ImportTranslation writes d, replacing any earlier text of the same
	// translation. Returns the number of verse texts written.
	ImportTranslation(ctx context.Context, d ImportData) (int64, error)

	// DeleteTranslation removes a translation and its texts. Returns the
	// number of texts removed, or ErrNotFound.
	DeleteTranslation(ctx context.Context, abbrev string) (int64, error)
}

// Maintainer covers housekeeping.
type Maintainer interface {
	// Stats reports row counts.
	Stats(ctx context.Context) (*Stats, error)

	// Vacuum deletes verses no translation has text for and compacts the
	// file. With dryRun it only counts them.
	Vacuum(ctx context.Context, dryRun bool) (int64, error)

	// Checkpoint flushes the WAL into the main database file.
	Checkpoint(ctx context.Context) error
}

// Subjects manages named verse collections.
type Subjects interface {
	// CreateSubject returns the named subject, creating it if needed.
	CreateSubject(ctx context.Context, name string) (*Subject, bool, error)

	// Subject returns ErrSubjectNotFound when no such subject exists.
	Subject(ctx context.Context, name string) (*Subject, error)

	// Subjects returns every subject ordered by name.
	Subjects(ctx context.Context) ([]Subject, error)

	// DeleteSubject removes a subject and its verses.
	DeleteSubject(ctx context.Context, name string) (int64, error)

	// AddSubjectVerses appends verses, skipping ones already held.
	AddSubjectVerses(ctx context.Context, name string, verses []Verse) (int64, error)

	// SubjectVerses returns a subject's verses in insertion order.
	SubjectVerses(ctx context.Context, name string) ([]SubjectVerse, error)

	RemoveSubjectVerse(ctx context.Context, name string, id int64) error
	CommentSubjectVerse(ctx context.Context, name string, id int64, comment string) error

	// SubjectVersesFor counts subject verses taken from a translation.
	SubjectVersesFor(ctx context.Context, translation string) (int64, error)
}

// Store is the full storage interface.
type Store interface {
	Catalog
	Searcher
	Writer
	Maintainer
	Subjects

	// Init creates tables and seeds the canonical book list. Safe to call
	// more than once.
	Init() error

	// Close releases the connection.
	Close() error

	// DB exposes the underlying connection.
	DB() *sql.DB
}
