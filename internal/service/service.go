// Package service defines the query surface shared by the CLI and the MCP
// server. Commands depend on this interface rather than on the engine so
// they can be tested against fakes.
package service

import (
	"context"

	"github.com/jpl-au/concord/internal/books"
	"github.com/jpl-au/concord/internal/engine"
)

// Service answers verse queries across translations.
//
// engine.Open returns the standard implementation:
//
//	svc, err := engine.Open(ctx, "", "")
//	if err != nil {
//	    return err
//	}
//	res, err := svc.Search(ctx, "faith AND hope", engine.SearchOptions{})
type Service interface {
	// Search classifies q as a reference or a word search and runs it
	// against every selected translation. Per-translation failures are
	// reported in Results.Notices; the error is non-nil only when ctx ends.
	Search(ctx context.Context, q string, opts engine.SearchOptions) (engine.Results, error)

	// Lookup resolves a reference such as "John 3:16-18". Parse failures
	// are returned as errors (query.ErrNotAReference, query.ErrUnresolvedBook).
	Lookup(ctx context.Context, ref string, translations []string) (engine.Results, error)

	// ReadWindow returns up to count verses of one chapter starting at
	// verse start. count <= 0 uses the configured window.
	ReadWindow(ctx context.Context, translation, book string, chapter, start, count int) ([]engine.SearchResult, error)

	// ReadFrom is ReadWindow seeded from a result's coordinates.
	ReadFrom(ctx context.Context, ref engine.VerseRef, count int) ([]engine.SearchResult, error)

	// Chapter returns every verse of a chapter.
	Chapter(ctx context.Context, translation, book string, chapter int) ([]engine.SearchResult, error)

	// Compare diffs one reference between two translations.
	Compare(ctx context.Context, ref, a, b string) (engine.Comparison, error)

	// Translations lists known translations in rank order.
	Translations() []engine.Translation

	// Registry resolves book names.
	Registry() *books.Registry
}

var _ Service = (*engine.Engine)(nil)
