// window.go fetches consecutive verses for reading in context.

package engine

import (
	"context"
	"fmt"
)

// VerseRef locates one verse in one translation.
type VerseRef struct {
	Translation string `json:"translation"`
	Book        string `json:"book"`
	Chapter     int    `json:"chapter"`
	Verse       int    `json:"verse"`
}

// ReadWindow returns up to count verses of a chapter at or after start,
// in verse order. Book may be any form the registry resolves; an
// unresolved value is passed through as an abbreviation. A count of zero
// or less uses the configured window.
func (e *Engine) ReadWindow(ctx context.Context, translation, book string, chapter, start, count int) ([]SearchResult, error) {
	if count <= 0 {
		count = e.window
	}
	return e.read(ctx, translation, book, chapter, start, count)
}

// ReadFrom is ReadWindow starting at ref.
func (e *Engine) ReadFrom(ctx context.Context, ref VerseRef, count int) ([]SearchResult, error) {
	return e.ReadWindow(ctx, ref.Translation, ref.Book, ref.Chapter, ref.Verse, count)
}

// Chapter returns a whole chapter.
func (e *Engine) Chapter(ctx context.Context, translation, book string, chapter int) ([]SearchResult, error) {
	return e.read(ctx, translation, book, chapter, 1, 0)
}

func (e *Engine) read(ctx context.Context, translation, book string, chapter, start, count int) ([]SearchResult, error) {
	if t, ok := e.translation(translation); ok {
		translation = t.Abbrev
	}
	name := book
	if b, ok := e.registry.Canonicalize(book); ok {
		name = b.Name
	}

	b, err := e.open()
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer b.Close()

	vs, err := b.Window(ctx, translation, name, chapter, start, count)
	if err != nil {
		return nil, err
	}
	out := make([]SearchResult, len(vs))
	for i, v := range vs {
		out[i] = plain(v)
	}
	return out, nil
}
