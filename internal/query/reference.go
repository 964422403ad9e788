// reference.go turns a coordinate query into a verse range.

package query

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/jpl-au/concord/internal/books"
)

var (
	// ErrNotAReference is returned when the query does not fit the
	// reference grammar at all.
	ErrNotAReference = errors.New("not a verse reference")
	// ErrUnresolvedBook is returned when the book token matches no known
	// book. Callers may retry the input as a word search.
	ErrUnresolvedBook = errors.New("unresolved book")
	// ErrMalformedCoordinate is returned when a chapter or verse number
	// cannot be read as an integer.
	ErrMalformedCoordinate = errors.New("malformed coordinate")
)

// BookResolver canonicalises book names. *books.Registry satisfies it.
type BookResolver interface {
	Canonicalize(input string) (books.Book, bool)
}

// VerseRange is a parsed coordinate query. End defaults to Start. Values are
// not checked against real chapter or verse counts; an out-of-range or
// reversed range simply matches no rows.
type VerseRange struct {
	Book    string `json:"book"` // canonical full name
	Abbrev  string `json:"abbrev"`
	Chapter int    `json:"chapter"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
}

// String formats the range as "Book C:V" or "Book C:V-E".
func (r VerseRange) String() string {
	if r.End != r.Start {
		return fmt.Sprintf("%s %d:%d-%d", r.Book, r.Chapter, r.Start, r.End)
	}
	return fmt.Sprintf("%s %d:%d", r.Book, r.Chapter, r.Start)
}

// ParseReference parses q as a coordinate reference and resolves its book.
func ParseReference(q string, resolver BookResolver) (VerseRange, error) {
	g, err := parseGrammar(q)
	if err != nil {
		return VerseRange{}, fmt.Errorf("%w: %q", ErrNotAReference, q)
	}

	token := g.book()
	book, ok := resolver.Canonicalize(token)
	if !ok {
		return VerseRange{}, fmt.Errorf("%w: %q", ErrUnresolvedBook, token)
	}

	chapter, err := strconv.Atoi(g.Chapter)
	if err != nil {
		return VerseRange{}, fmt.Errorf("%w: chapter %q", ErrMalformedCoordinate, g.Chapter)
	}
	start, err := strconv.Atoi(g.Verse)
	if err != nil {
		return VerseRange{}, fmt.Errorf("%w: verse %q", ErrMalformedCoordinate, g.Verse)
	}
	end := start
	if g.End != "" {
		if end, err = strconv.Atoi(g.End); err != nil {
			return VerseRange{}, fmt.Errorf("%w: verse %q", ErrMalformedCoordinate, g.End)
		}
	}

	return VerseRange{
		Book:    book.Name,
		Abbrev:  book.Abbrev,
		Chapter: chapter,
		Start:   start,
		End:     end,
	}, nil
}
