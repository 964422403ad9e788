// read.go implements the catalog queries and the two coordinate reads:
// verse ranges and reading windows.

package store

import (
	"context"
	"fmt"

	"github.com/jpl-au/concord/internal/books"
	"github.com/jpl-au/concord/internal/query"
)

// translationCols selects a translation with its verse text count.
const translationCols = `t.id, t.abbreviation, t.name, t.checksum, t.imported_at,
	(SELECT COUNT(*) FROM verse_texts vt WHERE vt.translation_id = t.id)`

// verseCols selects a verse in the column order scanVerse expects.
const verseCols = `t.abbreviation, b.abbreviation, v.chapter, v.verse_number, vt.text`

// verseJoin joins texts to their verse, book and translation.
const verseJoin = `FROM verse_texts vt
	JOIN verses v ON v.id = vt.verse_id
	JOIN books b ON b.id = v.book_id
	JOIN translations t ON t.id = vt.translation_id`

// Translations returns all translations in import order.
func (s *SQLiteStore) Translations(ctx context.Context) ([]Translation, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+translationCols+` FROM translations t ORDER BY t.id`)
	if err != nil {
		return nil, fmt.Errorf("list translations: %w", err)
	}
	defer rows.Close()

	var out []Translation
	for rows.Next() {
		t, err := scanTranslation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan translation: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// TranslationByAbbrev matches the abbreviation case-insensitively.
func (s *SQLiteStore) TranslationByAbbrev(ctx context.Context, abbrev string) (*Translation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+translationCols+` FROM translations t WHERE UPPER(t.abbreviation) = UPPER(?)`, abbrev)
	return scanOneTranslation(row)
}

func (s *SQLiteStore) TranslationByChecksum(ctx context.Context, checksum string) (*Translation, error) {
	if checksum == "" {
		return nil, ErrNotFound
	}
	row := s.db.QueryRowContext(ctx,
		`SELECT `+translationCols+` FROM translations t WHERE t.checksum = ? ORDER BY t.id LIMIT 1`, checksum)
	return scanOneTranslation(row)
}

// Books returns the book table in canonical order.
func (s *SQLiteStore) Books(ctx context.Context) ([]books.Book, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, abbreviation, osis, order_index FROM books ORDER BY order_index, id`)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	var out []books.Book
	for rows.Next() {
		var b books.Book
		if err := rows.Scan(&b.Name, &b.Abbrev, &b.OSIS, &b.Order); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// LookupRange returns the verses of r in one translation.
func (s *SQLiteStore) LookupRange(ctx context.Context, translation string, r query.VerseRange) ([]Verse, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+verseCols+` `+verseJoin+`
		WHERE t.abbreviation = ?
		  AND LOWER(b.name) = LOWER(?)
		  AND v.chapter = ?
		  AND v.verse_number BETWEEN ? AND ?
		ORDER BY v.verse_number`,
		translation, r.Book, r.Chapter, r.Start, r.End)
	if err != nil {
		return nil, fmt.Errorf("lookup %s in %s: %w", r, translation, err)
	}
	defer rows.Close()
	return scanVerses(rows)
}

// Window returns consecutive verses of one chapter.
func (s *SQLiteStore) Window(ctx context.Context, translation, book string, chapter, start, count int) ([]Verse, error) {
	q := `SELECT ` + verseCols + ` ` + verseJoin + `
		WHERE t.abbreviation = ?
		  AND (LOWER(b.name) = LOWER(?) OR LOWER(b.abbreviation) = LOWER(?))
		  AND v.chapter = ?
		  AND v.verse_number >= ?
		ORDER BY v.verse_number`
	args := []any{translation, book, book, chapter, start}
	if count > 0 {
		q += ` LIMIT ?`
		args = append(args, count)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("window %s %s %d:%d: %w", translation, book, chapter, start, err)
	}
	defer rows.Close()
	return scanVerses(rows)
}
