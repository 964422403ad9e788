// write.go implements translation import and removal.
//
// An import replaces a translation wholesale inside one transaction: the
// translation row is upserted, its old texts are deleted, and every verse
// is upserted before its text is inserted. Readers on other connections
// see either the old text or the new, never a mix.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ImportTranslation writes d and returns the number of texts written.
func (s *SQLiteStore) ImportTranslation(ctx context.Context, d ImportData) (int64, error) {
	if len(d.Verses) == 0 {
		return 0, ErrEmptyImport
	}
	abbrev := strings.ToUpper(strings.TrimSpace(d.Abbrev))
	if abbrev == "" {
		return 0, fmt.Errorf("import: translation abbreviation is required")
	}
	name := d.Name
	if name == "" {
		name = abbrev
	}

	var written int64
	err := s.Tx(ctx, func(tx *sql.Tx) error {
		bookIDs, err := loadBookIDs(ctx, tx)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `INSERT INTO translations (abbreviation, name, checksum, imported_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(abbreviation) DO UPDATE SET
				name = excluded.name,
				checksum = excluded.checksum,
				imported_at = excluded.imported_at`,
			abbrev, name, d.Checksum, time.Now().Unix()); err != nil {
			return fmt.Errorf("upsert translation %s: %w", abbrev, err)
		}

		var tid int64
		if err := tx.QueryRowContext(ctx, `SELECT id FROM translations WHERE abbreviation = ?`, abbrev).Scan(&tid); err != nil {
			return fmt.Errorf("translation id %s: %w", abbrev, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM verse_texts WHERE translation_id = ?`, tid); err != nil {
			return fmt.Errorf("clear %s: %w", abbrev, err)
		}

		verseStmt, err := tx.PrepareContext(ctx, `INSERT INTO verses (book_id, chapter, verse_number)
			VALUES (?, ?, ?)
			ON CONFLICT(book_id, chapter, verse_number) DO UPDATE SET chapter = excluded.chapter
			RETURNING id`)
		if err != nil {
			return fmt.Errorf("prepare verse insert: %w", err)
		}
		defer verseStmt.Close()

		textStmt, err := tx.PrepareContext(ctx, `INSERT INTO verse_texts (verse_id, translation_id, text)
			VALUES (?, ?, ?)
			ON CONFLICT(verse_id, translation_id) DO UPDATE SET text = excluded.text`)
		if err != nil {
			return fmt.Errorf("prepare text insert: %w", err)
		}
		defer textStmt.Close()

		for _, v := range d.Verses {
			bid, ok := bookIDs[strings.ToLower(v.Book)]
			if !ok {
				return fmt.Errorf("%w: %q", ErrUnknownBook, v.Book)
			}
			var vid int64
			if err := verseStmt.QueryRowContext(ctx, bid, v.Chapter, v.Verse).Scan(&vid); err != nil {
				return fmt.Errorf("verse %s %d:%d: %w", v.Book, v.Chapter, v.Verse, err)
			}
			if _, err := textStmt.ExecContext(ctx, vid, tid, v.Text); err != nil {
				return fmt.Errorf("text %s %d:%d: %w", v.Book, v.Chapter, v.Verse, err)
			}
			written++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}

// loadBookIDs maps lowered abbreviations and names to book row ids.
func loadBookIDs(ctx context.Context, tx *sql.Tx) (map[string]int64, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id, name, abbreviation FROM books`)
	if err != nil {
		return nil, fmt.Errorf("load books: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]int64)
	for rows.Next() {
		var id int64
		var name, abbrev string
		if err := rows.Scan(&id, &name, &abbrev); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		ids[strings.ToLower(abbrev)] = id
		ids[strings.ToLower(name)] = id
	}
	return ids, rows.Err()
}

// DeleteTranslation removes the translation and all of its texts. Verses
// left without any text are kept until Vacuum.
func (s *SQLiteStore) DeleteTranslation(ctx context.Context, abbrev string) (int64, error) {
	var removed int64
	err := s.Tx(ctx, func(tx *sql.Tx) error {
		var tid int64
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM translations WHERE UPPER(abbreviation) = UPPER(?)`, abbrev).Scan(&tid)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("find translation %s: %w", abbrev, err)
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM verse_texts WHERE translation_id = ?`, tid)
		if err != nil {
			return fmt.Errorf("delete texts: %w", err)
		}
		removed, _ = res.RowsAffected()

		if _, err := tx.ExecContext(ctx, `DELETE FROM translations WHERE id = ?`, tid); err != nil {
			return fmt.Errorf("delete translation: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
