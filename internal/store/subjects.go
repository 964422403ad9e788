// subjects.go implements named verse collections.
//
// A subject keeps a snapshot of each verse's text at the time it was added
// so a collection survives the removal or reimport of its translation.
// Verses are ordered by insertion; a verse is held at most once per
// translation within a subject.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Subject is a named collection of verses.
type Subject struct {
	ID        int64  `json:"-"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"created_at"`
	Verses    int64  `json:"verses"`
}

// SubjectVerse is one verse held by a subject.
type SubjectVerse struct {
	ID int64 `json:"id"`
	Verse
	Comment string `json:"comment,omitempty"`
}

// CreateSubject returns the subject called name, creating it when it does
// not exist. created reports whether a new row was written.
func (s *SQLiteStore) CreateSubject(ctx context.Context, name string) (*Subject, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, ErrSubjectName
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO subjects (name, created_at) VALUES (?, ?)`, name, time.Now().Unix())
	if err != nil {
		return nil, false, fmt.Errorf("create subject %s: %w", name, err)
	}
	n, _ := res.RowsAffected()
	sub, err := s.Subject(ctx, name)
	if err != nil {
		return nil, false, err
	}
	return sub, n > 0, nil
}

// Subject returns the named subject or ErrSubjectNotFound.
func (s *SQLiteStore) Subject(ctx context.Context, name string) (*Subject, error) {
	var sub Subject
	err := s.db.QueryRowContext(ctx, `SELECT s.id, s.name, s.created_at,
			(SELECT COUNT(*) FROM subject_verses sv WHERE sv.subject_id = s.id)
		FROM subjects s WHERE s.name = ?`, strings.TrimSpace(name)).
		Scan(&sub.ID, &sub.Name, &sub.CreatedAt, &sub.Verses)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSubjectNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("find subject %s: %w", name, err)
	}
	return &sub, nil
}

// Subjects returns every subject ordered by name.
func (s *SQLiteStore) Subjects(ctx context.Context) ([]Subject, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT s.id, s.name, s.created_at,
			(SELECT COUNT(*) FROM subject_verses sv WHERE sv.subject_id = s.id)
		FROM subjects s ORDER BY s.name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	defer rows.Close()

	var out []Subject
	for rows.Next() {
		var sub Subject
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.CreatedAt, &sub.Verses); err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

// DeleteSubject removes a subject and its verses. Returns the number of
// verses removed.
func (s *SQLiteStore) DeleteSubject(ctx context.Context, name string) (int64, error) {
	sub, err := s.Subject(ctx, name)
	if err != nil {
		return 0, err
	}
	var removed int64
	err = s.Tx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM subject_verses WHERE subject_id = ?`, sub.ID)
		if err != nil {
			return fmt.Errorf("delete subject verses: %w", err)
		}
		removed, _ = res.RowsAffected()
		if _, err := tx.ExecContext(ctx, `DELETE FROM subjects WHERE id = ?`, sub.ID); err != nil {
			return fmt.Errorf("delete subject: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// AddSubjectVerses appends verses to a subject after its last verse.
// Verses the subject already holds for the same translation are skipped.
// Returns the number added.
func (s *SQLiteStore) AddSubjectVerses(ctx context.Context, name string, verses []Verse) (int64, error) {
	sub, err := s.Subject(ctx, name)
	if err != nil {
		return 0, err
	}
	var added int64
	err = s.Tx(ctx, func(tx *sql.Tx) error {
		var next int64
		if err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(order_index), 0) + 1 FROM subject_verses WHERE subject_id = ?`,
			sub.ID).Scan(&next); err != nil {
			return fmt.Errorf("next order index: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO subject_verses
			(subject_id, translation, book, chapter, verse, text, order_index)
			VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare subject verse insert: %w", err)
		}
		defer stmt.Close()

		for _, v := range verses {
			res, err := stmt.ExecContext(ctx, sub.ID, v.Translation, v.Book, v.Chapter, v.Verse, v.Text, next)
			if err != nil {
				return fmt.Errorf("add %s %s %d:%d: %w", v.Translation, v.Book, v.Chapter, v.Verse, err)
			}
			if n, _ := res.RowsAffected(); n > 0 {
				added++
				next++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}

// SubjectVerses returns a subject's verses in the order they were added.
func (s *SQLiteStore) SubjectVerses(ctx context.Context, name string) ([]SubjectVerse, error) {
	sub, err := s.Subject(ctx, name)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, translation, book, chapter, verse, text, comment
		FROM subject_verses WHERE subject_id = ? ORDER BY order_index`, sub.ID)
	if err != nil {
		return nil, fmt.Errorf("list subject verses: %w", err)
	}
	defer rows.Close()

	var out []SubjectVerse
	for rows.Next() {
		var sv SubjectVerse
		if err := rows.Scan(&sv.ID, &sv.Translation, &sv.Book, &sv.Chapter, &sv.Verse.Verse, &sv.Text, &sv.Comment); err != nil {
			return nil, fmt.Errorf("scan subject verse: %w", err)
		}
		out = append(out, sv)
	}
	return out, rows.Err()
}

// RemoveSubjectVerse drops one verse from a subject by its id.
func (s *SQLiteStore) RemoveSubjectVerse(ctx context.Context, name string, id int64) error {
	return s.updateSubjectVerse(ctx, name, id,
		`DELETE FROM subject_verses WHERE id = ? AND subject_id = ?`)
}

// CommentSubjectVerse sets the comment on one verse of a subject. An empty
// comment clears it.
func (s *SQLiteStore) CommentSubjectVerse(ctx context.Context, name string, id int64, comment string) error {
	return s.updateSubjectVerse(ctx, name, id,
		`UPDATE subject_verses SET comment = ? WHERE id = ? AND subject_id = ?`, strings.TrimSpace(comment))
}

// updateSubjectVerse runs stmt with args followed by the verse and subject
// ids, returning ErrSubjectVerseNotFound when no row matched.
func (s *SQLiteStore) updateSubjectVerse(ctx context.Context, name string, id int64, stmt string, args ...any) error {
	sub, err := s.Subject(ctx, name)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, stmt, append(args, id, sub.ID)...)
	if err != nil {
		return fmt.Errorf("update subject verse %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s #%d", ErrSubjectVerseNotFound, sub.Name, id)
	}
	return nil
}

// SubjectVersesFor counts subject verses drawn from a translation.
func (s *SQLiteStore) SubjectVersesFor(ctx context.Context, translation string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM subject_verses WHERE UPPER(translation) = UPPER(?)`, translation).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count subject verses for %s: %w", translation, err)
	}
	return n, nil
}
