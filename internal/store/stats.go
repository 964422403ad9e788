// stats.go reports corpus size and removes verses no translation uses.

package store

import (
	"context"
	"fmt"
)

const orphanWhere = `NOT EXISTS (SELECT 1 FROM verse_texts vt WHERE vt.verse_id = verses.id)`

// Stats counts the rows of each table.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx, `SELECT
		(SELECT COUNT(*) FROM translations),
		(SELECT COUNT(*) FROM books),
		(SELECT COUNT(*) FROM verses),
		(SELECT COUNT(*) FROM verse_texts),
		(SELECT COUNT(*) FROM verses WHERE `+orphanWhere+`)`).
		Scan(&st.Translations, &st.Books, &st.Verses, &st.Texts, &st.Orphans)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	return &st, nil
}

// Vacuum deletes orphaned verses and compacts the database file. With
// dryRun it only counts them. Returns the number of orphans.
func (s *SQLiteStore) Vacuum(ctx context.Context, dryRun bool) (int64, error) {
	if dryRun {
		var n int64
		if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM verses WHERE `+orphanWhere).Scan(&n); err != nil {
			return 0, fmt.Errorf("count orphans: %w", err)
		}
		return n, nil
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM verses WHERE `+orphanWhere)
	if err != nil {
		return 0, fmt.Errorf("delete orphans: %w", err)
	}
	n, _ := res.RowsAffected()

	// VACUUM cannot run inside a transaction.
	if _, err := s.db.ExecContext(ctx, `VACUUM`); err != nil {
		return n, fmt.Errorf("vacuum: %w", err)
	}
	return n, nil
}
