// log_query.go reads and prunes the audit log for the current project.

package log

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// ErrNotOpen is returned when the audit log could not be opened.
var ErrNotOpen = errors.New("audit log not open")

// Record is a stored entry as returned by [Recent].
type Record struct {
	ID       int64          `json:"id"`
	Start    time.Time      `json:"start"`
	Duration time.Duration  `json:"duration_ns"`
	Source   string         `json:"source"`
	Author   string         `json:"author,omitempty"`
	Action   string         `json:"action"`
	Target   string         `json:"target,omitempty"`
	Resolved string         `json:"resolved,omitempty"`
	Count    int            `json:"count,omitempty"`
	Success  bool           `json:"success"`
	Error    string         `json:"error,omitempty"`
	Detail   map[string]any `json:"detail,omitempty"`
}

func current() (*Logger, error) {
	mu.Lock()
	defer mu.Unlock()
	if global == nil {
		return nil, ErrNotOpen
	}
	return global, nil
}

// Recent returns up to limit entries for the current project that started
// at or after since, newest first. A limit of zero returns every entry.
func Recent(limit int, since time.Time) ([]Record, error) {
	l, err := current()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}
	rows, err := l.db.Query(`
		SELECT id, start, end, source, author, action, target, resolved,
		       count, success, error, detail
		FROM log
		WHERE project = ? AND start >= ?
		ORDER BY start DESC, id DESC
		LIMIT ?`, l.project, since.Unix(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			r          Record
			start, end int64
			count      sql.NullInt64
			success    int
		)
		var author, target, resolved, errMsg, detail sql.NullString
		if err := rows.Scan(&r.ID, &start, &end, &r.Source, &author, &r.Action,
			&target, &resolved, &count, &success, &errMsg, &detail); err != nil {
			return nil, err
		}
		r.Start = time.Unix(start, 0)
		r.Duration = time.Duration(end-start) * time.Second
		r.Author, r.Target, r.Resolved, r.Error = author.String, target.String, resolved.String, errMsg.String
		r.Count = int(count.Int64)
		r.Success = success == 1
		if detail.Valid {
			_ = json.Unmarshal([]byte(detail.String), &r.Detail)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Prune deletes entries for the current project that started before
// cutoff and returns how many were removed.
func Prune(cutoff time.Time) (int64, error) {
	l, err := current()
	if err != nil {
		return 0, err
	}
	res, err := l.db.Exec(`DELETE FROM log WHERE project = ? AND start < ?`, l.project, cutoff.Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Queries returns the distinct targets most recently logged by any of
// sources for the current project, newest first. A target repeated later
// moves to the front rather than appearing twice.
func Queries(limit int, sources ...string) ([]string, error) {
	l, err := current()
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = -1
	}
	args := []any{l.project}
	for _, s := range sources {
		args = append(args, s)
	}
	args = append(args, limit)

	rows, err := l.db.Query(`
		SELECT TRIM(target) AS q
		FROM log
		WHERE project = ? AND source IN (?`+strings.Repeat(", ?", len(sources)-1)+`)
		  AND TRIM(COALESCE(target, '')) != ''
		GROUP BY q
		ORDER BY MAX(id) DESC
		LIMIT ?`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}
