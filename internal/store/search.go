// search.go translates a compiled word query into SQL.
//
// Each condition becomes one predicate. Case-insensitive conditions use
// LIKE over lowered text; case-sensitive ones use GLOB because SQLite's
// LIKE ignores ASCII case regardless of the pattern. Predicates are nested
// strictly left to right so "a OR b AND c" reads as "(a OR b) AND c".

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jpl-au/concord/internal/query"
)

// SearchWords returns the verses of one translation satisfying q, in
// canonical book order. An empty query matches nothing.
func (s *SQLiteStore) SearchWords(ctx context.Context, translation string, q query.Compiled) ([]Verse, error) {
	if q.Empty() {
		return nil, nil
	}

	where, params := whereClause(q)
	args := make([]any, 0, len(params)+1)
	args = append(args, translation)
	for _, p := range params {
		args = append(args, p)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT `+verseCols+` `+verseJoin+`
		WHERE t.abbreviation = ? AND (`+where+`)
		ORDER BY b.order_index, v.chapter, v.verse_number`, args...)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", translation, err)
	}
	defer rows.Close()
	return scanVerses(rows)
}

// whereClause renders the conditions of q as a left-nested boolean
// expression and returns the bind parameters in placeholder order.
func whereClause(q query.Compiled) (string, []string) {
	params := make([]string, 0, len(q.Conditions))
	var b strings.Builder
	for i, cond := range q.Conditions {
		pred, param := predicate(cond)
		params = append(params, param)
		if i == 0 {
			b.WriteString(pred)
			continue
		}
		joiner := query.And
		if q.Joiners[i-1] == query.Or {
			joiner = query.Or
		}
		prev := b.String()
		b.Reset()
		fmt.Fprintf(&b, "(%s) %s %s", prev, joiner, pred)
	}
	return b.String(), params
}

func predicate(cond query.Condition) (string, string) {
	pred, param := `LOWER(vt.text) LIKE LOWER(?)`, cond.Pattern
	if cond.CaseSensitive {
		pred, param = `vt.text GLOB ?`, likeToGlob(cond.Pattern)
	}
	if cond.Negated {
		pred = "NOT (" + pred + ")"
	}
	return pred, param
}

// likeToGlob converts a LIKE pattern to GLOB syntax, bracketing characters
// GLOB would otherwise treat as wildcards.
func likeToGlob(p string) string {
	var b strings.Builder
	for _, r := range p {
		switch r {
		case '%':
			b.WriteByte('*')
		case '_':
			b.WriteByte('?')
		case '*', '?', '[':
			b.WriteByte('[')
			b.WriteRune(r)
			b.WriteByte(']')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
