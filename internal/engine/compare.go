// compare.go pairs the verses of one reference across two translations.

package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/jpl-au/concord/internal/diff"
	"github.com/jpl-au/concord/internal/query"
)

// Pair is one verse in both translations. A side missing from the corpus
// has an empty text.
type Pair struct {
	Book    string      `json:"book"`
	Chapter int         `json:"chapter"`
	Verse   int         `json:"verse"`
	A       string      `json:"a"`
	B       string      `json:"b"`
	Diff    diff.Result `json:"diff"`
}

// Comparison is the outcome of Compare.
type Comparison struct {
	Range   query.VerseRange `json:"range"`
	A       string           `json:"a"`
	B       string           `json:"b"`
	Pairs   []Pair           `json:"pairs"`
	Notices []Notice         `json:"notices,omitempty"`
}

// ErrSameTranslation is returned when both sides of a comparison name one
// translation.
var ErrSameTranslation = errors.New("compare needs two different translations")

// Compare looks up ref in translations a and b and diffs each verse.
func (e *Engine) Compare(ctx context.Context, ref, a, b string) (Comparison, error) {
	ta, ok := e.translation(a)
	if !ok {
		return Comparison{}, fmt.Errorf("unknown translation %q", a)
	}
	tb, ok := e.translation(b)
	if !ok {
		return Comparison{}, fmt.Errorf("unknown translation %q", b)
	}
	if ta.Abbrev == tb.Abbrev {
		return Comparison{}, fmt.Errorf("%w: %s", ErrSameTranslation, ta.Abbrev)
	}

	res, err := e.Lookup(ctx, ref, []string{ta.Abbrev, tb.Abbrev})
	if err != nil {
		return Comparison{}, err
	}

	cmp := Comparison{Range: *res.Range, A: ta.Abbrev, B: tb.Abbrev, Notices: res.Notices, Pairs: []Pair{}}
	index := make(map[int]int)
	for _, r := range res.Items {
		i, ok := index[r.Verse]
		if !ok {
			i = len(cmp.Pairs)
			index[r.Verse] = i
			cmp.Pairs = append(cmp.Pairs, Pair{Book: r.Book, Chapter: r.Chapter, Verse: r.Verse})
		}
		switch r.Translation {
		case ta.Abbrev:
			cmp.Pairs[i].A = r.Text
		case tb.Abbrev:
			cmp.Pairs[i].B = r.Text
		}
	}
	for i := range cmp.Pairs {
		p := &cmp.Pairs[i]
		p.Diff = diff.Compute(p.A, p.B, ta.Abbrev, tb.Abbrev)
	}
	// Lookup sorts by translation first.
	slices.SortFunc(cmp.Pairs, func(x, y Pair) int { return x.Verse - y.Verse })
	return cmp, nil
}
