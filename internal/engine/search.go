// search.go is the result assembler: classify, run per translation,
// highlight, then collapse, compress and sort.

package engine

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/jpl-au/concord/internal/expand"
	"github.com/jpl-au/concord/internal/query"
	"github.com/jpl-au/concord/internal/store"
)

// SearchOptions controls one search.
type SearchOptions struct {
	// Translations limits the search to these abbreviations. Empty means
	// every enabled translation.
	Translations  []string `json:"translations,omitempty"`
	CaseSensitive bool     `json:"case_sensitive,omitempty"`
	// Unique keeps one row per verse, from the best-ranked translation.
	Unique bool `json:"unique,omitempty"`
	// Compress abbreviates common words in text and highlight.
	Compress bool `json:"compress,omitempty"`
	// Expand also runs synonym and affix variants of a word search.
	Expand bool `json:"expand,omitempty"`
	// Limit truncates the sorted results when positive.
	Limit int `json:"limit,omitempty"`
}

// SearchResult is one verse in one translation.
type SearchResult struct {
	Translation string `json:"translation"`
	Book        string `json:"book"`
	Chapter     int    `json:"chapter"`
	Verse       int    `json:"verse"`
	Text        string `json:"text"`
	Highlighted string `json:"highlighted"`
}

// Ref returns the coordinates of r for seeding a reading window.
func (r SearchResult) Ref() VerseRef {
	return VerseRef{Translation: r.Translation, Book: r.Book, Chapter: r.Chapter, Verse: r.Verse}
}

// Notice reports a problem that removed rows from a result without
// failing it.
type Notice struct {
	Translation string `json:"translation,omitempty"`
	Message     string `json:"message"`
}

// Results is the outcome of a search.
type Results struct {
	Query string     `json:"query"`
	Kind  query.Kind `json:"-"`
	// Range is set for reference lookups.
	Range    *query.VerseRange `json:"range,omitempty"`
	Variants []string          `json:"variants,omitempty"`
	Items    []SearchResult    `json:"items"`
	Notices  []Notice          `json:"notices,omitempty"`
}

// Search classifies q and runs it. The returned error is non-nil only when
// ctx is done; storage faults become notices and the affected translation
// is skipped.
func (e *Engine) Search(ctx context.Context, q string, opts SearchOptions) (Results, error) {
	res := Results{Query: q, Items: []SearchResult{}}
	if strings.TrimSpace(q) == "" {
		return res, nil
	}
	res.Kind = query.Classify(q)

	targets, notices := e.selected(opts.Translations)
	res.Notices = append(res.Notices, notices...)

	var rows []SearchResult
	if res.Kind == query.Reference {
		r, err := query.ParseReference(q, e.registry)
		if err != nil {
			res.Notices = append(res.Notices, Notice{Message: err.Error()})
			return res, nil
		}
		res.Range = &r
		rows = e.lookup(ctx, targets, r, &res)
	} else {
		rows = e.words(ctx, targets, q, opts, &res)
	}
	if err := ctx.Err(); err != nil {
		return Results{Query: q, Kind: res.Kind}, err
	}

	if opts.Unique {
		rows = e.unique(rows)
	}
	if opts.Compress {
		for i := range rows {
			rows[i].Text = Abbreviate(rows[i].Text)
			rows[i].Highlighted = Abbreviate(rows[i].Highlighted)
		}
	}
	e.sort(rows)
	if opts.Limit > 0 && len(rows) > opts.Limit {
		rows = rows[:opts.Limit]
	}
	if rows != nil {
		res.Items = rows
	}
	return res, nil
}

// Lookup resolves a reference and returns its verses. Unlike Search it
// reports parse failures as errors so callers can fall back.
func (e *Engine) Lookup(ctx context.Context, ref string, translations []string) (Results, error) {
	r, err := query.ParseReference(ref, e.registry)
	if err != nil {
		return Results{Query: ref, Kind: query.Reference}, err
	}
	targets, notices := e.selected(translations)
	res := Results{Query: ref, Kind: query.Reference, Range: &r, Notices: notices}
	rows := e.lookup(ctx, targets, r, &res)
	if err := ctx.Err(); err != nil {
		return Results{Query: ref, Kind: query.Reference}, err
	}
	e.sort(rows)
	res.Items = rows
	if res.Items == nil {
		res.Items = []SearchResult{}
	}
	return res, nil
}

// fetch runs fn once per translation on one shared connection and returns
// the rows in translation order. Failures are recorded on res.
func (e *Engine) fetch(ctx context.Context, targets []Translation, res *Results,
	fn func(ctx context.Context, b Backend, t Translation) ([]store.Verse, error)) [][]store.Verse {
	if len(targets) == 0 {
		return nil
	}
	b, err := e.open()
	if err != nil {
		e.logger.Warn("open corpus", "error", err)
		res.Notices = append(res.Notices, Notice{Message: "corpus unavailable: " + err.Error()})
		return nil
	}
	defer b.Close()

	slots := make([][]store.Verse, len(targets))
	errs := make([]error, len(targets))
	var wg sync.WaitGroup
	for i, t := range targets {
		wg.Go(func() {
			slots[i], errs[i] = fn(ctx, b, t)
		})
	}
	wg.Wait()

	for i, err := range errs {
		if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			continue
		}
		e.logger.Warn("translation skipped", "translation", targets[i].Abbrev, "error", err)
		res.Notices = append(res.Notices, Notice{Translation: targets[i].Abbrev, Message: err.Error()})
		slots[i] = nil
	}
	return slots
}

func (e *Engine) lookup(ctx context.Context, targets []Translation, r query.VerseRange, res *Results) []SearchResult {
	slots := e.fetch(ctx, targets, res, func(ctx context.Context, b Backend, t Translation) ([]store.Verse, error) {
		return b.LookupRange(ctx, t.Abbrev, r)
	})
	var rows []SearchResult
	for _, vs := range slots {
		for _, v := range vs {
			rows = append(rows, plain(v))
		}
	}
	return rows
}

// words compiles q (and its variants when expanding), runs every variant
// per translation and highlights each row against the variant it came
// from. A verse matched by several variants keeps its first occurrence.
func (e *Engine) words(ctx context.Context, targets []Translation, q string, opts SearchOptions, res *Results) []SearchResult {
	variants := []string{q}
	if opts.Expand {
		variants = expand.Expand(q, e.expand)
		res.Variants = variants
	}

	type key struct {
		translation, book string
		chapter, verse    int
	}
	seen := make(map[key]bool)
	var rows []SearchResult
	for _, variant := range variants {
		compiled := query.Compile(variant, opts.CaseSensitive)
		if compiled.Empty() {
			continue
		}
		slots := e.fetch(ctx, targets, res, func(ctx context.Context, b Backend, t Translation) ([]store.Verse, error) {
			return b.SearchWords(ctx, t.Abbrev, compiled)
		})
		for _, vs := range slots {
			for _, v := range vs {
				k := key{v.Translation, v.Book, v.Chapter, v.Verse}
				if seen[k] {
					continue
				}
				seen[k] = true
				r := plain(v)
				r.Highlighted = e.highlighter.Highlight(v.Text, variant)
				rows = append(rows, r)
			}
		}
		if ctx.Err() != nil {
			break
		}
	}
	return rows
}

// unique keeps one row per (book, chapter, verse): the one whose
// translation ranks first. The first row seen wins a tie.
func (e *Engine) unique(rows []SearchResult) []SearchResult {
	type key struct {
		book           string
		chapter, verse int
	}
	best := make(map[key]int, len(rows))
	var out []SearchResult
	for _, r := range rows {
		k := key{r.Book, r.Chapter, r.Verse}
		i, ok := best[k]
		if !ok {
			best[k] = len(out)
			out = append(out, r)
			continue
		}
		if e.rank(r.Translation) < e.rank(out[i].Translation) {
			out[i] = r
		}
	}
	return out
}

// sort orders rows by translation rank, canonical book order, chapter and
// verse.
func (e *Engine) sort(rows []SearchResult) {
	slices.SortStableFunc(rows, func(a, b SearchResult) int {
		return cmp.Or(
			cmp.Compare(e.rank(a.Translation), e.rank(b.Translation)),
			cmp.Compare(e.registry.OrderIndex(a.Book), e.registry.OrderIndex(b.Book)),
			cmp.Compare(a.Chapter, b.Chapter),
			cmp.Compare(a.Verse, b.Verse),
		)
	})
}

// plain converts a stored verse into an unhighlighted result.
func plain(v store.Verse) SearchResult {
	return SearchResult{
		Translation: v.Translation,
		Book:        v.Book,
		Chapter:     v.Chapter,
		Verse:       v.Verse,
		Text:        v.Text,
		Highlighted: v.Text,
	}
}
