// Package engine assembles query results across translations.
//
// An Engine is built once from the corpus catalog and the user's
// translation preferences. Each operation (search, reference lookup,
// reading window, compare) opens its own store connection and closes it
// before returning; nothing is held between calls.
//
//	eng, err := engine.Open(ctx, "", "")
//	if err != nil {
//	    return err
//	}
//	res, err := eng.Search(ctx, "love AND !hate", engine.SearchOptions{Unique: true})
package engine

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/jpl-au/concord/internal/books"
	"github.com/jpl-au/concord/internal/config"
	"github.com/jpl-au/concord/internal/expand"
	"github.com/jpl-au/concord/internal/highlight"
	"github.com/jpl-au/concord/internal/repo"
	"github.com/jpl-au/concord/internal/store"
)

// DefaultWindow is the reading window size used when none is given.
const DefaultWindow = 10

// Backend is the part of the store the engine reads through.
type Backend interface {
	store.Catalog
	store.Searcher
	Close() error
}

// Opener returns a fresh store connection for one operation.
type Opener func() (Backend, error)

// PathOpener opens the SQLite corpus at path.
func PathOpener(path string) Opener {
	return func() (Backend, error) {
		s, err := store.Open(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

// Translation is a translation as the engine ranks it.
type Translation struct {
	Abbrev  string `json:"abbrev"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
	Order   int    `json:"order"`
}

// Preference overrides the defaults for one translation. Nil fields keep
// the default.
type Preference struct {
	Enabled *bool
	Order   *int
}

// Options configures New.
type Options struct {
	// Preferences is keyed by translation abbreviation.
	Preferences map[string]Preference
	Highlighter highlight.Highlighter
	Expand      expand.Options
	Window      int
	Logger      *slog.Logger
}

// Engine runs searches against a corpus. It is safe for concurrent use.
type Engine struct {
	open         Opener
	registry     *books.Registry
	translations []Translation
	order        map[string]int
	highlighter  highlight.Highlighter
	expand       expand.Options
	window       int
	logger       *slog.Logger
}

// New loads translations and books through open and applies opts.
//
// Translations default to enabled and ranked by import order (1-based).
// A store without books falls back to the canonical table.
func New(ctx context.Context, open Opener, opts Options) (*Engine, error) {
	b, err := open()
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer b.Close()

	stored, err := b.Translations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}
	bs, err := b.Books(ctx)
	if err != nil {
		return nil, fmt.Errorf("load books: %w", err)
	}

	registry := books.Default()
	if len(bs) > 0 {
		registry = books.NewRegistry(bs)
	}

	e := &Engine{
		open:        open,
		registry:    registry,
		highlighter: opts.Highlighter,
		expand:      opts.Expand,
		window:      opts.Window,
		logger:      opts.Logger,
	}
	if e.highlighter.Open == "" || e.highlighter.Close == "" {
		e.highlighter = highlight.New(e.highlighter.Open, e.highlighter.Close)
	}
	if e.window <= 0 {
		e.window = DefaultWindow
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	e.setTranslations(stored, opts.Preferences)
	return e, nil
}

// Open locates the corpus database, loads config and builds an Engine.
// The db parameter names the database (empty for default); a non-empty
// dir is used instead of walking up from the working directory.
func Open(ctx context.Context, db, dir string) (*Engine, error) {
	path, err := repo.Resolve(db, dir)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return New(ctx, PathOpener(path), OptionsFromConfig(cfg))
}

// OptionsFromConfig maps configuration onto engine options.
func OptionsFromConfig(cfg *config.Config) Options {
	open, close := cfg.Delimiters()
	opts := Options{
		Highlighter: highlight.New(open, close),
		Expand:      expand.Options{Synonyms: cfg.Synonyms(), Affixes: cfg.Affixes()},
		Window:      cfg.Window(),
		Preferences: make(map[string]Preference, len(cfg.Translations)),
	}
	for abbrev, t := range cfg.Translations {
		opts.Preferences[strings.ToUpper(abbrev)] = Preference{Enabled: t.Enabled, Order: t.Order}
	}
	return opts
}

func (e *Engine) setTranslations(stored []store.Translation, prefs map[string]Preference) {
	e.translations = make([]Translation, len(stored))
	for i, t := range stored {
		tr := Translation{Abbrev: t.Abbrev, Name: t.Name, Enabled: true, Order: i + 1}
		if p, ok := lookupPref(prefs, t.Abbrev); ok {
			if p.Enabled != nil {
				tr.Enabled = *p.Enabled
			}
			if p.Order != nil {
				tr.Order = *p.Order
			}
		}
		e.translations[i] = tr
	}
	slices.SortStableFunc(e.translations, func(a, b Translation) int {
		return cmp.Compare(a.Order, b.Order)
	})

	e.order = make(map[string]int, len(e.translations))
	for _, t := range e.translations {
		e.order[t.Abbrev] = t.Order
	}
}

func lookupPref(prefs map[string]Preference, abbrev string) (Preference, bool) {
	if p, ok := prefs[abbrev]; ok {
		return p, true
	}
	for k, p := range prefs {
		if strings.EqualFold(k, abbrev) {
			return p, true
		}
	}
	return Preference{}, false
}

// Translations returns all known translations in rank order.
func (e *Engine) Translations() []Translation {
	return slices.Clone(e.translations)
}

// Registry returns the book registry the engine resolves names with.
func (e *Engine) Registry() *books.Registry {
	return e.registry
}

// translation finds a known translation by abbreviation, ignoring case.
func (e *Engine) translation(abbrev string) (Translation, bool) {
	for _, t := range e.translations {
		if strings.EqualFold(t.Abbrev, abbrev) {
			return t, true
		}
	}
	return Translation{}, false
}

// selected returns the translations to query. With no names it is every
// enabled translation; otherwise the named ones, in rank order, with a
// notice for each unknown name.
func (e *Engine) selected(names []string) ([]Translation, []Notice) {
	if len(names) == 0 {
		var out []Translation
		for _, t := range e.translations {
			if t.Enabled {
				out = append(out, t)
			}
		}
		return out, nil
	}

	want := make(map[string]bool, len(names))
	var notices []Notice
	for _, n := range names {
		t, ok := e.translation(n)
		if !ok {
			notices = append(notices, Notice{Translation: n, Message: "unknown translation"})
			continue
		}
		want[t.Abbrev] = true
	}
	var out []Translation
	for _, t := range e.translations {
		if want[t.Abbrev] {
			out = append(out, t)
		}
	}
	return out, notices
}

// rank returns a translation's sort order; unknown translations sort last.
func (e *Engine) rank(abbrev string) int {
	if o, ok := e.order[abbrev]; ok {
		return o
	}
	return books.UnknownOrder
}
