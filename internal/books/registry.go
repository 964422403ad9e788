// registry.go resolves book names typed by users into canonical books.
//
// All lookup tables are built once in NewRegistry. Resolution tries, in
// order: exact abbreviation, exact full name, the compact numbered form
// ("1samuel"), then a substring scan over full names in canonical order.

package books

import (
	"regexp"
	"slices"
	"strings"
)

// numbered splits "1 sam" / "1sam" into its number and remainder.
var numbered = regexp.MustCompile(`^(\d+)\s*(.+)$`)

// Registry resolves book names. It is safe for concurrent use once built.
type Registry struct {
	books    []Book
	byAbbrev map[string]int
	byName   map[string]int
	byOSIS   map[string]int
	compact  map[string]int
}

// NewRegistry builds a registry over list. Books are kept in Order; entries
// with a zero Order take their position in list.
func NewRegistry(list []Book) *Registry {
	r := &Registry{
		books:    make([]Book, len(list)),
		byAbbrev: make(map[string]int, len(list)),
		byName:   make(map[string]int, len(list)),
		byOSIS:   make(map[string]int, len(list)),
		compact:  make(map[string]int),
	}
	copy(r.books, list)
	for i := range r.books {
		if r.books[i].Order == 0 {
			r.books[i].Order = i + 1
		}
	}
	slices.SortStableFunc(r.books, func(a, b Book) int { return a.Order - b.Order })

	for i, b := range r.books {
		name := strings.ToLower(b.Name)
		r.byAbbrev[strings.ToLower(b.Abbrev)] = i
		r.byName[name] = i
		if b.OSIS != "" {
			r.byOSIS[strings.ToLower(b.OSIS)] = i
		}
		if m := numbered.FindStringSubmatch(name); m != nil {
			r.compact[m[1]+strings.ReplaceAll(m[2], " ", "")] = i
		}
	}
	return r
}

// Default returns a registry over the canonical table.
func Default() *Registry {
	return NewRegistry(Canonical())
}

// Canonicalize resolves input to a book. The second result is false when
// nothing matches.
func (r *Registry) Canonicalize(input string) (Book, bool) {
	key := strings.ToLower(strings.TrimSpace(input))
	if key == "" {
		return Book{}, false
	}
	if i, ok := r.byAbbrev[key]; ok {
		return r.books[i], true
	}
	if i, ok := r.byName[key]; ok {
		return r.books[i], true
	}
	if m := numbered.FindStringSubmatch(key); m != nil {
		if i, ok := r.compact[m[1]+strings.ReplaceAll(m[2], " ", "")]; ok {
			return r.books[i], true
		}
	}
	for _, b := range r.books {
		name := strings.ToLower(b.Name)
		if strings.Contains(name, key) {
			return b, true
		}
	}
	return Book{}, false
}

// ByOSIS returns the book with the given OSIS id (case-insensitive).
func (r *Registry) ByOSIS(id string) (Book, bool) {
	i, ok := r.byOSIS[strings.ToLower(id)]
	if !ok {
		return Book{}, false
	}
	return r.books[i], true
}

// ByAbbrev returns the book with the given primary abbreviation.
func (r *Registry) ByAbbrev(abbrev string) (Book, bool) {
	i, ok := r.byAbbrev[strings.ToLower(abbrev)]
	if !ok {
		return Book{}, false
	}
	return r.books[i], true
}

// OrderIndex returns the canonical position of a book given by full name or
// abbreviation, or UnknownOrder.
func (r *Registry) OrderIndex(book string) int {
	key := strings.ToLower(book)
	if i, ok := r.byName[key]; ok {
		return r.books[i].Order
	}
	if i, ok := r.byAbbrev[key]; ok {
		return r.books[i].Order
	}
	return UnknownOrder
}

// Books returns the registry's books in canonical order.
func (r *Registry) Books() []Book {
	return slices.Clone(r.books)
}

// Len reports how many books the registry holds.
func (r *Registry) Len() int { return len(r.books) }
