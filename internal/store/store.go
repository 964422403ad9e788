// Package store persists the verse corpus in SQLite and answers the three
// queries the engine needs: coordinate ranges, word predicates and reading
// windows. Consumers depend on the granular interfaces in interfaces.go.
package store

import (
	"encoding/json"
	"time"
)

// Translation is one imported translation.
type Translation struct {
	ID         int64  `json:"-"`
	Abbrev     string `json:"abbrev"`
	Name       string `json:"name"`
	Checksum   string `json:"checksum,omitempty"`
	ImportedAt int64  `json:"imported_at,omitempty"`
	Verses     int64  `json:"verses"`
}

// ImportedTime returns ImportedAt as a time.
func (t Translation) ImportedTime() time.Time {
	return time.Unix(t.ImportedAt, 0).UTC()
}

// Verse is one row as read from the store. Book is the book abbreviation.
type Verse struct {
	Translation string `json:"translation"`
	Book        string `json:"book"`
	Chapter     int    `json:"chapter"`
	Verse       int    `json:"verse"`
	Text        string `json:"text"`
}

// ImportData is a whole translation ready to be written.
type ImportData struct {
	Abbrev   string
	Name     string
	Checksum string
	Verses   []ImportVerse
}

// ImportVerse is one verse of an import. Book is the book abbreviation.
type ImportVerse struct {
	Book    string
	Chapter int
	Verse   int
	Text    string
}

// Stats summarises what the store holds.
type Stats struct {
	Translations int64 `json:"translations"`
	Books        int64 `json:"books"`
	Verses       int64 `json:"verses"`
	Texts        int64 `json:"texts"`
	Orphans      int64 `json:"orphans"`
}

// MarshalJSON encodes a value with indentation for human-readable output.
func MarshalJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
