// Package query classifies raw search input and turns it into something the
// store can execute: either a verse range for a coordinate lookup or a
// compiled word query of LIKE patterns.
//
// Reference syntax is handled by a small participle grammar:
//
//	Gen 1:1
//	1 Cor 13:4-8
//	1samuel 3:10
//
// Anything that does not fit the grammar is a word search.
package query

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Kind is the classification of a raw query.
type Kind int

const (
	// WordSearch is free text compiled into pattern conditions.
	WordSearch Kind = iota
	// Reference is a book/chapter/verse coordinate lookup.
	Reference
)

func (k Kind) String() string {
	if k == Reference {
		return "reference"
	}
	return "word"
}

// refLexer keeps whitespace as a token so the grammar can decide where
// spacing is allowed. "Gen 1 :1" must not classify as a reference.
var refLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[A-Za-z]+`},
	{Name: "Punct", Pattern: `[:\-]`},
	{Name: "Whitespace", Pattern: `[ \t\n\r\f\v]+`},
})

// refGrammar matches "<digits>? <letters> <chapter>:<verse>[-<end>]".
type refGrammar struct {
	Number  string `@Int?`
	Space   string `@Whitespace?`
	Name    string `@Ident Whitespace?`
	Chapter string `@Int ":"`
	Verse   string `@Int`
	End     string `( "-" @Int )?`
}

// book reassembles the book token with its original spacing.
func (g *refGrammar) book() string {
	if g.Number == "" {
		return g.Name
	}
	return g.Number + g.Space + g.Name
}

var refParser = participle.MustBuild[refGrammar](
	participle.Lexer(refLexer),
)

// parseGrammar runs the reference grammar over the trimmed query.
func parseGrammar(q string) (*refGrammar, error) {
	return refParser.ParseString("", strings.TrimSpace(q))
}

// Classify reports whether q is a coordinate reference or a word search.
// It never fails; anything the reference grammar rejects is a word search.
func Classify(q string) Kind {
	if strings.TrimSpace(q) == "" {
		return WordSearch
	}
	if _, err := parseGrammar(q); err != nil {
		return WordSearch
	}
	return Reference
}
