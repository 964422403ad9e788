// Package expand widens a word query into related queries: synonym
// substitutions and simple literal affix variants. The engine runs every
// variant and merges the rows.
package expand

import (
	"strings"
	"unicode/utf8"

	"github.com/jpl-au/concord/internal/query"
)

// Options selects which expansions apply.
type Options struct {
	Synonyms bool `json:"synonyms"`
	Affixes  bool `json:"affixes"`
}

// Enabled reports whether any expansion is switched on.
func (o Options) Enabled() bool { return o.Synonyms || o.Affixes }

// synonymGroups lists interchangeable words. Each word maps to the other
// members of its group.
var synonymGroups = [][]string{
	{"love", "charity"},
	{"god", "lord"},
	{"spirit", "ghost"},
	{"jesus", "christ"},
	{"sin", "iniquity", "transgression"},
	{"joy", "gladness"},
	{"mercy", "lovingkindness"},
	{"wrath", "anger"},
	{"righteous", "just"},
	{"servant", "bondservant"},
	{"praise", "glorify"},
	{"heaven", "firmament"},
}

var synonyms = buildSynonyms()

func buildSynonyms() map[string][]string {
	m := make(map[string][]string)
	for _, g := range synonymGroups {
		for _, w := range g {
			for _, other := range g {
				if other != w {
					m[w] = append(m[w], other)
				}
			}
		}
	}
	return m
}

var (
	stripSuffixes = []string{"ing", "ed", "s"}
	addSuffixes   = []string{"s", "ed", "ing", "er", "est"}
)

// Expand returns q followed by its variants, without duplicates. Each
// variant replaces a single literal term; phrases, wildcard terms and
// joiners are never rewritten. With no option enabled it returns just q.
func Expand(q string, opts Options) []string {
	out := []string{q}
	if !opts.Enabled() || strings.TrimSpace(q) == "" {
		return out
	}
	seen := map[string]bool{q: true}

	tokens := query.Tokenize(q)
	for i, t := range tokens {
		if t.Kind != query.Literal {
			continue
		}
		for _, alt := range Alternatives(t.Text, opts) {
			variant := make([]query.Token, len(tokens))
			copy(variant, tokens)
			variant[i].Text = alt
			s := render(variant)
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}

// Alternatives returns the replacement words for one term, lower-cased.
func Alternatives(word string, opts Options) []string {
	w := strings.ToLower(word)
	var alts []string
	if opts.Synonyms {
		alts = append(alts, synonyms[w]...)
	}
	if opts.Affixes {
		alts = append(alts, affixes(w)...)
	}

	seen := map[string]bool{w: true}
	out := alts[:0]
	for _, a := range alts {
		if !seen[a] {
			seen[a] = true
			out = append(out, a)
		}
	}
	return out
}

// affixes strips one known suffix from a word longer than three runes and
// adds each suffix to the base. Shorter words have no variants, and
// variants under three runes are dropped since they match almost every
// verse.
func affixes(w string) []string {
	if utf8.RuneCountInString(w) <= 3 {
		return nil
	}
	base := w
	for _, suf := range stripSuffixes {
		if strings.HasSuffix(w, suf) {
			base = strings.TrimSuffix(w, suf)
			break
		}
	}

	var out []string
	for _, v := range append([]string{base}, suffixed(base)...) {
		if v != w && utf8.RuneCountInString(v) > 2 {
			out = append(out, v)
		}
	}
	return out
}

func suffixed(base string) []string {
	out := make([]string, len(addSuffixes))
	for i, suf := range addSuffixes {
		out[i] = base + suf
	}
	return out
}

// render writes tokens back as a query string that tokenizes to the same
// tokens. Negation carries forward, so only its first occurrence needs a
// "!".
func render(tokens []query.Token) string {
	parts := make([]string, 0, len(tokens))
	negated := false
	for _, t := range tokens {
		s := t.Text
		if t.Kind == query.Phrase {
			s = `"` + s + `"`
		}
		if t.Negated && !negated {
			negated = true
			s = "!" + s
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}
