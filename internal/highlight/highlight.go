// Package highlight brackets the parts of a verse that a word query matched.
//
// The store only reports which rows matched, never where. Highlight works
// the positions out again from the verse text and the original query string,
// using the same tokens the compiler saw:
//
//   - quoted phrases match case-insensitively anywhere
//   - wildcard terms (* and ?) match as lazy patterns, possibly across words;
//     a term with ? but no * is narrowed to the words inside each match
//   - plain terms prefer whole words, then fall back to words containing the
//     term (terms of one or two characters only match at a word start)
//
// Candidate spans are resolved greedily from the end of the text backwards,
// so no two brackets ever overlap. Offsets are rune offsets.
package highlight

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	"github.com/jpl-au/concord/internal/query"
)

// Default delimiters.
const (
	DefaultOpen  = "["
	DefaultClose = "]"
)

// Span is a half-open [Start, End) rune range and the text it covers.
type Span struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

// Highlighter wraps matched spans in Open and Close.
type Highlighter struct {
	Open  string
	Close string
}

// New returns a Highlighter, using the default delimiter for any empty one.
func New(open, close string) Highlighter {
	if open == "" {
		open = DefaultOpen
	}
	if close == "" {
		close = DefaultClose
	}
	return Highlighter{Open: open, Close: close}
}

// Highlight brackets matches of q in text with "[" and "]".
func Highlight(text, q string) string {
	return New("", "").Highlight(text, q)
}

// Highlight returns text with every resolved span wrapped in the delimiters.
// Text without matches is returned unchanged.
func (h Highlighter) Highlight(text, q string) string {
	runes := []rune(text)
	kept := resolve(candidates(runes, q))
	if len(kept) == 0 {
		return text
	}

	// kept is ordered by descending start, so inserting from the first span
	// onwards never shifts an offset still to be used.
	for _, s := range kept {
		var b []rune
		b = append(b, runes[:s.Start]...)
		b = append(b, []rune(h.Open)...)
		b = append(b, runes[s.Start:s.End]...)
		b = append(b, []rune(h.Close)...)
		b = append(b, runes[s.End:]...)
		runes = b
	}
	return string(runes)
}

// Spans returns the non-overlapping spans Highlight would bracket, in
// ascending order.
func Spans(text, q string) []Span {
	kept := resolve(candidates([]rune(text), q))
	sort.Slice(kept, func(i, j int) bool { return kept[i].Start < kept[j].Start })
	return kept
}

// candidates collects every span any token of q matches, before overlap
// resolution.
func candidates(runes []rune, q string) []Span {
	var spans []Span
	for _, t := range query.Tokenize(q) {
		switch t.Kind {
		case query.Joiner:
			continue
		case query.Phrase:
			if t.Text == "" {
				continue
			}
			spans = append(spans, findAll(compile(regexp2.Escape(t.Text), regexp2.IgnoreCase), runes)...)
		case query.Wildcard:
			spans = append(spans, wildcardSpans(runes, t.Text)...)
		default:
			spans = append(spans, literalSpans(runes, strings.Trim(t.Text, `"`))...)
		}
	}
	return spans
}

// resolve sorts candidates by start, last first, and keeps each one that
// does not overlap a span already kept. Equal starts keep discovery order.
func resolve(cands []Span) []Span {
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].Start > cands[j].Start })
	var kept []Span
	for _, c := range cands {
		if !overlapsAny(c, kept) {
			kept = append(kept, c)
		}
	}
	return kept
}

func overlapsAny(c Span, kept []Span) bool {
	for _, k := range kept {
		if !(c.End <= k.Start || c.Start >= k.End) {
			return true
		}
	}
	return false
}

// literalSpans matches a plain term: whole words first, otherwise words
// containing it. One- and two-character terms only fall back to matches
// anchored at a word start.
func literalSpans(runes []rune, term string) []Span {
	if term == "" {
		return nil
	}
	esc := regexp2.Escape(term)
	if exact := findAll(compile(`\b`+esc+`\b`, regexp2.IgnoreCase), runes); len(exact) > 0 {
		return exact
	}
	if utf8.RuneCountInString(term) <= 2 {
		return findAll(compile(`\b`+esc+`(?=\W|$)`, regexp2.IgnoreCase), runes)
	}
	return findAll(compile(`\b\w*`+esc+`\w*\b`, regexp2.IgnoreCase), runes)
}

// wordPattern picks the words out of a single-character wildcard match.
var wordPattern = regexp2.MustCompile(`\b\w{2,}(?:'[ts])?\b`, regexp2.None)

// wildcardSpans matches a term containing * or ?. A term with ? but no * is
// reported word by word: each word of each match is located again in the
// text, searching from the match's start or the previous hit, whichever
// is later.
func wildcardSpans(runes []rune, term string) []Span {
	re := compile(wildcardExpr(term), regexp2.IgnoreCase)
	matches := findAll(re, runes)
	if strings.Contains(term, "*") || !strings.Contains(term, "?") {
		return matches
	}

	var out []Span
	pos := 0
	for _, m := range matches {
		pos = max(pos, m.Start)
		for _, w := range findAll(wordPattern, []rune(m.Text)) {
			loc := compile(`\b`+regexp2.Escape(w.Text)+`\b`, regexp2.None)
			hit := first(loc, runes[pos:])
			if hit == nil {
				continue
			}
			start := pos + hit.Start
			end := pos + hit.End
			out = append(out, Span{Start: start, End: end, Text: w.Text})
			pos = end
		}
	}
	return out
}

// wildcardExpr translates * to a lazy run and ? to any one character;
// everything else is literal.
func wildcardExpr(term string) string {
	var b strings.Builder
	for _, r := range term {
		switch r {
		case '*':
			b.WriteString(".*?")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp2.Escape(string(r)))
		}
	}
	return b.String()
}

// compile returns nil for an expression regexp2 rejects; findAll treats
// that as no matches.
func compile(expr string, opts regexp2.RegexOptions) *regexp2.Regexp {
	re, err := regexp2.Compile(expr, opts)
	if err != nil {
		return nil
	}
	return re
}

// findAll lists the non-empty matches of re over runes.
func findAll(re *regexp2.Regexp, runes []rune) []Span {
	if re == nil {
		return nil
	}
	var out []Span
	m, err := re.FindRunesMatch(runes)
	for err == nil && m != nil {
		if m.Length > 0 {
			out = append(out, Span{
				Start: m.Index,
				End:   m.Index + m.Length,
				Text:  string(runes[m.Index : m.Index+m.Length]),
			})
		}
		m, err = re.FindNextMatch(m)
	}
	return out
}

// first returns the first non-empty match of re in runes, or nil.
func first(re *regexp2.Regexp, runes []rune) *Span {
	if re == nil {
		return nil
	}
	m, err := re.FindRunesMatch(runes)
	for err == nil && m != nil {
		if m.Length > 0 {
			return &Span{Start: m.Index, End: m.Index + m.Length}
		}
		m, err = re.FindNextMatch(m)
	}
	return nil
}
