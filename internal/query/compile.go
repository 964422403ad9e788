// compile.go turns a word query into LIKE-pattern conditions joined by
// AND/OR. The conditions fold strictly left to right; there is no operator
// precedence and no grouping.

package query

import (
	"regexp"
	"strings"
)

// Boolean joiners between conditions.
const (
	And = "AND"
	Or  = "OR"
)

// Condition is one pattern predicate. Pattern uses the LIKE wire format:
// % for any run of characters, _ for exactly one.
type Condition struct {
	Term          string    `json:"term"`
	Kind          TokenKind `json:"kind"`
	Pattern       string    `json:"pattern"`
	Negated       bool      `json:"negated,omitempty"`
	CaseSensitive bool      `json:"case_sensitive,omitempty"`
}

// Compiled is a word query ready for the store. Joiners[i] sits between
// Conditions[i] and Conditions[i+1].
type Compiled struct {
	Query         string      `json:"query"`
	Conditions    []Condition `json:"conditions"`
	Joiners       []string    `json:"joiners"`
	CaseSensitive bool        `json:"case_sensitive,omitempty"`
}

// Compile builds the conditions for q.
//
// A missing joiner between two terms means AND. Joiners before the first
// term or after the last are dropped, and of several joiners in a row the
// last one wins.
func Compile(q string, caseSensitive bool) Compiled {
	c := Compiled{Query: q, CaseSensitive: caseSensitive}
	pending := ""
	for _, t := range Tokenize(q) {
		if t.Kind == Joiner {
			if len(c.Conditions) > 0 {
				pending = t.Text
			}
			continue
		}
		if len(c.Conditions) > 0 {
			if pending == "" {
				pending = And
			}
			c.Joiners = append(c.Joiners, pending)
		}
		pending = ""
		c.Conditions = append(c.Conditions, Condition{
			Term:          t.Text,
			Kind:          t.Kind,
			Pattern:       likePattern(t),
			Negated:       t.Negated,
			CaseSensitive: caseSensitive,
		})
	}
	return c
}

// likePattern wraps a token as a "contains anywhere" pattern. Phrases are
// taken as typed; other tokens translate * and ? to % and _.
func likePattern(t Token) string {
	if t.Kind == Phrase {
		return "%" + t.Text + "%"
	}
	p := strings.ReplaceAll(t.Text, "*", "%")
	p = strings.ReplaceAll(p, "?", "_")
	return "%" + p + "%"
}

// Params returns the patterns to bind, in condition order.
func (c Compiled) Params() []string {
	out := make([]string, len(c.Conditions))
	for i, cond := range c.Conditions {
		out[i] = cond.Pattern
	}
	return out
}

// Empty reports whether the query produced no conditions.
func (c Compiled) Empty() bool { return len(c.Conditions) == 0 }

// Match evaluates the compiled query against text in Go, folding left to
// right like the SQL the store generates. Case-insensitive matching uses
// Unicode folding where SQLite's LOWER only folds ASCII.
func (c Compiled) Match(text string) bool {
	if c.Empty() {
		return false
	}
	result := c.Conditions[0].Match(text)
	for i, j := range c.Joiners {
		next := c.Conditions[i+1].Match(text)
		if j == Or {
			result = result || next
		} else {
			result = result && next
		}
	}
	return result
}

// Match reports whether text satisfies this single condition.
func (cond Condition) Match(text string) bool {
	return likeRegexp(cond.Pattern, cond.CaseSensitive).MatchString(text) != cond.Negated
}

// likeRegexp converts a LIKE pattern into an anchored regular expression.
func likeRegexp(pattern string, caseSensitive bool) *regexp.Regexp {
	var b strings.Builder
	if !caseSensitive {
		b.WriteString("(?i)")
	}
	b.WriteString("(?s)^")
	for _, r := range pattern {
		switch r {
		case '%':
			b.WriteString(".*")
		case '_':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return regexp.MustCompile(b.String())
}
