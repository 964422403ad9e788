// tokenize.go splits a word query into terms, phrases and joiners. The
// compiler and the highlighter share it so both see the same tokens.

package query

import (
	"regexp"
	"strings"
)

// tokenPattern keeps a double-quoted span together and otherwise splits on
// whitespace.
var tokenPattern = regexp.MustCompile(`"[^"]*"|\S+`)

// TokenKind says how a token is matched.
type TokenKind int

const (
	// Literal is a plain term matched as a substring.
	Literal TokenKind = iota
	// Phrase is a quoted span matched literally, wildcards included.
	Phrase
	// Wildcard is an unquoted term containing * or ?.
	Wildcard
	// Joiner is AND or OR between two conditions.
	Joiner
)

func (k TokenKind) String() string {
	switch k {
	case Phrase:
		return "phrase"
	case Wildcard:
		return "wildcard"
	case Joiner:
		return "joiner"
	default:
		return "literal"
	}
}

// Token is one unit of a word query. Text has quotes and any leading "!"
// removed; for joiners it is "AND" or "OR".
type Token struct {
	Text    string    `json:"text"`
	Kind    TokenKind `json:"kind"`
	Negated bool      `json:"negated,omitempty"`
}

// Tokenize splits q into tokens.
//
// A "!" at the start of the query, or at the start of any token, switches
// negation on for that term and every term after it. A lone "!" only
// switches it on.
func Tokenize(q string) []Token {
	q = strings.TrimSpace(q)
	negate := false
	if strings.HasPrefix(q, "!") {
		negate = true
		q = strings.TrimSpace(q[1:])
	}

	var tokens []Token
	for _, raw := range tokenPattern.FindAllString(q, -1) {
		if up := strings.ToUpper(raw); up == "AND" || up == "OR" {
			tokens = append(tokens, Token{Text: up, Kind: Joiner})
			continue
		}
		if raw == "!" {
			negate = true
			continue
		}
		if strings.HasPrefix(raw, "!") {
			negate = true
			raw = raw[1:]
		}
		tokens = append(tokens, classifyToken(raw, negate))
	}
	return tokens
}

func classifyToken(raw string, negated bool) Token {
	switch {
	case strings.HasPrefix(raw, `"`) && strings.HasSuffix(raw, `"`):
		text := ""
		if len(raw) >= 2 {
			text = raw[1 : len(raw)-1]
		}
		return Token{Text: text, Kind: Phrase, Negated: negated}
	case strings.ContainsAny(raw, "*?"):
		return Token{Text: raw, Kind: Wildcard, Negated: negated}
	default:
		return Token{Text: raw, Kind: Literal, Negated: negated}
	}
}
