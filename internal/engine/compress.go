package engine

import (
	"strings"
	"unicode"
)

// Ellipsis replaces each abbreviated word.
const Ellipsis = ".."

// abbreviated lists the words Abbreviate drops. Matching ignores case and
// any punctuation attached to the word.
var abbreviated = map[string]bool{
	"and": true, "the": true, "that": true, "unto": true, "upon": true,
	"which": true, "shall": true, "with": true, "from": true, "they": true,
	"them": true, "their": true, "there": true, "where": true, "when": true,
	"what": true, "will": true, "said": true, "came": true, "come": true,
	"went": true, "were": true, "been": true, "have": true, "has": true,
	"had": true,
}

// Abbreviate shortens text by replacing common words with "..". The marker
// abuts its neighbours without spaces, and ", " becomes ",".
//
//	Abbreviate("And God said, Let there be light") == "..God..Let..be light"
func Abbreviate(text string) string {
	var b strings.Builder
	for i, word := range strings.Fields(text) {
		if abbreviated[bareWord(word)] {
			b.WriteString(Ellipsis)
			continue
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(word)
	}
	out := strings.ReplaceAll(b.String(), " "+Ellipsis, Ellipsis)
	out = strings.ReplaceAll(out, Ellipsis+" ", Ellipsis)
	return strings.ReplaceAll(out, ", ", ",")
}

// bareWord lowers word and drops everything but letters, digits and
// underscores.
func bareWord(word string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return unicode.ToLower(r)
		}
		return -1
	}, word)
}
