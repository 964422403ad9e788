package highlight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHighlight(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		query string
		want  string
	}{
		{"negated term still marked", "God is love, not hate", "love AND !hate", "God is [love], not [hate]"},
		{"lazy star", "beloved", "lov*", "be[lov]ed"},
		{"star spans words", "In the beginning", "in*ing", "[In the beginning]"},
		{"single char wildcard by word", "they live in love", "l?ve", "they [live] in [love]"},
		{"single char wildcard apostrophe", "the lord's house", "lord?s", "the [lord's] house"},
		{"single char wildcard skips earlier repeat", "ab zz d ab", "d?ab", "ab zz d [ab]"},
		{"single char wildcard word found inside match", "the lord and thy lord", "y?lord", "the lord and thy [lord]"},
		{"whole word", "Jesus wept", "wept", "Jesus [wept]"},
		{"whole word case-insensitive", "The LORD is my shepherd", "lord", "The [LORD] is my shepherd"},
		{"substring fallback", "In the beginning God", "begin", "In the [beginning] God"},
		{"short term whole word", "lo, the star", "lo", "[lo], the star"},
		{"short term never inside words", "the beloved maybe", "be", "the beloved maybe"},
		{"phrase", "The LORD is my shepherd; the Lord", `"the lord"`, "[The LORD] is my shepherd; [the Lord]"},
		{"joiners ignored", "faith or hope", "faith OR hope", "[faith] or [hope]"},
		{"no match", "Jesus wept", "love", "Jesus wept"},
		{"unicode offsets", "naïve faith", "faith", "naïve [faith]"},
		{"unclosed quote", `say "peace`, `"peace`, `say "[peace]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Highlight(tt.text, tt.query))
		})
	}
}

func TestHighlightEmptyQuery(t *testing.T) {
	for _, text := range []string{"", "In the beginning", "naïve [x]"} {
		assert.Equal(t, text, Highlight(text, ""))
		assert.Equal(t, text, Highlight(text, "   "))
		assert.Equal(t, text, Highlight(text, "AND OR"))
	}
}

func TestHighlightOverlapFirstDiscoveredWins(t *testing.T) {
	// Both candidates start at 0; the one found first is kept.
	assert.Equal(t, "[love]", Highlight("love", "love lov*"))
	assert.Equal(t, "[lov]e", Highlight("love", "lov* love"))
}

func TestHighlightLaterSpanBlocksEarlier(t *testing.T) {
	// "God is" starts before "is love"; scanning from the end keeps the later one.
	assert.Equal(t, "God [is love]", Highlight("God is love", `"God is" "is love"`))
}

func TestHighlightCustomDelimiters(t *testing.T) {
	h := New("<b>", "</b>")
	assert.Equal(t, "God is <b>love</b>", h.Highlight("God is love", "love"))

	d := New("", "")
	assert.Equal(t, DefaultOpen, d.Open)
	assert.Equal(t, DefaultClose, d.Close)
}

func TestSpans(t *testing.T) {
	got := Spans("love and hate", "hate love")
	require.Len(t, got, 2)
	assert.Equal(t, Span{Start: 0, End: 4, Text: "love"}, got[0])
	assert.Equal(t, Span{Start: 9, End: 13, Text: "hate"}, got[1])
}

func TestHighlightProperties(t *testing.T) {
	texts := []string{
		"In the beginning God created the heaven and the earth.",
		"And God said, Let there be light: and there was light.",
		"For God so loved the world, that he gave his only begotten Son",
		"Charity suffereth long, and is kind; charity envieth not",
		"The LORD is my shepherd; I shall not want.",
		"Jesus wept.",
	}
	queries := []string{
		"god", "the", "light AND dark", `"the world"`, "lov*", "l?ve", "be*", "s?all",
		"char* OR kind", "!want", "the heaven earth", "a", "in", "th?", "*", "?",
		`"god" "god so"`, "e", "LORD shepherd", "wo*d",
	}
	for _, text := range texts {
		for _, q := range queries {
			spans := Spans(text, q)
			for i := 1; i < len(spans); i++ {
				assert.LessOrEqual(t, spans[i-1].End, spans[i].Start, "%q %q", text, q)
			}
			for _, s := range spans {
				assert.Less(t, s.Start, s.End)
			}

			out := Highlight(text, q)
			stripped := strings.NewReplacer("[", "", "]", "").Replace(out)
			assert.Equal(t, text, stripped, "%q %q", text, q)
			assert.Equal(t, len(spans), strings.Count(out, "["), "%q %q", text, q)
		}
	}
}
