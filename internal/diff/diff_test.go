package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWords(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want string
	}{
		{"identical", "In the beginning", "In the beginning", "In the beginning"},
		{"replace one", "Jesus wept.", "Jesus cried.", "Jesus [-wept.-] {+cried.+}"},
		{"insert", "the world", "the whole world", "the {+whole+} world"},
		{"delete", "God so loved", "God loved", "God [-so-] loved"},
		{"whitespace normalised", "In  the\tbeginning", "In the beginning", "In the beginning"},
		{"empty old", "", "light", "{+light+}"},
		{"both empty", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Words(tt.a, tt.b))
		})
	}
}

func TestWordsKeepsEveryWord(t *testing.T) {
	a := "For God so loved the world, that he gave his only begotten Son"
	b := "For God loved the world so much that he gave his one and only Son"
	got := Words(a, b)

	strip := func(s, open, close string, keep bool) string {
		var out strings.Builder
		for {
			i := strings.Index(s, open)
			if i < 0 {
				out.WriteString(s)
				break
			}
			j := strings.Index(s[i:], close)
			out.WriteString(s[:i])
			if keep {
				out.WriteString(s[i+len(open) : i+j])
			}
			s = s[i+j+len(close):]
		}
		return strings.Join(strings.Fields(out.String()), " ")
	}

	assert.Equal(t, a, strip(strip(got, InsOpen, InsClose, false), DelOpen, DelClose, true))
	assert.Equal(t, b, strip(strip(got, DelOpen, DelClose, false), InsOpen, InsClose, true))
}

func TestCompute(t *testing.T) {
	r := Compute("Jesus wept.", "Jesus wept.", "KJV", "ASV")
	assert.False(t, r.Changed)
	assert.Equal(t, "--- KJV\n+++ ASV\nJesus wept.\n", r.Format(false))

	r = Compute("Jesus wept.", "Jesus cried.", "KJV", "ASV")
	assert.True(t, r.Changed)
	assert.Contains(t, r.Format(true), "\033[31m[-wept.-]\033[0m")
}
