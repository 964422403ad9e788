// Package diff renders word-level differences between two renderings of
// the same verse, used by concord compare.
package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Markers around removed and added words.
const (
	DelOpen  = "[-"
	DelClose = "-]"
	InsOpen  = "{+"
	InsClose = "+}"
)

// Result holds one labelled comparison.
type Result struct {
	Old     string `json:"old"` // old label
	New     string `json:"new"` // new label
	Diff    string `json:"diff"`
	Changed bool   `json:"changed"`
}

// Compute returns the word diff between two texts.
func Compute(oldText, newText, oldLabel, newLabel string) Result {
	d := Words(oldText, newText)
	return Result{
		Old:     oldLabel,
		New:     newLabel,
		Diff:    d,
		Changed: strings.Contains(d, DelOpen) || strings.Contains(d, InsOpen),
	}
}

// Words diffs a and b word by word. Unchanged words are written as they
// are, removed runs as [-...-] and added runs as {+...+}. Whitespace is
// normalised to single spaces.
//
//	Words("God so loved the world", "God loved the whole world")
//	// "God [-so-] loved the {+whole+} world"
func Words(a, b string) string {
	dmp := diffmatchpatch.New()
	// Encode each word as a line so the diff works on whole words.
	ca, cb, words := dmp.DiffLinesToChars(lines(a), lines(b))
	d := dmp.DiffMain(ca, cb, false)
	d = dmp.DiffCharsToLines(d, words)

	parts := make([]string, 0, len(d))
	for _, op := range d {
		text := strings.Join(strings.Fields(op.Text), " ")
		if text == "" {
			continue
		}
		switch op.Type {
		case diffmatchpatch.DiffDelete:
			parts = append(parts, DelOpen+text+DelClose)
		case diffmatchpatch.DiffInsert:
			parts = append(parts, InsOpen+text+InsClose)
		default:
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

func lines(s string) string {
	f := strings.Fields(s)
	if len(f) == 0 {
		return ""
	}
	return strings.Join(f, "\n") + "\n"
}

// Colourise adds ANSI colours to the change markers.
func Colourise(d string) string {
	const (
		red   = "\033[31m"
		green = "\033[32m"
		reset = "\033[0m"
	)
	r := strings.NewReplacer(
		DelOpen, red+DelOpen, DelClose, DelClose+reset,
		InsOpen, green+InsOpen, InsClose, InsClose+reset,
	)
	return r.Replace(d)
}

// Format returns the diff with a header naming both sides.
func (r Result) Format(colour bool) string {
	header := fmt.Sprintf("--- %s\n+++ %s\n", r.Old, r.New)
	if colour {
		return header + Colourise(r.Diff) + "\n"
	}
	return header + r.Diff + "\n"
}
