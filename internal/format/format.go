// Package format renders query results for the terminal.
//
// Commands pick between the plain forms, which are stable and safe to
// pipe, and the markdown forms, which go through glamour when stdout is a
// terminal.
package format

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/jpl-au/concord/internal/books"
	"github.com/jpl-au/concord/internal/diff"
	"github.com/jpl-au/concord/internal/engine"
	"github.com/jpl-au/concord/internal/exporter"
	"github.com/jpl-au/concord/internal/log"
	"github.com/jpl-au/concord/internal/store"
)

// Style is the glamour style used for terminal rendering.
const Style = "dark"

// Render passes markdown through glamour.
func Render(md string) (string, error) {
	return glamour.Render(md, Style)
}

// Results prints one line per result: the padded reference then the
// highlighted text.
func Results(w io.Writer, items []engine.SearchResult) error {
	for _, r := range items {
		if _, err := fmt.Fprintf(w, "%s%s\n", exporter.Pad(exporter.Reference(r)), r.Highlighted); err != nil {
			return err
		}
	}
	return nil
}

// ResultsMarkdown builds a markdown list of results with highlight spans
// (delimited by open and close) turned bold.
func ResultsMarkdown(items []engine.SearchResult, open, close string) string {
	r := strings.NewReplacer(open, "**", close, "**")
	var b strings.Builder
	for _, it := range items {
		fmt.Fprintf(&b, "- `%s` %s\n", exporter.Reference(it), r.Replace(it.Highlighted))
	}
	return b.String()
}

// Notices prints per-translation warnings, one per line.
func Notices(w io.Writer, notices []engine.Notice) {
	for _, n := range notices {
		if n.Translation != "" {
			fmt.Fprintf(w, "warning: %s: %s\n", n.Translation, n.Message)
			continue
		}
		fmt.Fprintf(w, "warning: %s\n", n.Message)
	}
}

// Window prints consecutive verses as "N text".
func Window(w io.Writer, verses []engine.SearchResult) error {
	for _, v := range verses {
		if _, err := fmt.Fprintf(w, "%3d  %s\n", v.Verse, v.Text); err != nil {
			return err
		}
	}
	return nil
}

// WindowMarkdown builds a reading view with a heading and superscript-style
// verse numbers.
func WindowMarkdown(title string, verses []engine.SearchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	for _, v := range verses {
		fmt.Fprintf(&b, "**%d** %s\n\n", v.Verse, v.Text)
	}
	return b.String()
}

// Translations prints the translation table.
func Translations(w io.Writer, ts []engine.Translation, stored []store.Translation) error {
	verses := make(map[string]store.Translation, len(stored))
	for _, s := range stored {
		verses[s.Abbrev] = s
	}

	fmt.Fprintf(w, "%5s  %-6s  %-7s  %7s  %-10s  %s\n", "ORDER", "ABBREV", "ENABLED", "VERSES", "IMPORTED", "NAME")
	for _, t := range ts {
		s := verses[t.Abbrev]
		enabled := "yes"
		if !t.Enabled {
			enabled = "no"
		}
		imported := "-"
		if s.ImportedAt > 0 {
			imported = time.Unix(s.ImportedAt, 0).Format("2006-01-02")
		}
		if _, err := fmt.Fprintf(w, "%5d  %-6s  %-7s  %7d  %-10s  %s\n",
			t.Order, t.Abbrev, enabled, s.Verses, imported, t.Name); err != nil {
			return err
		}
	}
	return nil
}

// Books prints the canonical book table.
func Books(w io.Writer, bs []books.Book) error {
	for _, b := range bs {
		if _, err := fmt.Fprintf(w, "%2d  %-4s  %-7s  %s\n", b.Order, b.Abbrev, b.OSIS, b.Name); err != nil {
			return err
		}
	}
	return nil
}

// Comparison prints each verse pair as a word diff.
func Comparison(w io.Writer, c engine.Comparison, colour bool) error {
	fmt.Fprintf(w, "--- %s\n+++ %s\n", c.A, c.B)
	for _, p := range c.Pairs {
		d := p.Diff.Diff
		if colour {
			d = diff.Colourise(d)
		}
		if _, err := fmt.Fprintf(w, "%s %d:%d  %s\n", p.Book, p.Chapter, p.Verse, d); err != nil {
			return err
		}
	}
	return nil
}

// Stats prints store row counts.
func Stats(w io.Writer, s *store.Stats) error {
	_, err := fmt.Fprintf(w, "translations: %d\nbooks: %d\nverses: %d\ntexts: %d\norphans: %d\n",
		s.Translations, s.Books, s.Verses, s.Texts, s.Orphans)
	return err
}

// Log prints audit records one per line, newest first.
func Log(w io.Writer, recs []log.Record) error {
	for _, r := range recs {
		status := "ok"
		if !r.Success {
			status = "FAIL " + r.Error
		}
		target := r.Target
		if r.Resolved != "" && r.Resolved != r.Target {
			target += " -> " + r.Resolved
		}
		if _, err := fmt.Fprintf(w, "%s  %-16s %-8s %s  %s\n",
			r.Start.Format(time.DateTime), r.Source, r.Action, target, status); err != nil {
			return err
		}
	}
	return nil
}
