// subject.go renders subject collections.
//
// Clip is the compact listing shown on screen and copied to the clipboard:
// one padded reference per verse with its comment indented beneath. The
// text export spreads each verse over its own block separated by a rule.

package exporter

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/jpl-au/concord/internal/store"
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SubjectFileName is the default export file for a subject, for example
// "Faith_and_Works_export.txt".
func SubjectFileName(name string, f Format) string {
	ext := ".txt"
	switch f {
	case JSON:
		ext = ".json"
	case Markdown:
		ext = ".md"
	}
	base := strings.Trim(unsafeName.ReplaceAllString(strings.TrimSpace(name), "_"), "_")
	if base == "" {
		base = "subject"
	}
	return base + "_export" + ext
}

// SubjectReference formats a subject verse as "KJV Gen 1:1".
func SubjectReference(v store.SubjectVerse) string {
	return fmt.Sprintf("%s %s %d:%d", v.Translation, v.Book, v.Chapter, v.Verse.Verse)
}

func subjectHeader(b *strings.Builder, name string) {
	title := "Subject: " + name
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

// Clip renders the compact listing of a subject.
func Clip(w io.Writer, name string, verses []store.SubjectVerse) error {
	var b strings.Builder
	subjectHeader(&b, name)
	for _, v := range verses {
		b.WriteString(Pad(SubjectReference(v)))
		b.WriteString(v.Text)
		b.WriteByte('\n')
		if v.Comment != "" {
			fmt.Fprintf(&b, "    Comment: %s\n", v.Comment)
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteSubject renders a subject to w in format f.
func WriteSubject(w io.Writer, name string, verses []store.SubjectVerse, f Format) error {
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if verses == nil {
			verses = []store.SubjectVerse{}
		}
		return enc.Encode(map[string]any{"subject": name, "count": len(verses), "verses": verses})
	case Markdown:
		return writeSubjectMarkdown(w, name, verses)
	default:
		return writeSubjectText(w, name, verses)
	}
}

// WriteSubjectFile renders a subject into the file at path. An empty
// format is taken from the file extension.
func WriteSubjectFile(path, name string, verses []store.SubjectVerse, opts Options) (Format, error) {
	f := opts.Format
	if f == "" {
		f = FormatFor(path)
	}
	return f, create(path, opts.Force, func(w io.Writer) error {
		return WriteSubject(w, name, verses, f)
	})
}

func writeSubjectText(w io.Writer, name string, verses []store.SubjectVerse) error {
	var b strings.Builder
	subjectHeader(&b, name)
	for _, v := range verses {
		b.WriteString(SubjectReference(v) + "\n")
		b.WriteString(v.Text + "\n")
		if v.Comment != "" {
			fmt.Fprintf(&b, "\nComments:\n%s\n", v.Comment)
		}
		b.WriteString("\n" + strings.Repeat("-", 50) + "\n\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeSubjectMarkdown(w io.Writer, name string, verses []store.SubjectVerse) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", name)
	for _, v := range verses {
		fmt.Fprintf(&b, "- **%s** %s\n", SubjectReference(v), v.Text)
		if v.Comment != "" {
			fmt.Fprintf(&b, "  > %s\n", v.Comment)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
