// Package exporter writes search results to files as plain text, JSON or
// markdown.
package exporter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/jpl-au/concord/internal/engine"
)

// Format selects the export layout.
type Format string

const (
	Text     Format = "text"
	JSON     Format = "json"
	Markdown Format = "markdown"
)

// refWidth is the column the verse text starts at in text exports.
const refWidth = 16

// ErrExists is returned when the destination exists and Force is unset.
var ErrExists = errors.New("file exists")

// Options configures WriteFile.
type Options struct {
	Format Format // empty picks a format from the file extension
	Force  bool   // overwrite an existing file
}

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text", "txt":
		return Text, nil
	case "json":
		return JSON, nil
	case "markdown", "md":
		return Markdown, nil
	}
	return "", fmt.Errorf("unknown export format %q (want text, json or markdown)", s)
}

// FormatFor picks a format from a file name's extension.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON
	case ".md", ".markdown":
		return Markdown
	}
	return Text
}

// Write renders res to w in format f.
func Write(w io.Writer, res engine.Results, f Format) error {
	switch f {
	case JSON:
		return writeJSON(w, res)
	case Markdown:
		return writeMarkdown(w, res)
	default:
		return writeText(w, res)
	}
}

// WriteFile renders res into the file at path. The parent directory must
// exist. Returns the format used.
func WriteFile(path string, res engine.Results, opts Options) (Format, error) {
	f := opts.Format
	if f == "" {
		f = FormatFor(path)
	}
	return f, create(path, opts.Force, func(w io.Writer) error {
		return Write(w, res, f)
	})
}

// create opens path inside its parent directory and hands it to render.
// An existing file is refused unless force is set.
func create(path string, force bool, render func(io.Writer) error) error {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	root, err := os.OpenRoot(dir)
	if err != nil {
		return fmt.Errorf("opening destination: %w", err)
	}
	defer root.Close()

	if !force {
		if _, err := root.Stat(name); err == nil {
			return fmt.Errorf("%s: %w (use --force to overwrite)", path, ErrExists)
		}
	}

	file, err := root.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}
	if err := render(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Reference formats a result's coordinates as "KJV Gen 1:1".
func Reference(r engine.SearchResult) string {
	return fmt.Sprintf("%s %s %d:%d", r.Translation, r.Book, r.Chapter, r.Verse)
}

// Pad right-pads a reference to the text column. References longer than
// the column get a single space.
func Pad(ref string) string {
	n := utf8.RuneCountInString(ref)
	if n >= refWidth {
		return ref + " "
	}
	return ref + strings.Repeat(" ", refWidth-n)
}

func writeText(w io.Writer, res engine.Results) error {
	var b strings.Builder
	b.WriteString("Bible Search Results\n")
	fmt.Fprintf(&b, "Query: %s\n", res.Query)
	fmt.Fprintf(&b, "Results: %d\n", len(res.Items))
	b.WriteString(strings.Repeat("=", 50) + "\n\n")
	for _, r := range res.Items {
		b.WriteString(Pad(Reference(r)))
		b.WriteString(r.Text)
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

type jsonExport struct {
	Query   string                `json:"query"`
	Count   int                   `json:"count"`
	Items   []engine.SearchResult `json:"items"`
	Notices []engine.Notice       `json:"notices,omitempty"`
}

func writeJSON(w io.Writer, res engine.Results) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonExport{
		Query:   res.Query,
		Count:   len(res.Items),
		Items:   res.Items,
		Notices: res.Notices,
	})
}

func writeMarkdown(w io.Writer, res engine.Results) error {
	var b strings.Builder
	b.WriteString("# Bible Search Results\n\n")
	fmt.Fprintf(&b, "**Query:** `%s`  \n", res.Query)
	fmt.Fprintf(&b, "**Results:** %d\n\n", len(res.Items))
	for _, r := range res.Items {
		fmt.Fprintf(&b, "- **%s** %s\n", Reference(r), r.Text)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
