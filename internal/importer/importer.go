// Package importer loads translation files into the verse store.
//
// Two source shapes are understood: the JSON export layout
// (translation_info plus books/chapters/verses maps) and OSIS XML. Either
// may be xz-compressed. Each file is identified by a blake3 checksum of its
// bytes on disk so that importing the same file twice is a no-op.
package importer

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"

	"github.com/jpl-au/concord/internal/books"
	"github.com/jpl-au/concord/internal/progress"
	"github.com/jpl-au/concord/internal/store"
)

// ErrUnknownFormat is returned for files whose extension names no
// supported format.
var ErrUnknownFormat = errors.New("unknown corpus format")

// Format identifies a source file layout.
type Format string

const (
	FormatJSON Format = "json"
	FormatOSIS Format = "osis"
)

// Options configures Load.
type Options struct {
	Abbrev   string          // overrides the abbreviation found in the file
	Name     string          // overrides the full name found in the file
	Registry *books.Registry // resolves book codes; nil uses books.Default()
}

// Corpus is one translation parsed from a file and ready to import.
type Corpus struct {
	Source   string
	Format   Format
	Abbrev   string
	Name     string
	Checksum string
	Verses   []store.ImportVerse
	Skipped  int // verses whose book code did not resolve
}

// Result reports what Import did with one corpus.
type Result struct {
	Source    string `json:"source"`
	Abbrev    string `json:"abbrev"`
	Written   int64  `json:"written"`
	Skipped   int    `json:"skipped"`
	Unchanged bool   `json:"unchanged,omitempty"`
}

// Target is the slice of the store Import needs.
type Target interface {
	store.Catalog
	store.Writer
}

// DetectFormat names the layout of path from its extension. A trailing .xz
// is looked through. The bool reports whether the file is compressed.
func DetectFormat(path string) (Format, bool, error) {
	name := strings.ToLower(filepath.Base(path))
	compressed := strings.HasSuffix(name, ".xz")
	name = strings.TrimSuffix(name, ".xz")

	switch filepath.Ext(name) {
	case ".json":
		return FormatJSON, compressed, nil
	case ".xml", ".osis":
		return FormatOSIS, compressed, nil
	}
	return "", false, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
}

// Load reads and parses the file at path.
func Load(path string, opts Options) (*Corpus, error) {
	format, compressed, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	data := raw
	if compressed {
		if data, err = decompress(raw); err != nil {
			return nil, fmt.Errorf("decompress %s: %w", path, err)
		}
	}

	reg := opts.Registry
	if reg == nil {
		reg = books.Default()
	}

	var c *Corpus
	switch format {
	case FormatJSON:
		c, err = parseJSON(data, reg)
	case FormatOSIS:
		c, err = parseOSIS(data, reg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	c.Source = path
	c.Format = format
	c.Checksum = Checksum(raw)
	if opts.Abbrev != "" {
		c.Abbrev = opts.Abbrev
	}
	if opts.Name != "" {
		c.Name = opts.Name
	}
	if c.Abbrev == "" {
		c.Abbrev = stem(path)
	}
	c.Abbrev = strings.ToUpper(c.Abbrev)
	return c, nil
}

// Checksum returns the hex blake3 digest of data.
func Checksum(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func decompress(data []byte) ([]byte, error) {
	r, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}

// stem is the upper-cased file name with every extension removed.
func stem(path string) string {
	name := filepath.Base(path)
	if i := strings.IndexByte(name, '.'); i > 0 {
		name = name[:i]
	}
	return strings.ToUpper(name)
}

// Import writes c into t. A translation already imported from identical
// bytes is left alone unless force is set.
func Import(ctx context.Context, t Target, c *Corpus, force bool) (Result, error) {
	res := Result{Source: c.Source, Abbrev: c.Abbrev, Skipped: c.Skipped}

	if !force && c.Checksum != "" {
		existing, err := t.TranslationByChecksum(ctx, c.Checksum)
		switch {
		case err == nil && strings.EqualFold(existing.Abbrev, c.Abbrev):
			res.Unchanged = true
			return res, nil
		case err != nil && !errors.Is(err, store.ErrNotFound):
			return res, err
		}
	}

	n, err := t.ImportTranslation(ctx, store.ImportData{
		Abbrev:   c.Abbrev,
		Name:     c.Name,
		Checksum: c.Checksum,
		Verses:   c.Verses,
	})
	if err != nil {
		return res, fmt.Errorf("import %s: %w", c.Abbrev, err)
	}
	res.Written = n
	return res, nil
}

// Files expands paths into the corpus files they name. Directories are
// scanned one level deep for files with a supported extension; hidden
// entries are skipped. Explicit file arguments are returned as given.
func Files(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}
		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", p, err)
		}
		for _, e := range entries {
			if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
				continue
			}
			if _, _, err := DetectFormat(e.Name()); err == nil {
				out = append(out, filepath.Join(p, e.Name()))
			}
		}
	}
	slices.Sort(out)
	return out, nil
}

// Run loads and imports every file, reporting progress on stderr. It stops
// at the first failure and returns the results gathered so far.
func Run(ctx context.Context, t Target, files []string, opts Options, force bool) ([]Result, error) {
	prog := progress.New("Importing", len(files))
	defer prog.Done()

	results := make([]Result, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		c, err := Load(f, opts)
		if err != nil {
			return results, err
		}
		res, err := Import(ctx, t, c, force)
		if err != nil {
			return results, err
		}
		results = append(results, res)
		prog.Increment()
		prog.Print()
	}
	return results, nil
}
