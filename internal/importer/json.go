package importer

import (
	"cmp"
	"encoding/json"
	"slices"
	"strconv"
	"strings"

	"github.com/jpl-au/concord/internal/books"
	"github.com/jpl-au/concord/internal/store"
)

type jsonCorpus struct {
	Info struct {
		Abbrev string `json:"abbrev"`
		Name   string `json:"name"`
	} `json:"translation_info"`
	Books map[string]jsonBook `json:"books"`
}

type jsonBook struct {
	Name     string                       `json:"name"`
	Chapters map[string]map[string]string `json:"chapters"`
}

// parseJSON reads the books/chapters/verses layout. Chapter and verse keys
// that are not integers are ignored, as are blank verses.
func parseJSON(data []byte, reg *books.Registry) (*Corpus, error) {
	var src jsonCorpus
	if err := json.Unmarshal(data, &src); err != nil {
		return nil, err
	}

	c := &Corpus{Abbrev: src.Info.Abbrev, Name: src.Info.Name}
	for code, b := range src.Books {
		book, ok := reg.ByAbbrev(code)
		if !ok && b.Name != "" {
			book, ok = reg.Canonicalize(b.Name)
		}
		for chKey, verses := range b.Chapters {
			ch, err := strconv.Atoi(chKey)
			if err != nil {
				continue
			}
			for vKey, text := range verses {
				v, err := strconv.Atoi(vKey)
				if err != nil {
					continue
				}
				text = strings.TrimSpace(text)
				if text == "" {
					continue
				}
				if !ok {
					c.Skipped++
					continue
				}
				c.Verses = append(c.Verses, store.ImportVerse{
					Book: book.Abbrev, Chapter: ch, Verse: v, Text: text,
				})
			}
		}
	}
	sortVerses(c.Verses, reg)
	return c, nil
}

// sortVerses puts verses in canonical order so imports insert
// deterministically regardless of map iteration.
func sortVerses(vs []store.ImportVerse, reg *books.Registry) {
	slices.SortFunc(vs, func(a, b store.ImportVerse) int {
		return cmp.Or(
			cmp.Compare(reg.OrderIndex(a.Book), reg.OrderIndex(b.Book)),
			cmp.Compare(a.Chapter, b.Chapter),
			cmp.Compare(a.Verse, b.Verse),
		)
	})
}
