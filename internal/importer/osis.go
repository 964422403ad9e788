package importer

import (
	"bytes"
	"errors"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/jpl-au/concord/internal/books"
	"github.com/jpl-au/concord/internal/store"
)

// Element names are matched with local-name() so documents with and
// without the OSIS namespace parse the same way.
var (
	xpOsisText = xpath.MustCompile(`//*[local-name()='osisText']`)
	xpTitle    = xpath.MustCompile(`//*[local-name()='work']/*[local-name()='title']`)
	xpVerses   = xpath.MustCompile(`//*[local-name()='verse'][@osisID]`)
)

var errNoVerses = errors.New("no verse elements")

// parseOSIS reads verses from OSIS XML. Both container verses
// (<verse osisID="Gen.1.1">text</verse>) and milestone pairs
// (<verse sID="x" osisID="Gen.1.1"/>text<verse eID="x"/>) are handled.
// Notes are not verse text and are left out.
func parseOSIS(data []byte, reg *books.Registry) (*Corpus, error) {
	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	c := &Corpus{}
	if n := xmlquery.QuerySelector(root, xpOsisText); n != nil {
		c.Abbrev = workAbbrev(n.SelectAttr("osisIDWork"))
	}
	if n := xmlquery.QuerySelector(root, xpTitle); n != nil {
		c.Name = collapse(n.InnerText())
	}

	nodes := xmlquery.QuerySelectorAll(root, xpVerses)
	if len(nodes) == 0 {
		return nil, errNoVerses
	}

	for _, n := range nodes {
		// A verse may cover several ids ("Gen.1.1 Gen.1.2"); the first one
		// carries the text.
		id, _, _ := strings.Cut(n.SelectAttr("osisID"), " ")
		bookID, ch, v, ok := splitOSISRef(id)
		if !ok {
			continue
		}

		var text string
		if n.SelectAttr("sID") != "" {
			text = milestoneText(n)
		} else {
			text = textOf(n)
		}
		text = collapse(text)
		if text == "" {
			continue
		}

		book, ok := reg.ByOSIS(bookID)
		if !ok {
			c.Skipped++
			continue
		}
		c.Verses = append(c.Verses, store.ImportVerse{
			Book: book.Abbrev, Chapter: ch, Verse: v, Text: text,
		})
	}
	sortVerses(c.Verses, reg)
	return c, nil
}

// workAbbrev turns an osisIDWork value into a translation abbreviation:
// upper-cased, cut to three letters when longer.
func workAbbrev(work string) string {
	a := strings.ToUpper(strings.TrimSpace(work))
	if len(a) > 3 && isAlpha(a) {
		a = a[:3]
	}
	return a
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// splitOSISRef splits "Gen.1.1" into its parts.
func splitOSISRef(id string) (book string, chapter, verse int, ok bool) {
	parts := strings.Split(id, ".")
	if len(parts) != 3 {
		return "", 0, 0, false
	}
	ch, err := strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, 0, false
	}
	v, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", 0, 0, false
	}
	return parts[0], ch, v, true
}

// milestoneText gathers the siblings after a start milestone up to its
// matching end milestone, or the next verse start.
func milestoneText(start *xmlquery.Node) string {
	sid := start.SelectAttr("sID")
	var b strings.Builder
	for n := start.NextSibling; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode && n.Data == "verse" {
			if n.SelectAttr("eID") == sid || n.SelectAttr("sID") != "" {
				break
			}
		}
		writeText(&b, n)
	}
	return b.String()
}

func textOf(n *xmlquery.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(&b, c)
	}
	return b.String()
}

func writeText(b *strings.Builder, n *xmlquery.Node) {
	switch n.Type {
	case xmlquery.TextNode, xmlquery.CharDataNode:
		b.WriteString(n.Data)
	case xmlquery.ElementNode:
		if n.Data == "note" {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeText(b, c)
		}
	}
}

// collapse trims s and folds whitespace runs to one space.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
