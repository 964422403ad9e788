// resources.go implements the chapter resource and the concord_read tool,
// which share the reading window.
//
// Resource URIs take the form concord://chapters/{translation}/{book}/{chapter}.
// Book may be a name or abbreviation; spaces are URL-escaped
// ("1%20John").

package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/concord/internal/log"
)

var (
	// ErrInvalidURI indicates a malformed resource URI.
	ErrInvalidURI = errors.New("invalid URI")
	// ErrEmptyChapter is returned when a chapter holds no verses.
	ErrEmptyChapter = errors.New("no verses found")
)

const chapterPrefix = "concord://chapters/"

// chapterURI holds the parts of a chapter resource URI.
type chapterURI struct {
	Translation string
	Book        string
	Chapter     int
}

func parseChapterURI(uri string) (chapterURI, error) {
	rest, ok := strings.CutPrefix(uri, chapterPrefix)
	if !ok {
		return chapterURI{}, fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	parts := strings.Split(rest, "/")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return chapterURI{}, fmt.Errorf("%w: want %s{translation}/{book}/{chapter}", ErrInvalidURI, chapterPrefix)
	}
	book, err := url.PathUnescape(parts[1])
	if err != nil {
		return chapterURI{}, fmt.Errorf("%w: %v", ErrInvalidURI, err)
	}
	ch, err := strconv.Atoi(parts[2])
	if err != nil || ch < 1 {
		return chapterURI{}, fmt.Errorf("%w: invalid chapter %s", ErrInvalidURI, parts[2])
	}
	return chapterURI{Translation: parts[0], Book: book, Chapter: ch}, nil
}

// readChapterResource handles concord://chapters/... resource requests.
func (h *handlers) readChapterResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	svc, errRes := h.service()
	if errRes != nil {
		return nil, errors.New(ErrNotInitialised)
	}
	u, err := parseChapterURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	verses, err := svc.Chapter(ctx, u.Translation, u.Book, u.Chapter)

	log.Event("mcp:chapter", "read").Author("mcp").Target(req.Params.URI).Count(len(verses)).Write(err)

	if err != nil {
		return nil, err
	}
	if len(verses) == 0 {
		return nil, fmt.Errorf("%s %s %d: %w", u.Translation, u.Book, u.Chapter, ErrEmptyChapter)
	}

	var b strings.Builder
	for _, v := range verses {
		fmt.Fprintf(&b, "%d %s\n", v.Verse, v.Text)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     b.String(),
		},
	}, nil
}

// read handles concord_read tool calls.
func (h *handlers) read(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	translation, err := req.RequireString("translation")
	if err != nil {
		return mcp.NewToolResultError("translation is required"), nil //nolint:nilerr
	}
	book, err := req.RequireString("book")
	if err != nil {
		return mcp.NewToolResultError("book is required"), nil //nolint:nilerr
	}
	chapter := getInt(req, "chapter", 0)
	if chapter < 1 {
		return mcp.NewToolResultError("chapter is required"), nil
	}
	svc, errRes := h.service()
	if errRes != nil {
		return errRes, nil
	}

	verse := max(getInt(req, "verse", 1), 1)
	verses, err := svc.ReadWindow(ctx, translation, book, chapter, verse, getInt(req, "count", 0))

	log.Event("mcp:concord_read", "read").Author("mcp").
		Target(fmt.Sprintf("%s %s %d:%d", translation, book, chapter, verse)).
		Count(len(verses)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(verses)
}
