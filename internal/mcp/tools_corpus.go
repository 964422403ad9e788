// tools_corpus.go implements the corpus tools: init, import and the
// translation and book catalogues.
//
// init and import work without a loaded engine. After either one the
// engine is rebuilt so new translations are searchable straight away.

package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/concord/internal/importer"
	"github.com/jpl-au/concord/internal/log"
	"github.com/jpl-au/concord/internal/repo"
)

// initCorpus handles concord_init tool calls.
func (h *handlers) initCorpus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if _, errRes := h.service(); errRes == nil {
		return mcp.NewToolResultError("corpus already initialised"), nil
	}
	local := getBool(req, "local", false)

	err := repo.Init(false, h.db, local, h.dir)

	log.Event("mcp:concord_init", "init").Author("mcp").Detail("local", local).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := h.load(ctx); err != nil {
		return mcp.NewToolResultError("init succeeded but failed to open corpus: " + err.Error()), nil
	}
	slog.Info("corpus initialised", "local", local)
	return mcp.NewToolResultText("corpus initialised; use concord_import to add translations"), nil
}

// importCorpus handles concord_import tool calls.
func (h *handlers) importCorpus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path is required"), nil //nolint:nilerr
	}
	s, errRes := h.openStore()
	if errRes != nil {
		return errRes, nil
	}
	defer s.Close()

	files, err := importer.Files([]string{path})
	if err == nil && len(files) == 0 {
		err = importer.ErrUnknownFormat
	}
	var results []importer.Result
	if err == nil {
		opts := importer.Options{}
		if len(files) == 1 {
			opts.Abbrev = getString(req, "abbrev", "")
		}
		results, err = importer.Run(ctx, s, files, opts, getBool(req, "force", false))
	}

	written := 0
	for _, r := range results {
		written += int(r.Written)
	}
	log.Event("mcp:concord_import", "import").Author("mcp").Target(path).Count(written).
		Detail("files", len(files)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := h.load(ctx); err != nil {
		return mcp.NewToolResultError("import succeeded but failed to reload corpus: " + err.Error()), nil
	}
	return jsonResult(results)
}

type translationInfo struct {
	Abbrev   string `json:"abbrev"`
	Name     string `json:"name"`
	Enabled  bool   `json:"enabled"`
	Order    int    `json:"order"`
	Verses   int64  `json:"verses"`
	Checksum string `json:"checksum,omitempty"`
}

// translations handles concord_translations tool calls.
func (h *handlers) translations(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, errRes := h.service()
	if errRes != nil {
		return errRes, nil
	}
	s, errRes := h.openStore()
	if errRes != nil {
		return errRes, nil
	}
	defer s.Close()

	stored, err := s.Translations(ctx)

	log.Event("mcp:concord_translations", "list").Author("mcp").Count(len(stored)).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := make([]translationInfo, 0, len(stored))
	for _, t := range svc.Translations() {
		info := translationInfo{Abbrev: t.Abbrev, Name: t.Name, Enabled: t.Enabled, Order: t.Order}
		for _, st := range stored {
			if st.Abbrev == t.Abbrev {
				info.Verses, info.Checksum = st.Verses, st.Checksum
				break
			}
		}
		out = append(out, info)
	}
	return jsonResult(out)
}

// books handles concord_books tool calls.
func (h *handlers) books(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	svc, errRes := h.service()
	if errRes != nil {
		return errRes, nil
	}
	bs := svc.Registry().Books()

	log.Event("mcp:concord_books", "list").Author("mcp").Count(len(bs)).Write(nil)

	return jsonResult(bs)
}
