// Package mcp implements the Model Context Protocol server, exposing
// concord's verse queries to LLMs over stdio.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jpl-au/concord/internal/config"
	"github.com/jpl-au/concord/internal/engine"
	"github.com/jpl-au/concord/internal/log"
	"github.com/jpl-au/concord/internal/repo"
	"github.com/jpl-au/concord/internal/service"
	"github.com/jpl-au/concord/internal/store"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// ErrNotInitialised is returned by tools when no corpus exists yet.
const ErrNotInitialised = "corpus not initialised - call concord_init first"

// Serve starts the MCP server over stdio.
//
// The server starts even when no corpus exists so a client can call
// concord_init and concord_import; every other tool reports
// ErrNotInitialised until then.
func Serve(db, dir string) error {
	// stdout carries JSON-RPC
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	h := &handlers{db: db, dir: dir}
	if err := h.load(context.Background()); err != nil {
		if !errors.Is(err, repo.ErrNotInitialised) {
			slog.Error("failed to open corpus", "error", err)
			return err
		}
		slog.Info("concord not initialised, starting in uninitialised mode")
	}

	s := server.NewMCPServer(
		"concord",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)

	registerResources(s, h)
	registerTools(s, h)
	registerExtensionTools(s, h)

	slog.Info("concord MCP server ready", "version", Version, "transport", "stdio")

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// handlers carries the engine shared by every tool. The engine snapshot is
// swapped after imports change the translation list.
type handlers struct {
	db  string
	dir string // explicit project directory; empty means discover

	mu   sync.RWMutex
	path string          // corpus file; empty until initialised
	svc  service.Service // nil until initialised
}

// load builds a fresh engine over the corpus. The corpus is located on
// first load and reused afterwards.
func (h *handlers) load(ctx context.Context) error {
	h.mu.RLock()
	path := h.path
	h.mu.RUnlock()
	if path == "" {
		var err error
		if path, err = repo.Discover(h.db); err != nil {
			return err
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	eng, err := engine.New(ctx, engine.PathOpener(path), engine.OptionsFromConfig(cfg))
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.path, h.svc = path, eng
	h.mu.Unlock()
	log.SetProject(filepath.Dir(path))
	return nil
}

// service returns the current engine, or an error result when there is
// none.
func (h *handlers) service() (service.Service, *mcp.CallToolResult) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.svc == nil {
		return nil, mcp.NewToolResultError(ErrNotInitialised)
	}
	return h.svc, nil
}

// openStore opens the corpus file for catalogue and import tools.
func (h *handlers) openStore() (*store.SQLiteStore, *mcp.CallToolResult) {
	h.mu.RLock()
	path := h.path
	h.mu.RUnlock()
	if path == "" {
		return nil, mcp.NewToolResultError(ErrNotInitialised)
	}
	s, err := store.Open(path)
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error())
	}
	return s, nil
}

func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"concord://chapters/{translation}/{book}/{chapter}",
			"Chapter",
			mcp.WithTemplateDescription("Read a whole chapter of one translation, one verse per line"),
			mcp.WithTemplateMIMEType("text/plain"),
		),
		h.readChapterResource,
	)
}

func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcp.NewTool("concord_init",
			mcp.WithDescription("Create an empty corpus. Call this first if other tools return 'corpus not initialised'."),
			mcp.WithBoolean("local", mcp.Description("If true, the database is gitignored")),
		),
		h.initCorpus,
	)

	s.AddTool(
		mcp.NewTool("concord_search",
			mcp.WithDescription(`Search verses. A reference such as "John 3:16" or "1 Cor 13:4-7" looks the verses up; anything else is a word search. Word syntax: terms are ANDed by default, AND/OR join terms left to right, "quoted phrases" match literally, * matches any run of characters, ? matches one character, and a leading ! negates that term and every later one. Matches are marked with [ ] in the highlighted field.`),
			mcp.WithString("query", mcp.Required(), mcp.Description("Reference or word query")),
			mcp.WithArray("translations", mcp.Description("Translation abbreviations to search (default: all enabled)"), mcp.WithStringItems()),
			mcp.WithBoolean("case_sensitive", mcp.Description("Match letter case exactly")),
			mcp.WithBoolean("unique", mcp.Description("One row per verse, from the highest-ranked translation")),
			mcp.WithBoolean("compress", mcp.Description("Abbreviate common short words")),
			mcp.WithBoolean("expand", mcp.Description("Also search synonyms and simple word-form variants")),
			mcp.WithNumber("limit", mcp.Description("Maximum results to return (default 100, 0 for all)")),
		),
		h.search,
	)

	s.AddTool(
		mcp.NewTool("concord_reference",
			mcp.WithDescription("Look up a verse reference such as 'Genesis 1:1-3' or '1 John 4:8' across translations"),
			mcp.WithString("reference", mcp.Required(), mcp.Description("Book chapter:verse[-end]")),
			mcp.WithArray("translations", mcp.Description("Translation abbreviations (default: all enabled)"), mcp.WithStringItems()),
		),
		h.reference,
	)

	s.AddTool(
		mcp.NewTool("concord_read",
			mcp.WithDescription("Read consecutive verses of one chapter in one translation, for context around a search hit"),
			mcp.WithString("translation", mcp.Required(), mcp.Description("Translation abbreviation")),
			mcp.WithString("book", mcp.Required(), mcp.Description("Book name or abbreviation")),
			mcp.WithNumber("chapter", mcp.Required(), mcp.Description("Chapter number")),
			mcp.WithNumber("verse", mcp.Description("First verse (default 1)")),
			mcp.WithNumber("count", mcp.Description("Number of verses (default: configured reading window)")),
		),
		h.read,
	)

	s.AddTool(
		mcp.NewTool("concord_compare",
			mcp.WithDescription("Word-level diff of a reference between two translations. Removed words are marked [-...-], added words {+...+}."),
			mcp.WithString("reference", mcp.Required(), mcp.Description("Book chapter:verse[-end]")),
			mcp.WithString("a", mcp.Required(), mcp.Description("First translation")),
			mcp.WithString("b", mcp.Required(), mcp.Description("Second translation")),
		),
		h.compare,
	)

	s.AddTool(
		mcp.NewTool("concord_translations",
			mcp.WithDescription("List translations with rank order, enabled flag and verse counts"),
		),
		h.translations,
	)

	s.AddTool(
		mcp.NewTool("concord_books",
			mcp.WithDescription("List the canonical books with abbreviations and OSIS ids"),
		),
		h.books,
	)

	s.AddTool(
		mcp.NewTool("concord_import",
			mcp.WithDescription("Import a translation from a JSON or OSIS XML file (optionally .xz compressed), or every such file in a directory"),
			mcp.WithString("path", mcp.Required(), mcp.Description("File or directory on the server's filesystem")),
			mcp.WithString("abbrev", mcp.Description("Override the translation abbreviation (single file only)")),
			mcp.WithBoolean("force", mcp.Description("Re-import even when the file is unchanged")),
		),
		h.importCorpus,
	)

	s.AddTool(
		mcp.NewTool("concord_config",
			mcp.WithDescription("Read or change settings. No key lists all settings; key alone reads one; key and value writes one to the local config"),
			mcp.WithString("key", mcp.Description("Setting key, e.g. search.unique, reading.window, translations.KJV.order")),
			mcp.WithString("value", mcp.Description("New value")),
		),
		h.configTool,
	)

	s.AddTool(
		mcp.NewTool("concord_guide",
			mcp.WithDescription("Get help content for concord query syntax and commands"),
			mcp.WithString("topic", mcp.Description("Guide topic (e.g. 'search', 'reference', 'import') or empty for the index")),
		),
		h.getGuide,
	)
}
