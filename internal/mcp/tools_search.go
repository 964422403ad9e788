// tools_search.go implements the query tools: search, reference and
// compare. Results are returned as JSON; per-translation problems travel in
// the notices field rather than failing the call.

package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/concord/internal/engine"
	"github.com/jpl-au/concord/internal/log"
)

// defaultLimit caps search results returned to a client that did not ask
// for a limit.
const defaultLimit = 100

type searchResponse struct {
	Query     string                `json:"query"`
	Kind      string                `json:"kind"`
	Range     string                `json:"range,omitempty"`
	Variants  []string              `json:"variants,omitempty"`
	Count     int                   `json:"count"`
	Truncated bool                  `json:"truncated,omitempty"`
	Items     []engine.SearchResult `json:"items"`
	Notices   []engine.Notice       `json:"notices,omitempty"`
}

func response(res engine.Results, limit int) searchResponse {
	out := searchResponse{
		Query:    res.Query,
		Kind:     res.Kind.String(),
		Variants: res.Variants,
		Count:    len(res.Items),
		Items:    res.Items,
		Notices:  res.Notices,
	}
	if res.Range != nil {
		out.Range = res.Range.String()
	}
	if limit > 0 && len(out.Items) > limit {
		out.Items = out.Items[:limit]
		out.Truncated = true
	}
	return out
}

// search handles concord_search tool calls.
func (h *handlers) search(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query is required"), nil //nolint:nilerr
	}
	svc, errRes := h.service()
	if errRes != nil {
		return errRes, nil
	}

	opts := engine.SearchOptions{
		Translations:  getStrings(req, "translations"),
		CaseSensitive: getBool(req, "case_sensitive", false),
		Unique:        getBool(req, "unique", false),
		Compress:      getBool(req, "compress", false),
		Expand:        getBool(req, "expand", false),
	}
	limit := getInt(req, "limit", defaultLimit)

	res, err := svc.Search(ctx, q, opts)

	log.Event("mcp:concord_search", "search").Author("mcp").Target(q).
		Count(len(res.Items)).Detail("translations", opts.Translations).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(response(res, limit))
}

// reference handles concord_reference tool calls.
func (h *handlers) reference(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, err := req.RequireString("reference")
	if err != nil {
		return mcp.NewToolResultError("reference is required"), nil //nolint:nilerr
	}
	svc, errRes := h.service()
	if errRes != nil {
		return errRes, nil
	}

	res, err := svc.Lookup(ctx, ref, getStrings(req, "translations"))

	ev := log.Event("mcp:concord_reference", "lookup").Author("mcp").Target(ref).Count(len(res.Items))
	if res.Range != nil {
		ev.Resolved(res.Range.String())
	}
	ev.Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(response(res, 0))
}

// compare handles concord_compare tool calls.
func (h *handlers) compare(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, err := req.RequireString("reference")
	if err != nil {
		return mcp.NewToolResultError("reference is required"), nil //nolint:nilerr
	}
	a, errA := req.RequireString("a")
	b, errB := req.RequireString("b")
	if errA != nil || errB != nil {
		return mcp.NewToolResultError("a and b are required"), nil
	}
	svc, errRes := h.service()
	if errRes != nil {
		return errRes, nil
	}

	cmp, err := svc.Compare(ctx, ref, a, b)

	ev := log.Event("mcp:concord_compare", "compare").Author("mcp").Target(ref).
		Count(len(cmp.Pairs)).Detail("a", a).Detail("b", b)
	if err != nil {
		ev.Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	ev.Resolved(cmp.Range.String()).Write(nil)
	return jsonResult(cmp)
}
