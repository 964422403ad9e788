// tools_extension.go registers the MCP tools contributed by extensions.
//
// Extension handlers receive an extension.Context built per call over a
// fresh store connection. The engine is reloaded afterwards since the
// tools may change the corpus or config.

package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jpl-au/concord/extension"
	"github.com/jpl-au/concord/internal/config"
)

func registerExtensionTools(s *server.MCPServer, h *handlers) {
	for _, ext := range extension.All() {
		for _, t := range ext.MCPTools() {
			s.AddTool(t.Tool, h.extensionTool(t.Handler))
		}
	}
}

func (h *handlers) extensionTool(fn extension.MCPHandler) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		svc, errRes := h.service()
		if errRes != nil {
			return errRes, nil
		}
		st, errRes := h.openStore()
		if errRes != nil {
			return errRes, nil
		}
		defer st.Close()

		cfg, err := config.Load()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		res, err := fn(ctx, extension.NewContext(svc, st, cfg), req)
		if err != nil || (res != nil && res.IsError) {
			return res, err
		}
		if err := h.load(ctx); err != nil {
			return mcp.NewToolResultError("reload corpus: " + err.Error()), nil
		}
		return res, nil
	}
}
