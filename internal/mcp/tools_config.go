// tools_config.go implements concord_config. Settings written here change
// ranking, highlighting and search defaults, so the engine is rebuilt after
// every successful set.

package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/concord/internal/config"
	"github.com/jpl-au/concord/internal/log"
)

// configTool handles concord_config tool calls: no key lists every setting,
// a key alone reads it, a key and value writes it.
func (h *handlers) configTool(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if _, errRes := h.service(); errRes != nil {
		return errRes, nil
	}
	key := getString(req, "key", "")
	value, hasValue := "", false
	if v, err := req.RequireString("value"); err == nil {
		value, hasValue = v, true
	}

	cfg, err := config.Load()
	if err != nil {
		log.Event("mcp:concord_config", "get").Author("mcp").Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	switch {
	case key == "":
		log.Event("mcp:concord_config", "list").Author("mcp").Write(nil)
		return jsonResult(cfg.All())
	case !hasValue:
		v, err := cfg.Get(key)
		log.Event("mcp:concord_config", "get").Author("mcp").Target(key).Write(err)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(map[string]string{key: v})
	}

	err = cfg.Set(key, value)
	if err == nil {
		err = cfg.Save()
	}

	log.Event("mcp:concord_config", "set").Author("mcp").Target(key).Detail("value", value).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := h.load(ctx); err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("%s = %s (warning: reload failed, restart server to apply: %v)", key, value, err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s = %s", key, value)), nil
}
