// stats.go implements "concord stats" and the concord_stats MCP tool.

package core

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"

	"github.com/jpl-au/concord/cmd"
	"github.com/jpl-au/concord/extension"
	"github.com/jpl-au/concord/internal/format"
	"github.com/jpl-au/concord/internal/log"
	"github.com/jpl-au/concord/internal/store"
)

func (e *Extension) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show corpus row counts",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			st, err := e.ctx.Store().Stats(c.Context())

			log.Event("core:stats", "stats").Author(cmd.Author()).Write(err)

			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("stats: %w", err))
			}
			if cmd.JSON() {
				return cmd.PrintJSON(st)
			}
			return format.Stats(cmd.Out(), st)
		},
	}
}

func statsTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("concord_stats",
			mcp.WithDescription("Row counts for the corpus: translations, books, verses, texts and orphaned verses"),
		),
		Handler: func(ctx context.Context, extCtx extension.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			st, err := extCtx.Store().Stats(ctx)

			log.Event("mcp:concord_stats", "stats").Author("mcp").Write(err)

			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			b, err := store.MarshalJSON(st)
			if err != nil {
				return nil, err
			}
			return mcp.NewToolResultText(string(b)), nil
		},
	}
}
