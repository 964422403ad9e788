// Package search provides the verse query commands: search, ref, read,
// compare and history. Queries go through the shared service so they see
// the same translation ranking as the MCP server.
package search

import (
	"github.com/spf13/cobra"

	"github.com/jpl-au/concord/extension"
	"github.com/jpl-au/concord/internal/config"
	"github.com/jpl-au/concord/internal/service"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the search extension.
type Extension struct {
	svc service.Service
	cfg *config.Config
}

// Compile-time interface compliance.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "search".
func (e *Extension) Name() string { return "search" }

// Init connects to the shared service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	e.cfg = ctx.Config()
	return nil
}

// Commands returns search, ref, read, compare and history.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newSearchCmd(),
		e.newRefCmd(),
		e.newReadCmd(),
		e.newCompareCmd(),
		e.newHistoryCmd(),
	}
}

// MCPTools returns nil - MCP query tools are in internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}
