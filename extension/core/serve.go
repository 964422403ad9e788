// serve.go implements the "concord serve" command for MCP server operation.
//
// Serve is a NoStoreCommand: the server opens the corpus itself and
// reloads it after init, import and config changes, so it can start before
// a corpus exists.

package core

import (
	"github.com/spf13/cobra"

	"github.com/jpl-au/concord/cmd"
	"github.com/jpl-au/concord/internal/mcp"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio.

Use --db to serve a specific database:
  concord serve --db greek    # serve concord-greek.db

Use --dir to serve a corpus outside the current project:
  concord serve --dir /srv/bible

See "concord guide mcp" for the tools it exposes.`,
		RunE: runServe,
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	return mcp.Serve(cmd.DB(), cmd.Dir())
}
