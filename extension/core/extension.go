// Package core provides the core extension for concord.
// It registers commands: init, config, serve, guide, vacuum, stats, log, db, version.
package core

import (
	"github.com/spf13/cobra"

	"github.com/jpl-au/concord/extension"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct {
	ctx extension.Context
}

// Compile-time interface compliance.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.Storeless     = (*Extension)(nil)
)

// Name returns "core".
func (e *Extension) Name() string { return "core" }

// Init keeps the shared context for stats.
func (e *Extension) Init(ctx extension.Context) error {
	e.ctx = ctx
	return nil
}

// Commands returns all core CLI commands for repository management.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newInitCmd(),
		newConfigCmd(),
		newServeCmd(),
		newGuideCmd(),
		newVacuumCmd(),
		e.newStatsCmd(),
		newLogCmd(),
		newDBCmd(),
		newVersionCmd(),
	}
}

// MCPTools returns the stats tool.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{statsTool()}
}

// NoStoreCommands returns commands that manage their own store lifecycle.
// serve: Long-running MCP server opens and reloads the corpus itself.
// vacuum: Opens the store directly so it never builds an engine.
// db: Manages gitignore, doesn't need database connection.
// version: Displays build info, doesn't need database connection.
func (e *Extension) NoStoreCommands() []string {
	return []string{"serve", "vacuum", "db", "version"}
}
