// Package extension provides the plugin architecture for concord. Extensions
// group related commands and register at init time, so a feature can be
// added without touching the root command.
package extension

import (
	"github.com/spf13/cobra"
)

// Extension defines the contract for concord extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command

	// MCPTools returns MCP tools to register with the server.
	MCPTools() []MCPTool
}

// Initializable extensions receive the shared context before their
// commands run.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Storeless is an optional interface for extensions with commands that
// don't require a corpus. Commands returned by NoStoreCommands() will
// not trigger corpus initialisation in PersistentPreRunE.
//
// Use cases:
// 1. Bootstrap commands (like init) that run before a corpus exists
// 2. Commands that manage their own store lifecycle (serve, vacuum)
// 3. Utility commands that don't read verses (version, db)
type Storeless interface {
	NoStoreCommands() []string
}
