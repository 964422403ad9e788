// Package corpus provides the commands that change or describe what the
// corpus holds: import, translations and books.
package corpus

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/concord/extension"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the corpus extension.
type Extension struct {
	ctx extension.Context
}

// Compile-time interface compliance.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.EventHandler  = (*Extension)(nil)
)

// Name returns "corpus".
func (e *Extension) Name() string { return "corpus" }

// Init keeps the shared context; import and delete write through its
// store.
func (e *Extension) Init(ctx extension.Context) error {
	e.ctx = ctx
	return nil
}

// Commands returns import, translations and books.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newImportCmd(),
		e.newTranslationsCmd(),
		e.newBooksCmd(),
	}
}

// MCPTools returns the delete tool; listing and import are in internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{deleteTool()}
}

// HandleEvent drops the ranking and enabled preferences of a deleted
// translation so a later import under the same abbreviation starts from
// the defaults.
func (e *Extension) HandleEvent(ctx extension.Context, evt extension.Event) error {
	if evt.EventType() != extension.EventTranslationDelete {
		return nil
	}
	cfg := ctx.Config()
	if cfg == nil || !cfg.Forget(evt.EventTranslation()) {
		return nil
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("forget %s preferences: %w", evt.EventTranslation(), err)
	}
	return nil
}
