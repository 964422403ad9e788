// Package subject provides the subject extension: named collections of
// verses with per-verse comments. It registers the subject command (with
// subcommands new, add, show, comment, rm, delete and export) and MCP
// tools for reading and filling collections.
package subject

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jpl-au/concord/extension"
	"github.com/jpl-au/concord/internal/log"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the subject extension.
type Extension struct {
	ctx extension.Context
}

// Compile-time interface compliance.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.EventHandler  = (*Extension)(nil)
)

// Name returns "subject".
func (e *Extension) Name() string { return "subject" }

// Init keeps the shared context; subjects are read and written through its
// store and filled from its service.
func (e *Extension) Init(ctx extension.Context) error {
	e.ctx = ctx
	return nil
}

// Commands returns the subject command.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newSubjectCmd(),
	}
}

// MCPTools returns the subject listing, add and comment tools.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{
		subjectsTool(),
		addTool(),
		commentTool(),
	}
}

// HandleEvent records how many collected verses came from a deleted
// translation. Subjects keep their own copy of each verse's text, so
// nothing is removed.
func (e *Extension) HandleEvent(ctx extension.Context, evt extension.Event) error {
	ev, ok := evt.(extension.TranslationDeleteEvent)
	if !ok || ctx.Store() == nil {
		return nil
	}
	n, err := ctx.Store().SubjectVersesFor(context.Background(), ev.Abbrev)

	log.Event("subject:observed_delete", "event").
		Target(ev.Abbrev).
		Count(int(n)).
		Detail("reason", "translation_deleted").
		Write(err)

	return err
}
