// translations.go implements "concord translations" and "concord books".

package corpus

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"

	"github.com/jpl-au/concord/cmd"
	"github.com/jpl-au/concord/extension"
	"github.com/jpl-au/concord/internal/format"
	"github.com/jpl-au/concord/internal/log"
	"github.com/jpl-au/concord/internal/store"
)

func (e *Extension) newTranslationsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:     "translations",
		Aliases: []string{"tr"},
		Short:   "List translations in rank order",
		Long: `List imported translations with their rank, enabled flag and verse
count. Rank and enabled come from translations.<ABBR>.* in "concord config".

  concord translations
  concord translations rm NIV   # delete a translation`,
		Args: cobra.NoArgs,
		RunE: e.runTranslations,
	}
	c.AddCommand(&cobra.Command{
		Use:   "rm <abbrev>",
		Short: "Delete a translation and its text",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runDelete,
	})
	return c
}

func (e *Extension) runTranslations(c *cobra.Command, _ []string) error {
	stored, err := e.ctx.Store().Translations(c.Context())

	log.Event("corpus:translations", "list").Author(cmd.Author()).Count(len(stored)).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("translations: %w", err))
	}
	ts := e.ctx.Service().Translations()
	if cmd.JSON() {
		return cmd.PrintJSON(ts)
	}
	if len(ts) == 0 {
		fmt.Fprintln(cmd.Out(), `No translations imported (see "concord import")`)
		return nil
	}
	return format.Translations(cmd.Out(), ts, stored)
}

func (e *Extension) runDelete(c *cobra.Command, args []string) error {
	n, err := deleteTranslation(c.Context(), e.ctx, args[0])

	log.Event("corpus:translations", "delete").Author(cmd.Author()).Target(args[0]).Count(int(n)).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("delete %s: %w", args[0], err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"abbrev": args[0], "texts": n})
	}
	fmt.Fprintf(cmd.Out(), "Deleted %s (%d verse text(s))\n", args[0], n)
	return nil
}

// deleteTranslation removes abbrev and notifies handlers. A handler
// failure is reported after the delete has already happened.
func deleteTranslation(ctx context.Context, extCtx extension.Context, abbrev string) (int64, error) {
	n, err := extCtx.Store().DeleteTranslation(ctx, abbrev)
	if err != nil {
		return 0, err
	}
	if err := extension.Dispatch(extCtx, extension.TranslationDeleteEvent{Abbrev: abbrev, Texts: n}); err != nil {
		return n, err
	}
	return n, nil
}

func deleteTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("concord_delete",
			mcp.WithDescription("Delete a translation and its text from the corpus. Its ranking preferences are forgotten."),
			mcp.WithString("abbrev", mcp.Required(), mcp.Description("Translation abbreviation")),
		),
		Handler: func(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			abbrev, err := req.RequireString("abbrev")
			if err != nil {
				return mcp.NewToolResultError("abbrev is required"), nil //nolint:nilerr
			}
			n, err := deleteTranslation(ctx, extCtx, abbrev)

			log.Event("mcp:concord_delete", "delete").Author("mcp").Target(abbrev).Count(int(n)).Write(err)

			if errors.Is(err, store.ErrNotFound) {
				return mcp.NewToolResultError(fmt.Sprintf("translation %s not found", abbrev)), nil
			}
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return mcp.NewToolResultText(fmt.Sprintf("deleted %s (%d verse texts)", abbrev, n)), nil
		},
	}
}

func (e *Extension) newBooksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "books",
		Short: "List canonical books and abbreviations",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			bs := e.ctx.Service().Registry().Books()

			log.Event("corpus:books", "list").Author(cmd.Author()).Count(len(bs)).Write(nil)

			if cmd.JSON() {
				return cmd.PrintJSON(bs)
			}
			return format.Books(cmd.Out(), bs)
		},
	}
}
