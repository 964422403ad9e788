// history.go implements "concord history": the most recent distinct
// queries, read back from the audit log.

package search

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/concord/cmd"
	"github.com/jpl-au/concord/extension"
	"github.com/jpl-au/concord/internal/log"
)

// historyLimit is how many queries history shows by default.
const historyLimit = 10

// historySources are the audit sources whose targets are user queries.
var historySources = []string{
	"search:search",
	"search:ref",
	"mcp:concord_search",
	"mcp:concord_reference",
}

func (e *Extension) newHistoryCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "history",
		Short: "List recent search queries",
		Long: `List the most recent distinct queries run against this corpus, newest
first. Running a query again moves it back to the top.

  concord history
  concord history -l 3
  concord search "$(concord history -l 1)"`,
		Args: cobra.NoArgs,
		RunE: e.runHistory,
	}
	c.Flags().IntP(extension.FlagLimit, "l", historyLimit, "Maximum queries (0 for all)")
	return c
}

func (e *Extension) runHistory(c *cobra.Command, _ []string) error {
	limit, _ := c.Flags().GetInt(extension.FlagLimit)
	if limit < 0 {
		return cmd.PrintJSONError(fmt.Errorf("--limit must be >= 0, got %d", limit))
	}

	qs, err := log.Queries(limit, historySources...)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("history: %w", err))
	}
	if cmd.JSON() {
		if qs == nil {
			qs = []string{}
		}
		return cmd.PrintJSON(qs)
	}
	for _, q := range qs {
		fmt.Fprintln(cmd.Out(), q)
	}
	return nil
}
