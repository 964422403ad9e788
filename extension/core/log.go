// log.go implements "concord log", which reads and prunes the audit log
// entries recorded for the current project.

package core

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpl-au/concord/cmd"
	"github.com/jpl-au/concord/extension"
	"github.com/jpl-au/concord/internal/duration"
	"github.com/jpl-au/concord/internal/format"
	"github.com/jpl-au/concord/internal/log"
)

func newLogCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "log",
		Short: "Show recent audit log entries for this corpus",
		Long: `Show what has been searched, imported and changed in this corpus.

  concord log                 # last 20 entries
  concord log -l 0 --since 7d # everything from the past week
  concord log prune --older-than 3m`,
		Args: cobra.NoArgs,
		RunE: runLog,
	}
	c.Flags().IntP(extension.FlagLimit, "l", 20, "Maximum entries (0 for all)")
	c.Flags().String(extension.FlagSince, "", "Only entries newer than this (12h, 7d, 4w, 3m, 1y)")
	c.AddCommand(newLogPruneCmd())
	return c
}

func runLog(c *cobra.Command, _ []string) error {
	limit, _ := c.Flags().GetInt(extension.FlagLimit)
	since, _ := c.Flags().GetString(extension.FlagSince)

	var from time.Time
	if since != "" {
		var err error
		if from, err = duration.Before(time.Now(), since); err != nil {
			return cmd.PrintJSONError(err)
		}
	}
	recs, err := log.Recent(limit, from)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("log: %w", err))
	}
	if cmd.JSON() {
		if recs == nil {
			recs = []log.Record{}
		}
		return cmd.PrintJSON(recs)
	}
	if len(recs) == 0 {
		fmt.Fprintln(cmd.Err(), "No log entries")
		return nil
	}
	return format.Log(cmd.Out(), recs)
}

func newLogPruneCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "prune",
		Short: "Delete audit log entries older than a cutoff",
		Args:  cobra.NoArgs,
		RunE:  runLogPrune,
	}
	c.Flags().String(extension.FlagOlderThan, "", "Delete entries older than this (7d, 4w, 3m, 1y)")
	_ = c.MarkFlagRequired(extension.FlagOlderThan)
	return c
}

func runLogPrune(c *cobra.Command, _ []string) error {
	older, _ := c.Flags().GetString(extension.FlagOlderThan)
	cutoff, err := duration.Before(time.Now(), older)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	if !cmd.Force() && !cmd.JSON() {
		fmt.Fprintf(cmd.Err(), "Delete log entries before %s? [y/N] ", cutoff.Format(time.DateTime))
		answer, _ := bufio.NewReader(c.InOrStdin()).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			fmt.Fprintln(cmd.Err(), "Cancelled")
			return nil
		}
	}

	n, err := log.Prune(cutoff)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("log prune: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"removed": n, "before": cutoff.Unix()})
	}
	fmt.Fprintf(cmd.Out(), "Removed %d log entr%s\n", n, plural(n))
	return nil
}

func plural(n int64) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
