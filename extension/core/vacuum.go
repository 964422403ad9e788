// vacuum.go implements the "concord vacuum" command.
//
// Vacuum removes verse rows that no translation has text for (left behind
// when translations are deleted or re-imported with fewer verses) and
// compacts the database file. It is a NoStoreCommand: it opens the store
// directly and never builds an engine.

package core

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jpl-au/concord/cmd"
	"github.com/jpl-au/concord/extension"
	"github.com/jpl-au/concord/internal/log"
	"github.com/jpl-au/concord/internal/repo"
	"github.com/jpl-au/concord/internal/store"
)

func newVacuumCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "vacuum",
		Short: "Remove orphaned verses and compact the database",
		Long: `Remove verse rows no translation has text for, then compact the file.

  concord vacuum --dry-run     # count orphans only
  concord vacuum --force       # skip confirmation
  concord vacuum --checkpoint  # only flush the WAL into the database file`,
		RunE: runVacuum,
	}
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Show what would be deleted")
	c.Flags().Bool(extension.FlagCheckpoint, false, "Only checkpoint the write-ahead log")
	return c
}

func runVacuum(c *cobra.Command, _ []string) error {
	ctx := c.Context()
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)
	checkpoint, _ := c.Flags().GetBool(extension.FlagCheckpoint)

	path, err := repo.Resolve(cmd.DB(), cmd.Dir())
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	s, err := store.Open(path)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("open store: %w", err))
	}
	defer s.Close()
	log.SetProject(filepath.Dir(path))

	if checkpoint {
		err := s.Checkpoint(ctx)
		log.Event("core:vacuum", "checkpoint").Author(cmd.Author()).Target(path).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("checkpoint: %w", err))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]bool{"checkpoint": true})
		}
		fmt.Fprintln(cmd.Out(), "Checkpoint complete")
		return nil
	}

	if !dryRun && !cmd.Force() {
		fmt.Fprint(cmd.Out(), "Remove orphaned verses and compact the database? [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("reading confirmation: %w", err))
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(cmd.Out(), "Cancelled")
			return nil
		}
	}

	n, err := s.Vacuum(ctx, dryRun)

	log.Event("core:vacuum", "vacuum").
		Author(cmd.Author()).
		Target(path).
		Count(int(n)).
		Detail("dry_run", dryRun).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("vacuum: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"orphans": n, "dry_run": dryRun})
	}
	if dryRun {
		fmt.Fprintf(cmd.Out(), "Would remove %d orphaned verse(s)\n", n)
		return nil
	}
	fmt.Fprintf(cmd.Out(), "Removed %d orphaned verse(s)\n", n)
	return nil
}
