// init.go implements the "concord init" command.
//
// Init does NOT create config; that's managed separately via "concord
// config". The --local flag controls whether the database is committed to
// git or gitignored.

package core

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jpl-au/concord/cmd"
	"github.com/jpl-au/concord/extension"
	"github.com/jpl-au/concord/internal/log"
	"github.com/jpl-au/concord/internal/repo"
)

func newInitCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "init",
		Short: "Initialise a new concord corpus",
		Long: `Creates a .concord/concord.db database in the current directory, seeded
with the canonical book list. Add translations with "concord import".

Use --db to create additional databases:
  concord init --db greek    # creates .concord/concord-greek.db

Use --dir to create in a different directory:
  concord init --dir /srv/bible    # creates /srv/bible/.concord/concord.db

Use --local to exclude from git:
  concord init --local

Use --force to reinitialise an existing database (its translations are lost).`,
		RunE: runInit,
	}
	c.Flags().BoolP(extension.FlagLocal, "l", false, "Mark database as local (gitignored)")
	return c
}

func runInit(c *cobra.Command, _ []string) error {
	local, _ := c.Flags().GetBool(extension.FlagLocal)
	db, dir := cmd.DB(), cmd.Dir()

	// --local edits this project's .gitignore; with --dir the database
	// lives in another project.
	if local && dir != "" {
		return cmd.PrintJSONError(fmt.Errorf("cannot use --local with --dir: --local modifies the current project's .gitignore, but --dir creates the database elsewhere"))
	}

	err := repo.Init(cmd.Force(), db, local, dir)

	log.Event("core:init", "init").
		Author(cmd.Author()).
		Detail("db", db).
		Detail("dir", dir).
		Detail("local", local).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("init: %w", err))
	}

	loc := filepath.Join(repo.Dir, repo.DBFileName(db))
	if dir != "" {
		loc = filepath.Join(dir, loc)
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]string{"path": loc})
	}
	fmt.Fprintf(cmd.Out(), "Initialised concord corpus in %s\n", loc)
	return nil
}
