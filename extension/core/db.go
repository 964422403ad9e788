// db.go implements the "concord db" command for database management.
//
// DB is a NoStoreCommand because it manages gitignore entries without
// opening the databases themselves.

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

func newDBCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "db [name]",
		Short: "List or manage corpus databases",
		Long: `List databases or change their local/shared status.

  concord db                  # list all databases
  concord db --local          # mark default database as local
  concord db greek --local    # mark concord-greek.db as local
  concord db greek --share    # mark as shared
  concord db --dir /srv/bible # list databases in another project

Local databases are not committed. Shared databases are.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDB,
	}
	c.Flags().BoolP(extension.FlagLocal, "l", false, "Mark database as local")
	c.Flags().BoolP(extension.FlagShare, "s", false, "Mark database as shared")
	c.MarkFlagsMutuallyExclusive(extension.FlagLocal, extension.FlagShare)
	return c
}

func runDB(c *cobra.Command, args []string) error {
	local, _ := c.Flags().GetBool(extension.FlagLocal)
	share, _ := c.Flags().GetBool(extension.FlagShare)

	// repo functions take the .concord directory, not the project root
	dir := cmd.Dir()
	repoDir := ""
	if dir != "" {
		repoDir = filepath.Join(dir, repo.Dir)
	}

	if len(args) == 0 && !local && !share {
		dbs, err := repo.ListDBs(repoDir)

		log.Event("core:db", "list").
			Author(cmd.Author()).
			Count(len(dbs)).
			Detail("dir", dir).
			Write(err)

		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("db list: %w", err))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(dbs)
		}
		if len(dbs) == 0 {
			fmt.Fprintln(cmd.Out(), "No databases found")
			return nil
		}
		for _, db := range dbs {
			fmt.Fprintf(cmd.Out(), "%s  %s\n", db.File, status(db.Local))
		}
		return nil
	}

	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	switch {
	case local:
		err := repo.IgnoreDB(name, repoDir)
		log.Event("core:db", "ignore").Author(cmd.Author()).Target(repo.DBFileName(name)).Detail("dir", dir).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("db ignore %q: %w", name, err))
		}
		fmt.Fprintf(cmd.Out(), "%s marked as local\n", repo.DBFileName(name))

	case share:
		err := repo.UnignoreDB(name, repoDir)
		log.Event("core:db", "unignore").Author(cmd.Author()).Target(repo.DBFileName(name)).Detail("dir", dir).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("db unignore %q: %w", name, err))
		}
		fmt.Fprintf(cmd.Out(), "%s marked as shared\n", repo.DBFileName(name))

	default:
		ignored, err := repo.IsIgnored(name, repoDir)
		log.Event("core:db", "status").Author(cmd.Author()).Target(repo.DBFileName(name)).Detail("dir", dir).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("db status %q: %w", name, err))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{"file": repo.DBFileName(name), "status": status(ignored)})
		}
		fmt.Fprintf(cmd.Out(), "%s: %s\n", repo.DBFileName(name), status(ignored))
	}
	return nil
}

func status(local bool) string {
	if local {
		return "local"
	}
	return "shared"
}
