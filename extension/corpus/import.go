// import.go implements "concord import".

package corpus

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/concord/cmd"
	"github.com/jpl-au/concord/extension"
	"github.com/jpl-au/concord/internal/importer"
	"github.com/jpl-au/concord/internal/log"
)

func (e *Extension) newImportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "import <file|dir>...",
		Short: "Import translations from JSON or OSIS files",
		Long: `Import translations. Each file holds one translation; directories are
scanned one level deep for .json, .xml and .osis files, optionally
.xz compressed.

  concord import kjv.json
  concord import web.xml.xz --abbrev WEB
  concord import ./bibles/
  concord import kjv.json --force   # re-import unchanged bytes

Importing an existing abbreviation replaces its text. See
"concord guide import" for the file formats.`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runImport,
	}
	c.Flags().String(extension.FlagAbbrev, "", "Translation abbreviation (single file only)")
	c.Flags().String(extension.FlagName, "", "Translation name (single file only)")
	return c
}

func (e *Extension) runImport(c *cobra.Command, args []string) error {
	ctx := c.Context()
	abbrev, _ := c.Flags().GetString(extension.FlagAbbrev)
	name, _ := c.Flags().GetString(extension.FlagName)

	files, err := importer.Files(args)
	if err == nil && len(files) == 0 {
		err = importer.ErrUnknownFormat
	}
	if err == nil && len(files) > 1 && (abbrev != "" || name != "") {
		err = errors.New("--abbrev and --name need exactly one file")
	}
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("import: %w", err))
	}

	opts := importer.Options{Abbrev: abbrev, Name: name, Registry: e.ctx.Service().Registry()}
	results, err := importer.Run(ctx, e.ctx.Store(), files, opts, cmd.Force())

	written := int64(0)
	for _, r := range results {
		written += r.Written
	}
	log.Event("corpus:import", "import").
		Author(cmd.Author()).
		Target(args[0]).
		Count(int(written)).
		Detail("files", len(files)).
		Write(err)

	for _, r := range results {
		if r.Unchanged {
			continue
		}
		evt := extension.TranslationImportEvent{Abbrev: r.Abbrev, Source: r.Source, Verses: r.Written}
		if dErr := extension.Dispatch(e.ctx, evt); dErr != nil {
			fmt.Fprintf(cmd.Err(), "warning: %v\n", dErr)
		}
	}

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("import: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(results)
	}
	for _, r := range results {
		switch {
		case r.Unchanged:
			fmt.Fprintf(cmd.Out(), "%s: unchanged (%s)\n", r.Abbrev, r.Source)
		case r.Skipped > 0:
			fmt.Fprintf(cmd.Out(), "%s: %d verse(s) from %s, %d skipped\n", r.Abbrev, r.Written, r.Source, r.Skipped)
		default:
			fmt.Fprintf(cmd.Out(), "%s: %d verse(s) from %s\n", r.Abbrev, r.Written, r.Source)
		}
	}
	return nil
}
