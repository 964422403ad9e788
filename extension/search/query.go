// query.go implements "concord search" and "concord ref".
//
// search accepts either form of query and lets the classifier decide; ref
// insists on a reference and fails on anything else.

package search

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jpl-au/concord/cmd"
	"github.com/jpl-au/concord/extension"
	"github.com/jpl-au/concord/internal/engine"
	"github.com/jpl-au/concord/internal/exporter"
	"github.com/jpl-au/concord/internal/format"
	"github.com/jpl-au/concord/internal/log"
)

func (e *Extension) newSearchCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "search <query>",
		Short: "Search verses by reference or words",
		Long: `Search verses. A reference looks the verses up; anything else is a
word search.

  concord search "John 3:16"              # reference
  concord search "1 Cor 13:4-7" -t KJV    # reference in one translation
  concord search "faith AND hope"         # both words
  concord search "love OR charity" -u     # one row per verse
  concord search "lov* !hate"             # wildcard and negation
  concord search light --export light.md  # write results to a file

Settings under search.* in "concord config" supply the defaults for -c,
-u, --compress and --expand. See "concord guide search" for the syntax.`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runSearch,
	}
	c.Flags().StringSliceP(extension.FlagTranslation, "t", nil, "Translations to search (repeatable, default: all enabled)")
	c.Flags().BoolP(extension.FlagCaseSensitive, "c", false, "Match letter case exactly")
	c.Flags().BoolP(extension.FlagUnique, "u", false, "One row per verse, from the highest-ranked translation")
	c.Flags().Bool(extension.FlagCompress, false, "Abbreviate common short words")
	c.Flags().Bool(extension.FlagExpand, false, "Also search synonyms and word-form variants")
	c.Flags().IntP(extension.FlagLimit, "l", 0, "Maximum results (0 for all)")
	c.Flags().String(extension.FlagExport, "", "Write results to a file")
	c.Flags().String(extension.FlagFormat, "", "Export format: text, json, markdown (default: from file extension)")
	return c
}

// searchOptions merges flags over configured defaults.
func (e *Extension) searchOptions(c *cobra.Command) engine.SearchOptions {
	flag := func(name string, def bool) bool {
		if c.Flags().Changed(name) {
			v, _ := c.Flags().GetBool(name)
			return v
		}
		return def
	}
	translations, _ := c.Flags().GetStringSlice(extension.FlagTranslation)
	limit, _ := c.Flags().GetInt(extension.FlagLimit)
	return engine.SearchOptions{
		Translations:  translations,
		CaseSensitive: flag(extension.FlagCaseSensitive, e.cfg.CaseSensitive()),
		Unique:        flag(extension.FlagUnique, e.cfg.Unique()),
		Compress:      flag(extension.FlagCompress, e.cfg.Compress()),
		Expand:        flag(extension.FlagExpand, e.cfg.Expand()),
		Limit:         limit,
	}
}

func (e *Extension) runSearch(c *cobra.Command, args []string) error {
	q := strings.Join(args, " ")
	opts := e.searchOptions(c)
	if opts.Limit < 0 {
		return cmd.PrintJSONError(fmt.Errorf("--limit must be >= 0, got %d", opts.Limit))
	}

	exportFormat, err := e.exportFormat(c)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	res, err := e.svc.Search(c.Context(), q, opts)

	log.Event("search:search", "search").
		Author(cmd.Author()).
		Target(q).
		Resolved(resolved(res)).
		Count(len(res.Items)).
		Detail("kind", res.Kind.String()).
		Detail("translations", opts.Translations).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("search %q: %w", q, err))
	}
	return e.emit(c, res, exportFormat)
}

func (e *Extension) newRefCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "ref <reference>",
		Short: "Look up a verse reference",
		Long: `Look up a reference across translations. Unlike search, text that is
not a reference is an error rather than a word search.

  concord ref John 3:16
  concord ref "1 Cor 13:4-7" -t KJV -t ASV`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runRef,
	}
	c.Flags().StringSliceP(extension.FlagTranslation, "t", nil, "Translations (repeatable, default: all enabled)")
	c.Flags().String(extension.FlagExport, "", "Write results to a file")
	c.Flags().String(extension.FlagFormat, "", "Export format: text, json, markdown (default: from file extension)")
	return c
}

func (e *Extension) runRef(c *cobra.Command, args []string) error {
	ref := strings.Join(args, " ")
	translations, _ := c.Flags().GetStringSlice(extension.FlagTranslation)

	exportFormat, err := e.exportFormat(c)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	res, err := e.svc.Lookup(c.Context(), ref, translations)

	log.Event("search:ref", "lookup").
		Author(cmd.Author()).
		Target(ref).
		Resolved(resolved(res)).
		Count(len(res.Items)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("ref %q: %w", ref, err))
	}
	return e.emit(c, res, exportFormat)
}

func (e *Extension) exportFormat(c *cobra.Command) (exporter.Format, error) {
	f, _ := c.Flags().GetString(extension.FlagFormat)
	if f == "" {
		return "", nil
	}
	return exporter.ParseFormat(f)
}

// emit writes res to --export when given, otherwise to the terminal.
func (e *Extension) emit(c *cobra.Command, res engine.Results, f exporter.Format) error {
	format.Notices(cmd.Err(), res.Notices)

	if path, _ := c.Flags().GetString(extension.FlagExport); path != "" {
		used, err := exporter.WriteFile(path, res, exporter.Options{Format: f, Force: cmd.Force()})

		log.Event("search:export", "export").
			Author(cmd.Author()).
			Target(path).
			Count(len(res.Items)).
			Detail("format", string(used)).
			Write(err)

		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("export: %w", err))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]any{"path": path, "format": used, "count": len(res.Items)})
		}
		fmt.Fprintf(cmd.Out(), "Exported %d result(s) to %s\n", len(res.Items), path)
		return nil
	}

	if cmd.JSON() {
		return cmd.PrintJSON(res)
	}
	if len(res.Items) == 0 {
		fmt.Fprintln(cmd.Err(), "No results")
		return nil
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		open, close := e.cfg.Delimiters()
		if rendered, err := format.Render(format.ResultsMarkdown(res.Items, open, close)); err == nil {
			fmt.Fprint(cmd.Out(), rendered)
			return nil
		}
	}
	return format.Results(cmd.Out(), res.Items)
}

// resolved names what the query became: the canonical range for a
// reference, the variant list for an expanded word search.
func resolved(res engine.Results) string {
	switch {
	case res.Range != nil:
		return res.Range.String()
	case len(res.Variants) > 1:
		return strings.Join(res.Variants, " | ")
	}
	return ""
}
