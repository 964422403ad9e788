// commands.go implements "concord subject" and its subcommands.

package subject

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jpl-au/concord/cmd"
	"github.com/jpl-au/concord/extension"
	"github.com/jpl-au/concord/internal/engine"
	"github.com/jpl-au/concord/internal/exporter"
	"github.com/jpl-au/concord/internal/log"
	"github.com/jpl-au/concord/internal/store"
)

func (e *Extension) newSubjectCmd() *cobra.Command {
	c := &cobra.Command{
		Use:     "subject",
		Aliases: []string{"subjects"},
		Short:   "Collect verses under named subjects",
		Long: `Collect verses under a named subject, annotate them and export the
collection. Each verse keeps the text it had when it was added.

  concord subject                               # list subjects
  concord subject add Faith "Heb 11:1" -t KJV   # create if needed, then add
  concord subject show Faith                    # numbered listing
  concord subject comment Faith 1 "definition"  # annotate verse #1
  concord subject rm Faith 1                    # drop verse #1
  concord subject export Faith                  # Faith_export.txt
  concord subject delete Faith`,
		Args: cobra.NoArgs,
		RunE: e.runList,
	}
	c.AddCommand(&cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List subjects",
		Args:    cobra.NoArgs,
		RunE:    e.runList,
	})
	c.AddCommand(&cobra.Command{
		Use:   "new <name>",
		Short: "Create an empty subject",
		Args:  cobra.MinimumNArgs(1),
		RunE:  e.runNew,
	})
	c.AddCommand(e.newAddCmd())
	c.AddCommand(&cobra.Command{
		Use:   "show <name>",
		Short: "Show a subject's verses and comments",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runShow,
	})
	c.AddCommand(&cobra.Command{
		Use:   "comment <name> <id> [text]",
		Short: "Set or clear the comment on a verse",
		Long: `Set the comment on one verse of a subject. The id is the number shown
by "concord subject show". Omitting the text clears the comment.`,
		Args: cobra.MinimumNArgs(2),
		RunE: e.runComment,
	})
	c.AddCommand(&cobra.Command{
		Use:   "rm <name> <id>",
		Short: "Remove a verse from a subject",
		Args:  cobra.ExactArgs(2),
		RunE:  e.runRemove,
	})
	c.AddCommand(&cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a subject and its verses",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runDelete,
	})
	c.AddCommand(e.newExportCmd())
	return c
}

func (e *Extension) runList(c *cobra.Command, _ []string) error {
	subs, err := e.ctx.Store().Subjects(c.Context())

	log.Event("subject:subject", "list").Author(cmd.Author()).Count(len(subs)).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("list subjects: %w", err))
	}
	if cmd.JSON() {
		if subs == nil {
			subs = []store.Subject{}
		}
		return cmd.PrintJSON(subs)
	}
	if len(subs) == 0 {
		fmt.Fprintln(cmd.Out(), `No subjects (see "concord subject add")`)
		return nil
	}
	for _, s := range subs {
		fmt.Fprintf(cmd.Out(), "%-24s %d verse(s)\n", s.Name, s.Verses)
	}
	return nil
}

func (e *Extension) runNew(c *cobra.Command, args []string) error {
	name := strings.Join(args, " ")
	sub, created, err := e.ctx.Store().CreateSubject(c.Context(), name)

	log.Event("subject:subject", "create").Author(cmd.Author()).Target(name).Detail("created", created).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("create subject: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"subject": sub.Name, "created": created})
	}
	if created {
		fmt.Fprintf(cmd.Out(), "Created subject %s\n", sub.Name)
	} else {
		fmt.Fprintf(cmd.Out(), "Subject %s already exists\n", sub.Name)
	}
	return nil
}

func (e *Extension) newAddCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "add <name> <reference>",
		Short: "Add the verses of a reference to a subject",
		Long: `Look a reference up and add its verses to a subject, creating the
subject when it does not exist. Verses the subject already holds for the
same translation are skipped.

  concord subject add Love "1 Cor 13:4-7"
  concord subject add Love "John 3:16" -t KJV -t ASV`,
		Args: cobra.MinimumNArgs(2),
		RunE: e.runAdd,
	}
	c.Flags().StringSliceP(extension.FlagTranslation, "t", nil, "Translations (repeatable, default: all enabled)")
	return c
}

func (e *Extension) runAdd(c *cobra.Command, args []string) error {
	name, ref := args[0], strings.Join(args[1:], " ")
	translations, _ := c.Flags().GetStringSlice(extension.FlagTranslation)

	added, found, err := addReference(c.Context(), e.ctx, name, ref, translations)

	log.Event("subject:subject", "add").
		Author(cmd.Author()).
		Target(name).
		Resolved(ref).
		Count(int(added)).
		Detail("translations", translations).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("subject add: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"subject": name, "reference": ref, "found": found, "added": added})
	}
	fmt.Fprintf(cmd.Out(), "Added %d of %d verse(s) to %s\n", added, found, name)
	return nil
}

func (e *Extension) runShow(c *cobra.Command, args []string) error {
	name := args[0]
	vs, err := e.ctx.Store().SubjectVerses(c.Context(), name)

	log.Event("subject:subject", "show").Author(cmd.Author()).Target(name).Count(len(vs)).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("subject show: %w", err))
	}
	if cmd.JSON() {
		return exporter.WriteSubject(cmd.Out(), name, vs, exporter.JSON)
	}
	if len(vs) == 0 {
		fmt.Fprintf(cmd.Out(), "Subject %s has no verses\n", name)
		return nil
	}
	for _, v := range vs {
		fmt.Fprintf(cmd.Out(), "%4d  %s%s\n", v.ID, exporter.Pad(exporter.SubjectReference(v)), v.Text)
		if v.Comment != "" {
			fmt.Fprintf(cmd.Out(), "          Comment: %s\n", v.Comment)
		}
	}
	return nil
}

func (e *Extension) runComment(c *cobra.Command, args []string) error {
	name := args[0]
	id, err := parseID(args[1])
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	comment := strings.Join(args[2:], " ")

	err = e.ctx.Store().CommentSubjectVerse(c.Context(), name, id, comment)

	log.Event("subject:subject", "comment").Author(cmd.Author()).Target(name).Detail("id", id).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("subject comment: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"subject": name, "id": id, "comment": strings.TrimSpace(comment)})
	}
	if strings.TrimSpace(comment) == "" {
		fmt.Fprintf(cmd.Out(), "Cleared comment on %s #%d\n", name, id)
	} else {
		fmt.Fprintf(cmd.Out(), "Saved comment on %s #%d\n", name, id)
	}
	return nil
}

func (e *Extension) runRemove(c *cobra.Command, args []string) error {
	name := args[0]
	id, err := parseID(args[1])
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	err = e.ctx.Store().RemoveSubjectVerse(c.Context(), name, id)

	log.Event("subject:subject", "remove").Author(cmd.Author()).Target(name).Detail("id", id).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("subject rm: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"subject": name, "id": id, "removed": true})
	}
	fmt.Fprintf(cmd.Out(), "Removed %s #%d\n", name, id)
	return nil
}

func (e *Extension) runDelete(c *cobra.Command, args []string) error {
	name := args[0]
	sub, err := e.ctx.Store().Subject(c.Context(), name)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("subject delete: %w", err))
	}

	if !cmd.Force() && !cmd.JSON() {
		fmt.Fprintf(cmd.Err(), "Delete subject %s and its %d verse(s)? [y/N] ", sub.Name, sub.Verses)
		answer, _ := bufio.NewReader(c.InOrStdin()).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			fmt.Fprintln(cmd.Err(), "Cancelled")
			return nil
		}
	}

	n, err := e.ctx.Store().DeleteSubject(c.Context(), sub.Name)

	log.Event("subject:subject", "delete").Author(cmd.Author()).Target(sub.Name).Count(int(n)).Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("subject delete: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"subject": sub.Name, "verses": n})
	}
	fmt.Fprintf(cmd.Out(), "Deleted subject %s (%d verse(s))\n", sub.Name, n)
	return nil
}

func (e *Extension) newExportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "export <name> [file]",
		Short: "Write a subject to a file",
		Long: `Write a subject's verses and comments to a file. Without a file name
the subject is written to <Name>_export.txt (or .json/.md for --format).
Use --clip to print the compact listing to stdout instead.

  concord subject export Faith
  concord subject export Faith faith.md
  concord subject export Faith --clip | pbcopy`,
		Args: cobra.RangeArgs(1, 2),
		RunE: e.runExport,
	}
	c.Flags().String(extension.FlagFormat, "", "Export format: text, json, markdown (default: from file extension)")
	c.Flags().Bool(extension.FlagClip, false, "Print the compact listing to stdout")
	return c
}

func (e *Extension) runExport(c *cobra.Command, args []string) error {
	name := args[0]
	formatName, _ := c.Flags().GetString(extension.FlagFormat)
	clip, _ := c.Flags().GetBool(extension.FlagClip)

	var f exporter.Format
	if formatName != "" {
		var err error
		if f, err = exporter.ParseFormat(formatName); err != nil {
			return cmd.PrintJSONError(err)
		}
	}

	vs, err := e.ctx.Store().SubjectVerses(c.Context(), name)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("subject export: %w", err))
	}
	if len(vs) == 0 {
		return cmd.PrintJSONError(fmt.Errorf("subject export: %s has no verses", name))
	}

	if clip {
		err := exporter.Clip(cmd.Out(), name, vs)
		log.Event("subject:subject", "clip").Author(cmd.Author()).Target(name).Count(len(vs)).Write(err)
		return err
	}

	path := exporter.SubjectFileName(name, f)
	if len(args) == 2 {
		path = args[1]
	}
	used, err := exporter.WriteSubjectFile(path, name, vs, exporter.Options{Format: f, Force: cmd.Force()})

	log.Event("subject:subject", "export").
		Author(cmd.Author()).
		Target(name).
		Resolved(path).
		Count(len(vs)).
		Detail("format", string(used)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("subject export: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"subject": name, "path": path, "format": used, "verses": len(vs)})
	}
	fmt.Fprintf(cmd.Out(), "Exported %d verse(s) of %s to %s\n", len(vs), name, path)
	return nil
}

var errBadID = errors.New("verse id must be a positive number")

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", errBadID, s)
	}
	return id, nil
}

// toVerses converts lookup results to store rows.
func toVerses(items []engine.SearchResult) []store.Verse {
	out := make([]store.Verse, 0, len(items))
	for _, r := range items {
		out = append(out, store.Verse{
			Translation: r.Translation,
			Book:        r.Book,
			Chapter:     r.Chapter,
			Verse:       r.Verse,
			Text:        r.Text,
		})
	}
	return out
}
