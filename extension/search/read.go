// read.go implements "concord read" and "concord compare".

package search

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jpl-au/concord/cmd"
	"github.com/jpl-au/concord/extension"
	"github.com/jpl-au/concord/internal/engine"
	"github.com/jpl-au/concord/internal/format"
	"github.com/jpl-au/concord/internal/log"
)

var errNoVerses = errors.New("no verses found")

func (e *Extension) newReadCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "read <translation> <book> <chapter> [verse]",
		Short: "Read consecutive verses of a chapter",
		Long: `Read a window of verses starting at a verse (default 1). The window
never crosses into the next chapter.

  concord read KJV John 3 16          # John 3:16 onward
  concord read ASV "1 Cor" 13 -n 5    # five verses
  concord read KJV Psalms 23 --all    # whole chapter

The default window is reading.window in "concord config".`,
		Args: cobra.RangeArgs(3, 4),
		RunE: e.runRead,
	}
	c.Flags().IntP(extension.FlagCount, "n", 0, "Number of verses (default: reading.window)")
	c.Flags().BoolP(extension.FlagAll, "A", false, "Read the whole chapter")
	return c
}

func (e *Extension) runRead(c *cobra.Command, args []string) error {
	translation, book := args[0], args[1]
	chapter, err := strconv.Atoi(args[2])
	if err != nil || chapter < 1 {
		return cmd.PrintJSONError(fmt.Errorf("invalid chapter %q", args[2]))
	}
	verse := 1
	if len(args) > 3 {
		verse, err = strconv.Atoi(args[3])
		if err != nil || verse < 1 {
			return cmd.PrintJSONError(fmt.Errorf("invalid verse %q", args[3]))
		}
	}
	count, _ := c.Flags().GetInt(extension.FlagCount)
	all, _ := c.Flags().GetBool(extension.FlagAll)
	if count < 0 {
		return cmd.PrintJSONError(fmt.Errorf("--count must be >= 0, got %d", count))
	}

	target := fmt.Sprintf("%s %s %d:%d", translation, book, chapter, verse)

	var verses []engine.SearchResult
	if all {
		verses, err = e.svc.Chapter(c.Context(), translation, book, chapter)
		verses = slices.DeleteFunc(verses, func(v engine.SearchResult) bool { return v.Verse < verse })
	} else {
		verses, err = e.svc.ReadWindow(c.Context(), translation, book, chapter, verse, count)
	}
	if err == nil && len(verses) == 0 {
		err = errNoVerses
	}

	log.Event("search:read", "read").
		Author(cmd.Author()).
		Target(target).
		Count(len(verses)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("read %s: %w", target, err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(verses)
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		first := verses[0]
		title := fmt.Sprintf("%s %s %d", first.Translation, first.Book, first.Chapter)
		if rendered, err := format.Render(format.WindowMarkdown(title, verses)); err == nil {
			fmt.Fprint(cmd.Out(), rendered)
			return nil
		}
	}
	return format.Window(cmd.Out(), verses)
}

func (e *Extension) newCompareCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "compare <reference> <translation-a> <translation-b>",
		Short: "Word diff of a reference between two translations",
		Long: `Look a reference up in two translations and print a word diff per
verse. Removed words are shown as [-...-], added words as {+...+}.

  concord compare "Gen 1:1-3" KJV ASV
  concord compare "John 1:1" KJV WEB --no-colour`,
		Args: cobra.ExactArgs(3),
		RunE: e.runCompare,
	}
	c.Flags().Bool(extension.FlagNoColour, false, "Disable colour even on a terminal")
	return c
}

func (e *Extension) runCompare(c *cobra.Command, args []string) error {
	ref, a, b := args[0], args[1], args[2]
	noColour, _ := c.Flags().GetBool(extension.FlagNoColour)

	res, err := e.svc.Compare(c.Context(), ref, a, b)

	ev := log.Event("search:compare", "compare").
		Author(cmd.Author()).
		Target(ref).
		Count(len(res.Pairs)).
		Detail("a", a).
		Detail("b", b)
	if err == nil {
		ev = ev.Resolved(res.Range.String())
	}
	ev.Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("compare %q: %w", ref, err))
	}
	format.Notices(cmd.Err(), res.Notices)
	if cmd.JSON() {
		return cmd.PrintJSON(res)
	}
	colour := !noColour && term.IsTerminal(int(os.Stdout.Fd()))
	return format.Comparison(cmd.Out(), res, colour)
}
