// tools.go implements the subject MCP tools and the add path they share
// with the CLI.

package subject

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/concord/extension"
	"github.com/jpl-au/concord/internal/exporter"
	"github.com/jpl-au/concord/internal/log"
	"github.com/jpl-au/concord/internal/store"
)

// ErrNoVerses is returned when a reference resolves but no selected
// translation holds any of its verses.
var ErrNoVerses = errors.New("no verses found")

// addReference looks ref up and appends the verses to the named subject,
// creating it when needed. Returns the number added and the number found.
func addReference(ctx context.Context, extCtx extension.Context, name, ref string, translations []string) (int64, int, error) {
	res, err := extCtx.Service().Lookup(ctx, ref, translations)
	if err != nil {
		return 0, 0, err
	}
	if len(res.Items) == 0 {
		return 0, 0, fmt.Errorf("%w for %s", ErrNoVerses, ref)
	}
	sub, _, err := extCtx.Store().CreateSubject(ctx, name)
	if err != nil {
		return 0, 0, err
	}
	added, err := extCtx.Store().AddSubjectVerses(ctx, sub.Name, toVerses(res.Items))
	return added, len(res.Items), err
}

func subjectsTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("concord_subjects",
			mcp.WithDescription("List subjects, or with a name return that subject's verses, ids and comments"),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithString("name", mcp.Description("Subject name (omit to list all subjects)")),
		),
		Handler: func(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			name := req.GetString("name", "")
			if name == "" {
				subs, err := extCtx.Store().Subjects(ctx)

				log.Event("mcp:concord_subjects", "list").Author("mcp").Count(len(subs)).Write(err)

				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				if subs == nil {
					subs = []store.Subject{}
				}
				return jsonResult(subs)
			}

			vs, err := extCtx.Store().SubjectVerses(ctx, name)

			log.Event("mcp:concord_subjects", "show").Author("mcp").Target(name).Count(len(vs)).Write(err)

			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			var b bytes.Buffer
			if err := exporter.WriteSubject(&b, name, vs, exporter.JSON); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return mcp.NewToolResultText(b.String()), nil
		},
	}
}

func addTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("concord_subject_add",
			mcp.WithDescription("Add the verses of a reference to a subject, creating the subject if needed. Verses already held are skipped."),
			mcp.WithString("name", mcp.Required(), mcp.Description("Subject name")),
			mcp.WithString("reference", mcp.Required(), mcp.Description("Verse reference, e.g. 'Hebrews 11:1-3'")),
			mcp.WithArray("translations", mcp.Description("Translation abbreviations (default: all enabled)"), mcp.WithStringItems()),
		),
		Handler: func(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			name, err := req.RequireString("name")
			if err != nil {
				return mcp.NewToolResultError("name is required"), nil //nolint:nilerr
			}
			ref, err := req.RequireString("reference")
			if err != nil {
				return mcp.NewToolResultError("reference is required"), nil //nolint:nilerr
			}
			translations := req.GetStringSlice("translations", nil)

			added, found, err := addReference(ctx, extCtx, name, ref, translations)

			log.Event("mcp:concord_subject_add", "add").Author("mcp").Target(name).Resolved(ref).Count(int(added)).Write(err)

			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return mcp.NewToolResultText(fmt.Sprintf("added %d of %d verses to %s", added, found, name)), nil
		},
	}
}

func commentTool() extension.MCPTool {
	return extension.MCPTool{
		Tool: mcp.NewTool("concord_subject_comment",
			mcp.WithDescription("Set the comment on one verse of a subject. An empty comment clears it."),
			mcp.WithString("name", mcp.Required(), mcp.Description("Subject name")),
			mcp.WithNumber("id", mcp.Required(), mcp.Description("Verse id from concord_subjects")),
			mcp.WithString("comment", mcp.Description("Comment text")),
		),
		Handler: func(ctx context.Context, extCtx extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			name, err := req.RequireString("name")
			if err != nil {
				return mcp.NewToolResultError("name is required"), nil //nolint:nilerr
			}
			id, err := req.RequireInt("id")
			if err != nil || id <= 0 {
				return mcp.NewToolResultError("id must be a positive number"), nil //nolint:nilerr
			}
			comment := req.GetString("comment", "")

			err = extCtx.Store().CommentSubjectVerse(ctx, name, int64(id), comment)

			log.Event("mcp:concord_subject_comment", "comment").Author("mcp").Target(name).Detail("id", id).Write(err)

			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return mcp.NewToolResultText(fmt.Sprintf("saved comment on %s #%d", name, id)), nil
		},
	}
}

// jsonResult wraps v as pretty-printed JSON text.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := store.MarshalJSON(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil //nolint:nilerr
	}
	return mcp.NewToolResultText(string(data)), nil
}
