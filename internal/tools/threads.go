package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sbbwagh/gitlab-mcp/internal/gitlab"
)

// createMergeRequestThreadTool creates a tool to start a review thread,
// optionally anchored to a diff position.
func createMergeRequestThreadTool(api gitlab.API) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("create_merge_request_thread",
			mcp.WithDescription("Start a new review thread on a merge request, optionally anchored to a line in the diff"),
			mcp.WithString("project_id",
				mcp.Required(),
				mcp.Description("The ID or URL-encoded path of the project"),
			),
			mcp.WithNumber("merge_request_iid",
				mcp.Required(),
				mcp.Description("The internal ID of the merge request"),
			),
			mcp.WithString("body",
				mcp.Required(),
				mcp.Description("Thread comment text"),
			),
			mcp.WithString("base_sha",
				mcp.Description("Base commit SHA of the diff position"),
			),
			mcp.WithString("start_sha",
				mcp.Description("Start commit SHA of the diff position"),
			),
			mcp.WithString("head_sha",
				mcp.Description("Head commit SHA of the diff position"),
			),
			mcp.WithString("old_path",
				mcp.Description("Path of the file before the change"),
			),
			mcp.WithString("new_path",
				mcp.Description("Path of the file after the change"),
			),
			mcp.WithNumber("old_line",
				mcp.Description("Line number in the old version of the file"),
			),
			mcp.WithNumber("new_line",
				mcp.Description("Line number in the new version of the file"),
			),
			mcp.WithString("start_line_code",
				mcp.Description("Line code of the first line for a multi-line comment"),
			),
			mcp.WithString("end_line_code",
				mcp.Description("Line code of the last line for a multi-line comment"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			projectID, mrIID, errResult := requireMR(request)
			if errResult != nil {
				return errResult, nil
			}
			body, err := request.RequireString("body")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			position := positionFromArgs(request)

			discussion, err := api.CreateMergeRequestThread(ctx, projectID, mrIID, body, position)
			if err != nil {
				return toolError("create_merge_request_thread", err)
			}
			return jsonResult(discussion)
		}
}

// positionFromArgs assembles a diff position from the flat tool arguments.
// Returns nil when no position SHAs were supplied (plain thread).
func positionFromArgs(request mcp.CallToolRequest) *gitlab.DiffPosition {
	baseSHA := request.GetString("base_sha", "")
	startSHA := request.GetString("start_sha", "")
	headSHA := request.GetString("head_sha", "")
	if baseSHA == "" && startSHA == "" && headSHA == "" {
		return nil
	}

	position := &gitlab.DiffPosition{
		BaseSHA:      baseSHA,
		StartSHA:     startSHA,
		HeadSHA:      headSHA,
		OldPath:      request.GetString("old_path", ""),
		NewPath:      request.GetString("new_path", ""),
		PositionType: "text",
	}

	if oldLine := request.GetInt("old_line", 0); oldLine > 0 {
		position.OldLine = &oldLine
	}
	if newLine := request.GetInt("new_line", 0); newLine > 0 {
		position.NewLine = &newLine
	}

	startCode := request.GetString("start_line_code", "")
	endCode := request.GetString("end_line_code", "")
	if startCode != "" && endCode != "" {
		position.LineRange = &gitlab.LineRange{
			Start: &gitlab.LineRangeEdge{LineCode: startCode},
			End:   &gitlab.LineRangeEdge{LineCode: endCode},
		}
	}
	return position
}

// resolveMergeRequestThreadTool creates a tool to resolve or unresolve a thread.
func resolveMergeRequestThreadTool(api gitlab.API) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("resolve_merge_request_thread",
			mcp.WithDescription("Resolve or unresolve a review thread on a merge request"),
			mcp.WithString("project_id",
				mcp.Required(),
				mcp.Description("The ID or URL-encoded path of the project"),
			),
			mcp.WithNumber("merge_request_iid",
				mcp.Required(),
				mcp.Description("The internal ID of the merge request"),
			),
			mcp.WithString("discussion_id",
				mcp.Required(),
				mcp.Description("ID of the thread to resolve"),
			),
			mcp.WithBoolean("resolved",
				mcp.Description("Resolved state to set (default: true)"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			projectID, mrIID, errResult := requireMR(request)
			if errResult != nil {
				return errResult, nil
			}
			discussionID, err := request.RequireString("discussion_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			discussion, err := api.ResolveMergeRequestThread(ctx, projectID, mrIID, discussionID, request.GetBool("resolved", true))
			if err != nil {
				return toolError("resolve_merge_request_thread", err)
			}
			return jsonResult(discussion)
		}
}

// addNoteToMergeRequestThreadTool creates a tool to reply inside a thread.
func addNoteToMergeRequestThreadTool(api gitlab.API) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("add_note_to_merge_request_thread",
			mcp.WithDescription("Add a note to an existing review thread on a merge request"),
			mcp.WithString("project_id",
				mcp.Required(),
				mcp.Description("The ID or URL-encoded path of the project"),
			),
			mcp.WithNumber("merge_request_iid",
				mcp.Required(),
				mcp.Description("The internal ID of the merge request"),
			),
			mcp.WithString("discussion_id",
				mcp.Required(),
				mcp.Description("ID of the thread to reply to"),
			),
			mcp.WithString("body",
				mcp.Required(),
				mcp.Description("Note text"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			projectID, mrIID, errResult := requireMR(request)
			if errResult != nil {
				return errResult, nil
			}
			discussionID, err := request.RequireString("discussion_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			body, err := request.RequireString("body")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			note, err := api.AddNoteToThread(ctx, projectID, mrIID, discussionID, body)
			if err != nil {
				return toolError("add_note_to_merge_request_thread", err)
			}
			return jsonResult(note)
		}
}

// getThreadListMergeRequestTool creates a tool to list every thread of a merge request.
func getThreadListMergeRequestTool(api gitlab.API) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("get_thread_list_merge_request",
			mcp.WithDescription("List all review threads of a merge request"),
			mcp.WithString("project_id",
				mcp.Required(),
				mcp.Description("The ID or URL-encoded path of the project"),
			),
			mcp.WithNumber("merge_request_iid",
				mcp.Required(),
				mcp.Description("The internal ID of the merge request"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			projectID, mrIID, errResult := requireMR(request)
			if errResult != nil {
				return errResult, nil
			}

			discussions, err := api.ListMergeRequestDiscussions(ctx, projectID, mrIID)
			if err != nil {
				return toolError("get_thread_list_merge_request", err)
			}
			return jsonResult(discussions)
		}
}
