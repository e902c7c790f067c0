package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sbbwagh/gitlab-mcp/internal/gitlab"
)

// requireMR reads the project_id and merge_request_iid arguments shared by
// every merge-request tool.
func requireMR(request mcp.CallToolRequest) (projectID string, mrIID int, errResult *mcp.CallToolResult) {
	projectID, err := request.RequireString("project_id")
	if err != nil {
		return "", 0, mcp.NewToolResultError(err.Error())
	}
	mrIID = request.GetInt("merge_request_iid", 0)
	if mrIID <= 0 {
		return "", 0, mcp.NewToolResultError("merge_request_iid must be a positive integer")
	}
	return projectID, mrIID, nil
}

// createMergeRequestTool creates a tool to open a merge request.
func createMergeRequestTool(api gitlab.API) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("create_merge_request",
			mcp.WithDescription("Create a new merge request in a GitLab project"),
			mcp.WithString("project_id",
				mcp.Required(),
				mcp.Description("The ID or URL-encoded path of the project"),
			),
			mcp.WithString("title",
				mcp.Required(),
				mcp.Description("Merge request title"),
			),
			mcp.WithString("source_branch",
				mcp.Required(),
				mcp.Description("Source branch"),
			),
			mcp.WithString("target_branch",
				mcp.Required(),
				mcp.Description("Target branch"),
			),
			mcp.WithString("description",
				mcp.Description("Merge request description"),
			),
			mcp.WithArray("labels",
				mcp.Description("Labels to apply"),
				mcp.Items(map[string]interface{}{"type": "string"}),
			),
			mcp.WithBoolean("remove_source_branch",
				mcp.Description("Remove the source branch after merge"),
			),
			mcp.WithBoolean("allow_collaboration",
				mcp.Description("Allow commits from members who can merge to the target branch"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			projectID, err := request.RequireString("project_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			title, err := request.RequireString("title")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			sourceBranch, err := request.RequireString("source_branch")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			targetBranch, err := request.RequireString("target_branch")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			mr, err := api.CreateMergeRequest(ctx, projectID, gitlab.CreateMergeRequestOptions{
				Title:              title,
				Description:        request.GetString("description", ""),
				SourceBranch:       sourceBranch,
				TargetBranch:       targetBranch,
				Labels:             stringSliceArg(request, "labels"),
				RemoveSourceBranch: request.GetBool("remove_source_branch", false),
				AllowCollaboration: request.GetBool("allow_collaboration", false),
			})
			if err != nil {
				return toolError("create_merge_request", err)
			}
			return jsonResult(mr)
		}
}

// commentMergeRequestTool creates a tool to add a plain comment to a merge request.
func commentMergeRequestTool(api gitlab.API) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("comment_merge_request",
			mcp.WithDescription("Add a comment to a merge request"),
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
				mcp.Description("Comment text"),
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

			note, err := api.AddMergeRequestComment(ctx, projectID, mrIID, body)
			if err != nil {
				return toolError("comment_merge_request", err)
			}
			return jsonResult(note)
		}
}

// approveMergeRequestTool creates a tool to approve a merge request.
func approveMergeRequestTool(api gitlab.API) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("approve_merge_request",
			mcp.WithDescription("Approve a merge request"),
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

			approval, err := api.ApproveMergeRequest(ctx, projectID, mrIID)
			if err != nil {
				return toolError("approve_merge_request", err)
			}
			return jsonResult(approval)
		}
}

// unapproveMergeRequestTool creates a tool to revoke an approval.
func unapproveMergeRequestTool(api gitlab.API) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("unapprove_merge_request",
			mcp.WithDescription("Revoke your approval of a merge request"),
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

			approval, err := api.UnapproveMergeRequest(ctx, projectID, mrIID)
			if err != nil {
				return toolError("unapprove_merge_request", err)
			}
			return jsonResult(approval)
		}
}

// getMergeRequestDiffsTool creates a tool to list every file diff of a merge request.
func getMergeRequestDiffsTool(api gitlab.API) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("get_merge_request_diffs",
			mcp.WithDescription("List all file diffs of a merge request"),
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

			diffs, err := api.ListMergeRequestDiffs(ctx, projectID, mrIID)
			if err != nil {
				return toolError("get_merge_request_diffs", err)
			}
			return jsonResult(diffs)
		}
}

// getMergeRequestChangesTool creates a tool returning the changes response
// together with a derived summary (file counts + diff previews).
func getMergeRequestChangesTool(api gitlab.API) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("get_merge_request_changes",
			mcp.WithDescription("Get the changed files of a merge request with a summary of additions, deletions, renames and modifications"),
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

			changes, err := api.GetMergeRequestChanges(ctx, projectID, mrIID)
			if err != nil {
				return toolError("get_merge_request_changes", err)
			}

			return jsonResult(map[string]interface{}{
				"merge_request": changes,
				"summary":       gitlab.SummarizeChanges(changes),
			})
		}
}

// getMergeRequestVersionTool creates a tool to fetch diff versions: all of
// them, or one (with commits and diffs) when version_id is given.
func getMergeRequestVersionTool(api gitlab.API) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("get_merge_request_version",
			mcp.WithDescription("Get the diff versions of a merge request, or a single version with its commits and diffs"),
			mcp.WithString("project_id",
				mcp.Required(),
				mcp.Description("The ID or URL-encoded path of the project"),
			),
			mcp.WithNumber("merge_request_iid",
				mcp.Required(),
				mcp.Description("The internal ID of the merge request"),
			),
			mcp.WithNumber("version_id",
				mcp.Description("Version ID to fetch in full (omit to list all versions)"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			projectID, mrIID, errResult := requireMR(request)
			if errResult != nil {
				return errResult, nil
			}

			if versionID := request.GetInt("version_id", 0); versionID > 0 {
				version, err := api.GetMergeRequestVersion(ctx, projectID, mrIID, versionID)
				if err != nil {
					return toolError("get_merge_request_version", err)
				}
				return jsonResult(version)
			}

			versions, err := api.GetMergeRequestVersions(ctx, projectID, mrIID)
			if err != nil {
				return toolError("get_merge_request_version", err)
			}
			return jsonResult(versions)
		}
}
