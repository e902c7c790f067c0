package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sbbwagh/gitlab-mcp/internal/gitlab"
)

// createBranchTool creates a tool to create a new branch. When no ref is
// given the project's default branch is used as the starting point.
func createBranchTool(api gitlab.API) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("create_branch",
			mcp.WithDescription("Create a new branch in a GitLab project"),
			mcp.WithString("project_id",
				mcp.Required(),
				mcp.Description("The ID or URL-encoded path of the project"),
			),
			mcp.WithString("branch",
				mcp.Required(),
				mcp.Description("Name of the new branch"),
			),
			mcp.WithString("ref",
				mcp.Description("Branch or commit to start from (defaults to the project's default branch)"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			projectID, err := request.RequireString("project_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			branch, err := request.RequireString("branch")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			created, err := api.CreateBranch(ctx, projectID, branch, request.GetString("ref", ""))
			if err != nil {
				return toolError("create_branch", err)
			}
			return jsonResult(created)
		}
}
