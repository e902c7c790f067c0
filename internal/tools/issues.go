package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sbbwagh/gitlab-mcp/internal/gitlab"
)

// createIssueTool creates a tool to open a new issue.
func createIssueTool(api gitlab.API) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("create_issue",
			mcp.WithDescription("Create a new issue in a GitLab project"),
			mcp.WithString("project_id",
				mcp.Required(),
				mcp.Description("The ID or URL-encoded path of the project"),
			),
			mcp.WithString("title",
				mcp.Required(),
				mcp.Description("Issue title"),
			),
			mcp.WithString("description",
				mcp.Description("Issue description"),
			),
			mcp.WithArray("assignee_ids",
				mcp.Description("User IDs to assign the issue to"),
				mcp.Items(map[string]interface{}{"type": "integer"}),
			),
			mcp.WithNumber("milestone_id",
				mcp.Description("Milestone ID to attach"),
			),
			mcp.WithArray("labels",
				mcp.Description("Labels to apply"),
				mcp.Items(map[string]interface{}{"type": "string"}),
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

			issue, err := api.CreateIssue(ctx, projectID, gitlab.CreateIssueOptions{
				Title:       title,
				Description: request.GetString("description", ""),
				AssigneeIDs: intSliceArg(request, "assignee_ids"),
				MilestoneID: request.GetInt("milestone_id", 0),
				Labels:      stringSliceArg(request, "labels"),
			})
			if err != nil {
				return toolError("create_issue", err)
			}
			return jsonResult(issue)
		}
}
