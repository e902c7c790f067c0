package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sbbwagh/gitlab-mcp/internal/gitlab"
)

// searchRepositoriesTool creates a tool to search GitLab projects.
func searchRepositoriesTool(api gitlab.API) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("search_repositories",
			mcp.WithDescription("Search for GitLab projects by name or path"),
			mcp.WithString("search",
				mcp.Required(),
				mcp.Description("Search query"),
			),
			mcp.WithNumber("page",
				mcp.Description("Page number (default: 1)"),
			),
			mcp.WithNumber("per_page",
				mcp.Description("Results per page (default: 20)"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			search, err := request.RequireString("search")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			page := request.GetInt("page", 0)
			perPage := request.GetInt("per_page", 0)

			projects, err := api.SearchProjects(ctx, search, page, perPage)
			if err != nil {
				return toolError("search_repositories", err)
			}
			return jsonResult(projects)
		}
}

// createRepositoryTool creates a tool to create a new GitLab project.
func createRepositoryTool(api gitlab.API) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("create_repository",
			mcp.WithDescription("Create a new GitLab project"),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("Project name"),
			),
			mcp.WithString("description",
				mcp.Description("Project description"),
			),
			mcp.WithString("visibility",
				mcp.Description("Project visibility: private, internal, or public"),
				mcp.Enum("private", "internal", "public"),
			),
			mcp.WithBoolean("initialize_with_readme",
				mcp.Description("Initialize the project with a README"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			name, err := request.RequireString("name")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			project, err := api.CreateProject(ctx, gitlab.CreateProjectOptions{
				Name:                 name,
				Description:          request.GetString("description", ""),
				Visibility:           request.GetString("visibility", ""),
				InitializeWithReadme: request.GetBool("initialize_with_readme", false),
			})
			if err != nil {
				return toolError("create_repository", err)
			}
			return jsonResult(project)
		}
}

// forkRepositoryTool creates a tool to fork a project.
func forkRepositoryTool(api gitlab.API) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("fork_repository",
			mcp.WithDescription("Fork a GitLab project, optionally into a target namespace"),
			mcp.WithString("project_id",
				mcp.Required(),
				mcp.Description("The ID or URL-encoded path of the project to fork"),
			),
			mcp.WithString("namespace",
				mcp.Description("Namespace path to fork into (defaults to the user's namespace)"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			projectID, err := request.RequireString("project_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			fork, err := api.ForkProject(ctx, projectID, request.GetString("namespace", ""))
			if err != nil {
				return toolError("fork_repository", err)
			}
			return jsonResult(fork)
		}
}
