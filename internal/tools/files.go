package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sbbwagh/gitlab-mcp/internal/gitlab"
)

// getFileContentsTool creates a tool to read a file or list a directory.
func getFileContentsTool(api gitlab.API) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("get_file_contents",
			mcp.WithDescription("Get the contents of a file or a directory listing from a GitLab project"),
			mcp.WithString("project_id",
				mcp.Required(),
				mcp.Description("The ID or URL-encoded path of the project"),
			),
			mcp.WithString("file_path",
				mcp.Required(),
				mcp.Description("Path of the file or directory inside the repository"),
			),
			mcp.WithString("ref",
				mcp.Description("Branch, tag or commit to read from (defaults to the default branch)"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			projectID, err := request.RequireString("project_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			filePath, err := request.RequireString("file_path")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			file, entries, err := api.GetFileContents(ctx, projectID, filePath, request.GetString("ref", ""))
			if err != nil {
				return toolError("get_file_contents", err)
			}
			if file != nil {
				return jsonResult(file)
			}
			return jsonResult(entries)
		}
}

// createOrUpdateFileTool creates a tool to write a single file on a branch.
func createOrUpdateFileTool(api gitlab.API) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("create_or_update_file",
			mcp.WithDescription("Create or update a single file in a GitLab project"),
			mcp.WithString("project_id",
				mcp.Required(),
				mcp.Description("The ID or URL-encoded path of the project"),
			),
			mcp.WithString("file_path",
				mcp.Required(),
				mcp.Description("Path where the file should be created or updated"),
			),
			mcp.WithString("content",
				mcp.Required(),
				mcp.Description("Content of the file"),
			),
			mcp.WithString("branch",
				mcp.Required(),
				mcp.Description("Branch to commit to"),
			),
			mcp.WithString("commit_message",
				mcp.Required(),
				mcp.Description("Commit message"),
			),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			projectID, err := request.RequireString("project_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			filePath, err := request.RequireString("file_path")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			content, err := request.RequireString("content")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			branch, err := request.RequireString("branch")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			commitMessage, err := request.RequireString("commit_message")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			result, err := api.CreateOrUpdateFile(ctx, projectID, filePath, content, branch, commitMessage)
			if err != nil {
				return toolError("create_or_update_file", err)
			}
			return jsonResult(result)
		}
}

// pushFilesTool creates a tool to commit several files at once.
func pushFilesTool(api gitlab.API) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("push_files",
			mcp.WithDescription("Commit multiple files to a branch in a single commit"),
			mcp.WithString("project_id",
				mcp.Required(),
				mcp.Description("The ID or URL-encoded path of the project"),
			),
			mcp.WithString("branch",
				mcp.Required(),
				mcp.Description("Branch to commit to"),
			),
			mcp.WithString("commit_message",
				mcp.Required(),
				mcp.Description("Commit message"),
			),
			mcp.WithArray("files",
				mcp.Required(),
				mcp.Description("Files to commit, each with file_path and content"),
				mcp.Items(map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"file_path": map[string]interface{}{"type": "string"},
						"content":   map[string]interface{}{"type": "string"},
					},
					"required": []string{"file_path", "content"},
				}),
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
			commitMessage, err := request.RequireString("commit_message")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			rawFiles, ok := request.GetArguments()["files"].([]interface{})
			if !ok || len(rawFiles) == 0 {
				return mcp.NewToolResultError("files must be a non-empty array"), nil
			}

			actions := make([]gitlab.CommitAction, 0, len(rawFiles))
			for _, raw := range rawFiles {
				entry, ok := raw.(map[string]interface{})
				if !ok {
					return mcp.NewToolResultError("each file must be an object with file_path and content"), nil
				}
				filePath, _ := entry["file_path"].(string)
				content, _ := entry["content"].(string)
				if filePath == "" {
					return mcp.NewToolResultError("each file needs a non-empty file_path"), nil
				}
				actions = append(actions, gitlab.CommitAction{
					Action:   "create",
					FilePath: filePath,
					Content:  content,
				})
			}

			commit, err := api.PushFiles(ctx, projectID, branch, commitMessage, actions)
			if err != nil {
				return toolError("push_files", err)
			}
			return jsonResult(commit)
		}
}
