package tools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sbbwagh/gitlab-mcp/internal/gitlab"
	"github.com/sbbwagh/gitlab-mcp/internal/logging"
)

// ToolInfo contains metadata about a registered tool
type ToolInfo struct {
	Name        string                 // Tool identifier
	Description string                 // Human-readable description
	Category    string                 // Tool category (e.g. "files", "merge_requests")
	Definition  mcp.Tool               // Input schema published to clients
	Handler     server.ToolHandlerFunc // Handler bound to the GitLab adapter
}

// Registry manages the available tools and their wiring into the MCP server
type Registry struct {
	tools map[string]*ToolInfo
	order []string
}

// NewRegistry creates a registry with every built-in tool bound to the given
// GitLab API implementation.
func NewRegistry(api gitlab.API) *Registry {
	registry := &Registry{
		tools: make(map[string]*ToolInfo),
	}
	registry.registerBuiltInTools(api)
	return registry
}

// registerBuiltInTools registers the full tool catalog
func (r *Registry) registerBuiltInTools(api gitlab.API) {
	register := func(category string) func(tool mcp.Tool, handler server.ToolHandlerFunc) {
		return func(tool mcp.Tool, handler server.ToolHandlerFunc) {
			_ = r.Register(&ToolInfo{
				Name:        tool.Name,
				Description: tool.Description,
				Category:    category,
				Definition:  tool,
				Handler:     handler,
			})
		}
	}

	register("repositories")(searchRepositoriesTool(api))
	register("repositories")(createRepositoryTool(api))
	register("repositories")(forkRepositoryTool(api))

	register("branches")(createBranchTool(api))

	register("files")(getFileContentsTool(api))
	register("files")(createOrUpdateFileTool(api))
	register("files")(pushFilesTool(api))

	register("issues")(createIssueTool(api))

	register("merge_requests")(createMergeRequestTool(api))
	register("merge_requests")(commentMergeRequestTool(api))
	register("merge_requests")(approveMergeRequestTool(api))
	register("merge_requests")(unapproveMergeRequestTool(api))
	register("merge_requests")(getMergeRequestDiffsTool(api))
	register("merge_requests")(getMergeRequestChangesTool(api))
	register("merge_requests")(getMergeRequestVersionTool(api))

	register("threads")(createMergeRequestThreadTool(api))
	register("threads")(resolveMergeRequestThreadTool(api))
	register("threads")(addNoteToMergeRequestThreadTool(api))
	register("threads")(getThreadListMergeRequestTool(api))
}

// Register adds a tool to the registry
func (r *Registry) Register(info *ToolInfo) error {
	if info.Name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if _, exists := r.tools[info.Name]; exists {
		return fmt.Errorf("tool %s is already registered", info.Name)
	}
	r.tools[info.Name] = info
	r.order = append(r.order, info.Name)
	return nil
}

// Get returns a tool by name
func (r *Registry) Get(name string) (*ToolInfo, bool) {
	info, ok := r.tools[name]
	return info, ok
}

// List returns all registered tools in registration order
func (r *Registry) List() []*ToolInfo {
	infos := make([]*ToolInfo, 0, len(r.order))
	for _, name := range r.order {
		infos = append(infos, r.tools[name])
	}
	return infos
}

// AttachAll wires every registered tool into the MCP server
func (r *Registry) AttachAll(s *server.MCPServer) {
	for _, info := range r.List() {
		s.AddTool(info.Definition, info.Handler)
	}
	logging.Info("Registered %d tools", len(r.order))
}

// jsonResult serializes a successful payload into the single text content item
// every tool emits.
func jsonResult(payload interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// toolError wraps an adapter failure into an error result, preserving the
// remote status line and body for the caller.
func toolError(operation string, err error) (*mcp.CallToolResult, error) {
	logging.Error("%s failed: %v", operation, err)
	return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", operation, err)), nil
}

// intSliceArg reads an optional array-of-integers argument
func intSliceArg(request mcp.CallToolRequest, key string) []int {
	args := request.GetArguments()
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	values := make([]int, 0, len(raw))
	for _, item := range raw {
		if f, ok := item.(float64); ok {
			values = append(values, int(f))
		}
	}
	return values
}

// stringSliceArg reads an optional array-of-strings argument
func stringSliceArg(request mcp.CallToolRequest, key string) []string {
	args := request.GetArguments()
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	values := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			values = append(values, s)
		}
	}
	return values
}
