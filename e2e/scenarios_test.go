package e2e

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbbwagh/gitlab-mcp/internal/config"
	"github.com/sbbwagh/gitlab-mcp/internal/gitlab"
	"github.com/sbbwagh/gitlab-mcp/internal/tools"
)

// newRegistry wires a real client against the stub, so every scenario runs the
// full path from tool arguments down to HTTP requests.
func newRegistry(stub *gitlabStub, perPage int) *tools.Registry {
	client := gitlab.NewClient(config.GitLabConfig{
		BaseURL: stub.URL(),
		Token:   "test-token",
		PerPage: perPage,
	})
	return tools.NewRegistry(client)
}

func callTool(t *testing.T, registry *tools.Registry, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	info, ok := registry.Get(name)
	require.True(t, ok, "tool %s not registered", name)

	request := mcp.CallToolRequest{}
	request.Params.Name = name
	request.Params.Arguments = args

	result, err := info.Handler(context.Background(), request)
	require.NoError(t, err)
	return result
}

func toolText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	return text.Text
}

// assertJSONEqual compares two JSON documents structurally and reports
// mismatches as a unified diff of their pretty-printed forms.
func assertJSONEqual(t *testing.T, want, got string) {
	t.Helper()

	var wantValue, gotValue interface{}
	require.NoError(t, json.Unmarshal([]byte(want), &wantValue))
	require.NoError(t, json.Unmarshal([]byte(got), &gotValue))
	if reflect.DeepEqual(wantValue, gotValue) {
		return
	}

	wantPretty, _ := json.MarshalIndent(wantValue, "", "  ")
	gotPretty, _ := json.MarshalIndent(gotValue, "", "  ")
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(wantPretty)),
		B:        difflib.SplitLines(string(gotPretty)),
		FromFile: "want",
		ToFile:   "got",
		Context:  3,
	})
	t.Fatalf("tool result mismatch:\n%s", diff)
}

// countRequests counts served requests whose "METHOD path" matches
func countRequests(stub *gitlabStub, prefix string) int {
	count := 0
	for _, line := range stub.Requests() {
		if strings.HasPrefix(line, prefix) {
			count++
		}
	}
	return count
}

func TestCommitScenario(t *testing.T) {
	stub := newGitLabStub()
	defer stub.Close()
	registry := newRegistry(stub, config.DefaultPerPage)

	stub.On("GET", "/projects/42", 200, map[string]interface{}{
		"id":             42,
		"default_branch": "main",
	})
	stub.OnChecked("POST", "/projects/42/repository/branches", 201, map[string]interface{}{
		"name": "feature/login",
	}, func(r *http.Request) {
		var payload map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "feature/login", payload["branch"])
		assert.Equal(t, "main", payload["ref"], "omitted ref resolves to the default branch")
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
	})
	// The existence probe finds nothing for this path, so the write goes
	// through POST. The stub answers 404 for the unregistered probe routes.
	stub.On("POST", "/projects/42/repository/files/docs%2Fguide.md", 201, map[string]interface{}{
		"file_path": "docs/guide.md",
		"branch":    "feature/login",
	})

	result := callTool(t, registry, "create_branch", map[string]interface{}{
		"project_id": "42",
		"branch":     "feature/login",
	})
	require.False(t, result.IsError, toolText(t, result))

	result = callTool(t, registry, "create_or_update_file", map[string]interface{}{
		"project_id":     "42",
		"file_path":      "docs/guide.md",
		"content":        "# Guide\n",
		"branch":         "feature/login",
		"commit_message": "Add guide",
	})
	require.False(t, result.IsError, toolText(t, result))

	requests := stub.Requests()
	assert.Equal(t, "GET /projects/42", requests[0], "default branch resolution comes first")
	assert.Equal(t, 1, countRequests(stub, "POST /projects/42/repository/branches"))
	assert.Equal(t, 1, countRequests(stub, "GET /projects/42/repository/files/docs%2Fguide.md"))
	assert.Equal(t, 1, countRequests(stub, "POST /projects/42/repository/files/docs%2Fguide.md"))
}

func TestUpdateExistingFileScenario(t *testing.T) {
	stub := newGitLabStub()
	defer stub.Close()
	registry := newRegistry(stub, config.DefaultPerPage)

	stub.On("GET", "/projects/42/repository/files/README.md", 200, map[string]interface{}{
		"file_path": "README.md",
		"encoding":  "base64",
		"content":   base64.StdEncoding.EncodeToString([]byte("old text")),
	})
	stub.On("PUT", "/projects/42/repository/files/README.md", 200, map[string]interface{}{
		"file_path": "README.md",
		"branch":    "main",
	})

	result := callTool(t, registry, "create_or_update_file", map[string]interface{}{
		"project_id":     "42",
		"file_path":      "README.md",
		"content":        "new text",
		"branch":         "main",
		"commit_message": "Update readme",
	})
	require.False(t, result.IsError, toolText(t, result))

	assert.Equal(t, 1, countRequests(stub, "GET /projects/42/repository/files/README.md"))
	assert.Equal(t, 1, countRequests(stub, "PUT /projects/42/repository/files/README.md"))
	assert.Equal(t, 0, countRequests(stub, "POST /projects/42/repository/files/README.md"))
}

func TestReviewScenario(t *testing.T) {
	stub := newGitLabStub()
	defer stub.Close()
	registry := newRegistry(stub, 2)

	pages := map[string][]map[string]interface{}{
		"1": {
			{"new_path": "a.go", "old_path": "a.go"},
			{"new_path": "b.go", "old_path": "b.go"},
		},
		"2": {
			{"new_path": "c.go", "old_path": "c.go"},
			{"new_path": "d.go", "old_path": "d.go"},
		},
		"3": {
			{"new_path": "e.go", "old_path": "e.go"},
		},
	}
	stub.OnFunc("GET", "/projects/42/merge_requests/7/diffs", func(r *http.Request) (int, interface{}) {
		return 200, pages[r.URL.Query().Get("page")]
	})
	stub.OnFunc("POST", "/projects/42/merge_requests/7/discussions", func(r *http.Request) (int, interface{}) {
		_ = r.ParseForm()
		if r.PostForm.Get("position[new_line]") != "" {
			return 400, map[string]string{"message": "line_code must be a valid line code"}
		}
		if !strings.Contains(r.PostForm.Get("body"), "placed at file level") {
			return 400, map[string]string{"message": "fallback body missing notice"}
		}
		return 201, map[string]interface{}{"id": "d1"}
	})
	stub.On("PUT", "/projects/42/merge_requests/7/discussions/d1", 200, map[string]interface{}{
		"id": "d1",
	})

	result := callTool(t, registry, "get_merge_request_diffs", map[string]interface{}{
		"project_id":        "42",
		"merge_request_iid": float64(7),
	})
	var diffs []gitlab.FileDiff
	require.NoError(t, json.Unmarshal([]byte(toolText(t, result)), &diffs))
	require.Len(t, diffs, 5, "all pages accumulate into one result")
	assert.Equal(t, "a.go", diffs[0].NewPath)
	assert.Equal(t, "e.go", diffs[4].NewPath)
	assert.Equal(t, 3, countRequests(stub, "GET /projects/42/merge_requests/7/diffs"))

	result = callTool(t, registry, "create_merge_request_thread", map[string]interface{}{
		"project_id":        "42",
		"merge_request_iid": float64(7),
		"body":              "this line needs a nil check",
		"base_sha":          "base000",
		"start_sha":         "start000",
		"head_sha":          "head000",
		"new_path":          "a.go",
		"new_line":          float64(3),
	})
	require.False(t, result.IsError, toolText(t, result))

	var discussion gitlab.Discussion
	require.NoError(t, json.Unmarshal([]byte(toolText(t, result)), &discussion))
	assert.Equal(t, "d1", discussion.ID)
	assert.Equal(t, 2, countRequests(stub, "POST /projects/42/merge_requests/7/discussions"),
		"rejected line anchor retries exactly once")

	result = callTool(t, registry, "resolve_merge_request_thread", map[string]interface{}{
		"project_id":        "42",
		"merge_request_iid": float64(7),
		"discussion_id":     "d1",
		"resolved":          true,
	})
	require.False(t, result.IsError, toolText(t, result))
}

func TestFileContentsEnvelope(t *testing.T) {
	stub := newGitLabStub()
	defer stub.Close()
	registry := newRegistry(stub, config.DefaultPerPage)

	stub.On("GET", "/projects/group%2Fdemo/repository/files/README.md", 200, map[string]interface{}{
		"file_name": "README.md",
		"file_path": "README.md",
		"size":      6,
		"encoding":  "base64",
		"content":   base64.StdEncoding.EncodeToString([]byte("hello\n")),
		"ref":       "main",
	})

	result := callTool(t, registry, "get_file_contents", map[string]interface{}{
		"project_id": "group/demo",
		"file_path":  "README.md",
		"ref":        "main",
	})
	require.False(t, result.IsError, toolText(t, result))

	assertJSONEqual(t, `{
		"file_name": "README.md",
		"file_path": "README.md",
		"size": 6,
		"encoding": "base64",
		"content": "hello\n",
		"content_sha256": "",
		"ref": "main",
		"blob_id": "",
		"commit_id": "",
		"last_commit_id": ""
	}`, toolText(t, result))
}

func TestRemoteErrorsKeepStatusAndBody(t *testing.T) {
	stub := newGitLabStub()
	defer stub.Close()
	registry := newRegistry(stub, config.DefaultPerPage)

	stub.On("POST", "/projects/42/merge_requests/7/approve", 401, map[string]string{
		"message": "401 Unauthorized",
	})

	result := callTool(t, registry, "approve_merge_request", map[string]interface{}{
		"project_id":        "42",
		"merge_request_iid": float64(7),
	})
	require.True(t, result.IsError)

	text, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	assert.Contains(t, text.Text, "GitLab API error 401")
	assert.Contains(t, text.Text, "401 Unauthorized")
}
