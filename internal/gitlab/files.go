package gitlab

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// GetFileContents fetches a file or a directory listing at a ref. Exactly one
// of the return values is non-nil on success so callers can distinguish the two
// shapes. File content arrives base64-encoded and is decoded to text here.
func (c *Client) GetFileContents(ctx context.Context, projectRef, filePath, ref string) (*FileContent, []TreeEntry, error) {
	params := url.Values{}
	if ref != "" {
		params.Set("ref", ref)
	}

	var file FileContent
	path := fmt.Sprintf("/projects/%s/repository/files/%s", projectPath(projectRef), url.PathEscape(filePath))
	err := c.getJSON(ctx, path, params, &file, "file contents")
	if err == nil {
		if file.Encoding == "base64" {
			decoded, decodeErr := base64.StdEncoding.DecodeString(file.Content)
			if decodeErr != nil {
				return nil, nil, fmt.Errorf("failed to decode base64 content of %s: %w", filePath, decodeErr)
			}
			file.Content = string(decoded)
		}
		return &file, nil, nil
	}

	// A 404 on the files endpoint usually means the path is a directory;
	// fall back to a tree listing. Other failures surface as-is.
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
		return nil, nil, err
	}

	treeParams := url.Values{}
	treeParams.Set("path", filePath)
	if ref != "" {
		treeParams.Set("ref", ref)
	}

	var entries []TreeEntry
	treePath := fmt.Sprintf("/projects/%s/repository/tree", projectPath(projectRef))
	if err := c.getJSON(ctx, treePath, treeParams, &entries, "repository tree"); err != nil {
		return nil, nil, err
	}
	if len(entries) == 0 {
		return nil, nil, fmt.Errorf("path not found: %s", filePath)
	}
	return nil, entries, nil
}

// CreateOrUpdateFile writes a single file on a branch, probing for existence
// first to pick the HTTP verb: a successful read means update (PUT), any probe
// failure means create (POST). No lock is held between probe and write, so a
// concurrent external change can make the verb wrong; that race is accepted
// behavior, the remote API offers nothing to close it with.
func (c *Client) CreateOrUpdateFile(ctx context.Context, projectRef, filePath, content, branch, commitMessage string) (*FileWriteResult, error) {
	exists := true
	probe, _, err := c.GetFileContents(ctx, projectRef, filePath, branch)
	if err != nil || probe == nil {
		exists = false
	}

	payload := map[string]string{
		"branch":         branch,
		"content":        content,
		"commit_message": commitMessage,
	}

	var result FileWriteResult
	path := fmt.Sprintf("/projects/%s/repository/files/%s", projectPath(projectRef), url.PathEscape(filePath))
	if exists {
		if err := c.putJSON(ctx, path, payload, &result, "update file"); err != nil {
			return nil, err
		}
	} else {
		if err := c.postJSON(ctx, path, payload, &result, "create file"); err != nil {
			return nil, err
		}
	}
	return &result, nil
}

// PushFiles commits several files to a branch in a single commit using the
// commits API with an actions array.
func (c *Client) PushFiles(ctx context.Context, projectRef, branch, commitMessage string, actions []CommitAction) (*Commit, error) {
	payload := map[string]interface{}{
		"branch":         branch,
		"commit_message": commitMessage,
		"actions":        actions,
	}

	var commit Commit
	path := fmt.Sprintf("/projects/%s/repository/commits", projectPath(projectRef))
	if err := c.postJSON(ctx, path, payload, &commit, "push files"); err != nil {
		return nil, err
	}
	return &commit, nil
}
