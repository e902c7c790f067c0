package gitlab

import (
	"context"
	"fmt"
	"strings"
)

// CreateMergeRequestOptions holds the fields for opening a merge request
type CreateMergeRequestOptions struct {
	Title              string
	Description        string
	SourceBranch       string
	TargetBranch       string
	Labels             []string
	RemoveSourceBranch bool
	AllowCollaboration bool
}

// CreateMergeRequest opens a new merge request on a project
func (c *Client) CreateMergeRequest(ctx context.Context, projectRef string, opts CreateMergeRequestOptions) (*MergeRequest, error) {
	payload := map[string]interface{}{
		"title":         opts.Title,
		"source_branch": opts.SourceBranch,
		"target_branch": opts.TargetBranch,
	}
	if opts.Description != "" {
		payload["description"] = opts.Description
	}
	if len(opts.Labels) > 0 {
		payload["labels"] = strings.Join(opts.Labels, ",")
	}
	if opts.RemoveSourceBranch {
		payload["remove_source_branch"] = true
	}
	if opts.AllowCollaboration {
		payload["allow_collaboration"] = true
	}

	var mr MergeRequest
	path := fmt.Sprintf("/projects/%s/merge_requests", projectPath(projectRef))
	if err := c.postJSON(ctx, path, payload, &mr, "create merge request"); err != nil {
		return nil, err
	}
	return &mr, nil
}

// AddMergeRequestComment adds a plain comment (note) to a merge request
func (c *Client) AddMergeRequestComment(ctx context.Context, projectRef string, mrIID int, body string) (*Note, error) {
	payload := map[string]string{
		"body": body,
	}

	var note Note
	path := fmt.Sprintf("/projects/%s/merge_requests/%d/notes", projectPath(projectRef), mrIID)
	if err := c.postJSON(ctx, path, payload, &note, "add comment"); err != nil {
		return nil, err
	}
	return &note, nil
}

// ApproveMergeRequest approves a merge request on behalf of the token owner
func (c *Client) ApproveMergeRequest(ctx context.Context, projectRef string, mrIID int) (*MRApproval, error) {
	var approval MRApproval
	path := fmt.Sprintf("/projects/%s/merge_requests/%d/approve", projectPath(projectRef), mrIID)
	if err := c.postJSON(ctx, path, map[string]string{}, &approval, "approve merge request"); err != nil {
		return nil, err
	}
	return &approval, nil
}

// UnapproveMergeRequest revokes the token owner's approval of a merge request
func (c *Client) UnapproveMergeRequest(ctx context.Context, projectRef string, mrIID int) (*MRApproval, error) {
	var approval MRApproval
	path := fmt.Sprintf("/projects/%s/merge_requests/%d/unapprove", projectPath(projectRef), mrIID)
	if err := c.postJSON(ctx, path, map[string]string{}, &approval, "unapprove merge request"); err != nil {
		return nil, err
	}
	return &approval, nil
}

// ListMergeRequestDiffs returns every file diff of a merge request, fetching
// all pages in ascending order.
func (c *Client) ListMergeRequestDiffs(ctx context.Context, projectRef string, mrIID int) ([]FileDiff, error) {
	path := fmt.Sprintf("/projects/%s/merge_requests/%d/diffs", projectPath(projectRef), mrIID)
	return collectPages[FileDiff](ctx, c, path, nil, "merge request diffs")
}

// GetMergeRequestChanges fetches the merge request changes response, including
// the full diff of every changed file.
func (c *Client) GetMergeRequestChanges(ctx context.Context, projectRef string, mrIID int) (*MergeRequestChanges, error) {
	var changes MergeRequestChanges
	path := fmt.Sprintf("/projects/%s/merge_requests/%d/changes", projectPath(projectRef), mrIID)
	if err := c.getJSON(ctx, path, nil, &changes, "merge request changes"); err != nil {
		return nil, err
	}
	return &changes, nil
}

// GetMergeRequestVersions lists the diff versions of a merge request
func (c *Client) GetMergeRequestVersions(ctx context.Context, projectRef string, mrIID int) ([]MergeRequestVersion, error) {
	var versions []MergeRequestVersion
	path := fmt.Sprintf("/projects/%s/merge_requests/%d/versions", projectPath(projectRef), mrIID)
	if err := c.getJSON(ctx, path, nil, &versions, "merge request versions"); err != nil {
		return nil, err
	}
	return versions, nil
}

// GetMergeRequestVersion fetches a single diff version, including its commits
// and diffs.
func (c *Client) GetMergeRequestVersion(ctx context.Context, projectRef string, mrIID, versionID int) (*MergeRequestVersion, error) {
	var version MergeRequestVersion
	path := fmt.Sprintf("/projects/%s/merge_requests/%d/versions/%d", projectPath(projectRef), mrIID, versionID)
	if err := c.getJSON(ctx, path, nil, &version, "merge request version"); err != nil {
		return nil, err
	}
	return &version, nil
}
