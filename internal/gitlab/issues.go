package gitlab

import (
	"context"
	"fmt"
	"strings"
)

// CreateIssueOptions holds the fields for creating an issue
type CreateIssueOptions struct {
	Title       string
	Description string
	AssigneeIDs []int
	MilestoneID int
	Labels      []string
}

// CreateIssue opens a new issue on a project. Labels are joined into the
// comma-separated string the API expects.
func (c *Client) CreateIssue(ctx context.Context, projectRef string, opts CreateIssueOptions) (*Issue, error) {
	payload := map[string]interface{}{
		"title": opts.Title,
	}
	if opts.Description != "" {
		payload["description"] = opts.Description
	}
	if len(opts.AssigneeIDs) > 0 {
		payload["assignee_ids"] = opts.AssigneeIDs
	}
	if opts.MilestoneID > 0 {
		payload["milestone_id"] = opts.MilestoneID
	}
	if len(opts.Labels) > 0 {
		payload["labels"] = strings.Join(opts.Labels, ",")
	}

	var issue Issue
	path := fmt.Sprintf("/projects/%s/issues", projectPath(projectRef))
	if err := c.postJSON(ctx, path, payload, &issue, "create issue"); err != nil {
		return nil, err
	}
	return &issue, nil
}
