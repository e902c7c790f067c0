package gitlab

import (
	"context"
	"fmt"
)

// CreateBranch creates a new branch. When ref is empty the project's default
// branch is resolved first and used as the starting point; the resolution call
// always happens before the creation call.
func (c *Client) CreateBranch(ctx context.Context, projectRef, branch, ref string) (*Branch, error) {
	if ref == "" {
		defaultBranch, err := c.GetDefaultBranch(ctx, projectRef)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve default branch: %w", err)
		}
		ref = defaultBranch
	}

	payload := map[string]string{
		"branch": branch,
		"ref":    ref,
	}

	var created Branch
	path := fmt.Sprintf("/projects/%s/repository/branches", projectPath(projectRef))
	if err := c.postJSON(ctx, path, payload, &created, "create branch"); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetDefaultBranch resolves the branch a project nominates as its primary line
// of development.
func (c *Client) GetDefaultBranch(ctx context.Context, projectRef string) (string, error) {
	project, err := c.GetProject(ctx, projectRef)
	if err != nil {
		return "", err
	}
	if project.DefaultBranch == "" {
		return "", fmt.Errorf("project %s has no default branch", projectRef)
	}
	return project.DefaultBranch, nil
}
