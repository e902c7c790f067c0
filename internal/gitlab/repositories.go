package gitlab

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// SearchProjects searches projects visible to the token by name or path
func (c *Client) SearchProjects(ctx context.Context, query string, page, perPage int) ([]Project, error) {
	params := url.Values{}
	params.Set("search", query)
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		params.Set("per_page", strconv.Itoa(perPage))
	}

	var projects []Project
	if err := c.getJSON(ctx, "/projects", params, &projects, "project search"); err != nil {
		return nil, err
	}
	return projects, nil
}

// CreateProjectOptions holds the fields for creating a new project
type CreateProjectOptions struct {
	Name                 string `json:"name"`
	Description          string `json:"description,omitempty"`
	Visibility           string `json:"visibility,omitempty"`
	InitializeWithReadme bool   `json:"initialize_with_readme,omitempty"`
}

// CreateProject creates a new project owned by the authenticated user
func (c *Client) CreateProject(ctx context.Context, opts CreateProjectOptions) (*Project, error) {
	var project Project
	if err := c.postJSON(ctx, "/projects", opts, &project, "create project"); err != nil {
		return nil, err
	}
	return &project, nil
}

// ForkProject forks a project, optionally into a target namespace
func (c *Client) ForkProject(ctx context.Context, projectRef, namespace string) (*Project, error) {
	payload := map[string]string{}
	if namespace != "" {
		payload["namespace_path"] = namespace
	}

	var fork Project
	path := fmt.Sprintf("/projects/%s/fork", projectPath(projectRef))
	if err := c.postJSON(ctx, path, payload, &fork, "fork project"); err != nil {
		return nil, err
	}
	return &fork, nil
}

// GetProject fetches a single project, including its default branch
func (c *Client) GetProject(ctx context.Context, projectRef string) (*Project, error) {
	var project Project
	path := fmt.Sprintf("/projects/%s", projectPath(projectRef))
	if err := c.getJSON(ctx, path, nil, &project, "get project"); err != nil {
		return nil, err
	}
	return &project, nil
}
