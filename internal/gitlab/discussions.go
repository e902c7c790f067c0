package gitlab

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sbbwagh/gitlab-mcp/internal/logging"
)

// positionFallbackNotice is appended to the comment body when line anchoring
// was rejected and the thread was re-sent as a file-level comment.
const positionFallbackNotice = "\n\n*Note: the requested line position was rejected by GitLab, so this comment was placed at file level.*"

// CreateMergeRequestThread starts a new review thread, optionally anchored to
// a diff position. When the API rejects a line-anchored position (for example
// because the line is outside the diff context), the call is retried exactly
// once without the line numbers and with a notice appended to the body. A
// failed retry surfaces as an error wrapping the retry failure.
func (c *Client) CreateMergeRequestThread(ctx context.Context, projectRef string, mrIID int, body string, position *DiffPosition) (*Discussion, error) {
	path := fmt.Sprintf("/projects/%s/merge_requests/%d/discussions", projectPath(projectRef), mrIID)

	var discussion Discussion
	err := c.postForm(ctx, path, threadForm(body, position), &discussion, "create thread")
	if err == nil {
		return &discussion, nil
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) || !lineAnchored(position) {
		return nil, err
	}

	logging.Warn("Line-anchored thread on MR %d rejected (status %d), retrying as file-level comment", mrIID, apiErr.StatusCode)

	fallback := *position
	fallback.OldLine = nil
	fallback.NewLine = nil
	fallback.LineRange = nil

	var retried Discussion
	if retryErr := c.postForm(ctx, path, threadForm(body+positionFallbackNotice, &fallback), &retried, "create thread"); retryErr != nil {
		return nil, fmt.Errorf("thread creation failed after dropping line position: %w", retryErr)
	}
	return &retried, nil
}

// lineAnchored reports whether a position carries line anchoring worth retrying without
func lineAnchored(position *DiffPosition) bool {
	return position != nil && (position.OldLine != nil || position.NewLine != nil || position.LineRange != nil)
}

// threadForm encodes the thread body and nested position into the bracketed
// form fields the discussions endpoint expects.
func threadForm(body string, position *DiffPosition) url.Values {
	form := url.Values{}
	form.Set("body", body)
	if position == nil {
		return form
	}

	form.Set("position[base_sha]", position.BaseSHA)
	form.Set("position[start_sha]", position.StartSHA)
	form.Set("position[head_sha]", position.HeadSHA)

	positionType := position.PositionType
	if positionType == "" {
		positionType = "text"
	}
	form.Set("position[position_type]", positionType)

	if position.OldPath != "" {
		form.Set("position[old_path]", position.OldPath)
	}
	if position.NewPath != "" {
		form.Set("position[new_path]", position.NewPath)
	}
	if position.OldLine != nil {
		form.Set("position[old_line]", strconv.Itoa(*position.OldLine))
	}
	if position.NewLine != nil {
		form.Set("position[new_line]", strconv.Itoa(*position.NewLine))
	}
	if position.LineRange != nil {
		setLineRangeEdge(form, "start", position.LineRange.Start)
		setLineRangeEdge(form, "end", position.LineRange.End)
	}
	return form
}

func setLineRangeEdge(form url.Values, edge string, value *LineRangeEdge) {
	if value == nil {
		return
	}
	form.Set(fmt.Sprintf("position[line_range][%s][line_code]", edge), value.LineCode)
	if value.Type != "" {
		form.Set(fmt.Sprintf("position[line_range][%s][type]", edge), value.Type)
	}
}

// ResolveMergeRequestThread marks a whole thread resolved or unresolved
func (c *Client) ResolveMergeRequestThread(ctx context.Context, projectRef string, mrIID int, discussionID string, resolved bool) (*Discussion, error) {
	payload := map[string]bool{
		"resolved": resolved,
	}

	var discussion Discussion
	path := fmt.Sprintf("/projects/%s/merge_requests/%d/discussions/%s", projectPath(projectRef), mrIID, url.PathEscape(discussionID))
	if err := c.putJSON(ctx, path, payload, &discussion, "resolve thread"); err != nil {
		return nil, err
	}
	return &discussion, nil
}

// AddNoteToThread appends a note to an existing thread
func (c *Client) AddNoteToThread(ctx context.Context, projectRef string, mrIID int, discussionID, body string) (*Note, error) {
	payload := map[string]string{
		"body": body,
	}

	var note Note
	path := fmt.Sprintf("/projects/%s/merge_requests/%d/discussions/%s/notes", projectPath(projectRef), mrIID, url.PathEscape(discussionID))
	if err := c.postJSON(ctx, path, payload, &note, "add thread note"); err != nil {
		return nil, err
	}
	return &note, nil
}

// ListMergeRequestDiscussions returns every discussion thread of a merge
// request, fetching all pages in ascending order.
func (c *Client) ListMergeRequestDiscussions(ctx context.Context, projectRef string, mrIID int) ([]Discussion, error) {
	path := fmt.Sprintf("/projects/%s/merge_requests/%d/discussions", projectPath(projectRef), mrIID)
	return collectPages[Discussion](ctx, c, path, nil, "merge request discussions")
}
