package gitlab

import "context"

// API is the interface for GitLab API operations used by the tool handlers.
// It allows for easy mocking in tests.
type API interface {
	// Projects
	SearchProjects(ctx context.Context, query string, page, perPage int) ([]Project, error)
	CreateProject(ctx context.Context, opts CreateProjectOptions) (*Project, error)
	ForkProject(ctx context.Context, projectRef, namespace string) (*Project, error)
	GetProject(ctx context.Context, projectRef string) (*Project, error)

	// Branches
	CreateBranch(ctx context.Context, projectRef, branch, ref string) (*Branch, error)
	GetDefaultBranch(ctx context.Context, projectRef string) (string, error)

	// Files
	GetFileContents(ctx context.Context, projectRef, filePath, ref string) (*FileContent, []TreeEntry, error)
	CreateOrUpdateFile(ctx context.Context, projectRef, filePath, content, branch, commitMessage string) (*FileWriteResult, error)
	PushFiles(ctx context.Context, projectRef, branch, commitMessage string, actions []CommitAction) (*Commit, error)

	// Issues
	CreateIssue(ctx context.Context, projectRef string, opts CreateIssueOptions) (*Issue, error)

	// Merge requests
	CreateMergeRequest(ctx context.Context, projectRef string, opts CreateMergeRequestOptions) (*MergeRequest, error)
	AddMergeRequestComment(ctx context.Context, projectRef string, mrIID int, body string) (*Note, error)
	ApproveMergeRequest(ctx context.Context, projectRef string, mrIID int) (*MRApproval, error)
	UnapproveMergeRequest(ctx context.Context, projectRef string, mrIID int) (*MRApproval, error)
	ListMergeRequestDiffs(ctx context.Context, projectRef string, mrIID int) ([]FileDiff, error)
	GetMergeRequestChanges(ctx context.Context, projectRef string, mrIID int) (*MergeRequestChanges, error)
	GetMergeRequestVersions(ctx context.Context, projectRef string, mrIID int) ([]MergeRequestVersion, error)
	GetMergeRequestVersion(ctx context.Context, projectRef string, mrIID, versionID int) (*MergeRequestVersion, error)

	// Discussions
	CreateMergeRequestThread(ctx context.Context, projectRef string, mrIID int, body string, position *DiffPosition) (*Discussion, error)
	ResolveMergeRequestThread(ctx context.Context, projectRef string, mrIID int, discussionID string, resolved bool) (*Discussion, error)
	AddNoteToThread(ctx context.Context, projectRef string, mrIID int, discussionID, body string) (*Note, error)
	ListMergeRequestDiscussions(ctx context.Context, projectRef string, mrIID int) ([]Discussion, error)
}

// Verify that Client implements the API interface
var _ API = (*Client)(nil)
