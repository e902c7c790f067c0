package tools

import (
	"context"

	"github.com/sbbwagh/gitlab-mcp/internal/gitlab"
)

// Verify that mockAPI implements the API interface
var _ gitlab.API = (*mockAPI)(nil)

// mockAPI records every adapter call and returns canned values. Individual
// tests override the function fields they care about.
type mockAPI struct {
	Calls []string

	SearchProjectsFn     func(query string, page, perPage int) ([]gitlab.Project, error)
	GetFileContentsFn    func(projectRef, filePath, ref string) (*gitlab.FileContent, []gitlab.TreeEntry, error)
	CreateBranchFn       func(projectRef, branch, ref string) (*gitlab.Branch, error)
	CreateThreadFn       func(projectRef string, mrIID int, body string, position *gitlab.DiffPosition) (*gitlab.Discussion, error)
	GetChangesFn         func(projectRef string, mrIID int) (*gitlab.MergeRequestChanges, error)
	CreateMergeRequestFn func(projectRef string, opts gitlab.CreateMergeRequestOptions) (*gitlab.MergeRequest, error)
	Err                  error
}

func (m *mockAPI) record(name string) { m.Calls = append(m.Calls, name) }

func (m *mockAPI) SearchProjects(_ context.Context, query string, page, perPage int) ([]gitlab.Project, error) {
	m.record("SearchProjects")
	if m.SearchProjectsFn != nil {
		return m.SearchProjectsFn(query, page, perPage)
	}
	return []gitlab.Project{}, m.Err
}

func (m *mockAPI) CreateProject(_ context.Context, opts gitlab.CreateProjectOptions) (*gitlab.Project, error) {
	m.record("CreateProject")
	return &gitlab.Project{Name: opts.Name}, m.Err
}

func (m *mockAPI) ForkProject(_ context.Context, projectRef, namespace string) (*gitlab.Project, error) {
	m.record("ForkProject")
	return &gitlab.Project{}, m.Err
}

func (m *mockAPI) GetProject(_ context.Context, projectRef string) (*gitlab.Project, error) {
	m.record("GetProject")
	return &gitlab.Project{DefaultBranch: "main"}, m.Err
}

func (m *mockAPI) CreateBranch(_ context.Context, projectRef, branch, ref string) (*gitlab.Branch, error) {
	m.record("CreateBranch")
	if m.CreateBranchFn != nil {
		return m.CreateBranchFn(projectRef, branch, ref)
	}
	return &gitlab.Branch{Name: branch}, m.Err
}

func (m *mockAPI) GetDefaultBranch(_ context.Context, projectRef string) (string, error) {
	m.record("GetDefaultBranch")
	return "main", m.Err
}

func (m *mockAPI) GetFileContents(_ context.Context, projectRef, filePath, ref string) (*gitlab.FileContent, []gitlab.TreeEntry, error) {
	m.record("GetFileContents")
	if m.GetFileContentsFn != nil {
		return m.GetFileContentsFn(projectRef, filePath, ref)
	}
	return &gitlab.FileContent{FilePath: filePath, Content: "content"}, nil, m.Err
}

func (m *mockAPI) CreateOrUpdateFile(_ context.Context, projectRef, filePath, content, branch, commitMessage string) (*gitlab.FileWriteResult, error) {
	m.record("CreateOrUpdateFile")
	return &gitlab.FileWriteResult{FilePath: filePath, Branch: branch}, m.Err
}

func (m *mockAPI) PushFiles(_ context.Context, projectRef, branch, commitMessage string, actions []gitlab.CommitAction) (*gitlab.Commit, error) {
	m.record("PushFiles")
	return &gitlab.Commit{ID: "abc123"}, m.Err
}

func (m *mockAPI) CreateIssue(_ context.Context, projectRef string, opts gitlab.CreateIssueOptions) (*gitlab.Issue, error) {
	m.record("CreateIssue")
	return &gitlab.Issue{Title: opts.Title, Labels: opts.Labels}, m.Err
}

func (m *mockAPI) CreateMergeRequest(_ context.Context, projectRef string, opts gitlab.CreateMergeRequestOptions) (*gitlab.MergeRequest, error) {
	m.record("CreateMergeRequest")
	if m.CreateMergeRequestFn != nil {
		return m.CreateMergeRequestFn(projectRef, opts)
	}
	return &gitlab.MergeRequest{Title: opts.Title}, m.Err
}

func (m *mockAPI) AddMergeRequestComment(_ context.Context, projectRef string, mrIID int, body string) (*gitlab.Note, error) {
	m.record("AddMergeRequestComment")
	return &gitlab.Note{Body: body}, m.Err
}

func (m *mockAPI) ApproveMergeRequest(_ context.Context, projectRef string, mrIID int) (*gitlab.MRApproval, error) {
	m.record("ApproveMergeRequest")
	return &gitlab.MRApproval{IID: mrIID}, m.Err
}

func (m *mockAPI) UnapproveMergeRequest(_ context.Context, projectRef string, mrIID int) (*gitlab.MRApproval, error) {
	m.record("UnapproveMergeRequest")
	return &gitlab.MRApproval{IID: mrIID}, m.Err
}

func (m *mockAPI) ListMergeRequestDiffs(_ context.Context, projectRef string, mrIID int) ([]gitlab.FileDiff, error) {
	m.record("ListMergeRequestDiffs")
	return []gitlab.FileDiff{}, m.Err
}

func (m *mockAPI) GetMergeRequestChanges(_ context.Context, projectRef string, mrIID int) (*gitlab.MergeRequestChanges, error) {
	m.record("GetMergeRequestChanges")
	if m.GetChangesFn != nil {
		return m.GetChangesFn(projectRef, mrIID)
	}
	return &gitlab.MergeRequestChanges{IID: mrIID}, m.Err
}

func (m *mockAPI) GetMergeRequestVersions(_ context.Context, projectRef string, mrIID int) ([]gitlab.MergeRequestVersion, error) {
	m.record("GetMergeRequestVersions")
	return []gitlab.MergeRequestVersion{}, m.Err
}

func (m *mockAPI) GetMergeRequestVersion(_ context.Context, projectRef string, mrIID, versionID int) (*gitlab.MergeRequestVersion, error) {
	m.record("GetMergeRequestVersion")
	return &gitlab.MergeRequestVersion{ID: versionID}, m.Err
}

func (m *mockAPI) CreateMergeRequestThread(_ context.Context, projectRef string, mrIID int, body string, position *gitlab.DiffPosition) (*gitlab.Discussion, error) {
	m.record("CreateMergeRequestThread")
	if m.CreateThreadFn != nil {
		return m.CreateThreadFn(projectRef, mrIID, body, position)
	}
	return &gitlab.Discussion{ID: "d1"}, m.Err
}

func (m *mockAPI) ResolveMergeRequestThread(_ context.Context, projectRef string, mrIID int, discussionID string, resolved bool) (*gitlab.Discussion, error) {
	m.record("ResolveMergeRequestThread")
	return &gitlab.Discussion{ID: discussionID}, m.Err
}

func (m *mockAPI) AddNoteToThread(_ context.Context, projectRef string, mrIID int, discussionID, body string) (*gitlab.Note, error) {
	m.record("AddNoteToThread")
	return &gitlab.Note{Body: body}, m.Err
}

func (m *mockAPI) ListMergeRequestDiscussions(_ context.Context, projectRef string, mrIID int) ([]gitlab.Discussion, error) {
	m.record("ListMergeRequestDiscussions")
	return []gitlab.Discussion{}, m.Err
}
