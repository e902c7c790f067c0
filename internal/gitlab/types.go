package gitlab

// Project represents a GitLab project
type Project struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	Path              string `json:"path"`
	PathWithNamespace string `json:"path_with_namespace"`
	Description       string `json:"description"`
	DefaultBranch     string `json:"default_branch"`
	Visibility        string `json:"visibility"`
	WebURL            string `json:"web_url"`
	ForksCount        int    `json:"forks_count"`
	StarCount         int    `json:"star_count"`
}

// User represents a GitLab user
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Commit represents a repository commit
type Commit struct {
	ID         string `json:"id"`
	ShortID    string `json:"short_id"`
	Title      string `json:"title"`
	AuthorName string `json:"author_name"`
	CreatedAt  string `json:"created_at"`
	WebURL     string `json:"web_url"`
}

// Branch represents a repository branch
type Branch struct {
	Name      string  `json:"name"`
	Protected bool    `json:"protected"`
	Default   bool    `json:"default"`
	WebURL    string  `json:"web_url"`
	Commit    *Commit `json:"commit"`
}

// FileContent represents a single file fetched from the repository files API.
// Content is base64 on the wire and decoded to text before being returned.
type FileContent struct {
	FileName      string `json:"file_name"`
	FilePath      string `json:"file_path"`
	Size          int    `json:"size"`
	Encoding      string `json:"encoding"`
	Content       string `json:"content"`
	ContentSha256 string `json:"content_sha256"`
	Ref           string `json:"ref"`
	BlobID        string `json:"blob_id"`
	CommitID      string `json:"commit_id"`
	LastCommitID  string `json:"last_commit_id"`
}

// TreeEntry represents a file or directory in a repository tree listing
type TreeEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"` // "blob" for files, "tree" for directories
	Mode string `json:"mode"`
}

// Issue represents a GitLab issue
type Issue struct {
	ID          int      `json:"id"`
	IID         int      `json:"iid"`
	ProjectID   int      `json:"project_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	State       string   `json:"state"`
	Labels      []string `json:"labels"`
	Author      *User    `json:"author"`
	WebURL      string   `json:"web_url"`
}

// MergeRequest represents a GitLab merge request
type MergeRequest struct {
	ID           int    `json:"id"`
	IID          int    `json:"iid"`
	ProjectID    int    `json:"project_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	State        string `json:"state"`
	SourceBranch string `json:"source_branch"`
	TargetBranch string `json:"target_branch"`
	Author       *User  `json:"author"`
	WebURL       string `json:"web_url"`
}

// Note represents a comment on a merge request, standalone or inside a discussion
type Note struct {
	ID         int           `json:"id"`
	Type       string        `json:"type"`
	Body       string        `json:"body"`
	Author     User          `json:"author"`
	CreatedAt  string        `json:"created_at"`
	UpdatedAt  string        `json:"updated_at"`
	System     bool          `json:"system"`
	Resolvable bool          `json:"resolvable"`
	Resolved   bool          `json:"resolved"`
	Position   *DiffPosition `json:"position,omitempty"`
}

// Discussion represents a review thread: a grouped sequence of notes,
// optionally anchored to a diff position
type Discussion struct {
	ID             string `json:"id"`
	IndividualNote bool   `json:"individual_note"`
	Notes          []Note `json:"notes"`
}

// DiffPosition anchors a note to a location in a merge request diff.
// Exactly one of OldLine/NewLine may be absent for a line-anchored comment;
// both absent means a file-level comment.
type DiffPosition struct {
	BaseSHA      string     `json:"base_sha"`
	StartSHA     string     `json:"start_sha"`
	HeadSHA      string     `json:"head_sha"`
	OldPath      string     `json:"old_path"`
	NewPath      string     `json:"new_path"`
	PositionType string     `json:"position_type"`
	OldLine      *int       `json:"old_line,omitempty"`
	NewLine      *int       `json:"new_line,omitempty"`
	LineRange    *LineRange `json:"line_range,omitempty"`
}

// LineRange anchors a comment to a span of diff lines instead of a single one
type LineRange struct {
	Start *LineRangeEdge `json:"start,omitempty"`
	End   *LineRangeEdge `json:"end,omitempty"`
}

// LineRangeEdge is one endpoint of a multi-line range, identified by a
// GitLab line code.
type LineRangeEdge struct {
	LineCode string `json:"line_code"`
	Type     string `json:"type,omitempty"`
}

// MRApproval represents the merge request state returned by the approval endpoints
type MRApproval struct {
	ID                int    `json:"id"`
	IID               int    `json:"iid"`
	ProjectID         int    `json:"project_id"`
	Title             string `json:"title"`
	State             string `json:"state"`
	ApprovalsRequired int    `json:"approvals_required"`
	ApprovalsLeft     int    `json:"approvals_left"`
	ApprovedBy        []struct {
		User User `json:"user"`
	} `json:"approved_by"`
}

// FileDiff represents a single file change in a merge request diff
type FileDiff struct {
	OldPath     string `json:"old_path"`
	NewPath     string `json:"new_path"`
	AMode       string `json:"a_mode"`
	BMode       string `json:"b_mode"`
	NewFile     bool   `json:"new_file"`
	RenamedFile bool   `json:"renamed_file"`
	DeletedFile bool   `json:"deleted_file"`
	Diff        string `json:"diff"`
}

// MergeRequestChanges is the merge request changes API response
type MergeRequestChanges struct {
	ID           int        `json:"id"`
	IID          int        `json:"iid"`
	ProjectID    int        `json:"project_id"`
	Title        string     `json:"title"`
	State        string     `json:"state"`
	SourceBranch string     `json:"source_branch"`
	TargetBranch string     `json:"target_branch"`
	Changes      []FileDiff `json:"changes"`
}

// MergeRequestVersion represents one diff version of a merge request
type MergeRequestVersion struct {
	ID             int        `json:"id"`
	HeadCommitSHA  string     `json:"head_commit_sha"`
	BaseCommitSHA  string     `json:"base_commit_sha"`
	StartCommitSHA string     `json:"start_commit_sha"`
	CreatedAt      string     `json:"created_at"`
	MergeRequestID int        `json:"merge_request_id"`
	State          string     `json:"state"`
	RealSize       string     `json:"real_size"`
	Commits        []Commit   `json:"commits,omitempty"`
	Diffs          []FileDiff `json:"diffs,omitempty"`
}

// CommitAction is one file operation inside a multi-file commit
type CommitAction struct {
	Action   string `json:"action"` // "create" or "update"
	FilePath string `json:"file_path"`
	Content  string `json:"content"`
}

// FileWriteResult is the repository files API response for a create or update
type FileWriteResult struct {
	FilePath string `json:"file_path"`
	Branch   string `json:"branch"`
}
