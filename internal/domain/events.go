package domain

// MergeEvent is the normalized form of an accepted GitLab merge notification.
// It flows through one call and is not retained.
type MergeEvent struct {
	ProjectName    string `json:"project_name"`
	ProjectURL     string `json:"project_url,omitempty"`
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	SourceBranch   string `json:"source_branch"`
	TargetBranch   string `json:"target_branch"`
	Author         string `json:"author"`
	AuthorUsername string `json:"author_username"`
	IID            int    `json:"iid"`
	CommitSHA      string `json:"commit_sha"`
	URL            string `json:"url,omitempty"`
	MergedAt       string `json:"merged_at,omitempty"`
}

// PushCommit is one commit carried by a push event.
type PushCommit struct {
	SHA     string `json:"sha"`
	Message string `json:"message"`
	Author  string `json:"author"`
}

// PushEvent is the normalized form of a direct push to a monitored branch.
type PushEvent struct {
	ProjectName  string       `json:"project_name"`
	ProjectURL   string       `json:"project_url,omitempty"`
	Branch       string       `json:"branch"`
	User         string       `json:"user"`
	UserUsername string       `json:"user_username"`
	CommitCount  int          `json:"commit_count"`
	Commits      []PushCommit `json:"commits"`
	CompareURL   string       `json:"compare_url,omitempty"`
}
