package gitlab

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Octavian-Covalciuc/CI-Tg-Bot/internal/domain"
)

var (
	// ErrUnauthorized means the request's X-Gitlab-Token did not match the
	// configured secret.
	ErrUnauthorized = errors.New("invalid webhook token")

	// ErrMalformedPayload means the body could not be decoded or a required
	// field was missing.
	ErrMalformedPayload = errors.New("malformed payload")
)

// Notification is the result of an accepted webhook: the normalized event and
// the message text destined for the notification sink.
type Notification struct {
	Kind  EventKind
	Text  string
	Merge *domain.MergeEvent
	Push  *domain.PushEvent
}

// Ingestor validates and normalizes inbound GitLab webhook requests.
type Ingestor struct {
	secret   string
	branches map[string]struct{}
}

func NewIngestor(secret string, monitoredBranches []string) *Ingestor {
	set := make(map[string]struct{}, len(monitoredBranches))
	for _, b := range monitoredBranches {
		set[b] = struct{}{}
	}
	return &Ingestor{secret: secret, branches: set}
}

func (i *Ingestor) monitored(branch string) bool {
	_, ok := i.branches[branch]
	return ok
}

// Ingest validates one webhook call: authenticity token, event kind, branch
// filter, then payload shape. A nil Notification with a nil error means the
// event was recognized but intentionally ignored (unknown kind, unmonitored
// branch, non-merge action); the caller should still acknowledge it.
func (i *Ingestor) Ingest(token, eventHeader string, body []byte) (*Notification, error) {
	if token != i.secret {
		return nil, ErrUnauthorized
	}

	switch KindOf(eventHeader) {
	case EventMergeRequest:
		return i.ingestMergeRequest(body)
	case EventPush:
		return i.ingestPush(body)
	}
	return nil, nil
}

type mergeRequestPayload struct {
	ObjectAttributes struct {
		Action         string `json:"action"`
		State          string `json:"state"`
		Title          string `json:"title"`
		Description    string `json:"description"`
		SourceBranch   string `json:"source_branch"`
		TargetBranch   string `json:"target_branch"`
		MergeCommitSHA string `json:"merge_commit_sha"`
		URL            string `json:"url"`
		IID            int    `json:"iid"`
		UpdatedAt      string `json:"updated_at"`
	} `json:"object_attributes"`
	User struct {
		Name     string `json:"name"`
		Username string `json:"username"`
	} `json:"user"`
	Project struct {
		Name   string `json:"name"`
		WebURL string `json:"web_url"`
	} `json:"project"`
}

func (i *Ingestor) ingestMergeRequest(body []byte) (*Notification, error) {
	var p mergeRequestPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	// Only completed merges are interesting; opens, updates, approvals are
	// acknowledged and dropped.
	if p.ObjectAttributes.Action != "merge" && p.ObjectAttributes.State != "merged" {
		return nil, nil
	}
	if !i.monitored(p.ObjectAttributes.TargetBranch) {
		return nil, nil
	}

	switch {
	case p.Project.Name == "":
		return nil, fmt.Errorf("%w: missing project name", ErrMalformedPayload)
	case p.ObjectAttributes.SourceBranch == "" || p.ObjectAttributes.TargetBranch == "":
		return nil, fmt.Errorf("%w: missing branches", ErrMalformedPayload)
	case p.User.Name == "":
		return nil, fmt.Errorf("%w: missing author", ErrMalformedPayload)
	case p.ObjectAttributes.MergeCommitSHA == "":
		return nil, fmt.Errorf("%w: missing merge commit", ErrMalformedPayload)
	}

	ev := &domain.MergeEvent{
		ProjectName:    p.Project.Name,
		ProjectURL:     p.Project.WebURL,
		Title:          p.ObjectAttributes.Title,
		Description:    p.ObjectAttributes.Description,
		SourceBranch:   p.ObjectAttributes.SourceBranch,
		TargetBranch:   p.ObjectAttributes.TargetBranch,
		Author:         p.User.Name,
		AuthorUsername: p.User.Username,
		IID:            p.ObjectAttributes.IID,
		CommitSHA:      p.ObjectAttributes.MergeCommitSHA,
		URL:            p.ObjectAttributes.URL,
		MergedAt:       p.ObjectAttributes.UpdatedAt,
	}
	return &Notification{
		Kind:  EventMergeRequest,
		Text:  FormatMergeNotification(ev),
		Merge: ev,
	}, nil
}

type pushPayload struct {
	Ref               string `json:"ref"`
	Before            string `json:"before"`
	After             string `json:"after"`
	UserName          string `json:"user_name"`
	UserUsername      string `json:"user_username"`
	TotalCommitsCount int    `json:"total_commits_count"`
	Project           struct {
		Name   string `json:"name"`
		WebURL string `json:"web_url"`
	} `json:"project"`
	Commits []struct {
		ID      string `json:"id"`
		Message string `json:"message"`
		Author  struct {
			Name string `json:"name"`
		} `json:"author"`
	} `json:"commits"`
}

const maxPushCommits = 5

func (i *Ingestor) ingestPush(body []byte) (*Notification, error) {
	var p pushPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	branch := branchFromRef(p.Ref)
	if !i.monitored(branch) {
		return nil, nil
	}
	// Branch deletions arrive as pushes with zero commits.
	if p.TotalCommitsCount == 0 {
		return nil, nil
	}

	switch {
	case p.Project.Name == "":
		return nil, fmt.Errorf("%w: missing project name", ErrMalformedPayload)
	case branch == "":
		return nil, fmt.Errorf("%w: missing branch ref", ErrMalformedPayload)
	case p.UserName == "":
		return nil, fmt.Errorf("%w: missing pusher", ErrMalformedPayload)
	case p.After == "":
		return nil, fmt.Errorf("%w: missing commit reference", ErrMalformedPayload)
	}

	ev := &domain.PushEvent{
		ProjectName:  p.Project.Name,
		ProjectURL:   p.Project.WebURL,
		Branch:       branch,
		User:         p.UserName,
		UserUsername: p.UserUsername,
		CommitCount:  p.TotalCommitsCount,
	}
	for n, c := range p.Commits {
		if n == maxPushCommits {
			break
		}
		ev.Commits = append(ev.Commits, domain.PushCommit{
			SHA:     c.ID,
			Message: c.Message,
			Author:  c.Author.Name,
		})
	}
	if p.Project.WebURL != "" && p.Before != "" && p.After != "" {
		ev.CompareURL = fmt.Sprintf("%s/compare/%s...%s", p.Project.WebURL, p.Before, p.After)
	}
	return &Notification{
		Kind: EventPush,
		Text: FormatPushNotification(ev),
		Push: ev,
	}, nil
}

func branchFromRef(ref string) string {
	const prefix = "refs/heads/"
	if len(ref) > len(prefix) && ref[:len(prefix)] == prefix {
		return ref[len(prefix):]
	}
	return ref
}
