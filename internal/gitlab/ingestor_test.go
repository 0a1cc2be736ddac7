package gitlab

import (
	"errors"
	"strings"
	"testing"
)

const mergePayload = `{
	"object_attributes": {
		"action": "merge",
		"state": "merged",
		"title": "Fix login redirect",
		"description": "Redirect users back to the page they came from.",
		"source_branch": "fix/login-redirect",
		"target_branch": "main",
		"merge_commit_sha": "abc1234def5678",
		"url": "https://gitlab.example.com/group/app/-/merge_requests/42",
		"iid": 42,
		"updated_at": "2024-05-01T12:00:00Z"
	},
	"user": {"name": "Jane Doe", "username": "jdoe"},
	"project": {"name": "app", "web_url": "https://gitlab.example.com/group/app"}
}`

func newTestIngestor() *Ingestor {
	return NewIngestor("s3cret", []string{"main", "develop"})
}

func TestIngest_WrongToken(t *testing.T) {
	ing := newTestIngestor()
	n, err := ing.Ingest("wrong", headerMergeRequestHook, []byte(mergePayload))
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
	if n != nil {
		t.Fatalf("unauthorized request must not produce a notification")
	}
}

func TestIngest_UnknownEventKindIgnored(t *testing.T) {
	ing := newTestIngestor()
	n, err := ing.Ingest("s3cret", "Pipeline Hook", []byte(`{}`))
	if err != nil || n != nil {
		t.Fatalf("unknown kind should be ignored, got n=%v err=%v", n, err)
	}
}

func TestIngest_UnmonitoredBranchIgnored(t *testing.T) {
	ing := newTestIngestor()
	body := strings.Replace(mergePayload, `"target_branch": "main"`, `"target_branch": "feature/x"`, 1)
	n, err := ing.Ingest("s3cret", headerMergeRequestHook, []byte(body))
	if err != nil || n != nil {
		t.Fatalf("unmonitored branch should be ignored, got n=%v err=%v", n, err)
	}
}

func TestIngest_NonMergeActionIgnored(t *testing.T) {
	ing := newTestIngestor()
	body := strings.NewReplacer(
		`"action": "merge"`, `"action": "open"`,
		`"state": "merged"`, `"state": "opened"`,
	).Replace(mergePayload)
	n, err := ing.Ingest("s3cret", headerMergeRequestHook, []byte(body))
	if err != nil || n != nil {
		t.Fatalf("non-merge action should be ignored, got n=%v err=%v", n, err)
	}
}

func TestIngest_MissingAuthorIsMalformed(t *testing.T) {
	ing := newTestIngestor()
	body := strings.Replace(mergePayload, `"name": "Jane Doe", `, ``, 1)
	n, err := ing.Ingest("s3cret", headerMergeRequestHook, []byte(body))
	if !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("want ErrMalformedPayload, got %v", err)
	}
	if n != nil {
		t.Fatalf("malformed payload must not produce a notification")
	}
}

func TestIngest_BadJSONIsMalformed(t *testing.T) {
	ing := newTestIngestor()
	_, err := ing.Ingest("s3cret", headerMergeRequestHook, []byte(`{not json`))
	if !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("want ErrMalformedPayload, got %v", err)
	}
}

func TestIngest_ValidMerge(t *testing.T) {
	ing := newTestIngestor()
	n, err := ing.Ingest("s3cret", headerMergeRequestHook, []byte(mergePayload))
	if err != nil {
		t.Fatalf("ingest err: %v", err)
	}
	if n == nil || n.Merge == nil {
		t.Fatal("want a merge notification")
	}
	ev := n.Merge
	if ev.ProjectName != "app" || ev.SourceBranch != "fix/login-redirect" || ev.TargetBranch != "main" {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.Author != "Jane Doe" || ev.AuthorUsername != "jdoe" || ev.IID != 42 {
		t.Fatalf("unexpected author fields: %+v", ev)
	}
	if !strings.Contains(n.Text, "Merge Request Completed") {
		t.Fatalf("text should be the merge template, got %q", n.Text)
	}
	if !strings.Contains(n.Text, "`abc1234d`") {
		t.Fatalf("text should carry the short sha, got %q", n.Text)
	}
	if !strings.Contains(n.Text, "Production deployment may be triggered") {
		t.Fatalf("merge to main should flag a production deployment, got %q", n.Text)
	}
}

const pushPayloadJSON = `{
	"ref": "refs/heads/develop",
	"before": "000aaa111",
	"after": "222bbb333ccc444",
	"user_name": "Sam Smith",
	"user_username": "ssmith",
	"total_commits_count": 2,
	"project": {"name": "app", "web_url": "https://gitlab.example.com/group/app"},
	"commits": [
		{"id": "222bbb333ccc444", "message": "Tighten retry budget\n\nDetails.", "author": {"name": "Sam Smith"}},
		{"id": "555ddd666eee777", "message": "Bump deps", "author": {"name": "Sam Smith"}}
	]
}`

func TestIngest_ValidPush(t *testing.T) {
	ing := newTestIngestor()
	n, err := ing.Ingest("s3cret", headerPushHook, []byte(pushPayloadJSON))
	if err != nil {
		t.Fatalf("ingest err: %v", err)
	}
	if n == nil || n.Push == nil {
		t.Fatal("want a push notification")
	}
	if n.Push.Branch != "develop" || n.Push.CommitCount != 2 {
		t.Fatalf("unexpected push event: %+v", n.Push)
	}
	if len(n.Push.Commits) != 2 || n.Push.Commits[0].SHA != "222bbb333ccc444" {
		t.Fatalf("unexpected commits: %+v", n.Push.Commits)
	}
	if n.Push.CompareURL != "https://gitlab.example.com/group/app/compare/000aaa111...222bbb333ccc444" {
		t.Fatalf("unexpected compare url: %q", n.Push.CompareURL)
	}
	if !strings.Contains(n.Text, "Direct Push to Protected Branch") {
		t.Fatalf("text should be the push template, got %q", n.Text)
	}
	if !strings.Contains(n.Text, "Tighten retry budget") || strings.Contains(n.Text, "Details.") {
		t.Fatalf("commit subject only, got %q", n.Text)
	}
}

func TestIngest_PushBranchDeletionIgnored(t *testing.T) {
	ing := newTestIngestor()
	body := strings.Replace(pushPayloadJSON, `"total_commits_count": 2`, `"total_commits_count": 0`, 1)
	n, err := ing.Ingest("s3cret", headerPushHook, []byte(body))
	if err != nil || n != nil {
		t.Fatalf("zero-commit push should be ignored, got n=%v err=%v", n, err)
	}
}

func TestIngest_PushUnmonitoredBranchIgnored(t *testing.T) {
	ing := newTestIngestor()
	body := strings.Replace(pushPayloadJSON, "refs/heads/develop", "refs/heads/feature/y", 1)
	n, err := ing.Ingest("s3cret", headerPushHook, []byte(body))
	if err != nil || n != nil {
		t.Fatalf("unmonitored branch should be ignored, got n=%v err=%v", n, err)
	}
}
