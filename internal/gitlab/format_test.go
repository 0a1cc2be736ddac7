package gitlab

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/Octavian-Covalciuc/CI-Tg-Bot/internal/domain"
)

func TestFormatMergeNotification_TruncatesLongDescriptionOnRuneBoundary(t *testing.T) {
	// 250 multi-byte runes; byte-offset slicing would cut one in half.
	desc := strings.Repeat("é", 250)
	ev := &domain.MergeEvent{
		ProjectName:    "backend",
		Title:          "Fix login",
		SourceBranch:   "fix/login",
		TargetBranch:   "main",
		Author:         "Ana",
		AuthorUsername: "ana",
		Description:    desc,
	}

	msg := FormatMergeNotification(ev)
	if !utf8.ValidString(msg) {
		t.Fatal("message contains invalid UTF-8")
	}
	if !strings.Contains(msg, strings.Repeat("é", 200)+"...") {
		t.Fatal("description not truncated to 200 characters with ellipsis")
	}
	if strings.Contains(msg, strings.Repeat("é", 201)) {
		t.Fatal("description longer than 200 characters")
	}
}

func TestFormatMergeNotification_ShortDescriptionUntouched(t *testing.T) {
	ev := &domain.MergeEvent{Title: "t", TargetBranch: "dev", Description: "short note"}
	msg := FormatMergeNotification(ev)
	if !strings.Contains(msg, "short note") || strings.Contains(msg, "short note...") {
		t.Fatalf("short description must pass through unchanged: %q", msg)
	}
}

func TestFormatPushNotification_TruncatesCommitMessageOnRuneBoundary(t *testing.T) {
	ev := &domain.PushEvent{
		ProjectName:  "backend",
		Branch:       "main",
		User:         "Ana",
		UserUsername: "ana",
		CommitCount:  1,
		Commits: []domain.PushCommit{{
			SHA:     "abcdef1234567890",
			Message: strings.Repeat("ü", 80) + "\nsecond line",
			Author:  "Ana",
		}},
	}

	msg := FormatPushNotification(ev)
	if !utf8.ValidString(msg) {
		t.Fatal("message contains invalid UTF-8")
	}
	if !strings.Contains(msg, strings.Repeat("ü", 60)) {
		t.Fatal("commit message not kept to 60 characters")
	}
	if strings.Contains(msg, strings.Repeat("ü", 61)) {
		t.Fatal("commit message longer than 60 characters")
	}
	if strings.Contains(msg, "second line") {
		t.Fatal("only the first line of the commit message should appear")
	}
}

func TestTruncateRunes(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello", 3, "hel"},
		{"héllo", 2, "hé"},
		{"", 4, ""},
	}
	for _, c := range cases {
		if got := truncateRunes(c.in, c.n); got != c.want {
			t.Errorf("truncateRunes(%q, %d) = %q, want %q", c.in, c.n, got, c.want)
		}
	}
}
