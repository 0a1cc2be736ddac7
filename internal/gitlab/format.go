package gitlab

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Octavian-Covalciuc/CI-Tg-Bot/internal/domain"
)

const divider = "────────────────────────────────────────"

// FormatMergeNotification renders a completed merge as a Markdown message.
func FormatMergeNotification(ev *domain.MergeEvent) string {
	var b strings.Builder
	b.WriteString("🔀 **Merge Request Completed**\n")
	fmt.Fprintf(&b, "⏰ %s\n", time.Now().UTC().Format("2006-01-02 15:04:05 UTC"))
	b.WriteString(divider + "\n\n")

	fmt.Fprintf(&b, "📋 **%s**\n", ev.Title)
	if ev.URL != "" {
		fmt.Fprintf(&b, "🔗 [MR !%d](%s)\n\n", ev.IID, ev.URL)
	}

	fmt.Fprintf(&b, "📦 Project: **%s**\n", ev.ProjectName)
	fmt.Fprintf(&b, "🌿 `%s` → `%s`\n", ev.SourceBranch, ev.TargetBranch)
	fmt.Fprintf(&b, "👤 Merged by: %s (@%s)\n", ev.Author, ev.AuthorUsername)
	fmt.Fprintf(&b, "📌 Commit: `%s`\n", shortSHA(ev.CommitSHA))

	if ev.Description != "" {
		desc := ev.Description
		if truncated := truncateRunes(desc, 200); truncated != desc {
			desc = truncated + "..."
		}
		fmt.Fprintf(&b, "\n💬 %s\n", desc)
	}

	switch {
	case ev.TargetBranch == "main":
		b.WriteString("\n🚀 **Production deployment may be triggered**")
	case strings.Contains(strings.ToLower(ev.TargetBranch), "prod"):
		b.WriteString("\n🔶 **Pre-production deployment may be triggered**")
	case strings.Contains(strings.ToLower(ev.TargetBranch), "dev"):
		b.WriteString("\n🧪 **Development deployment may be triggered**")
	}

	return b.String()
}

// FormatPushNotification renders a direct push to a monitored branch.
func FormatPushNotification(ev *domain.PushEvent) string {
	var b strings.Builder
	b.WriteString("📤 **Direct Push to Protected Branch**\n")
	fmt.Fprintf(&b, "⏰ %s\n", time.Now().UTC().Format("2006-01-02 15:04:05 UTC"))
	b.WriteString(divider + "\n\n")

	fmt.Fprintf(&b, "📦 Project: **%s**\n", ev.ProjectName)
	fmt.Fprintf(&b, "🌿 Branch: `%s`\n", ev.Branch)
	fmt.Fprintf(&b, "👤 Pushed by: %s (@%s)\n", ev.User, ev.UserUsername)
	fmt.Fprintf(&b, "📊 Commits: %d\n\n", ev.CommitCount)

	if len(ev.Commits) > 0 {
		b.WriteString("**Recent commits:**\n")
		for _, c := range ev.Commits {
			msg := truncateRunes(firstLine(c.Message), 60)
			fmt.Fprintf(&b, "• `%s` %s - %s\n", shortSHA(c.SHA), msg, c.Author)
		}
	}

	if ev.CompareURL != "" {
		fmt.Fprintf(&b, "\n🔗 [View changes](%s)\n", ev.CompareURL)
	}

	return b.String()
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// truncateRunes cuts s to at most n runes, never splitting a multi-byte
// character.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
