package scheduler

import (
	"fmt"
	"strings"
	"time"

	"github.com/Octavian-Covalciuc/CI-Tg-Bot/internal/domain"
)

const divider = "────────────────────────────────────────"

// FormatStatusChangeAlert renders a single detected transition.
func FormatStatusChangeAlert(ev *domain.AlertEvent) string {
	var b strings.Builder
	b.WriteString("🚨 **Service Status Alert**\n")
	fmt.Fprintf(&b, "⏰ %s\n", ev.At.UTC().Format("2006-01-02 15:04:05 UTC"))
	b.WriteString(divider + "\n\n")

	if ev.Current == domain.StateUp {
		fmt.Fprintf(&b, "✅ **%s** is now UP\n", ev.Target.DisplayName())
		fmt.Fprintf(&b, "   Previous: %s → Current: %s\n", ev.Previous, ev.Current)
	} else {
		fmt.Fprintf(&b, "❌ **%s** is now DOWN\n", ev.Target.DisplayName())
		fmt.Fprintf(&b, "   Previous: %s → Current: %s\n", ev.Previous, ev.Current)
		errText := ev.Err
		if errText == "" {
			errText = "Unknown"
		}
		fmt.Fprintf(&b, "   Error: %s\n", errText)
	}
	fmt.Fprintf(&b, "   URL: %s\n", ev.Target.URL)

	return b.String()
}

// FormatHealthReport renders the outcomes of one full cycle.
func FormatHealthReport(outcomes []domain.ProbeOutcome) string {
	up := 0
	for _, out := range outcomes {
		if out.Reachable {
			up++
		}
	}
	down := len(outcomes) - up

	var b strings.Builder
	b.WriteString("🏥 **Health Check Report**\n")
	fmt.Fprintf(&b, "⏰ %s\n", time.Now().UTC().Format("2006-01-02 15:04:05 UTC"))
	b.WriteString(divider + "\n\n")

	if down == 0 {
		fmt.Fprintf(&b, "✅ All services are UP (%d/%d)\n\n", up, len(outcomes))
	} else {
		fmt.Fprintf(&b, "⚠️ %d service(s) DOWN, %d UP\n\n", down, up)
	}

	for _, out := range outcomes {
		if out.Reachable {
			fmt.Fprintf(&b, "✅ **%s**\n", out.Target.DisplayName())
			fmt.Fprintf(&b, "   Status: UP (%.2fs)\n", out.LatencyMS/1000)
		} else {
			errText := out.Err
			if errText == "" {
				errText = "Unknown error"
			}
			fmt.Fprintf(&b, "❌ **%s**\n", out.Target.DisplayName())
			b.WriteString("   Status: DOWN\n")
			fmt.Fprintf(&b, "   Error: %s\n", errText)
		}
		fmt.Fprintf(&b, "   URL: %s\n\n", out.Target.URL)
	}

	return b.String()
}
