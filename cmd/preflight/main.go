// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strings"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	botToken := strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN"))
	chatID := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID"))
	secret := strings.TrimSpace(os.Getenv("GITLAB_WEBHOOK_SECRET"))
	addr := strings.TrimSpace(os.Getenv("ADDR"))
	branches := strings.TrimSpace(os.Getenv("MONITORED_BRANCHES"))
	monitorPath := strings.TrimSpace(os.Getenv("MONITOR_CONFIG_PATH"))

	if botToken == "" {
		fail("TELEGRAM_BOT_TOKEN is empty (notifications cannot be delivered).")
	}
	if chatID == "" {
		fail("TELEGRAM_CHAT_ID is empty (notifications have no destination).")
	}
	if secret == "" {
		fail("GITLAB_WEBHOOK_SECRET is empty (all webhooks would be rejected or, worse, accepted unauthenticated).")
	}

	if branches == "" {
		warn("MONITORED_BRANCHES empty — defaulting to 'main'.")
	} else if strings.Contains(branches, " ") {
		warn("MONITORED_BRANCHES contains spaces; use comma-separated with no spaces, e.g. main,develop")
	} else {
		ok("MONITORED_BRANCHES=" + branches)
	}

	if addr == "" {
		warn("ADDR is empty; the app default (:5000) will be used.")
	} else {
		ok("ADDR=" + addr)
	}

	if monitorPath == "" {
		warn("MONITOR_CONFIG_PATH empty — monitor_urls.yaml in the working directory will be used.")
	} else if _, err := os.Stat(monitorPath); err != nil {
		fail("MONITOR_CONFIG_PATH points to " + monitorPath + " but the file is not readable.")
	} else {
		ok("MONITOR_CONFIG_PATH=" + monitorPath)
	}

	ok("preflight passed")
}
