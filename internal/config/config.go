package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Config struct {
	Addr   string // HTTP bind address
	LogDir string // logs directory

	TelegramBotToken string
	TelegramChatID   string

	GitLabSecret      string   // shared X-Gitlab-Token secret
	MonitoredBranches []string // target branches that produce notifications

	CheckInterval time.Duration // period between health-check cycles
	CheckTimeout  time.Duration // default per-target probe timeout

	MonitorConfigPath string // YAML file with the target list

	WebhookRPM   int // inbound webhook rate limit, requests per minute
	WebhookBurst int
}

func FromEnv() Config {
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":5000"
	}

	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}

	branches := splitList(os.Getenv("MONITORED_BRANCHES"))
	if len(branches) == 0 {
		branches = []string{"main"}
	}

	monitorPath := os.Getenv("MONITOR_CONFIG_PATH")
	if monitorPath == "" {
		monitorPath = "monitor_urls.yaml"
	}

	return Config{
		Addr:              addr,
		LogDir:            logDir,
		TelegramBotToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:    os.Getenv("TELEGRAM_CHAT_ID"),
		GitLabSecret:      os.Getenv("GITLAB_WEBHOOK_SECRET"),
		MonitoredBranches: branches,
		CheckInterval:     envSeconds("HEALTH_CHECK_INTERVAL", 300),
		CheckTimeout:      envSeconds("HEALTH_CHECK_TIMEOUT", 10),
		MonitorConfigPath: monitorPath,
		WebhookRPM:        envInt("WEBHOOK_RPM", 120),
		WebhookBurst:      envInt("WEBHOOK_BURST", 30),
	}
}

// Validate reports configuration the process must refuse to start with.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.TelegramBotToken, validation.Required),
		validation.Field(&c.TelegramChatID, validation.Required),
		validation.Field(&c.GitLabSecret, validation.Required),
		validation.Field(&c.MonitoredBranches, validation.Required),
		validation.Field(&c.CheckInterval, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.CheckTimeout, validation.Required, validation.Min(time.Second)),
	)
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envSeconds(name string, def int) time.Duration {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Duration(def) * time.Second
}

func envInt(name string, def int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}
