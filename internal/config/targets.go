package config

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Octavian-Covalciuc/CI-Tg-Bot/internal/domain"
)

type monitorFile struct {
	Monitors []monitorEntry `yaml:"monitors"`
}

type monitorEntry struct {
	Name           string `yaml:"name"`
	Env            string `yaml:"env"`
	Surface        string `yaml:"surface"`
	Method         string `yaml:"method"`
	URL            string `yaml:"url"`
	ExpectedStatus int    `yaml:"expected_status"`
	Timeout        string `yaml:"timeout"` // Go duration string, e.g. "10s"
}

// LoadTargets reads the monitor list from a YAML file. Entries default to
// GET / 200 / defaultTimeout; an entry without a URL is an error.
func LoadTargets(path string, defaultTimeout time.Duration) ([]domain.MonitorTarget, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read monitor config %s: %w", path, err)
	}

	var f monitorFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse monitor config %s: %w", path, err)
	}

	targets := make([]domain.MonitorTarget, 0, len(f.Monitors))
	for n, e := range f.Monitors {
		if strings.TrimSpace(e.URL) == "" {
			return nil, fmt.Errorf("monitor config %s: entry %d has no url", path, n+1)
		}

		name := e.Name
		if name == "" {
			name = fmt.Sprintf("Monitor-%d", n+1)
		}
		method := strings.ToUpper(strings.TrimSpace(e.Method))
		if method == "" {
			method = http.MethodGet
		}
		expected := e.ExpectedStatus
		if expected == 0 {
			expected = http.StatusOK
		}
		timeout := defaultTimeout
		if e.Timeout != "" {
			d, err := time.ParseDuration(e.Timeout)
			if err != nil {
				return nil, fmt.Errorf("monitor config %s: entry %d has bad timeout %q: %w", path, n+1, e.Timeout, err)
			}
			timeout = d
		}

		targets = append(targets, domain.MonitorTarget{
			Name:           name,
			Env:            strings.TrimSpace(e.Env),
			Surface:        strings.TrimSpace(e.Surface),
			Method:         method,
			URL:            strings.TrimSpace(e.URL),
			ExpectedStatus: expected,
			Timeout:        timeout,
		})
	}
	return targets, nil
}
