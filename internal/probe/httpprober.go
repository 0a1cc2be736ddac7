package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Octavian-Covalciuc/CI-Tg-Bot/internal/domain"
)

// HTTPProber checks a target with one HTTP request of the target's configured
// method. It never retries; the scheduler's next cycle is the retry.
type HTTPProber struct {
	Client *http.Client
}

func NewHTTPProber() *HTTPProber {
	// No client-level timeout: each probe is bounded by its target's own
	// timeout via context.
	return &HTTPProber{Client: &http.Client{}}
}

func (p *HTTPProber) Probe(ctx context.Context, t domain.MonitorTarget) domain.ProbeOutcome {
	start := time.Now()
	out := domain.ProbeOutcome{Target: t, CheckedAt: start.UTC()}

	timeout := t.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	method := t.Method
	if method == "" {
		method = http.MethodGet
	}
	req, err := http.NewRequestWithContext(cctx, method, t.URL, nil)
	if err != nil {
		out.Err = "connection error"
		return out
	}

	resp, err := p.Client.Do(req)
	out.LatencyMS = time.Since(start).Seconds() * 1000
	if err != nil {
		out.Err = classify(err)
		return out
	}
	defer resp.Body.Close()

	out.StatusCode = resp.StatusCode
	if resp.StatusCode == t.ExpectedStatus {
		out.Reachable = true
		return out
	}
	out.Err = fmt.Sprintf("unexpected status %d", resp.StatusCode)
	return out
}

func classify(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return "timeout"
	}
	return "connection error"
}
