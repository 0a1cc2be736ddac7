package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Octavian-Covalciuc/CI-Tg-Bot/internal/domain"
	"github.com/Octavian-Covalciuc/CI-Tg-Bot/internal/notify"
	"github.com/Octavian-Covalciuc/CI-Tg-Bot/internal/probe"
	"github.com/Octavian-Covalciuc/CI-Tg-Bot/internal/status"
)

// Scheduler drives the prober over every registered target on a fixed period.
// All targets within a cycle are probed concurrently; cycles never overlap,
// and TriggerNow shares the same single-cycle-in-flight lock as the loop.
type Scheduler struct {
	Logger   *zap.Logger
	Targets  []domain.MonitorTarget
	Prober   probe.Prober
	Tracker  *status.Tracker
	Notifier notify.Notifier
	Interval time.Duration

	cycleMu sync.Mutex
}

func New(
	logger *zap.Logger,
	targets []domain.MonitorTarget,
	prober probe.Prober,
	tracker *status.Tracker,
	notifier notify.Notifier,
	interval time.Duration,
) *Scheduler {
	return &Scheduler{
		Logger:   logger,
		Targets:  targets,
		Prober:   prober,
		Tracker:  tracker,
		Notifier: notifier,
		Interval: interval,
	}
}

// Run does an immediate pass to record the startup baseline, then one pass per
// tick until ctx is cancelled. In-flight probes finish naturally; Run returns
// only after the current cycle completes.
func (s *Scheduler) Run(ctx context.Context) {
	if s.Interval <= 0 {
		s.Logger.Info("scheduler_disabled")
		return
	}
	t := time.NewTicker(s.Interval)
	defer t.Stop()

	s.runCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			s.Logger.Info("scheduler_stopped")
			return
		case <-t.C:
			s.runCycle(ctx)
		}
	}
}

// TriggerNow runs one full cycle immediately and returns its outcomes. It
// waits if a scheduled cycle is in flight rather than overlapping with it.
func (s *Scheduler) TriggerNow(ctx context.Context) []domain.ProbeOutcome {
	return s.runCycle(ctx)
}

func (s *Scheduler) runCycle(ctx context.Context) []domain.ProbeOutcome {
	s.cycleMu.Lock()
	defer s.cycleMu.Unlock()

	if len(s.Targets) == 0 {
		return nil
	}

	start := time.Now()
	outcomes := make([]domain.ProbeOutcome, len(s.Targets))

	// Probes are bounded by their own per-target timeouts only. A cancelled
	// caller (client disconnect on the manual trigger, shutdown signal) must
	// not abort them mid-flight: an aborted probe of a healthy target would
	// reach the tracker as a reachability change.
	probeCtx := context.WithoutCancel(ctx)

	var wg sync.WaitGroup
	for n, tgt := range s.Targets {
		n, tgt := n, tgt
		wg.Add(1)
		go func() {
			defer wg.Done()

			out := s.Prober.Probe(probeCtx, tgt)
			outcomes[n] = out

			s.Logger.Debug("scheduler_probed",
				zap.String("target", tgt.Key().String()),
				zap.String("url", tgt.URL),
				zap.Bool("reachable", out.Reachable),
				zap.Int("status", out.StatusCode),
				zap.Float64("latency_ms", out.LatencyMS),
				zap.String("error", out.Err),
			)

			ev := s.Tracker.Update(out)
			if ev == nil {
				return
			}
			// Best-effort: a missed alert must not abort the cycle. Uses the
			// detached context so a transition observed during shutdown still
			// gets its delivery attempt.
			if err := s.Notifier.Send(probeCtx, FormatStatusChangeAlert(ev), notify.CategoryHealthAlert); err != nil {
				s.Logger.Warn("scheduler_alert_send_failed",
					zap.String("target", tgt.Key().String()),
					zap.String("transition", string(ev.Previous)+"->"+string(ev.Current)),
					zap.Error(err),
				)
			}
		}()
	}
	wg.Wait()

	up := 0
	for _, out := range outcomes {
		if out.Reachable {
			up++
		}
	}
	s.Logger.Info("scheduler_cycle_done",
		zap.Int("targets", len(outcomes)),
		zap.Int("up", up),
		zap.Duration("took", time.Since(start)),
	)
	return outcomes
}
