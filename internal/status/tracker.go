package status

import (
	"sync"

	"github.com/Octavian-Covalciuc/CI-Tg-Bot/internal/domain"
)

// Tracker holds the current reachability state per target and decides when a
// transition warrants an alert. It exclusively owns the status map; the
// scheduled loop and the manual-trigger handler both funnel through Update.
//
// Tracker is safe for concurrent use.
type Tracker struct {
	mu       sync.Mutex
	statuses map[domain.TargetKey]*domain.TargetStatus
}

func NewTracker() *Tracker {
	return &Tracker{
		statuses: make(map[domain.TargetKey]*domain.TargetStatus),
	}
}

// Update folds a probe outcome into the stored state and returns an AlertEvent
// when the target's reachability flipped. The first outcome for a target sets
// the baseline silently; alerts fire on state changes only, exactly once per
// transition.
func (t *Tracker) Update(out domain.ProbeOutcome) *domain.AlertEvent {
	next := domain.StateOf(out.Reachable)

	t.mu.Lock()
	defer t.mu.Unlock()

	cur, seen := t.statuses[out.Target.Key()]
	if !seen {
		t.statuses[out.Target.Key()] = &domain.TargetStatus{
			State:     next,
			Since:     out.CheckedAt,
			LastError: out.Err,
		}
		return nil
	}

	if cur.State == next {
		cur.LastError = out.Err
		return nil
	}

	prev := cur.State
	cur.State = next
	cur.Since = out.CheckedAt
	cur.LastError = out.Err

	return &domain.AlertEvent{
		Target:   out.Target,
		Previous: prev,
		Current:  next,
		Err:      out.Err,
		At:       out.CheckedAt,
	}
}

// State returns the stored status for one target, or UNKNOWN before its first
// probe completed.
func (t *Tracker) State(key domain.TargetKey) domain.TargetStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s, ok := t.statuses[key]; ok {
		return *s
	}
	return domain.TargetStatus{State: domain.StateUnknown}
}

// Snapshot returns a copy of every tracked status, consistent at one instant.
func (t *Tracker) Snapshot() map[domain.TargetKey]domain.TargetStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[domain.TargetKey]domain.TargetStatus, len(t.statuses))
	for k, s := range t.statuses {
		out[k] = *s
	}
	return out
}
