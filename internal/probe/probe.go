package probe

import (
	"context"

	"github.com/Octavian-Covalciuc/CI-Tg-Bot/internal/domain"
)

// Prober performs a single check of one target.
type Prober interface {
	Probe(ctx context.Context, target domain.MonitorTarget) domain.ProbeOutcome
}
