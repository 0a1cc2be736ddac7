package domain

import "time"

// ProbeOutcome is the result of a single check of one target. It is consumed
// once by the status tracker and not retained.
type ProbeOutcome struct {
	Target     MonitorTarget `json:"target"`
	Reachable  bool          `json:"reachable"`
	StatusCode int           `json:"status_code,omitempty"` // 0 when no response was received
	LatencyMS  float64       `json:"latency_ms"`
	Err        string        `json:"error,omitempty"`
	CheckedAt  time.Time     `json:"checked_at"`
}

// TargetStatus is the tracker's view of one target. Owned exclusively by the
// status tracker; everyone else sees copies.
type TargetStatus struct {
	State     State     `json:"state"`
	Since     time.Time `json:"since"` // time of the last transition
	LastError string    `json:"last_error,omitempty"`
}

// AlertEvent records a detected reachability transition, destined for the
// notification sink.
type AlertEvent struct {
	Target   MonitorTarget `json:"target"`
	Previous State         `json:"previous"`
	Current  State         `json:"current"`
	Err      string        `json:"error,omitempty"`
	At       time.Time     `json:"at"`
}
