package domain

import (
	"time"
)

// State is a target's reachability as last observed by the status tracker.
type State string

const (
	StateUnknown State = "UNKNOWN"
	StateUp      State = "UP"
	StateDown    State = "DOWN"
)

// StateOf maps a probe's reachable flag to a State.
func StateOf(reachable bool) State {
	if reachable {
		return StateUp
	}
	return StateDown
}

// TargetKey identifies a monitored endpoint by its (environment, surface) pair.
type TargetKey struct {
	Env     string `json:"env"`
	Surface string `json:"surface"`
}

func (k TargetKey) String() string {
	return k.Env + "/" + k.Surface
}

// MonitorTarget is one monitored HTTP endpoint. Targets are loaded once at
// startup and never mutated afterwards.
type MonitorTarget struct {
	Name           string        `json:"name"`
	Env            string        `json:"env"`
	Surface        string        `json:"surface"`
	Method         string        `json:"method"`
	URL            string        `json:"url"`
	ExpectedStatus int           `json:"expected_status"`
	Timeout        time.Duration `json:"timeout"`
}

func (t MonitorTarget) Key() TargetKey {
	return TargetKey{Env: t.Env, Surface: t.Surface}
}

// DisplayName composes the label used in outbound messages, e.g.
// "Production (Front Door)".
func (t MonitorTarget) DisplayName() string {
	name := t.Name
	if name == "" {
		name = t.Env
	}
	if name == "" {
		name = t.URL
	}
	if label := SurfaceLabel(t.Surface); label != "" {
		return name + " (" + label + ")"
	}
	return name
}
