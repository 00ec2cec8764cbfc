package domain

import (
	"context"
	"time"
)

// HookType defines the category of a lifecycle notification.
type HookType string

const (
	HookStateEnter   HookType = "state_enter"
	HookStateExit    HookType = "state_exit"
	HookEventIgnored HookType = "event_ignored"
	HookTimeout      HookType = "timeout"
)

// StateEvent describes a lifecycle notification emitted by the automaton.
type StateEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Type      HookType  `json:"type"`
	State     string    `json:"state"`
	Event     Event     `json:"event,omitempty"`
	Epoch     uint64    `json:"epoch"`
}

// WaypointEvent describes the outcome of a single move towards a waypoint.
type WaypointEvent struct {
	Timestamp time.Time   `json:"timestamp"`
	Index     int         `json:"index"`
	NodeID    string      `json:"node_id"`
	Target    Coordinates `json:"target"`
	Reached   bool        `json:"reached"`
	Attempt   int         `json:"attempt"`
}

// LifecycleHooks defines callbacks for guide observability.
// Every field is optional.
type LifecycleHooks struct {
	OnStateEnter   func(context.Context, *StateEvent)
	OnStateExit    func(context.Context, *StateEvent)
	OnEventIgnored func(context.Context, *StateEvent)
	OnTimeout      func(context.Context, *StateEvent)
	OnWaypoint     func(context.Context, *WaypointEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStateEnter:   chain(h.OnStateEnter, other.OnStateEnter),
		OnStateExit:    chain(h.OnStateExit, other.OnStateExit),
		OnEventIgnored: chain(h.OnEventIgnored, other.OnEventIgnored),
		OnTimeout:      chain(h.OnTimeout, other.OnTimeout),
		OnWaypoint:     chain(h.OnWaypoint, other.OnWaypoint),
	}
}

func chain[T any](a, b func(context.Context, *T)) func(context.Context, *T) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *T) {
		a(ctx, e)
		b(ctx, e)
	}
}
