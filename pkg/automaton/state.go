package automaton

import (
	"context"
	"time"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// StateName is the unique key of a state within an automaton.
type StateName string

// Emitter enqueues an event scoped to one state entry.
// Events emitted after the state has been left are dropped.
type Emitter func(domain.Event)

// EnterFunc runs the entry side effects of a state. ctx is cancelled as soon as
// the state is left, so long-running work must be started on its own goroutine
// and watch ctx.
type EnterFunc func(ctx context.Context, emit Emitter)

// ExitFunc runs when the state is left, after its timer has been disarmed.
type ExitFunc func(ctx context.Context)

// Deadline makes a state a timeout state: Event is synthesized After the entry
// unless the state is left first.
type Deadline struct {
	After time.Duration
	Event domain.Event
}

// State is a unit of automaton behavior. Transitions is the decision table used
// by OnEvent; a state without transitions is terminal.
type State struct {
	Name        StateName
	Timeout     *Deadline
	Transitions map[domain.Event]StateName
	Enter       EnterFunc
	Exit        ExitFunc

	automaton *Automaton
}

// OnEvent decides the next state for ev. It never performs the transition.
func (s *State) OnEvent(ev domain.Event) (StateName, bool) {
	next, ok := s.Transitions[ev]
	return next, ok
}

// Terminal reports whether the state has no outgoing transitions.
func (s *State) Terminal() bool {
	return len(s.Transitions) == 0
}

// Automaton returns the automaton the state is registered with, or nil.
func (s *State) Automaton() *Automaton {
	return s.automaton
}
