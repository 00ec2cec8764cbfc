package automaton

import "errors"

// ErrConfig is the parent of every assembly-time error.
var ErrConfig = errors.New("automaton configuration error")

// Assembly errors. They are always wrapped together with ErrConfig.
var (
	ErrDuplicateState          = errors.New("duplicate state name")
	ErrUnknownInitialState     = errors.New("unknown initial state")
	ErrUnknownTransitionTarget = errors.New("unknown transition target")
	ErrUnhandledTimeout        = errors.New("timeout event has no transition")
	ErrInvalidTimeout          = errors.New("timeout duration must be positive")
	ErrAlreadyStarted          = errors.New("automaton already started")
)

// Dispatch errors.
var (
	ErrNotStarted    = errors.New("automaton not started")
	ErrStopped       = errors.New("automaton stopped")
	ErrInternalEvent = errors.New("event is reserved for internal use")
)
