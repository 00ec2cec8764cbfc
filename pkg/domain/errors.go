package domain

import "errors"

// ErrUnknownEvent is returned when an external event name is not recognized.
var ErrUnknownEvent = errors.New("unknown event")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")
