package automaton

import (
	"log/slog"

	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/pkg/domain"
)

// Option configures an Automaton.
type Option func(*Automaton)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Automaton) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(a *Automaton) {
		a.hooks = hooks
	}
}

// WithInternalEvents reserves events that only state emitters may raise.
// Timeout events are reserved automatically.
func WithInternalEvents(events ...domain.Event) Option {
	return func(a *Automaton) {
		for _, ev := range events {
			a.internal[ev] = true
		}
	}
}

func defaultLogger() *slog.Logger {
	return logging.NewNop()
}
