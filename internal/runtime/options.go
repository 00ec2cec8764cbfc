package runtime

import (
	"log/slog"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
)

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the structured logger, shared with the automaton.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Session) {
		s.hooks = hooks
	}
}

// WithResponder starts r every time the guide asks whether to cancel.
func WithResponder(r ports.Responder) Option {
	return func(s *Session) {
		s.responder = r
	}
}

// WithStore persists the progress after every change.
func WithStore(store ports.ProgressStore) Option {
	return func(s *Session) {
		s.store = store
	}
}

// WithProgress resumes a walk from previously stored progress.
func WithProgress(p *domain.Progress) Option {
	return func(s *Session) {
		s.resume = p
	}
}
