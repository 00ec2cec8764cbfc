package middleware

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.ProgressStore
	logger *slog.Logger
}

// NewLoggingMiddleware logs every store call at debug level and failures at warn.
// A missing session is not a failure.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.ProgressStore) ports.ProgressStore {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

func (m *loggingMiddleware) log(op, sessionID string, err error) {
	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		m.logger.Warn("progress store call failed", "op", op, "session_id", sessionID, "error", err)
		return
	}
	m.logger.Debug("progress store call", "op", op, "session_id", sessionID)
}

func (m *loggingMiddleware) Save(ctx context.Context, sessionID string, p *domain.Progress) error {
	err := m.next.Save(ctx, sessionID, p)
	m.log("save", sessionID, err)
	return err
}

func (m *loggingMiddleware) Load(ctx context.Context, sessionID string) (*domain.Progress, error) {
	p, err := m.next.Load(ctx, sessionID)
	m.log("load", sessionID, err)
	return p, err
}

func (m *loggingMiddleware) Delete(ctx context.Context, sessionID string) error {
	err := m.next.Delete(ctx, sessionID)
	m.log("delete", sessionID, err)
	return err
}

func (m *loggingMiddleware) List(ctx context.Context) ([]string, error) {
	ids, err := m.next.List(ctx)
	m.log("list", "", err)
	return ids, err
}
