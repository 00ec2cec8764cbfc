package ports

import (
	"context"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// ProgressStore persists the walk progress of guided sessions.
// This allows an interrupted guide to report or resume where it stopped.
type ProgressStore interface {
	// Save persists the progress for a given session ID.
	Save(ctx context.Context, sessionID string, progress *domain.Progress) error

	// Load retrieves the progress for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Progress, error)

	// Delete removes the progress for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of the stored sessions.
	List(ctx context.Context) ([]string, error)
}
