package ports

import (
	"context"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// GuideControl is the surface exposed to operator adapters (HTTP, console).
type GuideControl interface {
	// Dispatch delivers an external controller event.
	Dispatch(ctx context.Context, ev domain.Event) error

	// Snapshot returns the current walk progress and state.
	Snapshot(ctx context.Context) domain.Progress
}
