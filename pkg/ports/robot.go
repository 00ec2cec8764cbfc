package ports

import (
	"context"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// Robot is the controller the guide drives. Prompt, RaiseLimb and ResetPosture
// are fire-and-forget; MoveToward blocks until the move ends.
type Robot interface {
	// Prompt speaks the sentence identified by key.
	Prompt(ctx context.Context, key string)

	// RaiseLimb offers the given hand to the user.
	RaiseLimb(ctx context.Context, side domain.Side)

	// ResetPosture returns the robot to its default posture.
	ResetPosture(ctx context.Context)

	// MoveToward walks to target facing heading (radians). It reports whether the
	// target was reached; a cancelled ctx must abort the move and return false.
	MoveToward(ctx context.Context, target domain.Coordinates, heading float64) bool

	// HaltMotion stops any move in progress and returns the resting position.
	HaltMotion(ctx context.Context) domain.Coordinates
}

// Responder produces an answer to the cancel question.
type Responder interface {
	// Await blocks until an answer is available. It returns false when ctx is
	// cancelled or no answer could be recognized.
	Await(ctx context.Context) (domain.Event, bool)
}

// EventSource delivers controller events such as touch changes.
type EventSource interface {
	// Events returns a channel closed when ctx is done or the source is exhausted.
	Events(ctx context.Context) (<-chan domain.Event, error)
}
