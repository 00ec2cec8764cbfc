package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// LoggingHooks returns lifecycle hooks that write an audit trail to logger.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStateEnter: func(ctx context.Context, e *domain.StateEvent) {
			logger.InfoContext(ctx, "state_enter", "state", e.State, "trigger", e.Event, "epoch", e.Epoch)
		},
		OnStateExit: func(ctx context.Context, e *domain.StateEvent) {
			logger.DebugContext(ctx, "state_exit", "state", e.State, "event", e.Event)
		},
		OnEventIgnored: func(ctx context.Context, e *domain.StateEvent) {
			logger.InfoContext(ctx, "event_ignored", "state", e.State, "event", e.Event)
		},
		OnTimeout: func(ctx context.Context, e *domain.StateEvent) {
			logger.InfoContext(ctx, "timeout", "state", e.State, "event", e.Event)
		},
		OnWaypoint: func(ctx context.Context, e *domain.WaypointEvent) {
			if e.Reached {
				logger.InfoContext(ctx, "waypoint_reached", "index", e.Index, "node_id", e.NodeID, "target", e.Target.String())
				return
			}
			logger.WarnContext(ctx, "waypoint_failed", "index", e.Index, "node_id", e.NodeID, "attempt", e.Attempt)
		},
	}
}
