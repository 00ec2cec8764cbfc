package runtime

import (
	"context"
	"time"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// walk moves the robot waypoint by waypoint from the stored index. It returns
// the event that ends the walk, or "" when ctx was cancelled; in that case the
// progress already holds the partial walk.
func (s *Session) walk(ctx context.Context) domain.Event {
	for {
		if ctx.Err() != nil {
			return ""
		}

		s.mu.Lock()
		index, from, retries := s.progress.Index, s.progress.Position, s.progress.Retries
		s.mu.Unlock()

		if index >= len(s.cfg.Waypoints) {
			s.update(ctx, func(p *domain.Progress) { p.Arrived = true })
			s.logger.Info("destination reached", "node_id", s.cfg.Nodes[len(s.cfg.Nodes)-1])
			return domain.EventArrived
		}

		target := s.cfg.Waypoints[index]
		heading := from.HeadingTo(target)
		s.logger.Debug("moving to waypoint", "index", index, "node_id", s.cfg.Nodes[index], "target", target.String(), "heading", heading)

		ok := s.robot.MoveToward(ctx, target, heading)
		if ctx.Err() != nil {
			return ""
		}

		attempt := retries + 1
		s.waypointHook(ctx, &domain.WaypointEvent{
			Timestamp: time.Now(),
			Index:     index,
			NodeID:    s.cfg.Nodes[index],
			Target:    target,
			Reached:   ok,
			Attempt:   attempt,
		})

		if ok {
			s.update(ctx, func(p *domain.Progress) {
				p.Index++
				p.Position = target
				p.Retries = 0
			})
			continue
		}

		s.update(ctx, func(p *domain.Progress) { p.Retries = attempt })
		s.logger.Warn("move failed", "index", index, "node_id", s.cfg.Nodes[index], "attempt", attempt)
		if s.cfg.MaxRetries > 0 && attempt >= s.cfg.MaxRetries {
			s.update(ctx, func(p *domain.Progress) { p.Failed = true })
			s.logger.Warn("navigation abandoned", "node_id", s.cfg.Nodes[index], "attempts", attempt)
			return domain.EventNavigationFailed
		}

		if s.cfg.RetryDelay > 0 {
			t := time.NewTimer(s.cfg.RetryDelay)
			select {
			case <-ctx.Done():
				t.Stop()
				return ""
			case <-t.C:
			}
		}
	}
}
