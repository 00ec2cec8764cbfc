package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/pkg/automaton"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
)

// DefaultWait is how long timeout states wait before giving up.
const DefaultWait = 60 * time.Second

// DefaultMaxRetries is the number of consecutive failed moves towards one
// waypoint before the walk is abandoned.
const DefaultMaxRetries = 5

var (
	// ErrEmptyRoute is returned when a session has no waypoints.
	ErrEmptyRoute = errors.New("route has no waypoints")
	// ErrRouteMismatch is returned when node ids and coordinates differ in length,
	// or when resumed progress belongs to another route.
	ErrRouteMismatch = errors.New("route does not match waypoints")
	// ErrNoRobot is returned when a session is created without a robot.
	ErrNoRobot = errors.New("robot is required")
)

// Config describes one guided walk.
type Config struct {
	SessionID string
	// Nodes are the location ids of the route, Waypoints their coordinates.
	Nodes     []string
	Waypoints []domain.Coordinates
	// Start is the robot position when the session begins.
	Start domain.Coordinates
	// Side is the hand to offer; derived from the first waypoint when empty.
	Side domain.Side
	// Wait is the timeout of the steady, ask and hold states.
	Wait time.Duration
	// MaxRetries bounds consecutive failed moves towards one waypoint. 0 means unlimited.
	MaxRetries int
	// RetryDelay is the pause between two attempts at the same waypoint.
	RetryDelay time.Duration
}

// Session owns the automaton and the walk progress of one user.
type Session struct {
	cfg       Config
	robot     ports.Robot
	responder ports.Responder
	store     ports.ProgressStore
	logger    *slog.Logger
	hooks     domain.LifecycleHooks
	resume    *domain.Progress

	automaton *automaton.Automaton

	mu       sync.Mutex
	progress domain.Progress
	walkDone chan struct{}
	// walkResult is the event the walker of the current moving entry ended
	// with, or "" when it was cancelled.
	walkResult domain.Event
}

// New validates cfg and assembles the guidance automaton.
func New(cfg Config, robot ports.Robot, opts ...Option) (*Session, error) {
	if robot == nil {
		return nil, ErrNoRobot
	}
	if len(cfg.Waypoints) == 0 {
		return nil, ErrEmptyRoute
	}
	if len(cfg.Nodes) != len(cfg.Waypoints) {
		return nil, fmt.Errorf("%w: %d nodes, %d waypoints", ErrRouteMismatch, len(cfg.Nodes), len(cfg.Waypoints))
	}
	if cfg.Wait <= 0 {
		cfg.Wait = DefaultWait
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.Side == "" {
		cfg.Side = domain.PickSide(cfg.Waypoints[0])
	}

	s := &Session{
		cfg:    cfg,
		robot:  robot,
		logger: logging.NewNop(),
		progress: domain.Progress{
			SessionID: cfg.SessionID,
			Route:     slices.Clone(cfg.Nodes),
			Position:  cfg.Start,
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	if p := s.resume; p != nil {
		if !slices.Equal(p.Route, cfg.Nodes) || p.Index > len(cfg.Nodes) {
			return nil, fmt.Errorf("%w: stored progress is for route %v", ErrRouteMismatch, p.Route)
		}
		s.progress.Index = p.Index
		s.progress.Position = p.Position
		s.progress.Retries = p.Retries
	}

	s.automaton = automaton.New(
		automaton.WithLogger(s.logger),
		automaton.WithLifecycleHooks(s.hooks),
		automaton.WithInternalEvents(domain.EventArrived, domain.EventNavigationFailed),
	)
	for _, st := range s.states() {
		if err := s.automaton.AddState(st); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Start enters the steady state. ctx bounds the whole session.
func (s *Session) Start(ctx context.Context) error {
	s.logger.Info("guidance session starting",
		"session_id", s.cfg.SessionID,
		"route", s.cfg.Nodes,
		"side", s.cfg.Side,
		"wait", s.cfg.Wait,
	)
	return s.automaton.Start(ctx, StateSteady)
}

// Dispatch delivers an external controller event.
func (s *Session) Dispatch(ctx context.Context, ev domain.Event) error {
	return s.automaton.Dispatch(ev)
}

// Snapshot returns a copy of the progress, stamped with the current state.
func (s *Session) Snapshot(ctx context.Context) domain.Progress {
	state := s.automaton.Current()

	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.progress
	p.Route = slices.Clone(s.progress.Route)
	p.State = string(state)
	return p
}

// Current returns the current state name.
func (s *Session) Current() automaton.StateName {
	return s.automaton.Current()
}

// Side returns the hand offered to the user.
func (s *Session) Side() domain.Side {
	return s.cfg.Side
}

// Done is closed when the session reaches quit or is stopped.
func (s *Session) Done() <-chan struct{} {
	return s.automaton.Done()
}

// Stop aborts the session without running exit behavior and waits for the
// walker to return.
func (s *Session) Stop() {
	s.automaton.Stop()
	s.mu.Lock()
	done := s.walkDone
	s.mu.Unlock()
	if done != nil {
		<-done
	}
}

// update mutates the progress under the lock and persists it.
func (s *Session) update(ctx context.Context, fn func(p *domain.Progress)) {
	s.mu.Lock()
	fn(&s.progress)
	s.progress.UpdatedAt = time.Now().UTC()
	snapshot := s.progress
	snapshot.Route = slices.Clone(s.progress.Route)
	s.mu.Unlock()

	if s.store == nil {
		return
	}
	// The state context may already be cancelled; persistence must still happen.
	if err := s.store.Save(context.WithoutCancel(ctx), s.cfg.SessionID, &snapshot); err != nil {
		s.logger.Warn("failed to persist progress", "session_id", s.cfg.SessionID, "error", err)
	}
}

func (s *Session) waypointHook(ctx context.Context, e *domain.WaypointEvent) {
	if s.hooks.OnWaypoint != nil {
		s.hooks.OnWaypoint(ctx, e)
	}
}
