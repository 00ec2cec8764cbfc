package wayfinder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/internal/runtime"
	"github.com/aretw0/wayfinder/pkg/automaton"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
	"github.com/google/uuid"
)

// DefaultLockTTL bounds how long a session lock is held without renewal.
const DefaultLockTTL = 30 * time.Minute

var (
	// ErrGuideStarted is returned when Start is called twice.
	ErrGuideStarted = errors.New("guide already started")
	// ErrGuideStopped is returned when Start runs after, or races with, Stop.
	ErrGuideStopped = errors.New("guide stopped")
)

// Guide is the high-level entry point of the library.
// It wraps the runtime session and provides a simplified API for hosts.
type Guide struct {
	plan  Plan
	robot ports.Robot

	sessionID  string
	start      *domain.Coordinates
	wait       time.Duration
	maxRetries int
	retryDelay time.Duration
	side       domain.Side

	logger    *slog.Logger
	hooks     domain.LifecycleHooks
	responder ports.Responder
	store     ports.ProgressStore
	locker    ports.DistributedLocker
	lockTTL   time.Duration
	resume    bool

	mu       sync.Mutex
	session  *runtime.Session
	starting bool
	stopped  bool
	done     chan struct{}
	doneOnce sync.Once
}

// Option defines a functional option for configuring the Guide.
type Option func(*Guide)

// WithSessionID names the session. A random id is generated otherwise.
func WithSessionID(id string) Option {
	return func(g *Guide) {
		g.sessionID = id
	}
}

// WithLogger sets a custom structured logger for the guide.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Guide) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks. Repeated calls are merged.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(g *Guide) {
		g.hooks = g.hooks.Merge(hooks)
	}
}

// WithResponder answers the cancellation question on the user's behalf.
func WithResponder(r ports.Responder) Option {
	return func(g *Guide) {
		g.responder = r
	}
}

// WithStore persists walk progress under the session id.
func WithStore(store ports.ProgressStore) Option {
	return func(g *Guide) {
		g.store = store
	}
}

// WithResume continues a stored walk with the same session id and route.
func WithResume(resume bool) Option {
	return func(g *Guide) {
		g.resume = resume
	}
}

// WithLocker keeps other processes from driving the same session.
func WithLocker(locker ports.DistributedLocker, ttl time.Duration) Option {
	return func(g *Guide) {
		g.locker = locker
		if ttl > 0 {
			g.lockTTL = ttl
		}
	}
}

// WithWait sets the timeout of the waiting states.
func WithWait(d time.Duration) Option {
	return func(g *Guide) {
		g.wait = d
	}
}

// WithMaxRetries bounds consecutive failed moves towards one waypoint. 0 means unlimited.
func WithMaxRetries(n int) Option {
	return func(g *Guide) {
		g.maxRetries = n
	}
}

// WithRetryDelay pauses between two attempts at the same waypoint.
func WithRetryDelay(d time.Duration) Option {
	return func(g *Guide) {
		g.retryDelay = d
	}
}

// WithStartPosition sets where the robot stands. Defaults to the first waypoint.
func WithStartPosition(pos domain.Coordinates) Option {
	return func(g *Guide) {
		g.start = &pos
	}
}

// WithSide forces the offered hand instead of deriving it from the route.
func WithSide(side domain.Side) Option {
	return func(g *Guide) {
		g.side = side
	}
}

// New prepares a guide for plan. Nothing moves until Start.
func New(plan Plan, robot ports.Robot, opts ...Option) (*Guide, error) {
	if robot == nil {
		return nil, runtime.ErrNoRobot
	}
	if len(plan.Waypoints) == 0 {
		return nil, runtime.ErrEmptyRoute
	}
	if len(plan.Waypoints) != plan.Route.Len() {
		return nil, fmt.Errorf("%w: %d nodes, %d waypoints", runtime.ErrRouteMismatch, plan.Route.Len(), len(plan.Waypoints))
	}

	g := &Guide{
		plan:       plan,
		robot:      robot,
		wait:       runtime.DefaultWait,
		maxRetries: runtime.DefaultMaxRetries,
		logger:     logging.NewNop(),
		lockTTL:    DefaultLockTTL,
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.sessionID == "" {
		g.sessionID = uuid.NewString()
	}
	return g, nil
}

// SessionID returns the id progress is stored under.
func (g *Guide) SessionID() string {
	return g.sessionID
}

// Plan returns the route being walked.
func (g *Guide) Plan() Plan {
	return g.plan
}

// Start acquires the session lock, restores progress if asked to, and
// enters the steady state. ctx bounds the whole walk.
func (g *Guide) Start(ctx context.Context) error {
	g.mu.Lock()
	if g.stopped {
		g.mu.Unlock()
		return ErrGuideStopped
	}
	if g.session != nil || g.starting {
		g.mu.Unlock()
		return ErrGuideStarted
	}
	g.starting = true
	g.mu.Unlock()

	var unlock ports.UnlockFunc
	if g.locker != nil {
		var err error
		unlock, err = g.locker.Lock(ctx, "guide:"+g.sessionID, g.lockTTL)
		if err != nil {
			g.abortStart()
			return fmt.Errorf("lock session %s: %w", g.sessionID, err)
		}
	}

	session, err := g.newSession(ctx)
	if err != nil {
		g.abortStart()
		g.release(ctx, unlock)
		return err
	}

	g.mu.Lock()
	if g.stopped {
		g.starting = false
		g.mu.Unlock()
		g.release(ctx, unlock)
		return ErrGuideStopped
	}
	g.session = session
	g.mu.Unlock()

	if err := session.Start(ctx); err != nil {
		g.release(ctx, unlock)
		g.doneOnce.Do(func() { close(g.done) })
		return err
	}

	go func() {
		<-session.Done()
		g.release(context.WithoutCancel(ctx), unlock)
		g.doneOnce.Do(func() { close(g.done) })
	}()
	return nil
}

func (g *Guide) abortStart() {
	g.mu.Lock()
	g.starting = false
	g.mu.Unlock()
}

func (g *Guide) newSession(ctx context.Context) (*runtime.Session, error) {
	start := g.plan.Waypoints[0]
	if g.start != nil {
		start = *g.start
	}

	opts := []runtime.Option{
		runtime.WithLogger(g.logger),
		runtime.WithLifecycleHooks(g.hooks),
		runtime.WithResponder(g.responder),
	}
	if g.store != nil {
		opts = append(opts, runtime.WithStore(g.store))
	}

	if g.resume && g.store != nil {
		p, err := g.store.Load(ctx, g.sessionID)
		switch {
		case errors.Is(err, domain.ErrSessionNotFound):
			g.logger.Info("no stored progress, starting fresh", "session_id", g.sessionID)
		case err != nil:
			return nil, fmt.Errorf("load progress for %s: %w", g.sessionID, err)
		case p.Arrived || p.Failed:
			g.logger.Info("stored walk already finished, starting fresh", "session_id", g.sessionID, "arrived", p.Arrived)
		default:
			g.logger.Info("resuming walk", "session_id", g.sessionID, "index", p.Index, "position", p.Position)
			opts = append(opts, runtime.WithProgress(p))
		}
	}

	return runtime.New(runtime.Config{
		SessionID:  g.sessionID,
		Nodes:      slices.Clone(g.plan.Route.Nodes),
		Waypoints:  slices.Clone(g.plan.Waypoints),
		Start:      start,
		Side:       g.side,
		Wait:       g.wait,
		MaxRetries: g.maxRetries,
		RetryDelay: g.retryDelay,
	}, g.robot, opts...)
}

func (g *Guide) release(ctx context.Context, unlock ports.UnlockFunc) {
	if unlock == nil {
		return
	}
	if err := unlock(ctx); err != nil {
		g.logger.Warn("failed to release session lock", "session_id", g.sessionID, "error", err)
	}
}

func (g *Guide) current() *runtime.Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session
}

// Dispatch feeds a controller event (touch, release, yes, no) to the guide.
func (g *Guide) Dispatch(ctx context.Context, ev domain.Event) error {
	s := g.current()
	if s == nil {
		return automaton.ErrNotStarted
	}
	return s.Dispatch(ctx, ev)
}

// Snapshot returns the walk progress. Before Start the state is empty.
func (g *Guide) Snapshot(ctx context.Context) domain.Progress {
	if s := g.current(); s != nil {
		return s.Snapshot(ctx)
	}
	pos := g.plan.Waypoints[0]
	if g.start != nil {
		pos = *g.start
	}
	return domain.Progress{
		SessionID: g.sessionID,
		Route:     slices.Clone(g.plan.Route.Nodes),
		Position:  pos,
	}
}

// Done is closed once the guide reached quit or was stopped.
func (g *Guide) Done() <-chan struct{} {
	return g.done
}

// Stop aborts the walk and releases the session lock. A Start still in
// progress gives up instead of entering steady.
func (g *Guide) Stop() {
	g.mu.Lock()
	g.stopped = true
	s := g.session
	g.mu.Unlock()
	if s == nil {
		g.doneOnce.Do(func() { close(g.done) })
		return
	}
	s.Stop()
	<-g.done
}

// Wait blocks until the guide is done or ctx is cancelled, then reports the outcome.
func (g *Guide) Wait(ctx context.Context) (domain.Progress, error) {
	select {
	case <-g.done:
		return g.Snapshot(ctx), nil
	case <-ctx.Done():
		return g.Snapshot(ctx), ctx.Err()
	}
}
