package runtime

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/wayfinder/pkg/adapters/memory"
	"github.com/aretw0/wayfinder/pkg/automaton"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRobot records every call made by the guide.
type MockRobot struct {
	mock.Mock
}

func (m *MockRobot) Prompt(ctx context.Context, key string) {
	m.Called(key)
}

func (m *MockRobot) RaiseLimb(ctx context.Context, side domain.Side) {
	m.Called(side)
}

func (m *MockRobot) ResetPosture(ctx context.Context) {
	m.Called()
}

func (m *MockRobot) MoveToward(ctx context.Context, target domain.Coordinates, heading float64) bool {
	args := m.Called(ctx, target, heading)
	return args.Bool(0)
}

func (m *MockRobot) HaltMotion(ctx context.Context) domain.Coordinates {
	args := m.Called()
	return args.Get(0).(domain.Coordinates)
}

// newMockRobot accepts the fire-and-forget calls without expectations.
func newMockRobot() *MockRobot {
	r := &MockRobot{}
	r.On("Prompt", mock.Anything).Maybe()
	r.On("RaiseLimb", mock.Anything).Maybe()
	r.On("ResetPosture").Maybe()
	return r
}

type fixedResponder struct {
	answer domain.Event
}

func (f fixedResponder) Await(ctx context.Context) (domain.Event, bool) {
	select {
	case <-ctx.Done():
		return "", false
	case <-time.After(5 * time.Millisecond):
		return f.answer, true
	}
}

var (
	nodes     = []string{"A", "B", "D"}
	waypoints = []domain.Coordinates{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 3}}
)

func baseConfig() Config {
	return Config{
		SessionID:  "s-1",
		Nodes:      nodes,
		Waypoints:  waypoints,
		Wait:       time.Minute,
		MaxRetries: DefaultMaxRetries,
	}
}

func waitDone(t *testing.T, s *Session) {
	t.Helper()
	select {
	case <-s.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("session did not finish, state %s", s.Current())
	}
}

func TestSession_WalkToDestination(t *testing.T) {
	robot := newMockRobot()
	robot.On("MoveToward", mock.Anything, mock.Anything, mock.Anything).Return(true)
	store := memory.NewStore()

	s, err := New(baseConfig(), robot, WithStore(store))
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))
	assert.Equal(t, StateSteady, s.Current())
	robot.AssertCalled(t, "Prompt", lang.KeyHoldHandLeft)
	robot.AssertCalled(t, "RaiseLimb", domain.SideLeft)

	require.NoError(t, s.Dispatch(context.Background(), domain.EventHandTouched))
	waitDone(t, s)

	assert.Equal(t, StateQuit, s.Current())
	snap := s.Snapshot(context.Background())
	assert.True(t, snap.Arrived)
	assert.Equal(t, 3, snap.Index)
	assert.Equal(t, waypoints[2], snap.Position)
	assert.Empty(t, snap.Remaining())

	robot.AssertNumberOfCalls(t, "MoveToward", 3)
	robot.AssertCalled(t, "Prompt", lang.KeyDestinationReached)
	robot.AssertCalled(t, "Prompt", lang.KeyGoodbye)
	robot.AssertNotCalled(t, "HaltMotion")

	stored, err := store.Load(context.Background(), "s-1")
	require.NoError(t, err)
	assert.Equal(t, string(StateQuit), stored.State)
	assert.True(t, stored.Arrived)
}

func TestSession_RejectsInjectedWalkerEvents(t *testing.T) {
	s, err := New(baseConfig(), newMockRobot())
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	for _, ev := range []domain.Event{domain.EventArrived, domain.EventNavigationFailed} {
		assert.ErrorIs(t, s.Dispatch(context.Background(), ev), automaton.ErrInternalEvent, ev)
	}
	assert.Equal(t, StateSteady, s.Current())
}

func TestSession_HeadingFromCurrentPosition(t *testing.T) {
	robot := newMockRobot()
	var mu sync.Mutex
	var headings []float64
	robot.On("MoveToward", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			mu.Lock()
			defer mu.Unlock()
			headings = append(headings, args.Get(2).(float64))
		}).
		Return(true)

	s, err := New(baseConfig(), robot)
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Dispatch(context.Background(), domain.EventHandTouched))
	waitDone(t, s)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, headings, 3)
	assert.InDelta(t, 0.0, headings[1], 1e-9, "A -> B is along +x")
	assert.InDelta(t, 1.5707963, headings[2], 1e-6, "B -> D is along +y")
}

func TestSession_ReleaseHaltsAndResumes(t *testing.T) {
	robot := newMockRobot()
	moving := make(chan struct{}, 1)
	halted := domain.Coordinates{X: 1, Y: 0}

	robot.On("MoveToward", mock.Anything, waypoints[0], mock.Anything).Return(true)
	robot.On("MoveToward", mock.Anything, waypoints[1], mock.Anything).
		Run(func(args mock.Arguments) {
			moving <- struct{}{}
			<-args.Get(0).(context.Context).Done()
		}).
		Return(false).Once()
	robot.On("HaltMotion").Return(halted).Once()

	s, err := New(baseConfig(), robot)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.Dispatch(ctx, domain.EventHandTouched))

	select {
	case <-moving:
	case <-time.After(time.Second):
		t.Fatal("walker never left A")
	}

	require.NoError(t, s.Dispatch(ctx, domain.EventHandReleased))
	assert.Equal(t, StateAsk, s.Current())
	robot.AssertCalled(t, "HaltMotion")
	robot.AssertCalled(t, "Prompt", lang.KeyAskCancel)

	snap := s.Snapshot(ctx)
	assert.Equal(t, 1, snap.Index, "partial progress is kept")
	assert.Equal(t, halted, snap.Position)
	assert.Equal(t, 0, snap.Retries, "a cancelled move is not a failure")

	require.NoError(t, s.Dispatch(ctx, domain.EventResponseNo))
	assert.Equal(t, StateHold, s.Current())
	robot.AssertCalled(t, "Prompt", lang.KeyGrabHandToContinue)

	robot.On("MoveToward", mock.Anything, mock.Anything, mock.Anything).Return(true)
	require.NoError(t, s.Dispatch(ctx, domain.EventHandTouched))
	waitDone(t, s)

	assert.True(t, s.Snapshot(ctx).Arrived)
	// Resumed at B from the halted position.
	robot.AssertCalled(t, "MoveToward", mock.Anything, waypoints[1], halted.HeadingTo(waypoints[1]))
}

func TestSession_RetryLimit(t *testing.T) {
	robot := newMockRobot()
	robot.On("MoveToward", mock.Anything, mock.Anything, mock.Anything).Return(false)

	cfg := baseConfig()
	cfg.MaxRetries = 3
	s, err := New(cfg, robot)
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Dispatch(context.Background(), domain.EventHandTouched))
	waitDone(t, s)

	snap := s.Snapshot(context.Background())
	assert.True(t, snap.Failed)
	assert.False(t, snap.Arrived)
	assert.Equal(t, 0, snap.Index)
	assert.Equal(t, 3, snap.Retries)
	robot.AssertNumberOfCalls(t, "MoveToward", 3)
	robot.AssertCalled(t, "Prompt", lang.KeyNavigationFailed)
	robot.AssertNotCalled(t, "HaltMotion")
}

// gatedStore blocks the first save of a failed walk until release is closed.
type gatedStore struct {
	*memory.Store
	once    sync.Once
	blocked chan struct{}
	release chan struct{}
}

func (g *gatedStore) Save(ctx context.Context, id string, p *domain.Progress) error {
	if p.Failed {
		g.once.Do(func() {
			close(g.blocked)
			<-g.release
		})
	}
	return g.Store.Save(ctx, id, p)
}

func TestSession_FailureLosingToReleaseIsCleared(t *testing.T) {
	robot := newMockRobot()
	moving := make(chan struct{}, 1)
	halted := domain.Coordinates{X: 0.5, Y: 0}

	robot.On("MoveToward", mock.Anything, waypoints[0], mock.Anything).Return(false).Once()
	robot.On("MoveToward", mock.Anything, waypoints[0], mock.Anything).
		Run(func(args mock.Arguments) {
			moving <- struct{}{}
			<-args.Get(0).(context.Context).Done()
		}).
		Return(false)
	robot.On("HaltMotion").Return(halted)

	exits := make(chan struct{}, 4)
	hooks := domain.LifecycleHooks{
		OnStateExit: func(_ context.Context, e *domain.StateEvent) {
			if e.State == string(StateMoving) {
				exits <- struct{}{}
			}
		},
	}
	store := &gatedStore{Store: memory.NewStore(), blocked: make(chan struct{}), release: make(chan struct{})}

	cfg := baseConfig()
	cfg.MaxRetries = 1
	s, err := New(cfg, robot, WithStore(store), WithLifecycleHooks(hooks))
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, s.Start(ctx))
	defer s.Stop()
	require.NoError(t, s.Dispatch(ctx, domain.EventHandTouched))

	select {
	case <-store.blocked:
	case <-time.After(time.Second):
		t.Fatal("walker never gave up")
	}

	// hand_released is processed while the walker is still saving its failure.
	released := make(chan error, 1)
	go func() { released <- s.Dispatch(ctx, domain.EventHandReleased) }()
	select {
	case <-exits:
	case <-time.After(time.Second):
		t.Fatal("moving was never left")
	}
	close(store.release)
	require.NoError(t, <-released)

	assert.Equal(t, StateAsk, s.Current())
	robot.AssertNotCalled(t, "HaltMotion")

	require.NoError(t, s.Dispatch(ctx, domain.EventHandTouched))
	select {
	case <-moving:
	case <-time.After(time.Second):
		t.Fatal("walk did not restart")
	}
	snap := s.Snapshot(ctx)
	assert.Equal(t, StateMoving, automaton.StateName(snap.State))
	assert.False(t, snap.Failed)
	assert.Equal(t, 0, snap.Retries)

	require.NoError(t, s.Dispatch(ctx, domain.EventHandReleased))
	assert.Equal(t, StateAsk, s.Current())
	robot.AssertNumberOfCalls(t, "HaltMotion", 1)
	assert.Equal(t, halted, s.Snapshot(ctx).Position)

	stored, err := store.Load(ctx, "s-1")
	require.NoError(t, err)
	assert.False(t, stored.Failed)
	assert.Equal(t, halted, stored.Position)
}

func TestSession_RetriesResetOnSuccess(t *testing.T) {
	robot := newMockRobot()
	robot.On("MoveToward", mock.Anything, waypoints[0], mock.Anything).Return(false).Twice()
	robot.On("MoveToward", mock.Anything, mock.Anything, mock.Anything).Return(true)

	var mu sync.Mutex
	var events []domain.WaypointEvent
	hooks := domain.LifecycleHooks{
		OnWaypoint: func(_ context.Context, e *domain.WaypointEvent) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, *e)
		},
	}

	cfg := baseConfig()
	cfg.MaxRetries = 3
	s, err := New(cfg, robot, WithLifecycleHooks(hooks))
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Dispatch(context.Background(), domain.EventHandTouched))
	waitDone(t, s)

	assert.True(t, s.Snapshot(context.Background()).Arrived)
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, events, 5)
	assert.Equal(t, 3, events[2].Attempt)
	assert.True(t, events[2].Reached)
	assert.Equal(t, 1, events[3].Attempt)
}

func TestSession_SteadyTimeout(t *testing.T) {
	robot := newMockRobot()
	cfg := baseConfig()
	cfg.Wait = 20 * time.Millisecond

	s, err := New(cfg, robot)
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))
	waitDone(t, s)

	assert.Equal(t, StateQuit, s.Current())
	robot.AssertNotCalled(t, "MoveToward", mock.Anything, mock.Anything, mock.Anything)
	robot.AssertCalled(t, "Prompt", lang.KeyGoodbye)
	robot.AssertNotCalled(t, "Prompt", lang.KeyDestinationReached)
}

func TestSession_ResponderCancels(t *testing.T) {
	robot := newMockRobot()
	robot.On("MoveToward", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { <-args.Get(0).(context.Context).Done() }).
		Return(false)
	robot.On("HaltMotion").Return(domain.Coordinates{})

	s, err := New(baseConfig(), robot, WithResponder(fixedResponder{answer: domain.EventResponseYes}))
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.Dispatch(ctx, domain.EventHandTouched))
	require.NoError(t, s.Dispatch(ctx, domain.EventHandReleased))

	waitDone(t, s)
	assert.Equal(t, StateQuit, s.Current())
	assert.False(t, s.Snapshot(ctx).Arrived)
}

func TestSession_RightHandForNegativeX(t *testing.T) {
	robot := newMockRobot()
	cfg := baseConfig()
	cfg.Waypoints = []domain.Coordinates{{X: -1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 3}}

	s, err := New(cfg, robot)
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Equal(t, domain.SideRight, s.Side())
	robot.AssertCalled(t, "Prompt", lang.KeyHoldHandRight)
	robot.AssertCalled(t, "RaiseLimb", domain.SideRight)
}

func TestSession_ResumeFromProgress(t *testing.T) {
	robot := newMockRobot()
	robot.On("MoveToward", mock.Anything, mock.Anything, mock.Anything).Return(true)

	stored := &domain.Progress{Route: nodes, Index: 2, Position: waypoints[1]}
	s, err := New(baseConfig(), robot, WithProgress(stored))
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Dispatch(context.Background(), domain.EventHandTouched))
	waitDone(t, s)

	robot.AssertNumberOfCalls(t, "MoveToward", 1)
	robot.AssertCalled(t, "MoveToward", mock.Anything, waypoints[2], mock.Anything)
}

func TestSession_StopWaitsForWalker(t *testing.T) {
	robot := newMockRobot()
	robot.On("MoveToward", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { <-args.Get(0).(context.Context).Done() }).
		Return(false)

	s, err := New(baseConfig(), robot)
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Dispatch(context.Background(), domain.EventHandTouched))

	s.Stop()
	waitDone(t, s)
	robot.AssertNotCalled(t, "HaltMotion")
	assert.Equal(t, StateMoving, s.Current())
}

func TestNew_Validation(t *testing.T) {
	robot := newMockRobot()

	_, err := New(baseConfig(), nil)
	assert.ErrorIs(t, err, ErrNoRobot)

	cfg := baseConfig()
	cfg.Waypoints = nil
	_, err = New(cfg, robot)
	assert.ErrorIs(t, err, ErrEmptyRoute)

	cfg = baseConfig()
	cfg.Nodes = []string{"A"}
	_, err = New(cfg, robot)
	assert.ErrorIs(t, err, ErrRouteMismatch)

	_, err = New(baseConfig(), robot, WithProgress(&domain.Progress{Route: []string{"X"}}))
	assert.ErrorIs(t, err, ErrRouteMismatch)

	cfg = baseConfig()
	cfg.Wait = 0
	s, err := New(cfg, robot)
	require.NoError(t, err)
	assert.Equal(t, DefaultWait, s.cfg.Wait)
}
