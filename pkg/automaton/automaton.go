package automaton

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// envelope is a queued event. A zero epoch means the event is not scoped to a state entry.
type envelope struct {
	event   domain.Event
	epoch   uint64
	timeout bool
}

// Automaton owns the registered states, the current state and the event queue.
type Automaton struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks

	mu       sync.Mutex
	states   map[StateName]*State
	order    []StateName
	internal map[domain.Event]bool
	current  *State
	epoch    uint64
	timer    *time.Timer
	cancel   context.CancelFunc
	base     context.Context
	queue    []envelope
	draining bool
	started  bool
	stopped  bool

	done     chan struct{}
	doneOnce sync.Once
}

// New creates an empty automaton.
func New(opts ...Option) *Automaton {
	a := &Automaton{
		logger:   defaultLogger(),
		states:   make(map[StateName]*State),
		internal: make(map[domain.Event]bool),
		base:     context.Background(),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AddState registers s. Names must be unique and states cannot be added after Start.
func (a *Automaton) AddState(s *State) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.started {
		return fmt.Errorf("%w: %w", ErrConfig, ErrAlreadyStarted)
	}
	if _, exists := a.states[s.Name]; exists {
		return fmt.Errorf("%w: %w: %q", ErrConfig, ErrDuplicateState, s.Name)
	}
	s.automaton = a
	a.states[s.Name] = s
	a.order = append(a.order, s.Name)
	return nil
}

// Start validates the registry and enters the initial state.
// ctx bounds every state context handed to Enter hooks.
func (a *Automaton) Start(ctx context.Context, initial StateName) error {
	a.mu.Lock()
	if a.stopped {
		a.mu.Unlock()
		return ErrStopped
	}
	if a.started {
		a.mu.Unlock()
		return fmt.Errorf("%w: %w", ErrConfig, ErrAlreadyStarted)
	}
	s, ok := a.states[initial]
	if !ok {
		a.mu.Unlock()
		return fmt.Errorf("%w: %w: %q", ErrConfig, ErrUnknownInitialState, initial)
	}
	if err := a.validateLocked(); err != nil {
		a.mu.Unlock()
		return err
	}
	a.started = true
	a.base = ctx
	a.epoch++
	a.draining = true
	a.mu.Unlock()

	a.logger.Info("automaton started", "state", initial)
	a.enter(s, "")
	a.drain()
	return nil
}

func (a *Automaton) validateLocked() error {
	for _, name := range a.order {
		s := a.states[name]
		for ev, target := range s.Transitions {
			if _, ok := a.states[target]; !ok {
				return fmt.Errorf("%w: %w: %s --%s--> %q", ErrConfig, ErrUnknownTransitionTarget, name, ev, target)
			}
		}
		if s.Timeout == nil {
			continue
		}
		if s.Timeout.After <= 0 {
			return fmt.Errorf("%w: %w: %s (%v)", ErrConfig, ErrInvalidTimeout, name, s.Timeout.After)
		}
		if _, ok := s.Transitions[s.Timeout.Event]; !ok {
			return fmt.Errorf("%w: %w: %s on %q", ErrConfig, ErrUnhandledTimeout, name, s.Timeout.Event)
		}
		a.internal[s.Timeout.Event] = true
	}
	return nil
}

// Dispatch enqueues an external event. If no other goroutine is draining the
// queue, the event is processed before Dispatch returns.
// Events without a transition in the current state are logged and ignored.
func (a *Automaton) Dispatch(ev domain.Event) error {
	a.mu.Lock()
	switch {
	case a.stopped:
		a.mu.Unlock()
		return ErrStopped
	case !a.started:
		a.mu.Unlock()
		return ErrNotStarted
	case a.internal[ev]:
		a.mu.Unlock()
		a.logger.Warn("rejected externally injected internal event", "event", ev)
		return fmt.Errorf("%w: %q", ErrInternalEvent, ev)
	}
	return a.enqueueLocked(envelope{event: ev})
}

// emit enqueues an event scoped to epoch; stale events are dropped.
func (a *Automaton) emit(epoch uint64, ev domain.Event, timeout bool) {
	a.mu.Lock()
	if a.stopped || epoch != a.epoch {
		a.mu.Unlock()
		a.logger.Debug("dropped stale event", "event", ev, "epoch", epoch)
		return
	}
	_ = a.enqueueLocked(envelope{event: ev, epoch: epoch, timeout: timeout})
}

// enqueueLocked must be called with a.mu held; it releases it.
func (a *Automaton) enqueueLocked(env envelope) error {
	a.queue = append(a.queue, env)
	if a.draining {
		a.mu.Unlock()
		return nil
	}
	a.draining = true
	a.mu.Unlock()

	a.drain()
	return nil
}

func (a *Automaton) drain() {
	for {
		a.mu.Lock()
		if a.stopped || len(a.queue) == 0 {
			a.queue = nil
			a.draining = false
			a.mu.Unlock()
			return
		}
		env := a.queue[0]
		a.queue = a.queue[1:]
		a.mu.Unlock()

		a.process(env)
	}
}

func (a *Automaton) process(env envelope) {
	a.mu.Lock()
	cur, epoch := a.current, a.epoch
	a.mu.Unlock()

	if env.epoch != 0 && env.epoch != epoch {
		a.logger.Debug("dropped stale event", "event", env.event, "epoch", env.epoch, "current_epoch", epoch)
		return
	}

	if env.timeout {
		a.notify(a.hooks.OnTimeout, domain.HookTimeout, cur.Name, env.event, epoch)
	}

	next, ok := cur.OnEvent(env.event)
	if !ok {
		a.logger.Info("event ignored", "state", cur.Name, "event", env.event)
		a.notify(a.hooks.OnEventIgnored, domain.HookEventIgnored, cur.Name, env.event, epoch)
		return
	}

	a.transition(cur, next, env.event)
}

func (a *Automaton) transition(cur *State, nextName StateName, ev domain.Event) {
	a.mu.Lock()
	if a.stopped {
		a.mu.Unlock()
		return
	}
	oldEpoch := a.epoch
	a.disarmLocked()
	next := a.states[nextName]
	a.mu.Unlock()

	a.logger.Debug("leaving state", "state", cur.Name, "event", ev, "next", nextName)
	a.notify(a.hooks.OnStateExit, domain.HookStateExit, cur.Name, ev, oldEpoch)
	if cur.Exit != nil {
		cur.Exit(a.base)
	}

	a.enter(next, ev)
}

// disarmLocked stops the timer, invalidates the current epoch and cancels the state context.
func (a *Automaton) disarmLocked() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.epoch++
}

func (a *Automaton) enter(s *State, trigger domain.Event) {
	a.mu.Lock()
	if a.stopped {
		a.mu.Unlock()
		return
	}
	a.current = s
	epoch := a.epoch
	ctx, cancel := context.WithCancel(a.base)
	a.cancel = cancel
	if d := s.Timeout; d != nil {
		a.timer = time.AfterFunc(d.After, func() {
			a.emit(epoch, d.Event, true)
		})
	}
	a.mu.Unlock()

	a.logger.Info("entering state", "state", s.Name, "trigger", trigger, "epoch", epoch)
	a.notify(a.hooks.OnStateEnter, domain.HookStateEnter, s.Name, trigger, epoch)

	if s.Enter != nil {
		s.Enter(ctx, func(ev domain.Event) {
			a.emit(epoch, ev, false)
		})
	}

	if s.Terminal() {
		a.logger.Info("terminal state reached", "state", s.Name)
		a.closeDone()
	}
}

// Stop disarms the current state and refuses further events. Exit hooks are not run.
func (a *Automaton) Stop() {
	a.mu.Lock()
	if !a.stopped {
		a.stopped = true
		a.disarmLocked()
		a.queue = nil
	}
	a.mu.Unlock()
	a.closeDone()
}

func (a *Automaton) closeDone() {
	a.doneOnce.Do(func() { close(a.done) })
}

// Done is closed once a terminal state has been entered or Stop was called.
func (a *Automaton) Done() <-chan struct{} {
	return a.done
}

// Current returns the name of the current state, or "" before Start.
func (a *Automaton) Current() StateName {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.current == nil {
		return ""
	}
	return a.current.Name
}

// Epoch returns the epoch of the current state entry.
func (a *Automaton) Epoch() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.epoch
}

// States returns the registered state names in registration order.
func (a *Automaton) States() []StateName {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]StateName(nil), a.order...)
}

// State returns the registered state called name.
func (a *Automaton) State(name StateName) (*State, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, ok := a.states[name]
	return s, ok
}

// Terminal reports whether name is registered and has no outgoing transitions.
func (a *Automaton) Terminal(name StateName) bool {
	s, ok := a.State(name)
	return ok && s.Terminal()
}

func (a *Automaton) notify(hook func(context.Context, *domain.StateEvent), typ domain.HookType, state StateName, ev domain.Event, epoch uint64) {
	if hook == nil {
		return
	}
	hook(a.base, &domain.StateEvent{
		Timestamp: time.Now(),
		Type:      typ,
		State:     string(state),
		Event:     ev,
		Epoch:     epoch,
	})
}
