package runtime

import (
	"context"

	"github.com/aretw0/wayfinder/pkg/automaton"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/lang"
)

// Guidance state names.
const (
	StateSteady automaton.StateName = "steady"
	StateMoving automaton.StateName = "moving"
	StateAsk    automaton.StateName = "ask"
	StateHold   automaton.StateName = "hold"
	StateQuit   automaton.StateName = "quit"
)

func (s *Session) states() []*automaton.State {
	wait := func() *automaton.Deadline {
		return &automaton.Deadline{After: s.cfg.Wait, Event: domain.EventTimeElapsed}
	}

	return []*automaton.State{
		{
			Name:    StateSteady,
			Timeout: wait(),
			Transitions: map[domain.Event]automaton.StateName{
				domain.EventHandTouched: StateMoving,
				domain.EventTimeElapsed: StateQuit,
			},
			Enter: s.enterSteady,
		},
		{
			Name: StateMoving,
			Transitions: map[domain.Event]automaton.StateName{
				domain.EventHandReleased:     StateAsk,
				domain.EventArrived:          StateQuit,
				domain.EventNavigationFailed: StateQuit,
			},
			Enter: s.enterMoving,
			Exit:  s.exitMoving,
		},
		{
			Name:    StateAsk,
			Timeout: wait(),
			Transitions: map[domain.Event]automaton.StateName{
				domain.EventResponseYes: StateQuit,
				domain.EventResponseNo:  StateHold,
				domain.EventHandTouched: StateMoving,
				domain.EventTimeElapsed: StateQuit,
			},
			Enter: s.enterAsk,
		},
		{
			Name:    StateHold,
			Timeout: wait(),
			Transitions: map[domain.Event]automaton.StateName{
				domain.EventHandTouched: StateMoving,
				domain.EventTimeElapsed: StateQuit,
			},
			Enter: s.enterHold,
		},
		{
			Name:  StateQuit,
			Enter: s.enterQuit,
		},
	}
}

func (s *Session) entered(ctx context.Context, name automaton.StateName) {
	s.update(ctx, func(p *domain.Progress) { p.State = string(name) })
}

func (s *Session) enterSteady(ctx context.Context, _ automaton.Emitter) {
	s.entered(ctx, StateSteady)
	s.robot.ResetPosture(ctx)
	key := lang.KeyHoldHandLeft
	if s.cfg.Side == domain.SideRight {
		key = lang.KeyHoldHandRight
	}
	s.robot.Prompt(ctx, key)
	s.robot.RaiseLimb(ctx, s.cfg.Side)
}

func (s *Session) enterMoving(ctx context.Context, emit automaton.Emitter) {
	// A failure that lost the race against hand_released no longer holds once
	// the user asks to walk again.
	s.update(ctx, func(p *domain.Progress) {
		p.State = string(StateMoving)
		p.Failed = false
		if s.cfg.MaxRetries > 0 && p.Retries >= s.cfg.MaxRetries {
			p.Retries = 0
		}
	})

	done := make(chan struct{})
	s.mu.Lock()
	s.walkDone = done
	s.walkResult = ""
	s.mu.Unlock()

	go func() {
		ev := s.walk(ctx)
		s.mu.Lock()
		s.walkResult = ev
		s.mu.Unlock()
		// The exit hook waits on done, so it must be closed before emitting.
		close(done)
		if ev != "" {
			emit(ev)
		}
	}()
}

func (s *Session) exitMoving(ctx context.Context) {
	s.mu.Lock()
	done := s.walkDone
	s.mu.Unlock()
	if done != nil {
		<-done
	}

	s.mu.Lock()
	result := s.walkResult
	s.mu.Unlock()
	if result != "" {
		return
	}

	pos := s.robot.HaltMotion(ctx)
	s.update(ctx, func(p *domain.Progress) { p.Position = pos })
	s.logger.Info("walk interrupted", "index", s.Snapshot(ctx).Index, "position", pos.String())
}

func (s *Session) enterAsk(ctx context.Context, emit automaton.Emitter) {
	s.entered(ctx, StateAsk)
	s.robot.Prompt(ctx, lang.KeyAskCancel)

	if s.responder == nil {
		return
	}
	go func() {
		if ev, ok := s.responder.Await(ctx); ok {
			s.logger.Info("response received", "event", ev)
			emit(ev)
		}
	}()
}

func (s *Session) enterHold(ctx context.Context, _ automaton.Emitter) {
	s.entered(ctx, StateHold)
	s.robot.Prompt(ctx, lang.KeyGrabHandToContinue)
}

func (s *Session) enterQuit(ctx context.Context, _ automaton.Emitter) {
	s.entered(ctx, StateQuit)

	snap := s.Snapshot(ctx)
	switch {
	case snap.Arrived:
		s.robot.Prompt(ctx, lang.KeyDestinationReached)
	case snap.Failed:
		s.robot.Prompt(ctx, lang.KeyNavigationFailed)
	}
	s.robot.Prompt(ctx, lang.KeyGoodbye)
	s.robot.ResetPosture(ctx)
	s.logger.Info("guidance session finished",
		"session_id", s.cfg.SessionID,
		"arrived", snap.Arrived,
		"failed", snap.Failed,
		"index", snap.Index,
	)
}
