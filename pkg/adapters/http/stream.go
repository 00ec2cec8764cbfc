package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/pkg/domain"
)

type message struct {
	kind string
	data []byte
}

// StreamManager fans guide lifecycle events out to SSE subscribers.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[chan message]struct{}
	logger      *slog.Logger
}

// NewStreamManager creates an empty manager.
func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[chan message]struct{}),
		logger:      logging.NewNop(),
	}
}

// Subscribe registers a new subscriber. The returned func unsubscribes it.
func (sm *StreamManager) Subscribe() (<-chan message, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan message, 16)
	sm.subscribers[ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if _, ok := sm.subscribers[ch]; ok {
			delete(sm.subscribers, ch)
			close(ch)
		}
	}
}

// Len returns the number of subscribers.
func (sm *StreamManager) Len() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers)
}

// CloseAll disconnects every subscriber.
func (sm *StreamManager) CloseAll() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for ch := range sm.subscribers {
		delete(sm.subscribers, ch)
		close(ch)
	}
}

// Broadcast sends v as JSON to every subscriber, dropping it for slow ones.
func (sm *StreamManager) Broadcast(kind string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		sm.logger.Error("SSE: failed to encode event", "kind", kind, "error", err)
		return
	}

	sm.mu.RLock()
	defer sm.mu.RUnlock()
	for ch := range sm.subscribers {
		select {
		case ch <- message{kind: kind, data: data}:
		default:
			sm.logger.Warn("SSE: client buffer full, dropping message", "kind", kind)
		}
	}
}

// Hooks returns lifecycle hooks that broadcast every notification.
func (sm *StreamManager) Hooks() domain.LifecycleHooks {
	state := func(_ context.Context, e *domain.StateEvent) {
		sm.Broadcast(string(e.Type), e)
	}
	return domain.LifecycleHooks{
		OnStateEnter:   state,
		OnStateExit:    state,
		OnEventIgnored: state,
		OnTimeout:      state,
		OnWaypoint: func(_ context.Context, e *domain.WaypointEvent) {
			sm.Broadcast("waypoint", e)
		},
	}
}
