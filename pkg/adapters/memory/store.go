package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// Store implements ports.ProgressStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Progress
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Progress),
	}
}

func clone(p *domain.Progress) *domain.Progress {
	c := *p
	c.Route = slices.Clone(p.Route)
	return &c
}

// Save persists the progress in memory.
func (s *Store) Save(ctx context.Context, sessionID string, progress *domain.Progress) error {
	// Copy to ensure isolation, similar to serialization
	copied := clone(progress)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = copied
	return nil
}

// Load retrieves the progress from memory.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.Progress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	progress, ok := s.data[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	// Copy on read so the caller can't mutate the stored progress
	return clone(progress), nil
}

// Delete removes the progress.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// List returns the stored sessions in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]string, 0, len(s.data))
	for id := range s.data {
		sessions = append(sessions, id)
	}
	slices.Sort(sessions)
	return sessions, nil
}
