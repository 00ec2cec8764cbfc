package ports_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
)

// jsonStore keeps serialized progress, like a remote backend would.
type jsonStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newJSONStore() *jsonStore {
	return &jsonStore{data: make(map[string][]byte)}
}

func (m *jsonStore) Save(_ context.Context, sessionID string, p *domain.Progress) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[sessionID] = raw
	return nil
}

func (m *jsonStore) Load(_ context.Context, sessionID string) (*domain.Progress, error) {
	m.mu.Lock()
	raw, ok := m.data[sessionID]
	m.mu.Unlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	var p domain.Progress
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (m *jsonStore) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, sessionID)
	return nil
}

func (m *jsonStore) List(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.data))
	for id := range m.data {
		ids = append(ids, id)
	}
	return ids, nil
}

func TestProgressStore_Contract(t *testing.T) {
	// The contract itself is exercised against a serializing reference store.
	ports.RunProgressStoreContract(t, newJSONStore())
}
