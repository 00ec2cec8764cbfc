package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunProgressStoreContract runs a suite of tests to verify that a ProgressStore
// implementation adheres to the defined interface contract.
func RunProgressStoreContract(t *testing.T, store ProgressStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	sample := func(id string) *domain.Progress {
		return &domain.Progress{
			SessionID: id,
			State:     "moving",
			Route:     []string{"A", "B", "D"},
			Index:     1,
			Position:  domain.Coordinates{X: 1.5, Y: -2},
			Retries:   2,
			UpdatedAt: time.Now().UTC().Truncate(time.Second),
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		progress := sample(sessionID)

		err := store.Save(ctx, sessionID, progress)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, progress.State, loaded.State)
		assert.Equal(t, progress.Route, loaded.Route)
		assert.Equal(t, progress.Index, loaded.Index)
		assert.Equal(t, progress.Position, loaded.Position)
		assert.Equal(t, progress.Retries, loaded.Retries)
		assert.True(t, progress.UpdatedAt.Equal(loaded.UpdatedAt))
	})

	t.Run("Load returns a copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		loaded.Route[0] = "mutated"

		again, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "A", again.Route[0])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, sample(sessionID))
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		require.NoError(t, store.Save(ctx, id1, sample(id1)))
		require.NoError(t, store.Save(ctx, id2, sample(id2)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
