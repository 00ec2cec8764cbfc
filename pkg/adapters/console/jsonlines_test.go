package console

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLines_Events(t *testing.T) {
	in := strings.NewReader(`"hand_touched"
{"event": "hand_released"}

response_yes
{"event": "time_elapsed"}
{broken
`)
	var out bytes.Buffer
	ch, err := NewJSONLines(in, &out, nil).Events(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.Event{
		domain.EventHandTouched,
		domain.EventHandReleased,
		domain.EventResponseYes,
	}, collect(t, ch))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		var rec Record
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		assert.Equal(t, "error", rec.Type)
		assert.NotEmpty(t, rec.Error)
	}
}

func TestJSONLines_Hooks(t *testing.T) {
	var out bytes.Buffer
	j := NewJSONLines(strings.NewReader(""), &out, nil)
	hooks := j.Hooks()

	hooks.OnStateEnter(context.Background(), &domain.StateEvent{
		Timestamp: time.Now(), Type: domain.HookStateEnter, State: "steady", Epoch: 1,
	})
	hooks.OnWaypoint(context.Background(), &domain.WaypointEvent{Index: 0, NodeID: "A", Reached: true, Attempt: 1})

	dec := json.NewDecoder(&out)
	var first, second struct {
		Type string         `json:"type"`
		Data map[string]any `json:"data"`
	}
	require.NoError(t, dec.Decode(&first))
	require.NoError(t, dec.Decode(&second))

	assert.Equal(t, "state_enter", first.Type)
	assert.Equal(t, "steady", first.Data["state"])
	assert.Equal(t, "waypoint", second.Type)
	assert.Equal(t, "A", second.Data["node_id"])
}
