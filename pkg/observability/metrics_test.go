package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Hooks(t *testing.T) {
	m := NewMetrics()
	h := m.Hooks()
	ctx := context.Background()
	t0 := time.Now()

	h.OnStateEnter(ctx, &domain.StateEvent{Timestamp: t0, State: "steady"})
	h.OnStateExit(ctx, &domain.StateEvent{Timestamp: t0.Add(2 * time.Second), State: "steady"})
	h.OnStateEnter(ctx, &domain.StateEvent{Timestamp: t0.Add(2 * time.Second), State: "moving"})
	h.OnEventIgnored(ctx, &domain.StateEvent{State: "moving", Event: domain.EventResponseYes})
	h.OnTimeout(ctx, &domain.StateEvent{State: "hold"})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.StateEntries.WithLabelValues("steady")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.CurrentState.WithLabelValues("steady")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CurrentState.WithLabelValues("moving")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsIgnored.WithLabelValues("moving", "response_yes")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Timeouts.WithLabelValues("hold")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.StateDuration))
}

func TestMetrics_Route(t *testing.T) {
	m := NewMetrics()
	h := m.Hooks()

	m.RecordRoute(nil, 3, 3)
	m.RecordRoute(errors.New("unreachable"), 0, 0)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RouteQueries.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RouteQueries.WithLabelValues("error")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.RemainingSteps))

	h.OnWaypoint(context.Background(), &domain.WaypointEvent{Reached: true})
	h.OnWaypoint(context.Background(), &domain.WaypointEvent{Reached: false})
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RemainingSteps))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Waypoints.WithLabelValues("failed")))
}

func TestMetrics_RegistryGathers(t *testing.T) {
	m := NewMetrics()
	m.Hooks().OnStateEnter(context.Background(), &domain.StateEvent{Timestamp: time.Now(), State: "quit"})

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "wayfinder_state_entries_total")
	assert.Contains(t, names, "go_goroutines")
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	h := LoggingHooks(logging.NewWithWriter(&buf, logging.FormatText, slog.LevelInfo))
	ctx := context.Background()

	h.OnStateEnter(ctx, &domain.StateEvent{State: "ask", Event: domain.EventHandReleased})
	h.OnStateExit(ctx, &domain.StateEvent{State: "ask"})
	h.OnWaypoint(ctx, &domain.WaypointEvent{Index: 1, NodeID: "B", Attempt: 2})

	out := buf.String()
	assert.Contains(t, out, "state_enter")
	assert.Contains(t, out, "trigger=hand_released")
	assert.NotContains(t, out, "state_exit", "exit is logged at debug")
	assert.Contains(t, out, "waypoint_failed")
}
