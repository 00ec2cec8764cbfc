package observability

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of one guide process.
type Metrics struct {
	StateEntries   *prometheus.CounterVec
	StateDuration  *prometheus.HistogramVec
	CurrentState   *prometheus.GaugeVec
	EventsIgnored  *prometheus.CounterVec
	Timeouts       *prometheus.CounterVec
	Waypoints      *prometheus.CounterVec
	RouteQueries   *prometheus.CounterVec
	RouteCost      prometheus.Histogram
	RemainingSteps prometheus.Gauge

	registry *prometheus.Registry

	mu      sync.Mutex
	entered map[string]time.Time
	current string
}

// NewMetrics creates the collectors on a fresh registry, including the Go
// runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		StateEntries: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wayfinder_state_entries_total",
			Help: "Total number of state entries",
		}, []string{"state"}),
		StateDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wayfinder_state_duration_seconds",
			Help:    "Time spent in a state before leaving it",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
		}, []string{"state"}),
		CurrentState: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "wayfinder_current_state",
			Help: "1 for the state the guide is in, 0 otherwise",
		}, []string{"state"}),
		EventsIgnored: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wayfinder_events_ignored_total",
			Help: "Events without a transition in the current state",
		}, []string{"state", "event"}),
		Timeouts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wayfinder_timeouts_total",
			Help: "Timeouts fired per state",
		}, []string{"state"}),
		Waypoints: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wayfinder_waypoint_attempts_total",
			Help: "Moves towards a waypoint by result",
		}, []string{"result"}),
		RouteQueries: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wayfinder_route_queries_total",
			Help: "Shortest path queries by status",
		}, []string{"status"}),
		RouteCost: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "wayfinder_route_cost",
			Help:    "Total weight of computed routes",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		RemainingSteps: f.NewGauge(prometheus.GaugeOpts{
			Name: "wayfinder_route_remaining_waypoints",
			Help: "Waypoints left before the destination",
		}),
		registry: reg,
		entered:  make(map[string]time.Time),
	}
}

// Registry exposes the registry for an HTTP handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordRoute counts a router query. cost is only observed on success.
func (m *Metrics) RecordRoute(err error, cost float64, waypoints int) {
	if err != nil {
		m.RouteQueries.WithLabelValues("error").Inc()
		return
	}
	m.RouteQueries.WithLabelValues("ok").Inc()
	m.RouteCost.Observe(cost)
	m.RemainingSteps.Set(float64(waypoints))
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStateEnter: func(_ context.Context, e *domain.StateEvent) {
			m.StateEntries.WithLabelValues(e.State).Inc()

			m.mu.Lock()
			defer m.mu.Unlock()
			if m.current != "" {
				m.CurrentState.WithLabelValues(m.current).Set(0)
			}
			m.current = e.State
			m.CurrentState.WithLabelValues(e.State).Set(1)
			m.entered[e.State] = e.Timestamp
		},
		OnStateExit: func(_ context.Context, e *domain.StateEvent) {
			m.mu.Lock()
			start, ok := m.entered[e.State]
			delete(m.entered, e.State)
			m.mu.Unlock()
			if ok {
				m.StateDuration.WithLabelValues(e.State).Observe(e.Timestamp.Sub(start).Seconds())
			}
		},
		OnEventIgnored: func(_ context.Context, e *domain.StateEvent) {
			m.EventsIgnored.WithLabelValues(e.State, string(e.Event)).Inc()
		},
		OnTimeout: func(_ context.Context, e *domain.StateEvent) {
			m.Timeouts.WithLabelValues(e.State).Inc()
		},
		OnWaypoint: func(_ context.Context, e *domain.WaypointEvent) {
			if e.Reached {
				m.Waypoints.WithLabelValues("reached").Inc()
				m.RemainingSteps.Dec()
				return
			}
			m.Waypoints.WithLabelValues("failed").Inc()
		},
	}
}
