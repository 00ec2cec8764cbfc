package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metricsMiddleware struct {
	next     ports.ProgressStore
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetricsMiddleware counts and times store calls on reg.
func NewMetricsMiddleware(reg prometheus.Registerer) Middleware {
	f := promauto.With(reg)
	calls := f.NewCounterVec(prometheus.CounterOpts{
		Name: "wayfinder_store_calls_total",
		Help: "Progress store calls by operation and result",
	}, []string{"op", "result"})
	duration := f.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wayfinder_store_call_duration_seconds",
		Help:    "Progress store call latency",
		Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
	}, []string{"op"})

	return func(next ports.ProgressStore) ports.ProgressStore {
		return &metricsMiddleware{next: next, calls: calls, duration: duration}
	}
}

func (m *metricsMiddleware) observe(op string, start time.Time, err error) {
	m.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	result := "ok"
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		result = "not_found"
	case err != nil:
		result = "error"
	}
	m.calls.WithLabelValues(op, result).Inc()
}

func (m *metricsMiddleware) Save(ctx context.Context, sessionID string, p *domain.Progress) error {
	start := time.Now()
	err := m.next.Save(ctx, sessionID, p)
	m.observe("save", start, err)
	return err
}

func (m *metricsMiddleware) Load(ctx context.Context, sessionID string) (*domain.Progress, error) {
	start := time.Now()
	p, err := m.next.Load(ctx, sessionID)
	m.observe("load", start, err)
	return p, err
}

func (m *metricsMiddleware) Delete(ctx context.Context, sessionID string) error {
	start := time.Now()
	err := m.next.Delete(ctx, sessionID)
	m.observe("delete", start, err)
	return err
}

func (m *metricsMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	ids, err := m.next.List(ctx)
	m.observe("list", start, err)
	return ids, err
}
