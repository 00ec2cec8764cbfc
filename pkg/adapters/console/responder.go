package console

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// RandomResponder answers the cancel question with a coin flip after a random delay.
type RandomResponder struct {
	Min, Max time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomResponder creates a responder answering after 2 to 4 seconds.
func NewRandomResponder(seed uint64) *RandomResponder {
	return &RandomResponder{
		Min: 2 * time.Second,
		Max: 4 * time.Second,
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Await waits for the delay and answers yes or no with equal probability.
func (r *RandomResponder) Await(ctx context.Context) (domain.Event, bool) {
	r.mu.Lock()
	delay := r.Min
	if span := r.Max - r.Min; span > 0 {
		delay += time.Duration(r.rng.Int64N(int64(span) + 1))
	}
	answer := domain.EventResponseNo
	if r.rng.Float64() > 0.5 {
		answer = domain.EventResponseYes
	}
	r.mu.Unlock()

	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return "", false
	case <-t.C:
		return answer, true
	}
}
