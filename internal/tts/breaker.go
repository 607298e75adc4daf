package tts

import (
	"context"
	"fmt"

	"github.com/sony/gobreaker"
)

// BreakerProvider wraps a Provider with a circuit breaker so that a run over
// many rows stops hammering a failing speech service: after consecutive
// synthesis failures the remaining calls fail fast until the breaker
// half-opens again.
type BreakerProvider struct {
	inner   Provider
	breaker *gobreaker.CircuitBreaker
}

// NewBreakerProvider wraps the given provider with a circuit breaker that
// trips after five consecutive failures.
func NewBreakerProvider(inner Provider) *BreakerProvider {
	settings := gobreaker.Settings{
		Name: inner.Name() + "-tts",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return &BreakerProvider{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// Synthesize delegates to the wrapped provider through the breaker.
func (p *BreakerProvider) Synthesize(ctx context.Context, text string) ([]byte, error) {
	result, err := p.breaker.Execute(func() (any, error) {
		return p.inner.Synthesize(ctx, text)
	})
	if err != nil {
		return nil, err
	}

	audio, ok := result.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected synthesis result type %T", result)
	}
	return audio, nil
}

// Name returns the wrapped provider's name
func (p *BreakerProvider) Name() string {
	return p.inner.Name()
}

// IsAvailable checks the wrapped provider
func (p *BreakerProvider) IsAvailable() error {
	return p.inner.IsAvailable()
}
