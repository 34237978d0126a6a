package providers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/selira/modguard/pkg/domain/moderation"
	"github.com/sony/gobreaker"
)

type breakerProvider struct {
	inner   Provider
	breaker *gobreaker.CircuitBreaker
}

// WithCircuitBreaker guards a provider with a circuit breaker named after it.
// An open breaker surfaces as an infrastructure error for that provider,
// which feeds the orchestrator's fail-open path instead of hammering a
// failing backend.
func WithCircuitBreaker(p Provider, timeout time.Duration, maxFailures uint32) Provider {
	settings := gobreaker.Settings{
		Name:        p.Name(),
		MaxRequests: 5,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
	}
	return &breakerProvider{
		inner:   p,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

func (p *breakerProvider) Name() string {
	return p.inner.Name()
}

func (p *breakerProvider) Classify(ctx context.Context, text string) (*moderation.Decision, error) {
	result, err := p.breaker.Execute(func() (interface{}, error) {
		return p.inner.Classify(ctx, text)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, moderation.NewInfraError(p.inner.Name(), err)
		}
		return nil, fmt.Errorf("%s: %w", p.inner.Name(), err)
	}

	decision, ok := result.(*moderation.Decision)
	if !ok {
		return nil, moderation.NewInfraError(p.inner.Name(), fmt.Errorf("unexpected result type %T", result))
	}
	return decision, nil
}
