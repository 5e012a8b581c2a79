package resilience

import (
	"errors"

	"github.com/sony/gobreaker"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// CircuitBreaker protects a dependency. Only errors accepted by the failure
// classifier count towards tripping; everything else is a success.
type CircuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
	enabled bool
}

func NewCircuitBreaker(name string, cfg CircuitBreakerConfig, isFailure func(error) bool) *CircuitBreaker {
	cfg = NormalizeCircuitBreakerConfig(cfg)
	if isFailure == nil {
		isFailure = func(err error) bool { return err != nil }
	}

	threshold := uint32(cfg.FailureThreshold)
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: uint32(cfg.HalfOpenMaxReq),
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !isFailure(err)
		},
	}

	return &CircuitBreaker{
		breaker: gobreaker.NewCircuitBreaker(settings),
		enabled: cfg.Enabled,
	}
}

// Execute runs fn through the breaker. A rejected call returns ErrCircuitOpen.
func (b *CircuitBreaker) Execute(fn func() (any, error)) (any, error) {
	if b == nil || !b.enabled {
		return fn()
	}

	out, err := b.breaker.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, ErrCircuitOpen
	}
	return out, err
}

func (b *CircuitBreaker) State() CircuitState {
	if b == nil || !b.enabled {
		return CircuitStateClosed
	}

	switch b.breaker.State() {
	case gobreaker.StateOpen:
		return CircuitStateOpen
	case gobreaker.StateHalfOpen:
		return CircuitStateHalfOpen
	default:
		return CircuitStateClosed
	}
}
