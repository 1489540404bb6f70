// Package circuitbreaker wraps sony/gobreaker with application defaults.
package circuitbreaker

import (
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/kdx-labs/mintdeck/internal/apperror"
)

// Config holds circuit breaker settings.
type Config struct {
	Name        string
	MaxRequests uint32        // allowed requests in half-open state
	Interval    time.Duration // counters reset cycle in closed state
	Timeout     time.Duration // open -> half-open transition delay
	MinRequests uint32        // minimum requests before tripping
	FailureRate float64       // trip when failure ratio reaches this
}

// DefaultConfig returns sensible defaults for chain RPC calls.
func DefaultConfig(name string) Config {
	return Config{
		Name:        name,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		MinRequests: 5,
		FailureRate: 0.6,
	}
}

// CircuitBreaker is a typed circuit breaker for operations returning T.
type CircuitBreaker[T any] struct {
	cb *gobreaker.CircuitBreaker[T]
}

// New creates a circuit breaker from the given config.
func New[T any](cfg Config) *CircuitBreaker[T] {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRate := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRate >= cfg.FailureRate
		},
	}

	return &CircuitBreaker[T]{
		cb: gobreaker.NewCircuitBreaker[T](settings),
	}
}

// Execute runs fn through the breaker, translating breaker states into
// application errors.
func (c *CircuitBreaker[T]) Execute(fn func() (T, error)) (T, error) {
	result, err := c.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			return result, apperror.New(apperror.CodeCircuitOpen,
				apperror.WithContext(c.cb.Name()))
		}
		if errors.Is(err, gobreaker.ErrTooManyRequests) {
			return result, apperror.New(apperror.CodeCircuitHalfOpen,
				apperror.WithContext(c.cb.Name()))
		}
		return result, err
	}
	return result, nil
}

// State returns the current breaker state.
func (c *CircuitBreaker[T]) State() gobreaker.State {
	return c.cb.State()
}
