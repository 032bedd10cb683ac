package resilience

import (
	"errors"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/riskibarqy/league-sync/internal/platform/logging"
)

// ErrCircuitOpen is returned when the breaker rejects a call without running it.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// Breaker wraps a gobreaker instance. A disabled breaker runs every call.
// It never retries: a rejected or failed call is returned to the caller as is.
type Breaker[T any] struct {
	cb *gobreaker.CircuitBreaker[T]
}

// NewBreaker builds a breaker that trips after FailureThreshold consecutive
// failures for which isFailure returns true. Other errors count as successes.
func NewBreaker[T any](name string, cfg CircuitBreakerConfig, isFailure func(error) bool, logger *logging.Logger) *Breaker[T] {
	if !cfg.Enabled {
		return &Breaker[T]{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	cfg = NormalizeCircuitBreakerConfig(cfg)

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: uint32(cfg.HalfOpenMaxReq),
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(cfg.FailureThreshold)
		},
		IsSuccessful: func(err error) bool {
			if err == nil || isFailure == nil {
				return err == nil
			}
			return !isFailure(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	}
	return &Breaker[T]{cb: gobreaker.NewCircuitBreaker[T](settings)}
}

func (b *Breaker[T]) Execute(fn func() (T, error)) (T, error) {
	if b == nil || b.cb == nil {
		return fn()
	}
	out, err := b.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		var zero T
		return zero, errors.Join(ErrCircuitOpen, err)
	}
	return out, err
}

// State reports "disabled" when the breaker is off.
func (b *Breaker[T]) State() string {
	if b == nil || b.cb == nil {
		return "disabled"
	}
	return b.cb.State().String()
}
