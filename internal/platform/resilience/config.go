package resilience

import (
	"fmt"
	"time"
)

// CircuitBreakerConfig is the env-facing shape of a breaker guarding one
// report source. FailureThreshold counts consecutive failed page requests.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

// DefaultCircuitBreakerConfig trips after five failed pages in a row and
// retries the source after 30s.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		OpenTimeout:      30 * time.Second,
		HalfOpenMaxReq:   1,
	}
}

// Validate reports the first setting that NormalizeCircuitBreakerConfig would
// replace. prefix names the env group in the error.
func (c CircuitBreakerConfig) Validate(prefix string) error {
	switch {
	case c.FailureThreshold < 1:
		return fmt.Errorf("%s_FAILURE_COUNT must be >= 1, got %d", prefix, c.FailureThreshold)
	case c.OpenTimeout <= 0:
		return fmt.Errorf("%s_OPEN_TIMEOUT must be positive, got %s", prefix, c.OpenTimeout)
	case c.HalfOpenMaxReq < 1:
		return fmt.Errorf("%s_HALF_OPEN_MAX_REQ must be >= 1, got %d", prefix, c.HalfOpenMaxReq)
	}
	return nil
}

func NormalizeCircuitBreakerConfig(cfg CircuitBreakerConfig) CircuitBreakerConfig {
	defaults := DefaultCircuitBreakerConfig()
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = defaults.FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaults.OpenTimeout
	}
	if cfg.HalfOpenMaxReq < 1 {
		cfg.HalfOpenMaxReq = defaults.HalfOpenMaxReq
	}
	return cfg
}
