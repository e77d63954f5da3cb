// Package health runs liveness checks against the service's dependencies.
package health

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const checkTimeout = 5 * time.Second

// CheckFunc probes a dependency. A nil return means healthy.
type CheckFunc func(ctx context.Context) error

// Checker manages named health checks.
type Checker struct {
	mu     sync.RWMutex
	checks map[string]CheckFunc
	logger zerolog.Logger
}

// NewChecker creates a new health checker.
func NewChecker(logger zerolog.Logger) *Checker {
	return &Checker{
		checks: make(map[string]CheckFunc),
		logger: logger.With().Str("component", "health").Logger(),
	}
}

// Register adds a named health check.
func (c *Checker) Register(name string, fn CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[name] = fn
}

// Run executes all checks concurrently and returns the error per check
// (nil for healthy dependencies).
func (c *Checker) Run(ctx context.Context) map[string]error {
	c.mu.RLock()
	checks := make(map[string]CheckFunc, len(c.checks))
	for k, v := range c.checks {
		checks[k] = v
	}
	c.mu.RUnlock()

	results := make(map[string]error, len(checks))
	var wg sync.WaitGroup
	var mu sync.Mutex

	for name, fn := range checks {
		wg.Add(1)
		go func(n string, f CheckFunc) {
			defer wg.Done()
			checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
			defer cancel()
			err := f(checkCtx)
			if err != nil {
				c.logger.Warn().Str("check", n).Err(err).Msg("health check failed")
			}
			mu.Lock()
			results[n] = err
			mu.Unlock()
		}(name, fn)
	}

	wg.Wait()
	return results
}

// Healthy returns true if every registered check passes.
func (c *Checker) Healthy(ctx context.Context) bool {
	for _, err := range c.Run(ctx) {
		if err != nil {
			return false
		}
	}
	return true
}
