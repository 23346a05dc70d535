// Package costs bounds LLM usage with per-user rate limits and a global
// daily call budget. Exceeding either is a typed, recoverable error the API
// layer maps to a retry-later response; no LLM call is ever made past a
// limit.
package costs

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/phrazzld/forgebreaker/internal/config"
)

// BudgetExceededError reports a refused LLM call.
type BudgetExceededError struct {
	// Scope is "user" for a per-user rate limit or "daily" for the global
	// call budget.
	Scope string
	Limit int
}

func (e *BudgetExceededError) Error() string {
	if e.Scope == "daily" {
		return fmt.Sprintf("daily LLM call budget of %d exhausted", e.Limit)
	}
	return "request rate limit exceeded, try again shortly"
}

// Controller tracks per-user limiters and the global daily counter.
// Safe for concurrent use.
type Controller struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter

	perUser     rate.Limit
	burst       int
	dailyBudget int

	day      time.Time
	dayCalls int
	now      func() time.Time
	logger   *slog.Logger
}

// NewController creates a cost controller from configuration. Zero values
// disable the corresponding limit.
func NewController(cfg config.CostsConfig, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	burst := cfg.Burst
	if burst <= 0 && cfg.RequestsPerMinute > 0 {
		burst = 1
	}
	return &Controller{
		limiters:    make(map[string]*rate.Limiter),
		perUser:     rate.Limit(cfg.RequestsPerMinute / 60.0),
		burst:       burst,
		dailyBudget: cfg.DailyCallBudget,
		now:         time.Now,
		logger:      logger.With("component", "cost_controller"),
	}
}

// Allow reports whether a single LLM call may proceed for the user,
// consuming one unit of the user's rate allowance and of the daily budget.
// A refused call returns a *BudgetExceededError.
func (c *Controller) Allow(userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	today := c.now().UTC().Truncate(24 * time.Hour)
	if !today.Equal(c.day) {
		c.day = today
		c.dayCalls = 0
	}

	if c.dailyBudget > 0 && c.dayCalls >= c.dailyBudget {
		c.logger.Warn("daily LLM budget exhausted",
			"budget", c.dailyBudget)
		return &BudgetExceededError{Scope: "daily", Limit: c.dailyBudget}
	}

	if c.perUser > 0 {
		limiter, ok := c.limiters[userID]
		if !ok {
			limiter = rate.NewLimiter(c.perUser, c.burst)
			c.limiters[userID] = limiter
		}
		if !limiter.Allow() {
			c.logger.Info("per-user rate limit hit", "user_id", userID)
			return &BudgetExceededError{Scope: "user", Limit: c.burst}
		}
	}

	c.dayCalls++
	return nil
}

// Remaining returns how many calls are left in today's budget, or -1 when
// the budget is disabled.
func (c *Controller) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dailyBudget <= 0 {
		return -1
	}
	today := c.now().UTC().Truncate(24 * time.Hour)
	if !today.Equal(c.day) {
		return c.dailyBudget
	}
	remaining := c.dailyBudget - c.dayCalls
	if remaining < 0 {
		return 0
	}
	return remaining
}
