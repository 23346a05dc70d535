package costs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/forgebreaker/internal/config"
)

func TestController_PerUserRateLimit(t *testing.T) {
	c := NewController(config.CostsConfig{
		RequestsPerMinute: 1,
		Burst:             2,
	}, nil)

	require.NoError(t, c.Allow("user-a"))
	require.NoError(t, c.Allow("user-a"))

	err := c.Allow("user-a")
	var budgetErr *BudgetExceededError
	require.ErrorAs(t, err, &budgetErr)
	assert.Equal(t, "user", budgetErr.Scope)

	assert.NoError(t, c.Allow("user-b"), "limits are per user")
}

func TestController_DailyBudget(t *testing.T) {
	c := NewController(config.CostsConfig{DailyCallBudget: 2}, nil)

	require.NoError(t, c.Allow("user-a"))
	require.NoError(t, c.Allow("user-b"))

	err := c.Allow("user-c")
	var budgetErr *BudgetExceededError
	require.ErrorAs(t, err, &budgetErr)
	assert.Equal(t, "daily", budgetErr.Scope)
	assert.Equal(t, 2, budgetErr.Limit)
	assert.Contains(t, budgetErr.Error(), "daily LLM call budget")
}

func TestController_DailyBudgetResets(t *testing.T) {
	c := NewController(config.CostsConfig{DailyCallBudget: 1}, nil)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	require.NoError(t, c.Allow("user-a"))
	require.Error(t, c.Allow("user-a"))

	c.now = func() time.Time { return base.Add(24 * time.Hour) }
	assert.NoError(t, c.Allow("user-a"), "budget resets on the next day")
}

func TestController_DisabledLimits(t *testing.T) {
	c := NewController(config.CostsConfig{}, nil)
	for i := 0; i < 50; i++ {
		require.NoError(t, c.Allow("user-a"))
	}
	assert.Equal(t, -1, c.Remaining(), "disabled budget reports -1")
}

func TestController_Remaining(t *testing.T) {
	c := NewController(config.CostsConfig{DailyCallBudget: 3}, nil)
	assert.Equal(t, 3, c.Remaining())

	require.NoError(t, c.Allow("user-a"))
	assert.Equal(t, 2, c.Remaining())
}

func TestController_DefaultBurst(t *testing.T) {
	c := NewController(config.CostsConfig{RequestsPerMinute: 1}, nil)

	require.NoError(t, c.Allow("user-a"), "a rate limit without a burst still allows one call")
	require.Error(t, c.Allow("user-a"))
}
