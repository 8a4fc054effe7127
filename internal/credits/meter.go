package credits

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hstraker/deal-sourcing-saas-sub001/internal/logger"
)

// keyPrefix namespaces the monthly counters in Redis.
const keyPrefix = "credits:"

// counterTTL keeps old month counters around long enough for reporting,
// then lets them expire.
const counterTTL = 90 * 24 * time.Hour

// Meter tracks metered provider usage against a fixed monthly budget.
// The counter key embeds the month, so the budget resets naturally at
// month rollover.
type Meter struct {
	rdb    *redis.Client
	budget int
	log    *logger.Logger
}

// NewMeter creates a credit meter over an existing Redis connection.
// A budget of 0 disables budget warnings but still counts usage.
func NewMeter(rdb *redis.Client, budget int, log *logger.Logger) *Meter {
	return &Meter{rdb: rdb, budget: budget, log: log}
}

func monthKey(now time.Time) string {
	return keyPrefix + now.UTC().Format("2006-01")
}

// Record adds consumed credits to the current month's counter and
// returns the new total. Metering failures are logged, not propagated:
// losing a count must not fail a calculation that already happened.
func (m *Meter) Record(ctx context.Context, used int) int64 {
	if used <= 0 {
		return 0
	}

	key := monthKey(time.Now())
	total, err := m.rdb.IncrBy(ctx, key, int64(used)).Result()
	if err != nil {
		m.log.Error("Failed to record credit usage", err, map[string]interface{}{
			"key":  key,
			"used": used,
		})
		return 0
	}
	// Expiry is best effort; the key is re-extended on every write.
	m.rdb.Expire(ctx, key, counterTTL)

	return total
}

// UsedThisMonth returns the current month's consumed credits.
func (m *Meter) UsedThisMonth(ctx context.Context) (int64, error) {
	used, err := m.rdb.Get(ctx, monthKey(time.Now())).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read credit usage: %w", err)
	}
	return used, nil
}

// Budget returns the configured monthly credit budget.
func (m *Meter) Budget() int {
	return m.budget
}
