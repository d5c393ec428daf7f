// Package ratelimit enforces per-campaign daily contact limits in redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	redis "github.com/redis/go-redis/v9"
)

// DailyLimiter counts sends per campaign per UTC day. A nil limiter or a
// limiter without a redis client allows everything.
type DailyLimiter struct {
	client *redis.Client
}

func NewDailyLimiter(client *redis.Client) *DailyLimiter {
	if client == nil {
		return nil
	}
	return &DailyLimiter{client: client}
}

// Allow consumes one send slot for the campaign's current UTC day. The key
// expires two days out so counters clean themselves up.
func (l *DailyLimiter) Allow(ctx context.Context, campaignID snowflake.ID, limit int) (bool, error) {
	if l == nil || l.client == nil || limit <= 0 {
		return true, nil
	}

	key := dayKey(campaignID)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, 48*time.Hour).Err(); err != nil {
			return false, err
		}
	}

	if count > int64(limit) {
		// Give the slot back so a later retry within the limit still works.
		_ = l.client.Decr(ctx, key).Err()
		return false, nil
	}
	return true, nil
}

// Refund returns a consumed slot after a send that failed to commit.
func (l *DailyLimiter) Refund(ctx context.Context, campaignID snowflake.ID) {
	if l == nil || l.client == nil {
		return
	}
	_ = l.client.Decr(ctx, dayKey(campaignID)).Err()
}

func dayKey(campaignID snowflake.ID) string {
	return fmt.Sprintf("reachway:contact:%s:%s", campaignID.String(), time.Now().UTC().Format("20060102"))
}
