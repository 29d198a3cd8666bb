package engine

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLedger is the shared ledger that makes the server sweep the single
// dispatch authority across every worker and display device of a mosque:
// SETNX gives the cross-process exactly-once that an in-memory set cannot.
type RedisLedger struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLedger(client *redis.Client) *RedisLedger {
	return &RedisLedger{client: client, ttl: 48 * time.Hour}
}

func (l *RedisLedger) MarkIfAbsent(ctx context.Context, key string) (bool, error) {
	return l.client.SetNX(ctx, "notified:"+key, 1, l.ttl).Result()
}

// Purge is a no-op: the per-key TTL already bounds retention.
func (l *RedisLedger) Purge(time.Time) {}
