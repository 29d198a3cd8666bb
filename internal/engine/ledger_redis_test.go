package engine

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// redisLedgerClient connects to the instance named by TEST_REDIS_ADDRESS,
// or skips the test when none is reachable.
func redisLedgerClient(t *testing.T) *goredis.Client {
	addr := os.Getenv("TEST_REDIS_ADDRESS")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDRESS not set, skipping redis ledger test")
	}
	client := goredis.NewClient(&goredis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis not reachable, skipping test: %v", err)
	}
	return client
}

func TestRedisLedger_MarkIfAbsent(t *testing.T) {
	client := redisLedgerClient(t)
	defer client.Close()

	l := NewRedisLedger(client)
	key := fmt.Sprintf("test|Dzuhur|%d", time.Now().UnixNano())
	defer client.Del(context.Background(), "notified:"+key)

	first, err := l.MarkIfAbsent(context.Background(), key)
	assert.NoError(t, err)
	assert.True(t, first)

	second, err := l.MarkIfAbsent(context.Background(), key)
	assert.NoError(t, err)
	assert.False(t, second)

	ttl, err := client.TTL(context.Background(), "notified:"+key).Result()
	assert.NoError(t, err)
	assert.Greater(t, ttl, 47*time.Hour)
}
