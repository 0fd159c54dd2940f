package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultRedisInboxTTL = 7 * 24 * time.Hour
	redisInboxPrefix     = "notification:inbox:"
)

// RedisInbox claims orders with SETNX; a claim expires after ttl.
type RedisInbox struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisInbox(client redis.Cmdable, ttl time.Duration) *RedisInbox {
	if ttl <= 0 {
		ttl = DefaultRedisInboxTTL
	}
	return &RedisInbox{client: client, ttl: ttl}
}

func (i *RedisInbox) Claim(ctx context.Context, orderID string) (bool, error) {
	ok, err := i.client.SetNX(ctx, redisInboxPrefix+orderID, time.Now().UTC().Format(time.RFC3339), i.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claim order %s: %w", orderID, err)
	}
	return ok, nil
}

func (i *RedisInbox) Release(ctx context.Context, orderID string) error {
	if err := i.client.Del(ctx, redisInboxPrefix+orderID).Err(); err != nil {
		return fmt.Errorf("release order %s: %w", orderID, err)
	}
	return nil
}
