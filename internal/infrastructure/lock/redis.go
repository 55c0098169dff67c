package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"mealplan/internal/shared/logger"
)

const (
	redisLockPrefix  = "lock:"
	defaultLockTTL   = 2 * time.Second
	defaultPollDelay = 10 * time.Millisecond
	releaseTimeout   = time.Second
)

// releaseScript deletes the key only while it still holds our token, so a
// holder whose TTL expired cannot release someone else's lock.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker is a SET NX PX lock shared by every instance using the same
// Redis. The TTL bounds how long a crashed holder can block others.
type RedisLocker struct {
	client    *redis.Client
	ttl       time.Duration
	pollDelay time.Duration
	logger    logger.Interface
}

func NewRedisLocker(client *redis.Client, ttl time.Duration, logger logger.Interface) *RedisLocker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &RedisLocker{
		client:    client,
		ttl:       ttl,
		pollDelay: defaultPollDelay,
		logger:    logger,
	}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := redisLockPrefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(l.pollDelay)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire redis lock %s: %w", key, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s: %v", ErrLockTimeout, key, ctx.Err())
		case <-ticker.C:
		}
	}

	return func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, l.client, []string{redisKey}, token).Err(); err != nil {
			l.logger.Warnw("failed to release redis lock", "key", key, "error", err)
		}
	}, nil
}
