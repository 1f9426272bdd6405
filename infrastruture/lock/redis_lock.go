// Package lock implements the per-name planning lock on redsync.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const (
	// lock key string format
	planLockKeyFmt = "planner:lock:%s"

	defaultTTL = 30 * time.Second
)

// RedisLocker takes distributed locks keyed by trajectory name, so only
// one planning request per name runs at a time across all instances.
type RedisLocker struct {
	locker *redsync.Redsync
	ttl    time.Duration
}

// NewRedisLocker creates a RedisLocker with the provided Redis client.
// A non-positive ttl selects the default expiry.
func NewRedisLocker(client *redis.Client, ttl time.Duration) (*RedisLocker, error) {
	if client == nil {
		return nil, errors.New("redis locker requires a client")
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}

	pool := goredis.NewPool(client)
	return &RedisLocker{
		locker: redsync.New(pool),
		ttl:    ttl,
	}, nil
}

// Acquire takes the lock for the given trajectory name and returns its
// release function. The lock expires after the configured ttl even if
// never released, bounding how long a crashed planner can hold it.
func (l *RedisLocker) Acquire(ctx context.Context, name string) (func() error, error) {
	mutex := l.locker.NewMutex(
		fmt.Sprintf(planLockKeyFmt, name),
		redsync.WithExpiry(l.ttl),
		redsync.WithTries(1),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, fmt.Errorf("plan already in progress for %q: %w", name, err)
	}

	release := func() error {
		_, err := mutex.Unlock()
		return err
	}
	return release, nil
}
