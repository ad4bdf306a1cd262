// Package synclock provides a short-lived per-account lease in Redis so two
// overlapping requests (e.g. two browser tabs) don't refresh the same account
// at once. Refresh tokens are single-use, so a doubled refresh would rotate
// the stored token out from under the second request. The lease is an
// optimization; the storage-layer unique constraints remain authoritative.
package synclock

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/growthlens/server/internal/logger"
)

const (
	keyAccountLock = "synclock:account:%s"

	// long enough to cover a slow platform API call, short enough that a
	// crashed holder doesn't block refreshes for long
	defaultLeaseTTL = 60 * time.Second
)

// Locker hands out per-account refresh leases
type Locker struct {
	client *redis.Client
	ttl    time.Duration
}

// creates a locker with a Redis connection
func NewLocker(redisURL string) (*Locker, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	// test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("connected to redis")

	return &Locker{
		client: client,
		ttl:    defaultLeaseTTL,
	}, nil
}

// closes the Redis connection
func (l *Locker) Close() error {
	return l.client.Close()
}

// tries to take the refresh lease for an account.
// returns false when another request already holds it.
func (l *Locker) Acquire(ctx context.Context, accountID string) (bool, error) {
	key := fmt.Sprintf(keyAccountLock, accountID)

	ok, err := l.client.SetNX(ctx, key, 1, l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire sync lock: %w", err)
	}

	return ok, nil
}

// releases the refresh lease for an account
func (l *Locker) Release(ctx context.Context, accountID string) {
	key := fmt.Sprintf(keyAccountLock, accountID)

	if err := l.client.Del(ctx, key).Err(); err != nil {
		// the lease expires on its own, losing the delete only delays the next refresh
		logger.Warn("failed to release sync lock", "account_id", accountID, "error", err)
	}
}
