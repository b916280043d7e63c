package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
)

const connectTimeout = 30 * time.Second

// New - connects to redis, retrying the ping with exponential backoff while the server comes up.
func New(ctx context.Context, addr string) (*redis.Client, error) {
	conn := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = connectTimeout

	err := backoff.Retry(func() error {
		return conn.Ping(ctx).Err()
	}, backoff.WithContext(policy, ctx))
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return conn, nil
}
