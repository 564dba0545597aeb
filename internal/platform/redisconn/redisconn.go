package redisconn

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options are the connection details shared by the ranking backend and the
// job queue. Presence of Addr is what selects the networked backends at
// bootstrap.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Connect builds a single process-wide redis client and verifies
// reachability before any component depends on it.
func Connect(opts Options) (*redis.Client, error) {
	if opts.Addr == "" {
		return nil, errors.New("redis addr is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
