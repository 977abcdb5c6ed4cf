package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// New connects to redis at addr and verifies the connection with a ping.
func New(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		if closeErr := client.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w (close: %w)", err, closeErr)
		}

		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}
