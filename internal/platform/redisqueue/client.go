package redisqueue

import (
	"context"
	"fmt"
	"time"

	"github.com/n0secutiry/taskapi/internal/config"
	redis "github.com/redis/go-redis/v9"
)

const pingTimeout = 2 * time.Second

// NewClient connects to the Redis instance described by cfg and verifies
// the connection with PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.ResolveAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.ResolveAddr(), err)
	}
	return client, nil
}

// DeadLetterKey returns the list that receives jobs which exhausted their attempts.
func DeadLetterKey(queueKey string) string {
	return queueKey + ":dead"
}
