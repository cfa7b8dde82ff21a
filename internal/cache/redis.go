package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/talentbridge/jobboard/internal/config"
)

// NewRedisClient opens the client backing the session store.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func Ping(ctx context.Context, c *redis.Client) error {
	return c.Ping(ctx).Err()
}
