package repository

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects to the store backing the config cache, sessions and
// the login rate limiter. Accepts a redis:// URL.
func InitRedis(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, err
	}

	return rdb, nil
}
