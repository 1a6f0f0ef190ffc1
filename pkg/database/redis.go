package database

import (
	"context"
	"fmt"
	"log"
	"referee_training_backend/internal/config"

	"github.com/go-redis/redis/v8"
)

// InitRedis connects the client backing the filter-count cache. Callers
// treat a connection failure as "no cache", not as a startup error.
func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     20,
		MinIdleConns: 2,
	})

	ctx := context.Background()
	_, err := rdb.Ping(ctx).Result()
	if err != nil {
		return nil, err
	}

	log.Println("Redis connection established")
	return rdb, nil
}
