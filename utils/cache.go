// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"slotpoll/config"

	"github.com/go-redis/redis/v8"
)

// ResultsCacheClient is the Redis client backing the poll results cache.
var ResultsCacheClient *redis.Client

// InitResultsCache initializes the Redis client for poll results caching.
func InitResultsCache() {
	ResultsCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := ResultsCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Results Cache): %v", err)
	}
}

// GetResultsCacheClient returns the Redis client for poll results caching.
func GetResultsCacheClient() *redis.Client {
	if ResultsCacheClient == nil {
		InitResultsCache()
	}
	return ResultsCacheClient
}
