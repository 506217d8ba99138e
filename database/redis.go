package database

import (
	"context"
	"log"
	"time"

	"github.com/jtompuri/writing-contest-web-app-sub000/config"

	"github.com/redis/go-redis/v9"
)

// RDB caches finished-contest rankings. A nil client disables caching, so
// the API (and the tests) run without a Redis server.
var RDB *redis.Client

// InitRedis connects to Redis when REDIS_ADDR is configured. Failure to
// reach the server is not fatal: the cache is an optimization only.
func InitRedis() {
	if config.RedisAddr == "" {
		log.Println("REDIS_ADDR not set, ranking cache disabled")
		return
	}

	RDB = redis.NewClient(&redis.Options{
		Addr: config.RedisAddr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := RDB.Ping(ctx).Result(); err != nil {
		log.Printf("Redis unreachable at %s, ranking cache disabled: %v", config.RedisAddr, err)
		RDB = nil
		return
	}

	log.Println("Redis connection established")
}
