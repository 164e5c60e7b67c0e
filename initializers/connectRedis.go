package initializers

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// Redis is optional. When it is nil the duplicate-submit guard on order
// creation is skipped and submissions go straight to the database.
var Redis *redis.Client

func ConnectRedis(config *Config) {
	if config.RedisUrl == "" {
		log.Println("REDIS_URL is not set, duplicate-submit guard disabled")
		return
	}

	opt, err := redis.ParseURL(config.RedisUrl)
	if err != nil {
		log.Println("Invalid REDIS_URL, duplicate-submit guard disabled:", err)
		return
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Println("Redis is unreachable, duplicate-submit guard disabled:", err)
		return
	}

	Redis = client
	log.Println("Connected successfully to Redis")
}
