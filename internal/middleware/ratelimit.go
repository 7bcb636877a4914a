package middleware

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// RateLimit allows each authenticated user limit requests per window for the
// named action. Counters live in redis; when redis fails the request is let
// through.
func RateLimit(rdb *redis.Client, name string, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if rdb == nil || user == nil {
			return c.Next()
		}

		ctx := c.UserContext()
		key := fmt.Sprintf("ratelimit:%s:%s", name, user.ID)

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.Printf("ratelimit %s: %v", key, err)
			return c.Next()
		}
		if count == 1 {
			if err := rdb.Expire(ctx, key, window).Err(); err != nil {
				log.Printf("ratelimit %s: expire: %v", key, err)
			}
		}

		if count > int64(limit) {
			if ttl, err := rdb.TTL(ctx, key).Result(); err == nil && ttl > 0 {
				c.Set(fiber.HeaderRetryAfter, fmt.Sprintf("%d", int(ttl.Seconds())))
			}
			return NewError(fiber.StatusTooManyRequests, "Too many requests, please try again later")
		}

		return c.Next()
	}
}
