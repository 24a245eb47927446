package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	rateLimitPeriod = 1 * time.Minute
	rateLimitCount  = 30 // 1分あたりの書き込み回数
)

// RateLimiter はIPごとの書き込み回数をredisで数える。
// redisが無い/落ちている場合は通す（可用性優先）。
func RateLimiter(rdb *redis.Client, logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rdb == nil {
				return next(c)
			}

			ctx := c.Request().Context()
			key := "rate_limit:" + c.RealIP()

			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				logger.Warn().Err(err).Msg("rate limiter unavailable")
				return next(c)
			}

			//keyを新規作成したときだけTTLを設定
			if count == 1 {
				rdb.Expire(ctx, key, rateLimitPeriod)
			}

			if count > rateLimitCount {
				return c.JSON(http.StatusTooManyRequests, errorJSON("too many requests"))
			}

			return next(c)
		}
	}
}
