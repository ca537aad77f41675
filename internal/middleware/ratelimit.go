package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const rateLimitMessage = "Too many requests from this IP, please try again in an hour!"

// RedisRateLimiterStore is a fixed-window echo RateLimiterStore shared by all
// instances through Redis.
type RedisRateLimiterStore struct {
	client  *redis.Client
	limit   int64
	window  time.Duration
	timeout time.Duration
	prefix  string
	logger  *zap.Logger
}

var _ echomw.RateLimiterStore = (*RedisRateLimiterStore)(nil)

func NewRedisRateLimiterStore(client *redis.Client, limit int, window time.Duration, logger *zap.Logger) *RedisRateLimiterStore {
	return &RedisRateLimiterStore{
		client:  client,
		limit:   int64(limit),
		window:  window,
		timeout: 500 * time.Millisecond,
		prefix:  "rl:api",
		logger:  logger,
	}
}

// Allow counts a request for identifier and reports whether it is within the
// limit. Requests are let through while Redis is unreachable.
func (s *RedisRateLimiterStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	key := fmt.Sprintf("%s:%s", s.prefix, identifier)
	cnt, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		s.logger.Warn("rate limit store unavailable", zap.Error(err))
		return true, nil
	}
	if cnt == 1 {
		if err := s.client.Expire(ctx, key, s.window).Err(); err != nil {
			s.logger.Warn("failed to set rate limit window", zap.String("key", key), zap.Error(err))
		}
	}
	return cnt <= s.limit, nil
}

// RateLimiter limits requests per client IP to perHour. With a nil client the
// limit is tracked in process memory.
func RateLimiter(client *redis.Client, perHour int, logger *zap.Logger) echo.MiddlewareFunc {
	var store echomw.RateLimiterStore
	if client != nil {
		store = NewRedisRateLimiterStore(client, perHour, time.Hour, logger)
	} else {
		store = echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(float64(perHour) / time.Hour.Seconds()),
			Burst:     perHour,
			ExpiresIn: time.Hour,
		})
	}

	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "Unable to identify client")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, rateLimitMessage)
		},
	})
}
