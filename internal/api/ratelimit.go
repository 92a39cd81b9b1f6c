package api

import (
	"github.com/gin-gonic/gin"
	"github.com/planora/event-management-backend/internal/pkg/logger"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	ginmiddleware "github.com/ulule/limiter/v3/drivers/middleware/gin"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
)

// NewRateLimiter builds a per-client-IP rate limiting middleware backed by
// Redis. The rate uses the limiter format, e.g. "10-M" for ten requests per
// minute. On setup failure the limiter degrades to a pass-through so a Redis
// outage cannot take auth endpoints down with it.
func NewRateLimiter(client *redis.Client, formatted, routeID string) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		logger.WithError(err).WithField("route", routeID).Warn("invalid rate format, rate limiting disabled")
		return func(c *gin.Context) { c.Next() }
	}

	store, err := redisstore.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix:   "rate_limiter:" + routeID,
		MaxRetry: 3,
	})
	if err != nil {
		logger.WithError(err).WithField("route", routeID).Warn("failed to create limiter store, rate limiting disabled")
		return func(c *gin.Context) { c.Next() }
	}

	return ginmiddleware.NewMiddleware(limiter.New(store, rate))
}
