package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis_rate/v9"
	log "github.com/sirupsen/logrus"

	"athletrack/backend/internal/metrics"
)

type RequestRateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// RateLimit allows allowedPerMin requests per minute for each client IP on
// the named route.
func RateLimit(rateLimiter RequestRateLimiter, routeName string, allowedPerMin int, m *metrics.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%s", routeName, c.ClientIP())

		res, err := rateLimiter.Allow(c.Request.Context(), key, redis_rate.PerMinute(allowedPerMin))
		if err != nil {
			log.Errorf("rate limiter for %s: %v", routeName, err)
			abortWithError(c, http.StatusInternalServerError, "rate limit internal error")
			return
		}

		if res.Allowed > 0 {
			c.Next()
			return
		}

		if m != nil {
			m.CounterLoginsRejected.Inc()
		}
		abortWithError(c, http.StatusTooManyRequests,
			fmt.Sprintf("retry after %.0f seconds", res.RetryAfter.Seconds()))
	}
}
