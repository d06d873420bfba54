package middlewares

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"tipjar/internal/lib/logger/sl"

	"github.com/gin-gonic/gin"
)

type RateLimiter interface {
	Allow(ctx context.Context, scope, subject string, limit int, window time.Duration) (bool, int, error)
}

type RateLimitMiddleware struct {
	log     *slog.Logger
	limiter RateLimiter
	scope   string
	limit   int
	window  time.Duration
}

func NewRateLimitMiddleware(log *slog.Logger, limiter RateLimiter, scope string, limit int, window time.Duration) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		log:     log,
		limiter: limiter,
		scope:   scope,
		limit:   limit,
		window:  window,
	}
}

// Handle limits requests per client IP. A limiter failure lets the request through.
func (m *RateLimitMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil || m.limiter == nil || m.limit <= 0 {
			c.Next()
			return
		}

		allowed, retryAfter, err := m.limiter.Allow(c.Request.Context(), m.scope, c.ClientIP(), m.limit, m.window)
		if err != nil {
			m.log.Warn("rate limiter unavailable", slog.String("scope", m.scope), sl.Err(err))
			c.Next()
			return
		}

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   ErrRateLimited.Error(),
			})
			return
		}

		c.Next()
	}
}
