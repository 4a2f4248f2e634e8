package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
)

// RequestID reuses an incoming X-Request-ID or mints a new one, and echoes
// it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// Limiter is satisfied by *ratelimit.Limiter.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, error)
}

// SearchRateLimit throttles requests carrying a non-blank q parameter per
// client IP. Plain list requests pass untouched. Limiter failures let the
// request through.
func SearchRateLimit(l Limiter, limit int64, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.TrimSpace(c.Query("q")) == "" || limit <= 0 {
			c.Next()
			return
		}

		ok, n, err := l.Allow(c.Request.Context(), "search:"+c.ClientIP(), limit, window)
		if err != nil {
			log.Printf("⚠️ Rate limiter unavailable: %v", err)
			c.Next()
			return
		}
		if !ok {
			log.Printf("Search rate limit hit for %s (count=%d, limit=%d)", c.ClientIP(), n, limit)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many searches, try again shortly"})
			return
		}
		c.Next()
	}
}
