package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	apperrors "brokersearch/server/errors"
)

// GinRateLimitMiddleware ограничивает частоту запросов общим token bucket.
// limiter == nil отключает ограничение.
func GinRateLimitMiddleware(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter != nil && !limiter.Allow() {
			c.Header("Retry-After", "1")
			HandleGinError(c, apperrors.NewTooManyRequestsError("Слишком много запросов, попробуйте позже"))
			return
		}
		c.Next()
	}
}

// NewLimiter создает limiter; perSecond <= 0 отключает ограничение
func NewLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}
