package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit caps requests per minute on a route group. The AI-backed
// endpoints (chat, voice) proxy paid upstream calls, so they get a tighter
// budget than the CRUD surface.
func RateLimit(perMinute int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), perMinute)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{
					"code":    "RATE_LIMITED",
					"message": "Too many requests, please try again shortly",
				},
			})
			return
		}
		c.Next()
	}
}
