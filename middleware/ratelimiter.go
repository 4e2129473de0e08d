package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	ginlimiter "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memory "github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimiter limits requests per client IP to perMinute.
func RateLimiter(perMinute int64) gin.HandlerFunc {
	if perMinute <= 0 {
		perMinute = 100
	}
	store := memory.NewStore()
	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  perMinute,
	}

	instance := limiter.New(store, rate)
	return ginlimiter.NewMiddleware(instance)
}
