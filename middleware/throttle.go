package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"business-directory-api/throttle"

	"github.com/gin-gonic/gin"
)

const msgThrottled = "You have exceeded the number of allowed requests per hour."

// RateLimit counts every request for scope against the caller: the user
// id when authenticated, the client address otherwise.
func RateLimit(limiter *throttle.Limiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := "ip:" + c.ClientIP()
		if id := GetUserID(c); id != 0 {
			identity = "user:" + strconv.FormatUint(uint64(id), 10)
		}
		d, err := limiter.Allow(c.Request.Context(), scope, identity)
		if err != nil {
			slog.Error("rate limiter unavailable", "scope", scope, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if !d.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(d.RetryAfter.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": msgThrottled})
			return
		}
		c.Next()
	}
}
