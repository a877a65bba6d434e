package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/skylift/workforce/internal/shared/apperror"
	"github.com/skylift/workforce/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const idempotencyLockTTL = 30 * time.Second

// Idempotency guards retried POST submissions with a short-lived Redis lock
// keyed by the Idempotency-Key header. Requests without the header pass
// through untouched.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		employeeID := c.GetString("employee_id")
		lockKey := fmt.Sprintf("idemp:%s:%s:%s:lock", c.FullPath(), employeeID, idempKey)

		// The lock expires on its own so a crashed handler cannot wedge
		// the key forever.
		isNew, err := rdb.SetNX(c.Request.Context(), lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			// Redis being down must not block submissions.
			c.Next()
			return
		}
		if !isNew {
			response.Error(c, http.StatusConflict, apperror.CodeConflict,
				"A request with this idempotency key is already being processed", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
