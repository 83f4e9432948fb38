package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const UserIDHeader = "X-User-ID"

// UserIdentity exposes the caller id forwarded by the upstream auth layer
// as "userId" in the gin context. Requests without one stay anonymous.
func UserIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := strings.TrimSpace(c.GetHeader(UserIDHeader)); id != "" {
			c.Set("userId", id)
		}
		c.Next()
	}
}
