package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CheckAdminPermissionMiddleware aborts with 401 for guests and 403 for
// non-admin accounts.
func CheckAdminPermissionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := CurrentAccount(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "not logged in",
			})
			return
		}
		if !account.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "not authorized",
			})
			return
		}
		c.Next()
	}
}
