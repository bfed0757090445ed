package middleware

import (
	"sync"

	"github.com/gin-gonic/gin"
)

// Serialize runs one request at a time through the handlers behind it. The
// stores are single-threaded.
func Serialize(mu *sync.Mutex) gin.HandlerFunc {
	return func(c *gin.Context) {
		mu.Lock()
		defer mu.Unlock()
		c.Next()
	}
}
