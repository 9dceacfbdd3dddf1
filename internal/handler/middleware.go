package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// CacheControl returns a Gin middleware that lets clients reuse successful
// responses for the staleness window. Zero disables the header. Handlers
// that answer with an error replace it with no-store.
func CacheControl(staleSecs int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if staleSecs <= 0 || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}
		c.Header("Cache-Control", "public, max-age="+strconv.Itoa(staleSecs))
		c.Next()
	}
}
