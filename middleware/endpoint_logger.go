package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// EndpointCallLogger logs each HTTP request to process output: method, path,
// status and duration. There is no persisted log pipeline in this system.
func EndpointCallLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		status := c.Writer.Status()

		log.Printf("%s %s -> %d (%dms)",
			c.Request.Method, c.Request.URL.Path, status, duration.Milliseconds())
	}
}
