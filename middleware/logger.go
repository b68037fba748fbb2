package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger crea el middleware de registro de peticiones HTTP.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		endTime := time.Now()
		latencyTime := endTime.Sub(startTime)

		method := c.Request.Method
		uri := c.Request.RequestURI
		status := c.Writer.Status()
		clientIP := c.ClientIP()

		fmt.Printf("[GIN] %v | %3d | %13v | %15s | %-7s %s\n",
			endTime.Format("2006/01/02 - 15:04:05"),
			status,
			latencyTime,
			clientIP,
			method,
			uri,
		)
	}
}
