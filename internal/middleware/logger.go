package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger logs one line per request: method, path with query, client, status, latency and errors
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		line := "[HTTP] %s %s %s %d %v"
		args := []interface{}{c.Request.Method, path, c.ClientIP(), c.Writer.Status(), time.Since(start)}
		if len(c.Errors) > 0 {
			line += " %s"
			args = append(args, c.Errors.String())
		}
		log.Printf(line, args...)
	}
}
