package server

import (
	"time"

	"github.com/gin-gonic/gin"
)

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		s.logger.Info("%3d | %8v | %-7s %s",
			c.Writer.Status(),
			time.Since(start),
			c.Request.Method,
			path)
	}
}
