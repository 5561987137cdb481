package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
)

// requestLogger emits one debug line per request. The websocket route
// is skipped; its connection outlives any useful latency measurement.
func (h *Handler) requestLogger(c *gin.Context) {
	if h.log == nil || c.FullPath() == "/ws" {
		c.Next()
		return
	}

	start := time.Now()
	c.Next()

	h.log.Debugw("http request",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"status", c.Writer.Status(),
		"duration", time.Since(start),
	)
}
