package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

var startedAt = time.Now()

// Health reports liveness; there are no external dependencies to probe
// since all state is in process memory.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(startedAt).String(),
	})
}
