package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderXRequestID carries the caller-supplied correlation id, if any.
	HeaderXRequestID = "X-Request-ID"
	// ContextRequestID is the gin context key the logger reads it back from.
	ContextRequestID = "request_id"
)

// RequestID tags every request with a correlation id. An id arriving in
// the header is echoed back; otherwise a fresh uuid is minted so log
// lines for one request can be stitched together.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderXRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(ContextRequestID, rid)
		c.Header(HeaderXRequestID, rid)
		c.Next()
	}
}
