package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/edtrack/calendar-backend/internal/sse"
	"github.com/edtrack/calendar-backend/internal/ssedata"
)

// AttachRequestContext gives each request an SSE message buffer and flushes
// whatever the request accumulated once the handler chain finishes, so
// progress events only reach subscribers after the request commits.
func AttachRequestContext(hub *sse.SSEHub) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := ssedata.WithSSEData(c.Request.Context())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
		if hub == nil {
			return
		}
		if data := ssedata.GetSSEData(ctx); data != nil {
			for _, msg := range data.Messages {
				hub.Broadcast(msg)
			}
		}
	}
}
