package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/edtrack/calendar-backend/internal/requestdata"
	"github.com/edtrack/calendar-backend/internal/sse"
)

type SSEHandler struct {
	hub *sse.SSEHub
}

func NewSSEHandler(hub *sse.SSEHub) *SSEHandler {
	return &SSEHandler{hub: hub}
}

// GET /api/sse/stream
func (h *SSEHandler) Stream(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	client := h.hub.NewSSEClient(rd.UserID)
	defer h.hub.CloseClient(client)

	if sessionID := c.Query("session_id"); sessionID != "" {
		id, err := uuid.Parse(sessionID)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_id", err)
			return
		}
		h.hub.AddChannel(client, sse.SessionChannel(id))
	}
	if channel := c.Query("channel"); channel != "" {
		h.hub.AddChannel(client, channel)
	}

	h.hub.ServeHTTP(c.Writer, c.Request, client)
}
