package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edtrack/calendar-backend/internal/repos"
)

type SessionHandler struct {
	sessionRepo repos.ScrapeSessionRepo
}

func NewSessionHandler(sessionRepo repos.ScrapeSessionRepo) *SessionHandler {
	return &SessionHandler{sessionRepo: sessionRepo}
}

// GET /api/sessions
func (h *SessionHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	sessions, err := h.sessionRepo.List(c.Request.Context(), nil, limit)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "internal", err)
		return
	}
	RespondOK(c, "scrape sessions", sessions, map[string]any{"count": len(sessions)})
}

// GET /api/sessions/:id
func (h *SessionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	session, err := h.sessionRepo.GetByID(c.Request.Context(), nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			RespondError(c, http.StatusNotFound, "not_found", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "internal", err)
		return
	}
	RespondOK(c, "scrape session", session, nil)
}
