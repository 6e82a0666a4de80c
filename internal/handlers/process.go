package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edtrack/calendar-backend/internal/calendar"
	"github.com/edtrack/calendar-backend/internal/services"
)

type ProcessHandler struct {
	svc services.ProcessingService
}

func NewProcessHandler(svc services.ProcessingService) *ProcessHandler {
	return &ProcessHandler{svc: svc}
}

type processDataRequest struct {
	CalendarData []calendar.RawRow `json:"calendar_data" binding:"required"`
	LessonData   []calendar.Lesson `json:"lesson_data" binding:"required"`
	SchoolID     int               `json:"school_id" binding:"required"`
	ClassID      int               `json:"class_id"`
	HoursPerDay  int               `json:"hours_per_day"`
	CalendarName string            `json:"calendar_name"`
	Persist      bool              `json:"persist"`
}

// POST /api/process-data runs the full pipeline on data the caller already
// has in hand (exported rows, prior scrape output).
func (h *ProcessHandler) ProcessData(c *gin.Context) {
	var req processDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	result, err := h.svc.Process(c.Request.Context(), services.ProcessRequest{
		CalendarRows: req.CalendarData,
		Lessons:      req.LessonData,
		SchoolID:     req.SchoolID,
		ClassID:      req.ClassID,
		HoursPerDay:  req.HoursPerDay,
		CalendarName: req.CalendarName,
		Persist:      req.Persist,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, "processing complete", result, result.Summary)
}
