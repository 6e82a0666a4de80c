package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edtrack/calendar-backend/internal/services"
)

type ScrapeHandler struct {
	svc services.ScrapeService
}

func NewScrapeHandler(svc services.ScrapeService) *ScrapeHandler {
	return &ScrapeHandler{svc: svc}
}

type scrapeCalendarRequest struct {
	CalendarURL string `json:"calendar_url" binding:"required"`
	SchoolID    int    `json:"school_id" binding:"required"`
}

// POST /api/scrape-calendar
func (h *ScrapeHandler) ScrapeCalendar(c *gin.Context) {
	var req scrapeCalendarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	result, err := h.svc.ScrapeCalendar(c.Request.Context(), req.CalendarURL, req.SchoolID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, fmt.Sprintf("scraped %d calendar days", len(result.Timeline)), result, map[string]any{
		"total_days":  result.Analysis.TotalDays,
		"school_days": result.Analysis.SchoolDays,
		"session_id":  result.SessionID,
	})
}

type scrapeLessonsRequest struct {
	LessonURL string `json:"lesson_url" binding:"required"`
	ClassID   int    `json:"class_id" binding:"required"`
}

// POST /api/scrape-lessons
func (h *ScrapeHandler) ScrapeLessons(c *gin.Context) {
	var req scrapeLessonsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	result, err := h.svc.ScrapeLessons(c.Request.Context(), req.LessonURL, req.ClassID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, fmt.Sprintf("scraped %d lessons", len(result.Lessons)), result, map[string]any{
		"lessons":    len(result.Lessons),
		"session_id": result.SessionID,
	})
}

type scrapeAndScheduleRequest struct {
	LessonURL   string `json:"lesson_url" binding:"required"`
	CalendarURL string `json:"calendar_url" binding:"required"`
	ClassID     int    `json:"class_id" binding:"required"`
	SchoolID    int    `json:"school_id" binding:"required"`
	HoursPerDay int    `json:"hours_per_day"`
}

// POST /api/scrape-and-schedule
func (h *ScrapeHandler) ScrapeAndSchedule(c *gin.Context) {
	var req scrapeAndScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	result, err := h.svc.ScrapeAndSchedule(c.Request.Context(),
		req.LessonURL, req.CalendarURL, req.ClassID, req.SchoolID, req.HoursPerDay)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, "scrape and schedule complete", result, result.Summary)
}

type curriculumMetadataRequest struct {
	LessonURL string `json:"lesson_url" binding:"required"`
}

// POST /api/curriculum-metadata
func (h *ScrapeHandler) CurriculumMetadata(c *gin.Context) {
	var req curriculumMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	md, err := h.svc.CurriculumMetadata(c.Request.Context(), req.LessonURL)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, "curriculum metadata", md, nil)
}
