package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edtrack/calendar-backend/internal/services"
)

// 32 MB cap keeps scanned multi-page PDFs workable without letting a bad
// client exhaust memory.
const maxUploadBytes = 32 << 20

type UploadHandler struct {
	svc services.FileService
}

func NewUploadHandler(svc services.FileService) *UploadHandler {
	return &UploadHandler{svc: svc}
}

// POST /api/uploads — multipart form with `file`, `kind` (calendar|lessons)
// and optional school_id / class_id fields.
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "missing_file", err)
		return
	}
	if fileHeader.Size > maxUploadBytes {
		RespondError(c, http.StatusRequestEntityTooLarge, "file_too_large",
			fmt.Errorf("file exceeds %d bytes", maxUploadBytes))
		return
	}

	kind := c.PostForm("kind")
	if kind == "" {
		kind = services.UploadKindCalendar
	}
	schoolID, _ := strconv.Atoi(c.PostForm("school_id"))
	classID, _ := strconv.Atoi(c.PostForm("class_id"))

	f, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "unreadable_file", err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "unreadable_file", err)
		return
	}

	result, err := h.svc.ProcessUpload(c.Request.Context(), kind,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data, schoolID, classID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, "upload processed", result, map[string]any{
		"file_type":     result.FileType,
		"calendar_rows": len(result.CalendarRows),
		"lessons":       len(result.Lessons),
	})
}
