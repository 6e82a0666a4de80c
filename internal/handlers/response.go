package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edtrack/calendar-backend/internal/calendar"
)

// APIResponse is the success envelope every endpoint returns.
type APIResponse struct {
	Status  string         `json:"status"`
	Message string         `json:"message"`
	Data    any            `json:"data,omitempty"`
	Summary map[string]any `json:"summary,omitempty"`
}

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, message string, data any, summary map[string]any) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Message: message,
		Data:    data,
		Summary: summary,
	})
}

// respondServiceError maps bad-input errors from the scheduling core to 400;
// everything else is a 500.
func respondServiceError(c *gin.Context, err error) {
	if calendar.IsInputError(err) {
		RespondError(c, http.StatusBadRequest, "invalid_input", err)
		return
	}
	RespondError(c, http.StatusInternalServerError, "internal", err)
}
