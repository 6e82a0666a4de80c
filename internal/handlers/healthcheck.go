package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// ServiceInfo answers GET / with what this service is and where its
// endpoints live.
func ServiceInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "edtrack-calendar",
		"endpoints": []string{
			"POST /api/scrape-calendar",
			"POST /api/scrape-lessons",
			"POST /api/scrape-and-schedule",
			"POST /api/curriculum-metadata",
			"POST /api/process-data",
			"POST /api/uploads",
			"GET /api/sessions",
			"GET /api/sessions/:id",
			"GET /api/sse/stream",
		},
	})
}
