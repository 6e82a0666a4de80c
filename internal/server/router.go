package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/edtrack/calendar-backend/internal/handlers"
	"github.com/edtrack/calendar-backend/internal/middleware"
	"github.com/edtrack/calendar-backend/internal/sse"
)

type RouterConfig struct {
	Hub            *sse.SSEHub
	AuthMiddleware *middleware.AuthMiddleware
	ScrapeHandler  *handlers.ScrapeHandler
	ProcessHandler *handlers.ProcessHandler
	UploadHandler  *handlers.UploadHandler
	SessionHandler *handlers.SessionHandler
	SSEHandler     *handlers.SSEHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))
	router.Use(otelgin.Middleware("edtrack-calendar"))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/", handlers.ServiceInfo)
	router.GET("/healthcheck", handlers.HealthCheck)

	// ===============
	// || Protected ||
	// ===============
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())
	api.Use(middleware.AttachRequestContext(cfg.Hub))
	// Scraping
	api.POST("/scrape-calendar", cfg.ScrapeHandler.ScrapeCalendar)
	api.POST("/scrape-lessons", cfg.ScrapeHandler.ScrapeLessons)
	api.POST("/scrape-and-schedule", cfg.ScrapeHandler.ScrapeAndSchedule)
	api.POST("/curriculum-metadata", cfg.ScrapeHandler.CurriculumMetadata)
	// Processing
	api.POST("/process-data", cfg.ProcessHandler.ProcessData)
	// Uploads
	api.POST("/uploads", cfg.UploadHandler.Upload)
	// Sessions
	api.GET("/sessions", cfg.SessionHandler.List)
	api.GET("/sessions/:id", cfg.SessionHandler.Get)
	// SSE
	api.GET("/sse/stream", cfg.SSEHandler.Stream)

	return router
}
