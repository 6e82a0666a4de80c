package main

import (
	"context"
	"fmt"
	"os"

	"github.com/edtrack/calendar-backend/internal/clients/gcp"
	redisclient "github.com/edtrack/calendar-backend/internal/clients/redis"
	"github.com/edtrack/calendar-backend/internal/db"
	"github.com/edtrack/calendar-backend/internal/handlers"
	"github.com/edtrack/calendar-backend/internal/ingestion"
	"github.com/edtrack/calendar-backend/internal/logger"
	"github.com/edtrack/calendar-backend/internal/middleware"
	"github.com/edtrack/calendar-backend/internal/observability"
	"github.com/edtrack/calendar-backend/internal/repos"
	"github.com/edtrack/calendar-backend/internal/server"
	"github.com/edtrack/calendar-backend/internal/services"
	"github.com/edtrack/calendar-backend/internal/sse"
	"github.com/edtrack/calendar-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	scrapeConfigPath := utils.GetEnv("SCRAPE_CONFIG_PATH", "", log)

	// Tracing
	ctx := context.Background()
	shutdownOTel := observability.InitOTel(ctx, log, observability.OtelConfig{})
	defer shutdownOTel(context.Background())

	// Postgres
	databaseService, err := db.NewDatabaseService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = databaseService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := databaseService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	calendarRepo := repos.NewCalendarRepo(thePG, log)
	lessonRepo := repos.NewLessonRepo(thePG, log)
	targetRepo := repos.NewLearningTargetRepo(thePG, log)
	lessonTargetRepo := repos.NewLessonTargetRepo(thePG, log)
	sessionRepo := repos.NewScrapeSessionRepo(thePG, log)
	sourceRepo := repos.NewCurriculumSourceRepo(thePG, log)
	sourceFileRepo := repos.NewSourceFileRepo(thePG, log)

	// SSE
	log.Info("Setting up SSE hub now...")
	sseHub := sse.NewSSEHub(log)
	sseBus, err := redisclient.NewSSEBus(log)
	if err != nil {
		log.Warn("Could not init Redis SSE bus, events stay in-process", "error", err)
		sseBus = nil
	} else {
		if err := sseBus.StartForwarder(ctx, sseHub.Broadcast); err != nil {
			log.Warn("Could not start SSE forwarder", "error", err)
		}
	}

	// GCP clients
	docClient, err := gcp.NewDocument(log)
	if err != nil {
		log.Warn("Could not init Document AI client, scanned PDF OCR disabled", "error", err)
		docClient = nil
	}
	visionClient, err := gcp.NewVision(log)
	if err != nil {
		log.Warn("Could not init Vision client, image OCR disabled", "error", err)
		visionClient = nil
	}
	bucketService, err := gcp.NewBucketService(log)
	if err != nil {
		log.Warn("Could not init BucketService, uploads stay local", "error", err)
		bucketService = nil
	}

	// Ingestion
	scrapeCfg := ingestion.DefaultScrapeConfig()
	if scrapeConfigPath != "" {
		scrapeCfg, err = ingestion.LoadScrapeConfig(scrapeConfigPath)
		if err != nil {
			log.Error("Could not load scrape config", "path", scrapeConfigPath, "error", err)
			os.Exit(1)
		}
	}
	scraper := ingestion.NewScraper(log, scrapeCfg)
	extractor := ingestion.NewExtractor(log, docClient, visionClient, scrapeCfg)

	// Services
	log.Info("Setting up Services from main...")
	notifier := services.NewProgressNotifier(log, sseHub, sseBus)
	processingService := services.NewProcessingService(thePG, log, calendarRepo, lessonRepo, targetRepo, lessonTargetRepo, notifier)
	scrapeService := services.NewScrapeService(log, scraper, processingService, sessionRepo, sourceRepo, notifier)
	fileService := services.NewFileService(log, extractor, bucketService, sourceFileRepo)
	authService := services.NewAuthService(log, jwtSecretKey)

	// Handlers
	log.Info("Setting up handlers from main...")
	scrapeHandler := handlers.NewScrapeHandler(scrapeService)
	processHandler := handlers.NewProcessHandler(processingService)
	uploadHandler := handlers.NewUploadHandler(fileService)
	sessionHandler := handlers.NewSessionHandler(sessionRepo)
	sseHandler := handlers.NewSSEHandler(sseHub)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		Hub:            sseHub,
		AuthMiddleware: authMiddleware,
		ScrapeHandler:  scrapeHandler,
		ProcessHandler: processHandler,
		UploadHandler:  uploadHandler,
		SessionHandler: sessionHandler,
		SSEHandler:     sseHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Warn("Server failed", "error", err)
	}
}
