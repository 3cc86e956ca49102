package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/rohit9232/Development-of-AI-Powered-Loan-Eligibility-Advisory-System/client"
	"github.com/rohit9232/Development-of-AI-Powered-Loan-Eligibility-Advisory-System/config"
	"github.com/rohit9232/Development-of-AI-Powered-Loan-Eligibility-Advisory-System/handler"
	"github.com/rohit9232/Development-of-AI-Powered-Loan-Eligibility-Advisory-System/logging"
	"github.com/rohit9232/Development-of-AI-Powered-Loan-Eligibility-Advisory-System/service"
	"github.com/rohit9232/Development-of-AI-Powered-Loan-Eligibility-Advisory-System/storage"
	"github.com/rohit9232/Development-of-AI-Powered-Loan-Eligibility-Advisory-System/utils"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	logging.Setup(cfg.LogLevel, cfg.LogPretty)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize clients
	tesseractClient := client.NewTesseractClient(client.TesseractConfig{
		DataPath: cfg.TesseractDataPath,
		Language: cfg.TesseractLanguage,
	})

	var similarity utils.NameSimilarity
	if cfg.FuzzyMatching {
		similarity = utils.TokenSetSimilarity{}
	} else {
		log.Warn().Msg("Fuzzy name matching disabled; only exact and containment matches are accepted")
	}

	// Initialize stores
	sessionStore, assessmentStore := setupStores(ctx, cfg)

	// Initialize service layer
	textExtractor := service.NewTextExtractor(tesseractClient, cfg.OCRConcurrency, cfg.OCRTimeout)
	aadhaarService := service.NewAadhaarService(
		textExtractor,
		service.NewPDFProcessor(),
		client.NewQRDecoder(),
		utils.NewNameMatcher(similarity, utils.DefaultNameMatchThreshold),
	)
	dialogueService := service.NewDialogueService(sessionStore)

	// Initialize handler layer
	aadhaarHandler := handler.NewAadhaarHandler(aadhaarService, cfg.MaxFileSize)
	chatbotHandler := handler.NewChatbotHandler(dialogueService)
	assessmentHandler := handler.NewAssessmentHandler(aadhaarService, dialogueService, assessmentStore, cfg.MaxFileSize)

	router := gin.New()
	router.Use(gin.Recovery(), logging.GinLogger())
	router.MaxMultipartMemory = cfg.MaxFileSize * 2

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":         "healthy",
			"service":        "Loan Eligibility Advisory",
			"fuzzy_matching": cfg.FuzzyMatching,
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		aadhaar := api.Group("/aadhaar")
		{
			aadhaar.POST("/extract", aadhaarHandler.ExtractAadhaar)
			aadhaar.POST("/verify-number", aadhaarHandler.VerifyNumber)
			aadhaar.POST("/verify-name", aadhaarHandler.VerifyName)
		}

		chatbot := api.Group("/chatbot")
		{
			chatbot.POST("", chatbotHandler.Chat)
			chatbot.DELETE("/:session_id", chatbotHandler.Reset)
		}

		assessment := api.Group("/assessment")
		{
			assessment.POST("", assessmentHandler.CreateAssessment)
			assessment.GET("/:id", assessmentHandler.GetAssessment)
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.ServerPort).Msg("Starting Loan Eligibility Advisory service")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

// setupStores uses Redis and PostgreSQL when configured and falls back to
// in-memory stores otherwise.
func setupStores(ctx context.Context, cfg *config.Config) (storage.SessionStore, storage.AssessmentStore) {
	var sessionStore storage.SessionStore = storage.NewMemorySessionStore(cfg.SessionTTL)
	if cfg.RedisURL != "" {
		redisStore, err := storage.NewRedisSessionStore(ctx, cfg.RedisURL, cfg.SessionTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize Redis session store")
		}
		sessionStore = redisStore
		log.Info().Msg("Using Redis session store")
	}

	var assessmentStore storage.AssessmentStore = storage.NewMemoryAssessmentStore()
	if cfg.DatabaseURL != "" {
		pgStore, err := storage.NewPostgresAssessmentStore(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL assessment store")
		}
		assessmentStore = pgStore
		log.Info().Msg("Using PostgreSQL assessment store")
	}

	return sessionStore, assessmentStore
}
