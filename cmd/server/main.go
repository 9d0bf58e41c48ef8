package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kvenkat9889/latish-Offboarding-Module/internal/config"
	"github.com/kvenkat9889/latish-Offboarding-Module/internal/database"
	"github.com/kvenkat9889/latish-Offboarding-Module/internal/handlers"
	"github.com/kvenkat9889/latish-Offboarding-Module/internal/middleware"
	"github.com/kvenkat9889/latish-Offboarding-Module/internal/services"
	"github.com/kvenkat9889/latish-Offboarding-Module/internal/utils"
	"github.com/kvenkat9889/latish-Offboarding-Module/pkg/jwt"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting Offboarding Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	if err := database.EnsureSchema(db); err != nil {
		logger.Fatalf("Failed to ensure schema: %v", err)
	}
	logger.Info("Database schema ready")

	// Initialize file storage
	fileStore, err := services.NewFileStore(cfg.Upload.Dir, cfg.Upload.StagingDir, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize file store: %v", err)
	}

	// Initialize repositories
	submissionRepository := database.NewSubmissionRepository(db.DB, fileStore)
	employeeRepository := database.NewEmployeeRepository(db)
	documentRepository := database.NewDocumentRepository(db)

	// Initialize handlers
	offboardingHandler := handlers.NewOffboardingHandler(
		submissionRepository,
		employeeRepository,
		documentRepository,
		fileStore,
		cfg.Upload.MaxFileSize,
		cfg.Upload.MaxFiles,
		logger,
	)

	// Initialize Gin router
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	// CORS configuration
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	// Uploaded documents are served statically, matching the paths stored in
	// project_documents
	router.Static("/uploads", cfg.Upload.Dir)

	// HR dashboard endpoints require a session token only when auth is
	// configured; by default the service runs open
	hrGuard := func(c *gin.Context) { c.Next() }
	if cfg.Auth.Enabled() {
		jwtService := jwt.NewService(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
		authHandler := handlers.NewAuthHandler(jwtService, cfg.Auth, logger)
		router.POST("/api/auth/login", authHandler.Login)
		hrGuard = middleware.AuthMiddleware(jwtService)
		logger.Info("HR authentication enabled")
	}

	api := router.Group("/api/offboarding")
	{
		api.POST("/submit", offboardingHandler.Submit)
		api.POST("/check-duplicate", offboardingHandler.CheckDuplicate)
		api.GET("/files/:fileId", offboardingHandler.DownloadFile)

		hr := api.Group("", hrGuard)
		{
			hr.GET("/submissions", offboardingHandler.ListSubmissions)
			hr.PATCH("/submissions/:submissionId/status", offboardingHandler.UpdateStatus)
			hr.DELETE("/submissions", offboardingHandler.DeleteSubmissions)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		device := utils.ParseUserAgent(c.Request.UserAgent())

		fields := logrus.Fields{
			"status":      c.Writer.Status(),
			"method":      c.Request.Method,
			"path":        path,
			"query":       query,
			"ip":          c.ClientIP(),
			"latency_ms":  latency.Milliseconds(),
			"device_type": device.DeviceType,
			"os":          device.OS,
			"browser":     device.Browser,
		}
		if device.IsBot {
			fields["bot"] = true
		}

		entry := logger.WithFields(fields)
		switch {
		case c.Writer.Status() >= 500:
			entry.Error("Request completed")
		case c.Writer.Status() >= 400:
			entry.Warn("Request completed")
		default:
			entry.Info("Request completed")
		}
	}
}

// healthCheckHandler reports service and database health
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "database unreachable",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": version,
		})
	}
}
