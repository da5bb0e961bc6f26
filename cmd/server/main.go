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

	"github.com/planwise/staffing-backend/internal/config"
	"github.com/planwise/staffing-backend/internal/database"
	"github.com/planwise/staffing-backend/internal/handlers"
	"github.com/planwise/staffing-backend/internal/middleware"
	"github.com/planwise/staffing-backend/internal/services"
	"github.com/planwise/staffing-backend/internal/utils"
	"github.com/planwise/staffing-backend/pkg/jwt"
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

	logger.Info("Starting PlanWise Staffing Backend")
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

	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize repositories
	staffRepo := database.NewStaffRepository(db)
	roleRepo := database.NewRoleRepository(db)
	projectRepo := database.NewProjectRepository(db)
	roleRateRepo := database.NewRoleRateRepository(db)
	assignmentRepo := database.NewAssignmentRepository(db)
	ghostRepo := database.NewGhostStaffRepository(db)
	exerciseRepo := database.NewPlanningExerciseRepository(db)
	templateRepo := database.NewTemplateRepository(db)

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.TokenExpiry)
	allocationService := services.NewAllocationService(assignmentRepo)
	conflictService := services.NewConflictService(assignmentRepo)
	rateService := services.NewRateService(projectRepo, roleRepo, roleRateRepo, staffRepo, assignmentRepo)
	capacityService := services.NewCapacityService(exerciseRepo, staffRepo, assignmentRepo)
	suggestionService := services.NewSuggestionService(staffRepo, assignmentRepo, services.SuggestionWeights{
		AvailabilityWeight: cfg.Suggestion.AvailabilityWeight,
		SkillMatchBonus:    cfg.Suggestion.SkillMatchBonus,
		MaxSkillBonus:      cfg.Suggestion.MaxSkillBonus,
		LoadPenaltyWeight:  cfg.Suggestion.LoadPenaltyWeight,
	})
	ghostService := services.NewGhostStaffService(db, ghostRepo, assignmentRepo, projectRepo, templateRepo, logger)
	assignmentService := services.NewAssignmentService(db, assignmentRepo, logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(cfg.Auth, jwtService, logger)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService, rateService)
	staffHandler := handlers.NewStaffHandler(allocationService, conflictService)
	rateHandler := handlers.NewRateHandler(rateService)
	capacityHandler := handlers.NewCapacityHandler(capacityService)
	suggestionHandler := handlers.NewSuggestionHandler(suggestionService)
	ghostHandler := handlers.NewGhostStaffHandler(ghostService, ghostRepo)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", healthCheckHandler(db))

	v1 := router.Group("/api/v1")
	v1.POST("/auth/token", authHandler.Token)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService))
	{
		protected.POST("/assignments", assignmentHandler.Create)
		protected.POST("/assignments/validate", assignmentHandler.Validate)
		protected.GET("/assignments/:id", assignmentHandler.Get)
		protected.PUT("/assignments/:id", assignmentHandler.Update)
		protected.DELETE("/assignments/:id", assignmentHandler.Delete)
		protected.GET("/assignments/:id/cost", assignmentHandler.Cost)

		protected.GET("/staff/:id/conflicts", staffHandler.Conflicts)
		protected.GET("/staff/:id/allocations", staffHandler.Allocations)

		protected.GET("/projects/:id/roles/:role_id/rate", rateHandler.Resolve)
		protected.POST("/projects/:id/apply-template", ghostHandler.ApplyTemplate)
		protected.GET("/projects/:id/ghost-staff", ghostHandler.ListByProject)

		protected.GET("/planning-exercises/:id/plan", capacityHandler.Plan)
		protected.GET("/roles/:id/suggestions", suggestionHandler.Suggest)

		protected.POST("/ghost-staff/:id/replace", ghostHandler.Replace)
		protected.DELETE("/ghost-staff/:id", ghostHandler.Delete)
	}

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

// requestLogger logs each request with structured fields
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		client := utils.ParseUserAgent(c.Request.UserAgent())

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         c.ClientIP(),
			"latency_ms": latency.Milliseconds(),
			"browser":    client.Browser,
			"os":         client.OS,
			"is_bot":     client.IsBot,
		}
		if clientID, exists := c.Get(middleware.ClientContextKey); exists {
			fields["client_id"] = clientID
		}

		entry := logger.WithFields(fields)
		status := c.Writer.Status()
		switch {
		case status >= 500:
			entry.Error("Request completed with server error")
		case status >= 400:
			entry.Warn("Request completed with client error")
		default:
			entry.Info("Request completed successfully")
		}
	}
}

// healthCheckHandler reports service and database health
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
