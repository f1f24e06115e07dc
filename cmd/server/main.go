package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/astralhq/cosmic-counsel/internal/cache"
	"github.com/astralhq/cosmic-counsel/internal/database"
	"github.com/astralhq/cosmic-counsel/internal/errors"
	"github.com/astralhq/cosmic-counsel/internal/monitoring"
	"github.com/astralhq/cosmic-counsel/internal/narrative"
	"github.com/astralhq/cosmic-counsel/internal/oracle"
	"github.com/astralhq/cosmic-counsel/internal/ratelimit"
	"github.com/astralhq/cosmic-counsel/internal/security"
	"github.com/astralhq/cosmic-counsel/internal/types"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Configuration from environment with defaults
	dataDir := getEnvOrDefault("DATA_DIR", "./data")
	port := getEnvOrDefault("PORT", "8080")
	redisAddr := os.Getenv("REDIS_ADDR")
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := getEnvIntOrDefault("REDIS_DB", 0)
	tunablesPath := os.Getenv("ORACLE_TUNABLES")
	ipLimitPerMin := getEnvIntOrDefault("RATE_LIMIT_PER_MIN", 60)

	// Load scoring tunables, optionally overridden from YAML
	tunables := oracle.DefaultTunables()
	if tunablesPath != "" {
		loaded, err := oracle.LoadTunables(tunablesPath)
		if err != nil {
			appErr := errors.NewConfigurationError("failed to load tunables", err)
			slog.Error("Configuration error", "error", appErr.Error(), "path", tunablesPath)
			os.Exit(1)
		}
		tunables = loaded
		slog.Info("Loaded tunables override", "path", tunablesPath)
	}

	// Initialize database and reading history service
	db, err := database.NewDB(dataDir)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	repo := database.NewRepository(db)
	readingService := database.NewReadingService(repo)

	// Redis is optional; everything degrades to in-memory
	redisClient, err := ratelimit.NewRedisClient(redisAddr, redisPassword, redisDB)
	if err != nil {
		slog.Warn("Redis unavailable, continuing with in-memory fallbacks", "error", err)
		redisClient, _ = ratelimit.NewRedisClient("", "", 0)
	}
	defer redisClient.Close()

	appMetrics := monitoring.NewMetrics()
	appLogger := monitoring.NewLogger()

	rateLimiter := ratelimit.NewRateLimiter(redisClient, ratelimit.Config{
		IPLimitPerMin:   ipLimitPerMin,
		BurstMultiplier: 2,
	}, appMetrics)

	// Narrative store follows Redis availability
	var narrativeStore narrative.Store
	if redisClient.IsEnabled() {
		narrativeStore = narrative.NewRedisStore(redisClient.GetClient())
	} else {
		narrativeStore = narrative.NewMemoryStore()
	}

	deps := &appDeps{
		engine:     oracle.NewEngine(tunables),
		tunables:   tunables,
		generator:  narrative.NewGenerator(),
		daily:      narrative.NewDailyService(narrativeStore),
		readings:   readingService,
		db:         db,
		metrics:    appMetrics,
		logger:     appLogger,
		limiter:    rateLimiter,
		cache:      cache.NewRouteCache(15*time.Minute, http.MethodPost, "/api/reading"),
		security:   security.NewSecurityMiddleware(security.DefaultSecurityConfig()),
		rateLimits: true,
	}

	r := setupRouter(deps)

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		slog.Info("Starting server", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}

// appDeps carries the wired services the router needs
type appDeps struct {
	engine     *oracle.Engine
	tunables   oracle.Tunables
	generator  *narrative.Generator
	daily      *narrative.DailyService
	readings   *database.ReadingService
	db         *database.DB
	metrics    *monitoring.Metrics
	logger     *monitoring.Logger
	limiter    *ratelimit.RateLimiter
	cache      *cache.Cache
	security   *security.SecurityMiddleware
	rateLimits bool
}

func setupRouter(deps *appDeps) *gin.Engine {
	r := gin.New()

	r.Use(monitoring.MonitoringMiddleware(deps.metrics, deps.logger))
	r.Use(errors.ErrorHandler())
	r.Use(errors.RecoveryHandler())

	r.Use(security.SecurityHeadersMiddleware())
	r.Use(deps.security.RequestTimeout)
	r.Use(deps.security.ValidateContentType)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if deps.rateLimits {
		r.Use(deps.limiter.IPRateLimitMiddleware())
	}

	r.Use(deps.cache.Middleware(deps.metrics))

	r.POST("/api/reading", deps.handleReading)
	r.GET("/api/history", deps.handleHistory)
	r.GET("/api/history/stats", deps.handleHistoryStats)
	r.DELETE("/api/history/:id", deps.handleDeleteReading)
	r.GET("/api/verdicts", deps.handleVerdicts)

	r.GET("/health", deps.handleHealth)
	r.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, deps.metrics.GetStats())
	})
	r.GET("/cache/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, deps.cache.Stats())
	})

	// Swagger documentation routes
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func (deps *appDeps) handleReading(c *gin.Context) {
	start := time.Now()

	var req types.ReadingRequest
	if err := c.BindJSON(&req); err != nil {
		appErr := errors.ToAppError(err)
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	req.Question = deps.security.SanitizeQuestion(req.Question)
	if req.Question == "" {
		appErr := errors.NewValidationError("question cannot be empty")
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}
	if err := deps.security.ValidateQuestion(req.Question); err != nil {
		appErr := errors.NewValidationError(err.Error())
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	result := deps.engine.Score(req.Question, req.Context)
	prose := deps.generator.Compose(&result)

	outlook, err := deps.daily.Outlook(c.Request.Context(), time.Now(), req.Context)
	if err != nil {
		slog.Warn("Daily outlook unavailable", "error", err)
	}

	deps.metrics.RecordReading(string(result.Verdict))
	deps.logger.ReadingLogger(req.Question, string(result.Category), string(result.Verdict),
		result.Score, result.Confidence, time.Since(start))

	deps.readings.RecordAsync(req.Question, &result, prose, c.ClientIP())

	c.JSON(http.StatusOK, gin.H{
		"question":      req.Question,
		"result":        result,
		"narrative":     prose,
		"daily_outlook": outlook,
		"timestamp":     time.Now().Format(time.RFC3339),
	})
}

func (deps *appDeps) handleHistory(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			appErr := errors.NewValidationError("limit must be a positive integer")
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}
		limit = parsed
	}

	readings, err := deps.readings.History(limit)
	if err != nil {
		appErr := errors.NewStorageError("failed to load history", err)
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"readings": readings,
		"count":    len(readings),
	})
}

func (deps *appDeps) handleHistoryStats(c *gin.Context) {
	stats, err := deps.readings.Stats()
	if err != nil {
		appErr := errors.NewStorageError("failed to load history stats", err)
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (deps *appDeps) handleDeleteReading(c *gin.Context) {
	id := c.Param("id")

	deleted, err := deps.readings.Delete(id)
	if err != nil {
		appErr := errors.NewStorageError("failed to delete reading", err)
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "reading not found", "id": id})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true, "id": id})
}

func (deps *appDeps) handleVerdicts(c *gin.Context) {
	t := deps.tunables

	c.JSON(http.StatusOK, gin.H{
		"verdicts": []gin.H{
			{"verdict": oracle.StronglyFavorable, "min_score": t.StrongCutoff},
			{"verdict": oracle.MildlyFavorable, "min_score": t.MildCutoff, "max_score": t.StrongCutoff - 1},
			{"verdict": oracle.Ambiguous, "min_score": -t.MildCutoff + 1, "max_score": t.MildCutoff - 1},
			{"verdict": oracle.MildlyUnfavorable, "min_score": -t.StrongCutoff + 1, "max_score": -t.MildCutoff},
			{"verdict": oracle.StronglyUnfavorable, "max_score": -t.StrongCutoff},
			{"verdict": oracle.Unclassifiable, "note": "returned when the question cannot be classified"},
		},
		"score_range": gin.H{"min": t.ScoreMin, "max": t.ScoreMax},
	})
}

func (deps *appDeps) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"timestamp":  time.Now().Format(time.RFC3339),
		"version":    "1.0.0",
		"metrics":    deps.metrics.GetStats(),
		"db_pool":    deps.db.GetPoolStats(),
		"rate_limit": deps.limiter.GetStats(),
	})
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
		slog.Warn("Invalid integer in environment, using default", "key", key, "value", value)
	}
	return defaultValue
}
