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
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/wisemotors/compare-engine/internal/cache"
	"github.com/wisemotors/compare-engine/internal/catalog"
	"github.com/wisemotors/compare-engine/internal/engine"
	"github.com/wisemotors/compare-engine/internal/errors"
	"github.com/wisemotors/compare-engine/internal/llm"
	"github.com/wisemotors/compare-engine/internal/monitoring"
	"github.com/wisemotors/compare-engine/internal/ratelimit"
	"github.com/wisemotors/compare-engine/internal/vehicle"
)

const version = "1.0.0"

// server bundles the request handlers with their collaborators.
type server struct {
	engine   *engine.Engine
	llm      engine.Analyzer // nil when no API key is configured
	metrics  *monitoring.Metrics
	logger   *monitoring.Logger
	appCache *cache.Cache
}

// CompareRequest is the body of POST /compare. Fields may name a subset of
// catalog keys; an empty list compares the whole catalog. Source lets
// callers force the deterministic engine.
type CompareRequest struct {
	Vehicles []vehicle.Vehicle `json:"vehicles" binding:"required"`
	Fields   []string          `json:"fields,omitempty"`
	Source   string            `json:"source,omitempty"`
}

func main() {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	port := getEnvOrDefault("PORT", "8080")
	redisURL := os.Getenv("REDIS_URL")
	redisPassword := os.Getenv("REDIS_PASSWORD")
	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	cacheTTL := getEnvDuration("CACHE_TTL", 15*time.Minute)

	appMetrics := monitoring.NewMetrics()
	appLogger := monitoring.NewLogger()

	var llmAnalyzer engine.Analyzer
	var llmClient *llm.Client
	if geminiAPIKey != "" {
		client, err := llm.NewClient(context.Background(), geminiAPIKey)
		if err != nil {
			slog.Error("Failed to initialize LLM analyzer, running deterministic-only", "error", err)
		} else {
			llmClient = client
			llmAnalyzer = client
			slog.Info("LLM analyzer initialized")
		}
	} else {
		slog.Info("No LLM API key configured, running deterministic-only")
	}

	srv := &server{
		engine:   engine.New(),
		llm:      llmAnalyzer,
		metrics:  appMetrics,
		logger:   appLogger,
		appCache: cache.NewCache(cacheTTL),
	}

	redisClient, err := ratelimit.NewRedisClient(redisURL, redisPassword, 0)
	if err != nil {
		slog.Warn("Redis connection failed", "error", err)
	}
	limiter := ratelimit.NewRateLimiter(redisClient, ratelimit.DefaultConfig(), appMetrics)

	r := setupRouter(srv, limiter)

	httpSrv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		slog.Info("Starting server", "port", port, "version", version)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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

	if llmClient != nil {
		llmClient.Close()
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}

// setupRouter wires middleware and routes. Split from main so handler tests
// can build the full router without a listener.
func setupRouter(s *server, limiter *ratelimit.RateLimiter) *gin.Engine {
	r := gin.New()

	r.Use(monitoring.MonitoringMiddleware(s.metrics, s.logger))
	r.Use(errors.ErrorHandler())
	r.Use(errors.RecoveryHandler())
	r.Use(cors.Default())
	if limiter != nil {
		r.Use(limiter.Middleware())
	}
	r.Use(s.appCache.Middleware(s.metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   version,
			"llm":       s.llm != nil,
		})
	})

	r.GET("/fields", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"sections": catalog.BySection()})
	})

	r.POST("/compare", s.handleCompare)

	r.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.metrics.GetStats())
	})

	r.GET("/cache/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.appCache.Stats())
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// handleCompare runs a comparison through the LLM analyzer when one is
// configured, falling back to the deterministic engine on any failure.
// Invalid input is fatal for the call either way.
func (s *server) handleCompare(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	start := time.Now()

	var req CompareRequest
	if err := c.BindJSON(&req); err != nil {
		appErr := errors.NewValidationError("invalid request body: " + err.Error())
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	if err := engine.ValidateVehicles(req.Vehicles); err != nil {
		appErr := errors.NewValidationError(err.Error())
		errors.LogError(c, appErr)
		c.JSON(appErr.HTTPStatus, appErr)
		return
	}

	fields := catalog.Select(req.Fields)

	var result *engine.Analysis
	var err error

	if s.llm != nil && req.Source != "deterministic" {
		s.metrics.IncrementLLMCalls()
		llmStart := time.Now()
		result, err = s.llm.Analyze(ctx, req.Vehicles, fields)
		s.logger.ExternalAPILogger("Gemini", "analyze", time.Since(llmStart), err == nil)
		if err != nil {
			slog.Warn("LLM analysis failed, falling back to deterministic engine", "error", err)
			s.metrics.IncrementLLMFallbacks()
			result = nil
		}
	}

	if result == nil {
		result, err = s.engine.Analyze(ctx, req.Vehicles, fields)
		if err != nil {
			appErr := errors.NewValidationError(err.Error())
			errors.LogError(c, appErr)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}
	}

	s.metrics.IncrementComparison()
	s.logger.ComparisonLogger(len(req.Vehicles), len(fields), result.Source, time.Since(start), c.GetBool("cache_hit"))

	c.JSON(http.StatusOK, result)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
