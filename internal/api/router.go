package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/student-portal-api/internal/config"
	"github.com/student-portal-api/internal/models"
	"github.com/student-portal-api/internal/service"
)

// HealthChecker reports backing-store health for the /health endpoint.
// *database.DB satisfies it; tests may pass nil.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, hc HealthChecker, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	portalHandler := NewPortalHandler(services, log)
	exportHandler := NewExportHandler(services, log)

	// Plain confirmation string, kept for clients that probe the root
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Student Portal API is running")
	})

	router.GET("/health", healthCheck(hc))
	router.GET("/stats", statsHandler(services))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// The portal endpoint dispatches on the form-encoded action parameter
	limiter := NewSimpleTokenBucket(cfg.RateLimit.Burst, cfg.RateLimit.PerMinute)
	router.POST("/api", limiter.GinMiddleware(), portalHandler.Dispatch)

	// Admin endpoints
	admin := router.Group("/admin")
	{
		admin.GET("/export", exportHandler.StreamExport)
	}

	return router
}

// healthCheck returns the health status including a database ping
func healthCheck(hc HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "healthy"
		code := http.StatusOK

		if hc != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := hc.HealthCheck(ctx); err != nil {
				status = "unhealthy"
				code = http.StatusServiceUnavailable
			}
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "student-portal-api",
		})
	}
}

// statsHandler returns directory row counts
func statsHandler(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		studentCount, _ := services.Export.StudentCount(ctx)
		activityCount, _ := services.Export.ActivityCount(ctx)

		c.JSON(http.StatusOK, gin.H{
			"database": gin.H{
				"students":         studentCount,
				"activity_entries": activityCount,
			},
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// recoveryMiddleware handles panics. The caller gets the uniform
// envelope with an opaque message; the detail stays in the server log.
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Str("path", c.Request.URL.Path).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, models.Fail(models.ErrKindInternal, "Server error"))
				c.Abort()
			}
		}()
		c.Next()
	}
}

// requestIDMiddleware tags each request with an id for log correlation
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Str("request_id", c.GetString("request_id")).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
