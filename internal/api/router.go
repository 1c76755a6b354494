package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tech-hub-api/internal/auth"
	"github.com/tech-hub-api/internal/config"
	"github.com/tech-hub-api/internal/metrics"
	"github.com/tech-hub-api/internal/service"
	"github.com/tech-hub-api/pkg/logger"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// HealthChecker reports whether the backing store is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// NewRouter creates and configures the Gin router. A nil db means no store is
// configured; services.ReadOnly then limits the API to public article reads.
func NewRouter(services *service.Services, cfg *config.Config, db HealthChecker, log zerolog.Logger) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware(cfg.Server.AllowedOrigins))
	router.Use(metrics.Middleware())

	// Health check
	router.GET("/health", healthCheck(db))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	timeout := cfg.Server.RequestTimeout
	articleHandler := NewArticleHandler(services.Article, services.View, timeout, log)

	api := router.Group("/api")
	{
		api.GET("/articles", articleHandler.ListPublished)
		api.GET("/articles/:id", articleHandler.GetPublished)
		api.POST("/articles/:id/views", articleHandler.RecordView)
	}

	if services.ReadOnly {
		log.Warn().Msg("Read-only mode: only public article routes are mounted")
		return router
	}

	admin := auth.RequireAdmin(cfg.Auth.JWTSecret, cfg.Auth.AdminRole)

	contentHandler := NewContentHandler(services.Content, timeout, log)
	moderationHandler := NewModerationHandler(services.Moderation, timeout, log)
	categoryHandler := NewCategoryHandler(services.Category, timeout, log)
	newsletterHandler := NewNewsletterHandler(services.Newsletter, timeout, log)
	contactHandler := NewContactHandler(services.Contact, timeout, log)
	authorHandler := NewAuthorHandler(services.Author, timeout, log)
	adminHandler := NewAdminHandler(services.Stats, timeout, log)
	exportHandler := NewExportHandler(services.Export, log)

	{
		// Content
		api.GET("/content", contentHandler.ListPublished)
		api.GET("/content/:id", contentHandler.GetPublished)
		api.POST("/content", admin, contentHandler.Create)
		api.PATCH("/content", admin, contentHandler.ChangeStatus)
		api.PUT("/content/:id", admin, contentHandler.Update)
		api.DELETE("/content/:id", admin, contentHandler.Delete)

		// Comments
		api.GET("/articles/:id/comments", moderationHandler.ApprovedComments)
		api.POST("/articles/:id/comments", moderationHandler.SubmitComment)
		api.GET("/comments", admin, moderationHandler.ListComments)
		api.PUT("/comments/:id", admin, moderationHandler.ModerateComment)
		api.DELETE("/comments/:id", admin, moderationHandler.DeleteComment)

		// Reviews
		api.GET("/reviews", moderationHandler.PublicReviews)
		api.POST("/reviews", moderationHandler.SubmitReview)

		// Categories; GET takes a slug, writes take an id
		api.GET("/categories", categoryHandler.List)
		api.GET("/categories/:id", categoryHandler.GetBySlug)
		api.POST("/categories", admin, categoryHandler.Create)
		api.PUT("/categories/:id", admin, categoryHandler.Update)
		api.DELETE("/categories/:id", admin, categoryHandler.Delete)

		// Newsletter, contact, authors
		api.POST("/newsletter/subscribe", newsletterHandler.Subscribe)
		api.POST("/newsletter/unsubscribe", newsletterHandler.Unsubscribe)
		api.POST("/contact", contactHandler.Submit)
		api.GET("/authors", authorHandler.List)
	}

	adminGroup := api.Group("/admin", admin)
	{
		adminGroup.GET("/stats", adminHandler.Stats)
		adminGroup.GET("/exports", exportHandler.StreamExport)

		adminGroup.GET("/content", contentHandler.List)

		adminGroup.GET("/articles", articleHandler.List)
		adminGroup.GET("/articles/:id", articleHandler.Get)
		adminGroup.POST("/articles", articleHandler.Create)
		adminGroup.PUT("/articles/:id", articleHandler.Update)
		adminGroup.PATCH("/articles/:id/status", articleHandler.ChangeStatus)
		adminGroup.DELETE("/articles/:id", articleHandler.Delete)

		adminGroup.GET("/reviews", moderationHandler.ListReviews)
		adminGroup.PUT("/reviews/:id", moderationHandler.ModerateReview)
		adminGroup.DELETE("/reviews/:id", moderationHandler.DeleteReview)

		adminGroup.GET("/subscribers", newsletterHandler.List)

		adminGroup.GET("/contact", contactHandler.List)
		adminGroup.PATCH("/contact/:id", contactHandler.UpdateStatus)

		adminGroup.POST("/authors", authorHandler.Create)
	}

	return router
}

// healthCheck returns the health status, pinging the store when one is configured
func healthCheck(db HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		database := "unconfigured"
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.HealthCheck(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":    "unhealthy",
					"database":  "unreachable",
					"timestamp": time.Now().Format(time.RFC3339),
					"service":   logger.ServiceName,
				})
				return
			}
			database = "ok"
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  database,
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   logger.ServiceName,
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Interface("error", err).
					Str("request_id", c.GetString(requestIDKey)).
					Msg("Panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "internal server error",
					"code":  "internal",
				})
			}
		}()
		c.Next()
	}
}

// requestIDMiddleware propagates X-Request-ID or assigns a new one
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
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
			Str("request_id", c.GetString(requestIDKey)).
			Msg("Request completed")
	}
}

// corsMiddleware allows the configured origins; "*" allows any
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", requestIDHeader}
	cfg.ExposeHeaders = []string{requestIDHeader, "Content-Disposition"}
	cfg.MaxAge = 12 * time.Hour
	return cors.New(cfg)
}

// contextWithTimeout creates a context with timeout for handlers
func contextWithTimeout(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), timeout)
}
