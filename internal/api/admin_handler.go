package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tech-hub-api/internal/models"
	"github.com/tech-hub-api/internal/service"
)

// AuthorHandler handles authors
type AuthorHandler struct {
	authors service.AuthorService
	timeout time.Duration
	log     zerolog.Logger
}

// NewAuthorHandler creates a new AuthorHandler
func NewAuthorHandler(authors service.AuthorService, timeout time.Duration, log zerolog.Logger) *AuthorHandler {
	return &AuthorHandler{
		authors: authors,
		timeout: timeout,
		log:     log.With().Str("handler", "author").Logger(),
	}
}

// List handles GET /api/authors
func (h *AuthorHandler) List(c *gin.Context) {
	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	authors, err := h.authors.List(ctx)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": authors})
}

// Create handles POST /api/admin/authors
func (h *AuthorHandler) Create(c *gin.Context) {
	var in models.AuthorInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c)
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	author, err := h.authors.Create(ctx, &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, author)
}

// AdminHandler serves the dashboard counters
type AdminHandler struct {
	stats   service.StatsService
	timeout time.Duration
	log     zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(stats service.StatsService, timeout time.Duration, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		stats:   stats,
		timeout: timeout,
		log:     log.With().Str("handler", "admin").Logger(),
	}
}

// Stats handles GET /api/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	stats, err := h.stats.Dashboard(ctx)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
