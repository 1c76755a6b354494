package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tech-hub-api/internal/models"
	"github.com/tech-hub-api/internal/service"
)

// CategoryHandler handles categories
type CategoryHandler struct {
	categories service.CategoryService
	timeout    time.Duration
	log        zerolog.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categories service.CategoryService, timeout time.Duration, log zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{
		categories: categories,
		timeout:    timeout,
		log:        log.With().Str("handler", "category").Logger(),
	}
}

// List handles GET /api/categories
func (h *CategoryHandler) List(c *gin.Context) {
	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	categories, err := h.categories.List(ctx)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}

// GetBySlug handles GET /api/categories/:slug
func (h *CategoryHandler) GetBySlug(c *gin.Context) {
	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	category, err := h.categories.GetBySlug(ctx, c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// Create handles POST /api/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var in models.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c)
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	category, err := h.categories.Create(ctx, &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// Update handles PUT /api/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	var in models.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c)
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	category, err := h.categories.Update(ctx, c.Param("id"), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// Delete handles DELETE /api/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	if err := h.categories.Delete(ctx, c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
