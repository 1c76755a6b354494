package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tech-hub-api/internal/apperror"
	"github.com/tech-hub-api/internal/models"
	"github.com/tech-hub-api/internal/service"
)

// ArticleHandler handles the news section and article administration
type ArticleHandler struct {
	articles service.ArticleService
	views    service.ViewService
	timeout  time.Duration
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(articles service.ArticleService, views service.ViewService, timeout time.Duration, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		articles: articles,
		views:    views,
		timeout:  timeout,
		log:      log.With().Str("handler", "article").Logger(),
	}
}

// ListPublished handles GET /api/articles?category=&search=&page=&pageSize=
func (h *ArticleHandler) ListPublished(c *gin.Context) {
	q, err := articleQuery(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	page, err := h.articles.ListPublished(ctx, q)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetPublished handles GET /api/articles/:id, where id may also be a slug
func (h *ArticleHandler) GetPublished(c *gin.Context) {
	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	article, err := h.articles.GetPublished(ctx, c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// RecordView handles POST /api/articles/:id/views. The increment happens in
// the background; a dropped view is not reported to the caller.
func (h *ArticleHandler) RecordView(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		respondError(c, h.log, apperror.NotFound("article"))
		return
	}
	h.views.Enqueue(id)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// List handles GET /api/admin/articles?status=&category=&search=&page=&pageSize=
func (h *ArticleHandler) List(c *gin.Context) {
	q, err := articleQuery(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if raw := c.Query("status"); raw != "" {
		status := models.PublicationStatus(raw)
		if !models.ValidStatuses[status] {
			respondError(c, h.log, apperror.InvalidInput("validation failed", map[string]string{
				"status": "must be one of: archived, draft, published",
			}))
			return
		}
		q.Status = &status
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	page, err := h.articles.List(ctx, q)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Get handles GET /api/admin/articles/:id regardless of status
func (h *ArticleHandler) Get(c *gin.Context) {
	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	article, err := h.articles.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// Create handles POST /api/admin/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	var in models.ArticleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c)
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	article, err := h.articles.Create(ctx, &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, article)
}

// Update handles PUT /api/admin/articles/:id with a partial body
func (h *ArticleHandler) Update(c *gin.Context) {
	var patch models.ArticlePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badBody(c)
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	article, err := h.articles.Update(ctx, c.Param("id"), &patch)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// ChangeStatus handles PATCH /api/admin/articles/:id/status with {"action": publish|unpublish|archive}
func (h *ArticleHandler) ChangeStatus(c *gin.Context) {
	var req struct {
		Action string `json:"action"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	article, err := h.articles.ChangeStatus(ctx, c.Param("id"), req.Action)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// Delete handles DELETE /api/admin/articles/:id
func (h *ArticleHandler) Delete(c *gin.Context) {
	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	if err := h.articles.Delete(ctx, c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func articleQuery(c *gin.Context) (service.ArticleQuery, error) {
	page, err := queryInt(c, "page")
	if err != nil {
		return service.ArticleQuery{}, err
	}
	pageSize, err := queryInt(c, "pageSize")
	if err != nil {
		return service.ArticleQuery{}, err
	}
	return service.ArticleQuery{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	}, nil
}
