package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tech-hub-api/internal/apperror"
	"github.com/tech-hub-api/internal/models"
	"github.com/tech-hub-api/internal/service"
)

// ContentHandler handles generic content items
type ContentHandler struct {
	content service.ContentService
	timeout time.Duration
	log     zerolog.Logger
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(content service.ContentService, timeout time.Duration, log zerolog.Logger) *ContentHandler {
	return &ContentHandler{
		content: content,
		timeout: timeout,
		log:     log.With().Str("handler", "content").Logger(),
	}
}

// ListPublished handles GET /api/content?type=&isFeatured=&limit=&offset=
func (h *ContentHandler) ListPublished(c *gin.Context) {
	filter, err := contentFilter(c, false)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	page, err := h.content.ListPublished(ctx, filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// List handles GET /api/admin/content?type=&status=&isFeatured=&limit=&offset=
func (h *ContentHandler) List(c *gin.Context) {
	filter, err := contentFilter(c, true)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	page, err := h.content.List(ctx, filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetPublished handles GET /api/content/:id, where id may also be a slug
func (h *ContentHandler) GetPublished(c *gin.Context) {
	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	item, err := h.content.GetPublished(ctx, c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Create handles POST /api/content
func (h *ContentHandler) Create(c *gin.Context) {
	var in models.ContentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c)
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	item, err := h.content.Create(ctx, &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Update handles PUT /api/content/:id with a partial body
func (h *ContentHandler) Update(c *gin.Context) {
	var patch models.ContentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badBody(c)
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	item, err := h.content.Update(ctx, c.Param("id"), &patch)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// ChangeStatus handles PATCH /api/content?id=&action=publish|unpublish|archive
func (h *ContentHandler) ChangeStatus(c *gin.Context) {
	id, action := c.Query("id"), c.Query("action")
	if id == "" || action == "" {
		fields := map[string]string{}
		if id == "" {
			fields["id"] = "cannot be blank"
		}
		if action == "" {
			fields["action"] = "cannot be blank"
		}
		respondError(c, h.log, apperror.InvalidInput("validation failed", fields))
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	item, err := h.content.ChangeStatus(ctx, id, action)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete handles DELETE /api/content/:id and echoes the removed item
func (h *ContentHandler) Delete(c *gin.Context) {
	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	item, err := h.content.Delete(ctx, c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": item})
}

// contentFilter parses listing parameters; status is honoured only for admins
func contentFilter(c *gin.Context, withStatus bool) (models.ContentFilter, error) {
	var filter models.ContentFilter

	if raw := c.Query("type"); raw != "" {
		t := models.ContentType(raw)
		if !models.ValidContentTypes[t] {
			return filter, apperror.InvalidInput("validation failed", map[string]string{
				"type": "must be one of: event, news, podcast, service, tool, tutorial",
			})
		}
		filter.Type = &t
	}
	if raw := c.Query("status"); withStatus && raw != "" {
		s := models.PublicationStatus(raw)
		if !models.ValidStatuses[s] {
			return filter, apperror.InvalidInput("validation failed", map[string]string{
				"status": "must be one of: archived, draft, published",
			})
		}
		filter.Status = &s
	}

	featured, err := queryBool(c, "isFeatured")
	if err != nil {
		return filter, err
	}
	filter.IsFeatured = featured

	filter.Limit, filter.Offset, err = limitOffset(c)
	return filter, err
}
