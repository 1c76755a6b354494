package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tech-hub-api/internal/models"
	"github.com/tech-hub-api/internal/service"
)

// NewsletterHandler handles newsletter signups
type NewsletterHandler struct {
	newsletter service.NewsletterService
	timeout    time.Duration
	log        zerolog.Logger
}

// NewNewsletterHandler creates a new NewsletterHandler
func NewNewsletterHandler(newsletter service.NewsletterService, timeout time.Duration, log zerolog.Logger) *NewsletterHandler {
	return &NewsletterHandler{
		newsletter: newsletter,
		timeout:    timeout,
		log:        log.With().Str("handler", "newsletter").Logger(),
	}
}

// Subscribe handles POST /api/newsletter/subscribe. An already active email
// is reported as 400 rather than 409.
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req models.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	sub, err := h.newsletter.Subscribe(ctx, &req)
	if err != nil {
		writeError(c, h.log, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": sub})
}

// Unsubscribe handles POST /api/newsletter/unsubscribe
func (h *NewsletterHandler) Unsubscribe(c *gin.Context) {
	var req models.UnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	sub, err := h.newsletter.Unsubscribe(ctx, &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": sub})
}

// List handles GET /api/admin/subscribers?status=&limit=&offset=
func (h *NewsletterHandler) List(c *gin.Context) {
	limit, offset, err := limitOffset(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	page, err := h.newsletter.List(ctx, c.Query("status"), limit, offset)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
