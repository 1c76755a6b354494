package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tech-hub-api/internal/models"
	"github.com/tech-hub-api/internal/service"
)

// ContactHandler handles the contact form
type ContactHandler struct {
	contact service.ContactService
	timeout time.Duration
	log     zerolog.Logger
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(contact service.ContactService, timeout time.Duration, log zerolog.Logger) *ContactHandler {
	return &ContactHandler{
		contact: contact,
		timeout: timeout,
		log:     log.With().Str("handler", "contact").Logger(),
	}
}

// Submit handles POST /api/contact
func (h *ContactHandler) Submit(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c)
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	msg, err := h.contact.Submit(ctx, &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": msg.ID})
}

// List handles GET /api/admin/contact?status=&limit=&offset=
func (h *ContactHandler) List(c *gin.Context) {
	limit, offset, err := limitOffset(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	page, err := h.contact.List(ctx, c.Query("status"), limit, offset)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// UpdateStatus handles PATCH /api/admin/contact/:id
func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	var u models.ContactStatusUpdate
	if err := c.ShouldBindJSON(&u); err != nil {
		badBody(c)
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	msg, err := h.contact.UpdateStatus(ctx, c.Param("id"), &u)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}
