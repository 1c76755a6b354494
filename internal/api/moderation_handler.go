package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tech-hub-api/internal/models"
	"github.com/tech-hub-api/internal/service"
)

// ModerationHandler handles comment and review submission and moderation
type ModerationHandler struct {
	moderation service.ModerationService
	timeout    time.Duration
	log        zerolog.Logger
}

// NewModerationHandler creates a new ModerationHandler
func NewModerationHandler(moderation service.ModerationService, timeout time.Duration, log zerolog.Logger) *ModerationHandler {
	return &ModerationHandler{
		moderation: moderation,
		timeout:    timeout,
		log:        log.With().Str("handler", "moderation").Logger(),
	}
}

// SubmitComment handles POST /api/articles/:id/comments
func (h *ModerationHandler) SubmitComment(c *gin.Context) {
	var in models.CommentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c)
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	comment, err := h.moderation.SubmitComment(ctx, c.Param("id"), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// ApprovedComments handles GET /api/articles/:id/comments
func (h *ModerationHandler) ApprovedComments(c *gin.Context) {
	limit, offset, err := limitOffset(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	page, err := h.moderation.ApprovedComments(ctx, c.Param("id"), limit, offset)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ListComments handles GET /api/comments?status=&articleId=&limit=&offset=
func (h *ModerationHandler) ListComments(c *gin.Context) {
	limit, offset, err := limitOffset(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	page, err := h.moderation.ListComments(ctx, c.Query("articleId"), c.Query("status"), limit, offset)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ModerateComment handles PUT /api/comments/:id with {"status": ...}
func (h *ModerationHandler) ModerateComment(c *gin.Context) {
	var m models.CommentModeration
	if err := c.ShouldBindJSON(&m); err != nil {
		badBody(c)
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	comment, err := h.moderation.ModerateComment(ctx, c.Param("id"), &m)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// DeleteComment handles DELETE /api/comments/:id
func (h *ModerationHandler) DeleteComment(c *gin.Context) {
	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	if err := h.moderation.DeleteComment(ctx, c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SubmitReview handles POST /api/reviews
func (h *ModerationHandler) SubmitReview(c *gin.Context) {
	var in models.ReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c)
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	review, err := h.moderation.SubmitReview(ctx, &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// PublicReviews handles GET /api/reviews?featured=&limit=&offset=
func (h *ModerationHandler) PublicReviews(c *gin.Context) {
	featured, err := queryBool(c, "featured")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	limit, offset, err := limitOffset(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	page, err := h.moderation.PublicReviews(ctx, featured, limit, offset)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ListReviews handles GET /api/admin/reviews?status=&limit=&offset=
func (h *ModerationHandler) ListReviews(c *gin.Context) {
	limit, offset, err := limitOffset(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	page, err := h.moderation.ListReviews(ctx, c.Query("status"), limit, offset)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ModerateReview handles PUT /api/admin/reviews/:id with {"status"?, "featured"?}
func (h *ModerationHandler) ModerateReview(c *gin.Context) {
	var m models.ReviewModeration
	if err := c.ShouldBindJSON(&m); err != nil {
		badBody(c)
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	review, err := h.moderation.ModerateReview(ctx, c.Param("id"), &m)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// DeleteReview handles DELETE /api/admin/reviews/:id
func (h *ModerationHandler) DeleteReview(c *gin.Context) {
	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	if err := h.moderation.DeleteReview(ctx, c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
