package api

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tech-hub-api/internal/service"
)

// ExportHandler handles export endpoints
type ExportHandler struct {
	exports service.ExportService
	log     zerolog.Logger
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(exports service.ExportService, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{
		exports: exports,
		log:     log.With().Str("handler", "export").Logger(),
	}
}

// StreamExport handles GET /api/admin/exports?resource=...&format=...
// Streams the export directly to the response
func (h *ExportHandler) StreamExport(c *gin.Context) {
	resource := c.Query("resource")
	format := c.DefaultQuery("format", service.FormatNDJSON)

	if err := h.exports.Validate(resource, format); err != nil {
		respondError(c, h.log, err)
		return
	}

	h.log.Info().
		Str("resource", resource).
		Str("format", format).
		Str("request_id", c.GetString(requestIDKey)).
		Msg("Starting streaming export")

	if err := h.exports.Stream(c.Request.Context(), c.Writer, resource, format); err != nil {
		// Can't return error JSON after streaming has started
		h.log.Error().Err(err).Str("resource", resource).Msg("Export failed")
		return
	}
}
