package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tech-hub-api/internal/apperror"
)

// statusFor maps an error kind onto an HTTP status. Conflicts default to 409
// but some endpoints report them as 400.
func statusFor(kind apperror.Kind, conflictStatus int) int {
	switch kind {
	case apperror.KindInvalidInput:
		return http.StatusBadRequest
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindConflict:
		return conflictStatus
	case apperror.KindUnauthorized:
		return http.StatusUnauthorized
	case apperror.KindForbidden:
		return http.StatusForbidden
	case apperror.KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"error","code","fields"}. 5xx bodies carry a
// generic message; the cause is only logged.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	writeError(c, log, err, http.StatusConflict)
}

func writeError(c *gin.Context, log zerolog.Logger, err error, conflictStatus int) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		appErr = apperror.Unavailable("unclassified error", err)
	}

	status := statusFor(appErr.Kind, conflictStatus)
	if status >= http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("code", appErr.Code).
			Str("path", c.FullPath()).
			Str("request_id", c.GetString(requestIDKey)).
			Msg("Request failed")

		message := "internal server error"
		if appErr.Kind == apperror.KindTimeout {
			message = "request timed out"
		}
		c.JSON(status, gin.H{"error": message, "code": appErr.Code})
		return
	}

	body := gin.H{"error": appErr.Message, "code": appErr.Code}
	if len(appErr.Fields) > 0 {
		body["fields"] = appErr.Fields
	}
	c.JSON(status, body)
}

// badBody reports a request body that could not be decoded
func badBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "code": "invalid_input"})
}
