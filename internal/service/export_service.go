package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tech-hub-api/internal/apperror"
	"github.com/tech-hub-api/internal/metrics"
	"github.com/tech-hub-api/internal/models"
	"github.com/tech-hub-api/internal/repository"
)

// Export resources and formats
const (
	ExportSubscribers = "subscribers"
	ExportArticles    = "articles"
	ExportComments    = "comments"

	FormatNDJSON = "ndjson"
	FormatJSON   = "json"
	FormatCSV    = "csv"
)

// flushEvery is how many records are written between flushes
const flushEvery = 100

var contentTypes = map[string]string{
	FormatNDJSON: "application/x-ndjson",
	FormatJSON:   "application/json",
	FormatCSV:    "text/csv",
}

// exportService is the concrete implementation of ExportService
type exportService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

func newExportService(repos *repository.Repositories, log zerolog.Logger) *exportService {
	return &exportService{
		repos: repos,
		log:   log.With().Str("service", "export").Logger(),
	}
}

// Validate checks a resource/format pair before any bytes are written
func (s *exportService) Validate(resource, format string) error {
	switch resource {
	case ExportSubscribers, ExportArticles, ExportComments:
	default:
		return apperror.InvalidInput("validation failed", map[string]string{
			"resource": "must be one of: articles, comments, subscribers",
		})
	}
	if _, ok := contentTypes[format]; !ok {
		return apperror.InvalidInput("validation failed", map[string]string{
			"format": "must be one of: csv, json, ndjson",
		})
	}
	if format == FormatCSV && resource != ExportSubscribers {
		return apperror.InvalidInput("validation failed", map[string]string{
			"format": "csv is only supported for subscribers",
		})
	}
	return nil
}

// Stream writes every record of resource to w. Once the first byte is written
// errors can only be logged, so callers must Validate first.
func (s *exportService) Stream(ctx context.Context, w http.ResponseWriter, resource, format string) error {
	if err := s.Validate(resource, format); err != nil {
		return err
	}

	s.log.Info().Str("resource", resource).Str("format", format).Msg("Starting export")
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.%s", resource, format))

	start := time.Now()
	var (
		count int
		err   error
	)
	switch {
	case format == FormatCSV:
		count, err = s.subscribersCSV(ctx, w)
	case resource == ExportSubscribers:
		count, err = streamJSON(ctx, w, format, s.repos.Subscriber.StreamAll)
	case resource == ExportArticles:
		count, err = streamJSON(ctx, w, format, s.repos.Article.StreamAll)
	case resource == ExportComments:
		count, err = streamJSON(ctx, w, format, s.repos.Comment.StreamAll)
	}

	result := "success"
	if err != nil {
		result = "failed"
		s.log.Error().Err(err).Str("resource", resource).Int("count", count).Msg("Export failed")
	} else {
		s.log.Info().Str("resource", resource).Int("count", count).Dur("duration", time.Since(start)).Msg("Export completed")
	}
	metrics.ObserveExport(resource, format, result, time.Since(start), count)
	return err
}

// streamJSON writes records as newline-delimited JSON or as one JSON array
func streamJSON[T any](ctx context.Context, w io.Writer, format string, streamAll func(context.Context, func(*T) error) error) (int, error) {
	flusher, _ := w.(http.Flusher)
	array := format == FormatJSON
	count := 0

	if array {
		if _, err := io.WriteString(w, "["); err != nil {
			return 0, err
		}
	}

	err := streamAll(ctx, func(record *T) error {
		data, err := json.Marshal(record)
		if err != nil {
			return err
		}
		if array && count > 0 {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
		if !array {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		count++

		if count%flushEvery == 0 && flusher != nil {
			flusher.Flush()
		}
		return nil
	})

	if array {
		if _, werr := io.WriteString(w, "]"); err == nil {
			err = werr
		}
	}
	return count, err
}

func (s *exportService) subscribersCSV(ctx context.Context, w io.Writer) (int, error) {
	writer := csv.NewWriter(w)
	count := 0

	if err := writer.Write([]string{"id", "email", "name", "status", "source", "created_at", "updated_at"}); err != nil {
		return 0, err
	}

	err := s.repos.Subscriber.StreamAll(ctx, func(sub *models.Subscriber) error {
		count++
		if err := writer.Write([]string{
			sub.ID,
			sub.Email,
			sub.Name,
			string(sub.Status),
			sub.Source,
			sub.CreatedAt.UTC().Format(time.RFC3339),
			sub.UpdatedAt.UTC().Format(time.RFC3339),
		}); err != nil {
			return err
		}
		if count%flushEvery == 0 {
			writer.Flush()
			return writer.Error()
		}
		return nil
	})

	writer.Flush()
	if err == nil {
		err = writer.Error()
	}
	return count, err
}
