package service

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tech-hub-api/internal/apperror"
	"github.com/tech-hub-api/internal/models"
)

// Listing windows
const (
	DefaultLimit    = 20
	MaxLimit        = 100
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// initialStatus returns the requested creation status, draft when omitted
func initialStatus(requested string) models.PublicationStatus {
	if requested == "" {
		return models.StatusDraft
	}
	return models.PublicationStatus(requested)
}

// publishedAt returns the publish timestamp after moving to next. It is set
// the first time a record becomes published and never changes afterwards.
func publishedAt(current *time.Time, next models.PublicationStatus, now time.Time) *time.Time {
	if current != nil || next != models.StatusPublished {
		return current
	}
	stamp := now
	return &stamp
}

// statusForAction maps publish|unpublish|archive onto a target status
func statusForAction(action string) (models.PublicationStatus, error) {
	status, ok := models.StatusActions[strings.ToLower(strings.TrimSpace(action))]
	if !ok {
		return "", apperror.InvalidInput("validation failed", map[string]string{
			"action": "must be one of: archive, publish, unpublish",
		})
	}
	return status, nil
}

// isID reports whether s should be looked up by primary key rather than slug
func isID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// window clamps a limit/offset request
func window(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// pageWindow converts a 1-based page request into limit/offset
func pageWindow(page, pageSize int) (int, int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if page < 1 {
		page = 1
	}
	if page > math.MaxInt/pageSize {
		page = math.MaxInt / pageSize
	}
	return pageSize, (page - 1) * pageSize
}

// normalizeTags trims tags and drops blanks and case-insensitive duplicates, keeping first spelling
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		key := strings.ToLower(tag)
		if tag == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, tag)
	}
	return out
}

// enumFilter parses an optional status query value against the allowed set
func enumFilter[T ~string](value string, allowed map[T]bool) (*T, error) {
	if value == "" {
		return nil, nil
	}
	v := T(value)
	if !allowed[v] {
		names := make([]string, 0, len(allowed))
		for k := range allowed {
			names = append(names, string(k))
		}
		sort.Strings(names)
		return nil, apperror.InvalidInput("validation failed", map[string]string{
			"status": "must be one of: " + strings.Join(names, ", "),
		})
	}
	return &v, nil
}

func newPage[T any](items []*T, total, limit, offset int) *models.Page[T] {
	if items == nil {
		items = []*T{}
	}
	return &models.Page[T]{
		Items: items,
		Meta:  models.Pagination{Total: total, Limit: limit, Offset: offset},
	}
}
