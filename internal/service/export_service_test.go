package service_test

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tech-hub-api/internal/apperror"
	"github.com/tech-hub-api/internal/models"
	"github.com/tech-hub-api/internal/service"
)

func TestExport_Validate(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		resource, format string
		wantErr          bool
	}{
		{service.ExportSubscribers, service.FormatCSV, false},
		{service.ExportSubscribers, service.FormatNDJSON, false},
		{service.ExportArticles, service.FormatJSON, false},
		{service.ExportComments, service.FormatNDJSON, false},
		{service.ExportArticles, service.FormatCSV, true},
		{"users", service.FormatJSON, true},
		{service.ExportComments, "xml", true},
	}

	for _, tt := range tests {
		t.Run(tt.resource+"/"+tt.format, func(t *testing.T) {
			err := f.svc.Export.Validate(tt.resource, tt.format)
			if tt.wantErr {
				assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func seedSubscribers(t *testing.T, f *fixture, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := f.svc.Newsletter.Subscribe(context.Background(), &models.SubscribeRequest{
			Email: "reader" + string(rune('a'+i)) + "@example.com",
		})
		require.NoError(t, err)
	}
}

func TestExport_SubscribersNDJSON(t *testing.T) {
	f := newFixture(t)
	seedSubscribers(t, f, 3)

	rec := httptest.NewRecorder()
	require.NoError(t, f.svc.Export.Stream(context.Background(), rec, service.ExportSubscribers, service.FormatNDJSON))

	assert.Equal(t, "application/x-ndjson", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "subscribers.ndjson")

	scanner := bufio.NewScanner(rec.Body)
	lines := 0
	for scanner.Scan() {
		var sub models.Subscriber
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &sub))
		assert.Equal(t, models.SubscriberActive, sub.Status)
		lines++
	}
	assert.Equal(t, 3, lines)
}

func TestExport_SubscribersCSV(t *testing.T) {
	f := newFixture(t)
	seedSubscribers(t, f, 2)

	rec := httptest.NewRecorder()
	require.NoError(t, f.svc.Export.Stream(context.Background(), rec, service.ExportSubscribers, service.FormatCSV))

	rows, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"id", "email", "name", "status", "source", "created_at", "updated_at"}, rows[0])
	assert.Equal(t, "active", rows[1][3])
}

func TestExport_JSONArray(t *testing.T) {
	f := newFixture(t)
	seedCatalogue(f)

	rec := httptest.NewRecorder()
	require.NoError(t, f.svc.Export.Stream(context.Background(), rec, service.ExportArticles, service.FormatJSON))

	var articles []models.Article
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &articles))
	assert.Len(t, articles, 4)

	empty := httptest.NewRecorder()
	require.NoError(t, f.svc.Export.Stream(context.Background(), empty, service.ExportComments, service.FormatJSON))
	assert.Equal(t, "[]", empty.Body.String())
}

func TestExport_InvalidPairWritesNothing(t *testing.T) {
	f := newFixture(t)

	rec := httptest.NewRecorder()
	err := f.svc.Export.Stream(context.Background(), rec, service.ExportComments, service.FormatCSV)
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
	assert.Zero(t, rec.Body.Len())
	assert.Empty(t, rec.Header().Get("Content-Type"))
}
