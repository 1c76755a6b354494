package mocks

import (
	"context"
	"net/http"
	"sync"

	"github.com/tech-hub-api/internal/models"
	"github.com/tech-hub-api/internal/service"
)

// MockViewService records enqueued article ids instead of counting them
type MockViewService struct {
	mu       sync.Mutex
	Enqueued []string
	// Reject makes Enqueue report a full queue
	Reject  bool
	Started bool
	Stopped bool
}

// Verify interface compliance
var _ service.ViewService = (*MockViewService)(nil)

func NewMockViewService() *MockViewService {
	return &MockViewService{Enqueued: make([]string, 0)}
}

func (m *MockViewService) Enqueue(articleID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Reject {
		return false
	}
	m.Enqueued = append(m.Enqueued, articleID)
	return true
}

func (m *MockViewService) Start(ctx context.Context) { m.Started = true }

func (m *MockViewService) Stop() { m.Stopped = true }

// IDs returns a copy of the enqueued ids
func (m *MockViewService) IDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Enqueued...)
}

// MockExportService is a mock implementation of ExportService
type MockExportService struct {
	ValidateFunc func(resource, format string) error
	StreamFunc   func(ctx context.Context, w http.ResponseWriter, resource, format string) error
	Streamed     []string
}

var _ service.ExportService = (*MockExportService)(nil)

func NewMockExportService() *MockExportService {
	return &MockExportService{Streamed: make([]string, 0)}
}

func (m *MockExportService) Validate(resource, format string) error {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(resource, format)
	}
	return nil
}

func (m *MockExportService) Stream(ctx context.Context, w http.ResponseWriter, resource, format string) error {
	m.Streamed = append(m.Streamed, resource+"."+format)
	if m.StreamFunc != nil {
		return m.StreamFunc(ctx, w, resource, format)
	}
	w.WriteHeader(http.StatusOK)
	return nil
}

// MockStatsService is a mock implementation of StatsService
type MockStatsService struct {
	DashboardFunc func(ctx context.Context) (*models.DashboardStats, error)
}

var _ service.StatsService = (*MockStatsService)(nil)

func (m *MockStatsService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	if m.DashboardFunc != nil {
		return m.DashboardFunc(ctx)
	}
	return &models.DashboardStats{}, nil
}
