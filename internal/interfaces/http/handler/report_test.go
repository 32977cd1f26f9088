package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	reportapp "github.com/schoolms/backend/internal/application/report"
	"github.com/schoolms/backend/internal/domain/report"
	"github.com/schoolms/backend/internal/domain/shared"
	"github.com/schoolms/backend/internal/infrastructure/storage"
)

// MockReportRegistry mocks report.Repository
type MockReportRegistry struct {
	mock.Mock
}

func (m *MockReportRegistry) Upsert(ctx context.Context, entry *report.GeneratedReport) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockReportRegistry) FindByID(ctx context.Context, id uuid.UUID) (*report.GeneratedReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.GeneratedReport), args.Error(1)
}

func (m *MockReportRegistry) FindAll(ctx context.Context, filter shared.Filter) ([]report.GeneratedReport, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.GeneratedReport), args.Error(1)
}

func (m *MockReportRegistry) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func storedReportEntry() *report.GeneratedReport {
	return report.NewGeneratedReport(
		nil,
		report.ModeSingle,
		"2025-03",
		"All_Branches_2025-03.pdf",
		"2025-03/All_Branches_2025-03.pdf",
		int64(2048),
		12,
		decimal.NewFromInt(30000),
		"AFN",
		nil,
	)
}

// newReportRouter wires the report handler over a mocked registry and
// in-memory blob storage. The lookup repositories and renderer are only
// touched by Generate, which the service tests cover.
func newReportRouter(registry *MockReportRegistry, blobs *storage.MemoryStorage) *gin.Engine {
	gin.SetMode(gin.TestMode)
	service := reportapp.NewReportService(nil, nil, nil, registry, blobs, nil, zap.NewNop())
	handler := NewReportHandler(service, nil, nil, nil)

	engine := gin.New()
	api := engine.Group("/api/v1")
	api.GET("/reports", handler.List)
	api.GET("/reports/:id", handler.Get)
	api.GET("/reports/:id/download", handler.Download)
	api.DELETE("/reports/:id", handler.Delete)
	return engine
}

func TestReportHandler_List(t *testing.T) {
	registry := new(MockReportRegistry)
	registry.On("FindAll", mock.Anything, mock.AnythingOfType("shared.Filter")).
		Return([]report.GeneratedReport{*storedReportEntry()}, nil)

	router := newReportRouter(registry, storage.NewMemoryStorage())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "All_Branches_2025-03.pdf")
	assert.Contains(t, w.Body.String(), `"report_period":"2025-03"`)
}

func TestReportHandler_Download(t *testing.T) {
	t.Run("existing artifact returns a url", func(t *testing.T) {
		entry := storedReportEntry()
		blobs := storage.NewMemoryStorage()
		require := assert.New(t)
		require.NoError(blobs.Upload(context.Background(), entry.FilePath, []byte("%PDF-1.4"), "application/pdf"))

		registry := new(MockReportRegistry)
		registry.On("FindByID", mock.Anything, entry.ID).Return(entry, nil)

		router := newReportRouter(registry, blobs)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/"+entry.ID.String()+"/download", nil))

		require.Equal(http.StatusOK, w.Code)
		require.Contains(w.Body.String(), entry.FileName)
		require.Contains(w.Body.String(), `"url"`)
	})

	t.Run("unknown report returns 404", func(t *testing.T) {
		registry := new(MockReportRegistry)
		registry.On("FindByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(nil, shared.ErrNotFound)

		router := newReportRouter(registry, storage.NewMemoryStorage())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/"+uuid.New().String()+"/download", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestReportHandler_Delete(t *testing.T) {
	entry := storedReportEntry()
	blobs := storage.NewMemoryStorage()
	assert.NoError(t, blobs.Upload(context.Background(), entry.FilePath, []byte("%PDF-1.4"), "application/pdf"))

	registry := new(MockReportRegistry)
	registry.On("FindByID", mock.Anything, entry.ID).Return(entry, nil)
	registry.On("Delete", mock.Anything, entry.ID).Return(nil)

	router := newReportRouter(registry, blobs)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/reports/"+entry.ID.String(), nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 0, blobs.Len())
	registry.AssertExpectations(t)
}
