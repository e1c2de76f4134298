package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/arinakim/lingvo-portal/internal/models"
)

// MockService реализует интерфейс list.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, limit, offset int) ([]*models.AuditEntry, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AuditEntry), args.Error(1)
}

func TestAuditListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	entries := []*models.AuditEntry{
		{
			ID:        1,
			Action:    "subscription.approve",
			ActorUID:  "admin-1",
			Details:   "subscription 42 approved",
			CreatedAt: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
		},
	}

	tests := []struct {
		name           string
		query          string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "успешное чтение журнала",
			query: "?limit=10&offset=5",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, 10, 5).Return(entries, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"action":"subscription.approve"`,
		},
		{
			name:  "некорректные параметры пагинации заменяются умолчаниями",
			query: "?limit=abc&offset=-1",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, 20, 0).Return(entries, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"actor_uid":"admin-1"`,
		},
		{
			name:  "слишком большой limit ограничивается",
			query: "?limit=500",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, 20, 0).Return(entries, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"OK"`,
		},
		{
			name:  "ошибка хранилища",
			query: "",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, 20, 0).Return(nil, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"internal error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/admin/audit"+tt.query, nil)
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
