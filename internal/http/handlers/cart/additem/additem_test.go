package additem

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/arinakim/lingvo-portal/internal/apperr"
	"github.com/arinakim/lingvo-portal/internal/http/middlewarectx"
	"github.com/arinakim/lingvo-portal/internal/models"
)

// MockService реализует интерфейс additem.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) AddItem(ctx context.Context, studentUID string, packageID int) (*models.CartItem, error) {
	args := m.Called(ctx, studentUID, packageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartItem), args.Error(1)
}

func TestAddItemHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		requestBody    interface{}
		studentUID     string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешное добавление пакета",
			requestBody: models.DummyAddCartItem{PackageID: 7},
			studentUID:  "uid-1",
			setupMock: func(m *MockService) {
				m.On("AddItem", mock.Anything, "uid-1", 7).
					Return(&models.CartItem{ID: 11, CartID: 3, PackageID: 7}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"package_id":7`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			studentUID:     "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "отсутствует идентификатор пакета",
			requestBody:    models.DummyAddCartItem{},
			studentUID:     "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field PackageID is a required field`,
		},
		{
			name:           "отсутствует авторизация",
			requestBody:    models.DummyAddCartItem{PackageID: 7},
			studentUID:     "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:        "пакет уже в корзине",
			requestBody: models.DummyAddCartItem{PackageID: 7},
			studentUID:  "uid-1",
			setupMock: func(m *MockService) {
				m.On("AddItem", mock.Anything, "uid-1", 7).
					Return(nil, apperr.ErrConflict)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"conflict"}`,
		},
		{
			name:        "пакет не найден",
			requestBody: models.DummyAddCartItem{PackageID: 99},
			studentUID:  "uid-1",
			setupMock: func(m *MockService) {
				m.On("AddItem", mock.Anything, "uid-1", 99).
					Return(nil, apperr.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/cart/items", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			ctx := req.Context()
			if tt.studentUID != "" {
				ctx = context.WithValue(ctx, middlewarectx.UserUID, tt.studentUID)
			}
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-id")
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
