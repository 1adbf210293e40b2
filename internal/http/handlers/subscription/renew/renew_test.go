package renew

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/finance-aggregator/internal/http/middlewarectx"
	"github.com/magabrotheeeer/finance-aggregator/internal/models"
)

// MockService реализует интерфейс renew.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Renew(ctx context.Context, id int, username string) (*models.Subscription, error) {
	args := m.Called(ctx, id, username)
	if res := args.Get(0); res != nil {
		return res.(*models.Subscription), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestRenewHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		url            string
		username       string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "успешное продление подписки",
			url:      "/subscriptions/42/renew",
			username: "testuser",
			setupMock: func(m *MockService) {
				sub := &models.Subscription{
					ID:          42,
					Title:       "Netflix",
					Amount:      10,
					Frequency:   models.FrequencyMonthly,
					RenewalDate: time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC),
					IsActive:    true,
					Username:    "testuser",
				}
				m.On("Renew", mock.Anything, 42, "testuser").Return(sub, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"renewal_date":"2025-04-30T00:00:00Z"`,
		},
		{
			name:           "некорректный id в URL",
			url:            "/subscriptions/abc/renew",
			username:       "testuser",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"failed to decode id from url"`,
		},
		{
			name:     "ошибка сервиса продления",
			url:      "/subscriptions/42/renew",
			username: "testuser",
			setupMock: func(m *MockService) {
				m.On("Renew", mock.Anything, 42, "testuser").Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not renew subscription"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, tt.url, nil)
			rctx := chi.NewRouteContext()
			idPart := strings.TrimSuffix(strings.TrimPrefix(tt.url, "/subscriptions/"), "/renew")
			rctx.URLParams.Add("id", idPart)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middlewarectx.User, tt.username)
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
