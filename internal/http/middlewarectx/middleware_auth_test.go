package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/finance-aggregator/internal/models"
)

type MockValidator struct {
	mock.Mock
}

func (m *MockValidator) ValidateToken(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestJWTMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		authHeader     string
		setupMock      func(*MockValidator)
		expectedStatus int
		expectNext     bool
	}{
		{
			name:       "valid token passes user to context",
			authHeader: "Bearer good-token",
			setupMock: func(m *MockValidator) {
				m.On("ValidateToken", mock.Anything, "good-token").
					Return(&models.User{Username: "alice", Role: "user", UID: "uid-1"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "missing header rejected",
			authHeader:     "",
			setupMock:      func(_ *MockValidator) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong scheme rejected",
			authHeader:     "Basic abc",
			setupMock:      func(_ *MockValidator) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token rejected",
			authHeader: "Bearer bad-token",
			setupMock: func(m *MockValidator) {
				m.On("ValidateToken", mock.Anything, "bad-token").
					Return(nil, errors.New("token is expired"))
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAuth := new(MockValidator)
			tt.setupMock(mockAuth)

			nextCalled := false
			next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				nextCalled = true
				assert.Equal(t, "alice", r.Context().Value(User))
				assert.Equal(t, "user", r.Context().Value(Role))
				assert.Equal(t, "uid-1", r.Context().Value(UserUID))
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/expenses/list", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			JWTMiddleware(mockAuth, logger)(next).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectNext, nextCalled)
			mockAuth.AssertExpectations(t)
		})
	}
}
