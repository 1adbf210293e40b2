package message

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/finance-aggregator/internal/http/middlewarectx"
	"github.com/magabrotheeeer/finance-aggregator/internal/models"
	chat "github.com/magabrotheeeer/finance-aggregator/internal/services/chat"
)

// MockService реализует интерфейс message.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) SendMessage(ctx context.Context, userUID string, req models.DummyChatMessage) (*chat.MessageResult, error) {
	args := m.Called(ctx, userUID, req)
	if res := args.Get(0); res != nil {
		return res.(*chat.MessageResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestMessageHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		userUID        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "успешная отправка сообщения",
			body:    `{"message":"How do I cut my spending?"}`,
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				result := &chat.MessageResult{
					Message:      "Track your biggest categories first.",
					CurrentCount: 2,
					Remaining:    3,
				}
				m.On("SendMessage", mock.Anything, "uid-1", mock.Anything).Return(result, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"current_count":2`,
		},
		{
			name:           "некорректный JSON",
			body:           `{message}`,
			userUID:        "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "пустое сообщение",
			body:           `{"message":""}`,
			userUID:        "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Message is a required field`,
		},
		{
			name:           "нет пользователя в контексте",
			body:           `{"message":"hello"}`,
			userUID:        "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
		{
			name:    "недельный лимит исчерпан",
			body:    `{"message":"hello"}`,
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("SendMessage", mock.Anything, "uid-1", mock.Anything).
					Return(nil, chat.ErrWeeklyLimitReached)
			},
			expectedStatus: http.StatusTooManyRequests,
			expectedBody:   `"error":"weekly message limit reached"`,
		},
		{
			name:    "ошибка провайдера",
			body:    `{"message":"hello"}`,
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("SendMessage", mock.Anything, "uid-1", mock.Anything).
					Return(nil, errors.New("provider down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not send message"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/chat/message", bytes.NewBufferString(tt.body))
			ctx := req.Context()
			if tt.userUID != "" {
				ctx = context.WithValue(ctx, middlewarectx.UserUID, tt.userUID)
			}
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
