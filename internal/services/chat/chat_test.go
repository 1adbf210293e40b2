package services

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/finance-aggregator/internal/models"
)

type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) GetChatUsage(ctx context.Context, userUID string, weekStart time.Time) (*models.ChatUsage, error) {
	args := m.Called(ctx, userUID, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatUsage), args.Error(1)
}

func (m *MockChatRepository) TryIncrementChatUsage(ctx context.Context, userUID string, weekStart time.Time, limit int) (int, bool, error) {
	args := m.Called(ctx, userUID, weekStart, limit)
	return args.Int(0), args.Bool(1), args.Error(2)
}

type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, messages []models.ChatMessage, userUID string) (string, error) {
	args := m.Called(ctx, messages, userUID)
	return args.String(0), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const testUID = "550e8400-e29b-41d4-a716-446655440000"

func TestChatService_SendMessage(t *testing.T) {
	repo := new(MockChatRepository)
	completer := new(MockCompleter)

	repo.On("TryIncrementChatUsage", mock.Anything, testUID, mock.Anything, 5).Return(2, true, nil)
	completer.On("Complete", mock.Anything, mock.MatchedBy(func(messages []models.ChatMessage) bool {
		return len(messages) == 2 &&
			messages[0].Role == "system" &&
			messages[1].Role == "user" && messages[1].Content == "How do I save money?"
	}), testUID).Return("Track your spending first.", nil)

	service := NewChatService(repo, completer, 5, discardLogger())
	got, err := service.SendMessage(context.Background(), testUID, models.DummyChatMessage{
		Message: "How do I save money?",
	})

	require.NoError(t, err)
	assert.Equal(t, "Track your spending first.", got.Message)
	assert.Equal(t, 2, got.CurrentCount)
	assert.Equal(t, 3, got.Remaining)
	repo.AssertExpectations(t)
	completer.AssertExpectations(t)
}

func TestChatService_SendMessage_LimitReached(t *testing.T) {
	repo := new(MockChatRepository)
	completer := new(MockCompleter)

	repo.On("TryIncrementChatUsage", mock.Anything, testUID, mock.Anything, 5).Return(5, false, nil)

	service := NewChatService(repo, completer, 5, discardLogger())
	_, err := service.SendMessage(context.Background(), testUID, models.DummyChatMessage{Message: "hi"})

	require.ErrorIs(t, err, ErrWeeklyLimitReached)
	// внешний сервис не вызывается, когда лимит исчерпан
	completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
}

func TestChatService_SendMessage_HistoryTruncated(t *testing.T) {
	repo := new(MockChatRepository)
	completer := new(MockCompleter)

	history := []models.ChatHistoryItem{
		{Type: "user", Content: "first"},
		{Type: "ai", Content: "second"},
		{Type: "user", Content: "third"},
		{Type: "ai", Content: "fourth"},
		{Type: "user", Content: "fifth"},
		{Type: "ai", Content: "sixth"},
	}

	repo.On("TryIncrementChatUsage", mock.Anything, testUID, mock.Anything, 5).Return(1, true, nil)
	completer.On("Complete", mock.Anything, mock.MatchedBy(func(messages []models.ChatMessage) bool {
		// системный промпт + 4 последние реплики + новое сообщение
		if len(messages) != 6 {
			return false
		}
		return messages[1].Content == "third" &&
			messages[2].Role == "assistant" && messages[2].Content == "fourth" &&
			messages[3].Content == "fifth" &&
			messages[4].Content == "sixth"
	}), testUID).Return("ok", nil)

	service := NewChatService(repo, completer, 5, discardLogger())
	_, err := service.SendMessage(context.Background(), testUID, models.DummyChatMessage{
		Message:             "latest",
		ConversationHistory: history,
	})

	require.NoError(t, err)
	completer.AssertExpectations(t)
}

func TestChatService_SendMessage_FinancialContext(t *testing.T) {
	repo := new(MockChatRepository)
	completer := new(MockCompleter)

	repo.On("TryIncrementChatUsage", mock.Anything, testUID, mock.Anything, 5).Return(1, true, nil)
	completer.On("Complete", mock.Anything, mock.MatchedBy(func(messages []models.ChatMessage) bool {
		system := messages[0].Content
		return strings.Contains(system, "CURRENT FINANCIAL DATA CONTEXT") &&
			strings.Contains(system, "Timeframe: March 2025") &&
			strings.Contains(system, "$150 total (2 transactions)") &&
			strings.Contains(system, "2 subscriptions ($30 total monthly)")
	}), testUID).Return("ok", nil)

	service := NewChatService(repo, completer, 5, discardLogger())
	_, err := service.SendMessage(context.Background(), testUID, models.DummyChatMessage{
		Message: "Where can I cut costs?",
		FinancialData: &models.FinancialData{
			Timeframe: "March 2025",
			Expenses: models.FinancialExpenses{
				Total: 150,
				Expenses: []models.FinancialExpenseItem{
					{Title: "Groceries", Amount: 100},
					{Title: "Cinema", Amount: 50},
				},
			},
			Budget: models.FinancialBudget{Amount: 500},
			Subscriptions: []models.FinancialSubscription{
				{Title: "Netflix", Amount: 10},
				{Title: "Spotify", Amount: 20},
			},
		},
	})

	require.NoError(t, err)
	completer.AssertExpectations(t)
}

func TestChatService_Usage(t *testing.T) {
	repo := new(MockChatRepository)
	repo.On("GetChatUsage", mock.Anything, testUID, mock.Anything).Return(&models.ChatUsage{
		UserUID:      testUID,
		MessageCount: 3,
	}, nil)

	service := NewChatService(repo, new(MockCompleter), 5, discardLogger())
	got, err := service.Usage(context.Background(), testUID)

	require.NoError(t, err)
	assert.Equal(t, 3, got.MessageCount)
	assert.Equal(t, 2, got.Remaining)
	assert.Equal(t, 5, got.WeeklyLimit)
}
