// Package services содержит бизнес-логику финансового ассистента:
// недельный лимит сообщений, сборку контекста диалога и обращение
// к внешнему completion-сервису.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/finance-aggregator/internal/lib/week"
	"github.com/magabrotheeeer/finance-aggregator/internal/models"
)

// ErrWeeklyLimitReached возвращается, когда недельный лимит сообщений исчерпан.
var ErrWeeklyLimitReached = errors.New("weekly message limit reached")

const systemPrompt = `You are a specialized financial assistant focused on personal finance and budgeting advice. Your core responsibilities:

1. Financial Focus: Only provide advice on finance, budgeting, spending, saving, and related topics. If asked about unrelated topics, politely redirect to financial matters.

2. Data-Driven Analysis: When financial data is provided (expenses, budgets, subscriptions), analyze it thoroughly and provide specific, actionable advice on:
- Budget optimization
- Cost reduction opportunities
- Spending pattern analysis
- Savings recommendations
- Subscription management

3. Concise Responses: Keep all responses under 900 characters while being comprehensive and actionable.

4. Practical Advice: Focus on realistic, implementable suggestions that users can act on immediately.

5. Professional Tone: Be helpful, accurate, and professional while maintaining a friendly approach.

6. No Formatting: Do not use markdown formatting, quotes, or special characters. Write in plain text only.

Always prioritize actionable financial insights over general information.`

// historyLimit — сколько последних реплик диалога попадает в контекст запроса.
const historyLimit = 4

// Completer описывает внешний completion-сервис.
type Completer interface {
	// Complete возвращает ответ модели на список сообщений.
	Complete(ctx context.Context, messages []models.ChatMessage, userUID string) (string, error)
}

// ChatRepository определяет методы хранилища для учёта сообщений.
type ChatRepository interface {
	// GetChatUsage возвращает счётчик за неделю, не создавая запись.
	GetChatUsage(ctx context.Context, userUID string, weekStart time.Time) (*models.ChatUsage, error)
	// TryIncrementChatUsage атомарно увеличивает счётчик, пока не достигнут лимит.
	TryIncrementChatUsage(ctx context.Context, userUID string, weekStart time.Time, limit int) (int, bool, error)
}

// UsageInfo — текущее состояние недельного лимита пользователя.
type UsageInfo struct {
	WeekStart    string `json:"week_start"`
	MessageCount int    `json:"message_count"`
	Remaining    int    `json:"remaining"`
	WeeklyLimit  int    `json:"weekly_limit"`
}

// MessageResult — ответ ассистента вместе с обновлённым счётчиком.
type MessageResult struct {
	Message      string `json:"message"`
	CurrentCount int    `json:"current_count"`
	Remaining    int    `json:"remaining"`
}

// ChatService реализует диалог с финансовым ассистентом.
type ChatService struct {
	repo        ChatRepository
	completer   Completer
	weeklyLimit int
	log         *slog.Logger
	now         func() time.Time
}

// NewChatService создает новый экземпляр ChatService.
func NewChatService(repo ChatRepository, completer Completer, weeklyLimit int, log *slog.Logger) *ChatService {
	return &ChatService{
		repo:        repo,
		completer:   completer,
		weeklyLimit: weeklyLimit,
		log:         log,
		now:         time.Now,
	}
}

// Usage возвращает счётчик сообщений пользователя за текущую неделю.
func (s *ChatService) Usage(ctx context.Context, userUID string) (*UsageInfo, error) {
	weekStart := week.Start(s.now())
	usage, err := s.repo.GetChatUsage(ctx, userUID, weekStart)
	if err != nil {
		return nil, err
	}
	remaining := s.weeklyLimit - usage.MessageCount
	if remaining < 0 {
		remaining = 0
	}
	return &UsageInfo{
		WeekStart:    weekStart.Format("2006-01-02"),
		MessageCount: usage.MessageCount,
		Remaining:    remaining,
		WeeklyLimit:  s.weeklyLimit,
	}, nil
}

// SendMessage отправляет сообщение ассистенту. Квота расходуется до обращения
// к внешнему сервису, поэтому конкурирующие запросы не могут превысить лимит.
func (s *ChatService) SendMessage(ctx context.Context, userUID string, req models.DummyChatMessage) (*MessageResult, error) {
	weekStart := week.Start(s.now())
	count, ok, err := s.repo.TryIncrementChatUsage(ctx, userUID, weekStart, s.weeklyLimit)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrWeeklyLimitReached
	}

	messages := s.buildMessages(req)
	answer, err := s.completer.Complete(ctx, messages, userUID)
	if err != nil {
		s.log.Error("completion request failed", slog.Any("err", err))
		return nil, err
	}

	return &MessageResult{
		Message:      answer,
		CurrentCount: count,
		Remaining:    s.weeklyLimit - count,
	}, nil
}

// buildMessages собирает контекст запроса: системный промпт c финансовыми
// данными, последние реплики истории и само сообщение.
func (s *ChatService) buildMessages(req models.DummyChatMessage) []models.ChatMessage {
	systemContent := systemPrompt
	if req.FinancialData != nil {
		systemContent += financialContext(req.FinancialData)
	}

	messages := []models.ChatMessage{
		{Role: "system", Content: systemContent},
	}

	history := req.ConversationHistory
	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}
	for _, item := range history {
		switch item.Type {
		case "user":
			messages = append(messages, models.ChatMessage{Role: "user", Content: item.Content})
		case "ai":
			messages = append(messages, models.ChatMessage{Role: "assistant", Content: item.Content})
		}
	}

	return append(messages, models.ChatMessage{Role: "user", Content: req.Message})
}

func financialContext(data *models.FinancialData) string {
	subsTotal := 0.0
	for _, sub := range data.Subscriptions {
		subsTotal += sub.Amount
	}
	timeframe := data.Timeframe
	if timeframe == "" {
		timeframe = "Unknown"
	}
	return fmt.Sprintf(`

CURRENT FINANCIAL DATA CONTEXT:
Timeframe: %s

Expenses: $%g total (%d transactions)
Budget: $%g (monthly)
Active Subscriptions: %d subscriptions ($%g total monthly)

Use this data to provide specific, personalized financial advice.`,
		timeframe,
		data.Expenses.Total, len(data.Expenses.Expenses),
		data.Budget.Amount,
		len(data.Subscriptions), subsTotal)
}
