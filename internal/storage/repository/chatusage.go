package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/finance-aggregator/internal/models"
)

// GetChatUsage возвращает счётчик сообщений пользователя за неделю.
// Если записи ещё нет, возвращает нулевой счётчик без её создания.
func (s *Storage) GetChatUsage(ctx context.Context, userUID string, weekStart time.Time) (*models.ChatUsage, error) {
	const op = "storage.GetChatUsage"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, week_start, message_count, created_at, updated_at
			  FROM chat_usage
			  WHERE user_uid = $1 AND week_start = $2`
	row := s.DB.QueryRowContext(ctx, query, userUID, weekStart)

	var result models.ChatUsage
	err := row.Scan(&result.ID, &result.UserUID, &result.WeekStart,
		&result.MessageCount, &result.CreatedAt, &result.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return &models.ChatUsage{
			UserUID:      userUID,
			WeekStart:    weekStart,
			MessageCount: 0,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// TryIncrementChatUsage атомарно увеличивает недельный счётчик сообщений,
// если лимит ещё не исчерпан. Возвращает новое значение счётчика и признак
// успеха. Условие в DO UPDATE гарантирует, что конкурирующие запросы не
// превысят лимит.
func (s *Storage) TryIncrementChatUsage(ctx context.Context, userUID string, weekStart time.Time, limit int) (int, bool, error) {
	const op = "storage.TryIncrementChatUsage"
	select {
	case <-ctx.Done():
		return 0, false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO chat_usage (user_uid, week_start, message_count)
			  VALUES ($1, $2, 1)
			  ON CONFLICT (user_uid, week_start) DO UPDATE
			  SET message_count = chat_usage.message_count + 1, updated_at = now()
			  WHERE chat_usage.message_count < $3
			  RETURNING message_count`
	var count int
	err := s.DB.QueryRowContext(ctx, query, userUID, weekStart, limit).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return limit, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", op, err)
	}
	return count, true, nil
}
