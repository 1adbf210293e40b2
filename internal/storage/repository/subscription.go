package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/finance-aggregator/internal/models"
)

// CreateSubscription вставляет новую подписку и возвращает её ID.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) (int, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (title, amount, frequency, renewal_date, category, is_active, username, user_uid)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		sub.Title, sub.Amount, sub.Frequency, sub.RenewalDate, sub.Category,
		sub.IsActive, sub.Username, sub.UserUID).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadSubscription возвращает подписку пользователя по её ID.
func (s *Storage) ReadSubscription(ctx context.Context, id int, username string) (*models.Subscription, error) {
	const op = "storage.ReadSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, amount, frequency, renewal_date, category, is_active, username, user_uid, created_at
			  FROM subscriptions
			  WHERE id = $1 AND username = $2`
	row := s.DB.QueryRowContext(ctx, query, id, username)

	var result models.Subscription
	if err := row.Scan(&result.ID, &result.Title, &result.Amount, &result.Frequency,
		&result.RenewalDate, &result.Category, &result.IsActive,
		&result.Username, &result.UserUID, &result.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UpdateSubscription обновляет подписку пользователя по ID и возвращает количество изменённых строк.
func (s *Storage) UpdateSubscription(ctx context.Context, sub models.Subscription, id int, username string) (int, error) {
	const op = "storage.UpdateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET title = $1, amount = $2, frequency = $3, renewal_date = $4, category = $5, is_active = $6
			  WHERE id = $7 AND username = $8`
	result, err := s.DB.ExecContext(ctx, query,
		sub.Title, sub.Amount, sub.Frequency, sub.RenewalDate, sub.Category, sub.IsActive,
		id, username)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveSubscription удаляет подписку пользователя по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveSubscription(ctx context.Context, id int, username string) (int, error) {
	const op = "storage.RemoveSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM subscriptions WHERE id = $1 AND username = $2`
	result, err := s.DB.ExecContext(ctx, query, id, username)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListSubscriptions возвращает все подписки пользователя, ближайшие продления первыми.
func (s *Storage) ListSubscriptions(ctx context.Context, username string) ([]*models.Subscription, error) {
	const op = "storage.ListSubscriptions"
	query := `SELECT id, title, amount, frequency, renewal_date, category, is_active, username, user_uid, created_at
			  FROM subscriptions
			  WHERE username = $1
			  ORDER BY renewal_date ASC`
	return s.listSubscriptions(ctx, op, query, username)
}

// ListActiveSubscriptions возвращает активные подписки пользователя.
func (s *Storage) ListActiveSubscriptions(ctx context.Context, username string) ([]*models.Subscription, error) {
	const op = "storage.ListActiveSubscriptions"
	query := `SELECT id, title, amount, frequency, renewal_date, category, is_active, username, user_uid, created_at
			  FROM subscriptions
			  WHERE username = $1 AND is_active
			  ORDER BY renewal_date ASC`
	return s.listSubscriptions(ctx, op, query, username)
}

// ListActiveSubscriptionsByRenewalMonth возвращает активные подписки пользователя,
// у которых дата продления попадает в указанный месяц и год.
func (s *Storage) ListActiveSubscriptionsByRenewalMonth(ctx context.Context, username string, month, year int) ([]*models.Subscription, error) {
	const op = "storage.ListActiveSubscriptionsByRenewalMonth"
	query := `SELECT id, title, amount, frequency, renewal_date, category, is_active, username, user_uid, created_at
			  FROM subscriptions
			  WHERE username = $1 AND is_active
			    AND EXTRACT(MONTH FROM renewal_date) = $2
			    AND EXTRACT(YEAR FROM renewal_date) = $3
			  ORDER BY renewal_date ASC`
	return s.listSubscriptions(ctx, op, query, username, month, year)
}

// UpdateRenewalDate записывает новую дату продления подписки.
func (s *Storage) UpdateRenewalDate(ctx context.Context, id int, username string, renewalDate time.Time) (int, error) {
	const op = "storage.UpdateRenewalDate"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions SET renewal_date = $1 WHERE id = $2 AND username = $3`
	result, err := s.DB.ExecContext(ctx, query, renewalDate, id, username)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ToggleSubscriptionActive инвертирует флаг активности подписки и возвращает новое значение.
func (s *Storage) ToggleSubscriptionActive(ctx context.Context, id int, username string) (bool, error) {
	const op = "storage.ToggleSubscriptionActive"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET is_active = NOT is_active
			  WHERE id = $1 AND username = $2
			  RETURNING is_active`
	var isActive bool
	if err := s.DB.QueryRowContext(ctx, query, id, username).Scan(&isActive); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return isActive, nil
}

// ReactivateSubscription включает подписку и задаёт ей новую дату продления.
func (s *Storage) ReactivateSubscription(ctx context.Context, id int, username string, renewalDate time.Time) (int, error) {
	const op = "storage.ReactivateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET is_active = TRUE, renewal_date = $1
			  WHERE id = $2 AND username = $3`
	result, err := s.DB.ExecContext(ctx, query, renewalDate, id, username)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// FindSubscriptionsRenewingOn возвращает активные подписки всех пользователей,
// продлевающиеся в указанную дату, вместе с email владельца.
func (s *Storage) FindSubscriptionsRenewingOn(ctx context.Context, date time.Time) ([]*models.RenewalInfo, error) {
	const op = "storage.FindSubscriptionsRenewingOn"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.email, s.username, s.title, s.amount, s.renewal_date
			  FROM subscriptions s
			  JOIN users u ON u.uid = s.user_uid
			  WHERE s.is_active AND s.renewal_date = $1`
	rows, err := s.DB.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.RenewalInfo
	for rows.Next() {
		var item models.RenewalInfo
		if err := rows.Scan(&item.Email, &item.Username, &item.Title, &item.Amount, &item.RenewalDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func (s *Storage) listSubscriptions(ctx context.Context, op, query string, args ...any) ([]*models.Subscription, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Subscription
	for rows.Next() {
		var item models.Subscription
		if err := rows.Scan(&item.ID, &item.Title, &item.Amount, &item.Frequency,
			&item.RenewalDate, &item.Category, &item.IsActive,
			&item.Username, &item.UserUID, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
