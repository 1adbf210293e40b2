package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/finance-aggregator/internal/models"
)

// CreateBudget вставляет новый бюджет пользователя и возвращает его ID.
// Если бюджет создаётся активным, прежний активный бюджет деактивируется
// в той же транзакции: частичный уникальный индекс допускает не более
// одной активной записи на пользователя.
func (s *Storage) CreateBudget(ctx context.Context, budget models.Budget) (int, error) {
	const op = "storage.CreateBudget"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if budget.IsActive {
		deactivate := `UPDATE budgets SET is_active = FALSE, updated_at = now()
					   WHERE user_uid = $1 AND is_active`
		if _, err := tx.ExecContext(ctx, deactivate, budget.UserUID); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
	}

	insert := `INSERT INTO budgets (amount, is_active, username, user_uid)
			   VALUES ($1, $2, $3, $4)
			   RETURNING id`
	var newID int
	if err := tx.QueryRowContext(ctx, insert,
		budget.Amount, budget.IsActive, budget.Username, budget.UserUID).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListBudgets возвращает все бюджеты пользователя, новые первыми.
func (s *Storage) ListBudgets(ctx context.Context, username string) ([]*models.Budget, error) {
	const op = "storage.ListBudgets"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, amount, is_active, username, user_uid, created_at, updated_at
			  FROM budgets
			  WHERE username = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Budget
	for rows.Next() {
		var item models.Budget
		if err := rows.Scan(&item.ID, &item.Amount, &item.IsActive,
			&item.Username, &item.UserUID, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetCurrentBudget возвращает активный бюджет пользователя.
// Если активного бюджета нет, возвращает (nil, nil).
func (s *Storage) GetCurrentBudget(ctx context.Context, username string) (*models.Budget, error) {
	const op = "storage.GetCurrentBudget"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, amount, is_active, username, user_uid, created_at, updated_at
			  FROM budgets
			  WHERE username = $1 AND is_active`
	row := s.DB.QueryRowContext(ctx, query, username)

	var result models.Budget
	err := row.Scan(&result.ID, &result.Amount, &result.IsActive,
		&result.Username, &result.UserUID, &result.CreatedAt, &result.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UpdateBudget обновляет бюджет пользователя по ID и возвращает количество
// изменённых строк. Активация записи деактивирует прежний активный бюджет
// в той же транзакции.
func (s *Storage) UpdateBudget(ctx context.Context, budget models.Budget, id int, username string) (int, error) {
	const op = "storage.UpdateBudget"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if budget.IsActive {
		deactivate := `UPDATE budgets SET is_active = FALSE, updated_at = now()
					   WHERE user_uid = (SELECT user_uid FROM budgets WHERE id = $1 AND username = $2)
					     AND is_active AND id <> $1`
		if _, err := tx.ExecContext(ctx, deactivate, id, username); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
	}

	update := `UPDATE budgets
			   SET amount = $1, is_active = $2, updated_at = now()
			   WHERE id = $3 AND username = $4`
	result, err := tx.ExecContext(ctx, update, budget.Amount, budget.IsActive, id, username)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveBudget удаляет бюджет пользователя по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveBudget(ctx context.Context, id int, username string) (int, error) {
	const op = "storage.RemoveBudget"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM budgets WHERE id = $1 AND username = $2`
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
