package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/finance-aggregator/internal/models"
)

// CreateExpense вставляет новую запись расхода и возвращает её ID.
func (s *Storage) CreateExpense(ctx context.Context, expense models.Expense) (int, error) {
	const op = "storage.CreateExpense"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO expenses (title, date, amount, category, description, username, user_uid)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		expense.Title, expense.Date, expense.Amount, expense.Category,
		expense.Description, expense.Username, expense.UserUID).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadExpense возвращает расход пользователя по его ID.
func (s *Storage) ReadExpense(ctx context.Context, id int, username string) (*models.Expense, error) {
	const op = "storage.ReadExpense"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, date, amount, category, COALESCE(description, ''), username, user_uid, created_at
			  FROM expenses
			  WHERE id = $1 AND username = $2`
	row := s.DB.QueryRowContext(ctx, query, id, username)

	var result models.Expense
	if err := row.Scan(&result.ID, &result.Title, &result.Date, &result.Amount, &result.Category,
		&result.Description, &result.Username, &result.UserUID, &result.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UpdateExpense обновляет расход пользователя по ID и возвращает количество изменённых строк.
func (s *Storage) UpdateExpense(ctx context.Context, expense models.Expense, id int, username string) (int, error) {
	const op = "storage.UpdateExpense"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE expenses
			  SET title = $1, date = $2, amount = $3, category = $4, description = $5
			  WHERE id = $6 AND username = $7`
	result, err := s.DB.ExecContext(ctx, query,
		expense.Title, expense.Date, expense.Amount, expense.Category, expense.Description,
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

// RemoveExpense удаляет расход пользователя по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveExpense(ctx context.Context, id int, username string) (int, error) {
	const op = "storage.RemoveExpense"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM expenses WHERE id = $1 AND username = $2`
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

// ListExpenses возвращает все расходы пользователя, новые даты первыми.
func (s *Storage) ListExpenses(ctx context.Context, username string) ([]*models.Expense, error) {
	const op = "storage.ListExpenses"
	query := `SELECT id, title, date, amount, category, COALESCE(description, ''), username, user_uid, created_at
			  FROM expenses
			  WHERE username = $1
			  ORDER BY date DESC`
	return s.listExpenses(ctx, op, query, username)
}

// ListExpensesByMonth возвращает расходы пользователя за календарный месяц.
func (s *Storage) ListExpensesByMonth(ctx context.Context, username string, month, year int) ([]*models.Expense, error) {
	const op = "storage.ListExpensesByMonth"
	query := `SELECT id, title, date, amount, category, COALESCE(description, ''), username, user_uid, created_at
			  FROM expenses
			  WHERE username = $1
			    AND EXTRACT(MONTH FROM date) = $2
			    AND EXTRACT(YEAR FROM date) = $3
			  ORDER BY date DESC`
	return s.listExpenses(ctx, op, query, username, month, year)
}

// ListExpensesByYear возвращает расходы пользователя за календарный год.
func (s *Storage) ListExpensesByYear(ctx context.Context, username string, year int) ([]*models.Expense, error) {
	const op = "storage.ListExpensesByYear"
	query := `SELECT id, title, date, amount, category, COALESCE(description, ''), username, user_uid, created_at
			  FROM expenses
			  WHERE username = $1
			    AND EXTRACT(YEAR FROM date) = $2
			  ORDER BY date DESC`
	return s.listExpenses(ctx, op, query, username, year)
}

func (s *Storage) listExpenses(ctx context.Context, op, query string, args ...any) ([]*models.Expense, error) {
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

	var result []*models.Expense
	for rows.Next() {
		var item models.Expense
		if err := rows.Scan(&item.ID, &item.Title, &item.Date, &item.Amount, &item.Category,
			&item.Description, &item.Username, &item.UserUID, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
