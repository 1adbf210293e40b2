package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/finance-aggregator/internal/models"
)

// ErrUserNotFound возвращается, когда пользователь отсутствует в хранилище.
var ErrUserNotFound = errors.New("user not found")

// RegisterUser создаёт нового пользователя и возвращает его UID.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (email, username, password_hash, role)
			  VALUES ($1, $2, $3, $4)
			  RETURNING uid`
	var uid string
	err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.Username, user.PasswordHash, user.Role).Scan(&uid)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return uid, nil
}

// GetUserByUsername возвращает пользователя по имени.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, username, password_hash, role, created_at
			  FROM users
			  WHERE username = $1`
	row := s.DB.QueryRowContext(ctx, query, username)

	var result models.User
	err := row.Scan(&result.UID, &result.Email, &result.Username,
		&result.PasswordHash, &result.Role, &result.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// GetUser возвращает пользователя по UID.
func (s *Storage) GetUser(ctx context.Context, uid string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, username, password_hash, role, created_at
			  FROM users
			  WHERE uid = $1`
	row := s.DB.QueryRowContext(ctx, query, uid)

	var result models.User
	err := row.Scan(&result.UID, &result.Email, &result.Username,
		&result.PasswordHash, &result.Role, &result.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UpdateUserAccount изменяет имя пользователя и хэш пароля. Имя пользователя
// в дочерних таблицах обновляется в той же транзакции, чтобы выборки по
// username не потеряли записи.
func (s *Storage) UpdateUserAccount(ctx context.Context, uid, newUsername, newPasswordHash string) error {
	const op = "storage.UpdateUserAccount"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	update := `UPDATE users SET username = $1, password_hash = $2 WHERE uid = $3`
	result, err := tx.ExecContext(ctx, update, newUsername, newPasswordHash, uid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}

	for _, table := range []string{"expenses", "subscriptions", "budgets"} {
		propagate := fmt.Sprintf(`UPDATE %s SET username = $1 WHERE user_uid = $2`, table)
		if _, err := tx.ExecContext(ctx, propagate, newUsername, uid); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
