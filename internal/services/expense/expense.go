// Package services содержит бизнес-логику для управления расходами.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/finance-aggregator/internal/models"
)

// ExpenseRepository определяет методы для работы с расходами в хранилище.
type ExpenseRepository interface {
	// CreateExpense добавляет новый расход и возвращает его ID.
	CreateExpense(ctx context.Context, expense models.Expense) (int, error)
	// ReadExpense возвращает расход пользователя по ID.
	ReadExpense(ctx context.Context, id int, username string) (*models.Expense, error)
	// UpdateExpense обновляет расход пользователя по ID.
	UpdateExpense(ctx context.Context, expense models.Expense, id int, username string) (int, error)
	// RemoveExpense удаляет расход пользователя по ID.
	RemoveExpense(ctx context.Context, id int, username string) (int, error)
	// ListExpenses возвращает все расходы пользователя.
	ListExpenses(ctx context.Context, username string) ([]*models.Expense, error)
	// ListExpensesByMonth возвращает расходы пользователя за месяц.
	ListExpensesByMonth(ctx context.Context, username string, month, year int) ([]*models.Expense, error)
	// ListExpensesByYear возвращает расходы пользователя за год.
	ListExpensesByYear(ctx context.Context, username string, year int) ([]*models.Expense, error)
}

// ExpenseService реализует бизнес-логику работы с расходами.
type ExpenseService struct {
	repo ExpenseRepository
	log  *slog.Logger
}

// NewExpenseService создает новый экземпляр ExpenseService.
func NewExpenseService(repo ExpenseRepository, log *slog.Logger) *ExpenseService {
	return &ExpenseService{
		repo: repo,
		log:  log,
	}
}

// Create создает новый расход для пользователя и возвращает его ID.
func (s *ExpenseService) Create(ctx context.Context, username, userUID string, req models.DummyExpense) (int, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return 0, fmt.Errorf("invalid date: %w", err)
	}

	expense := models.Expense{
		Title:       req.Title,
		Date:        date,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Username:    username,
		UserUID:     userUID,
	}

	id, err := s.repo.CreateExpense(ctx, expense)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new expense", slog.Int("id", id))
	return id, nil
}

// Read возвращает расход пользователя по ID.
func (s *ExpenseService) Read(ctx context.Context, id int, username string) (*models.Expense, error) {
	return s.repo.ReadExpense(ctx, id, username)
}

// Update обновляет расход пользователя и возвращает количество изменённых строк.
func (s *ExpenseService) Update(ctx context.Context, req models.DummyExpense, id int, username string) (int, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return 0, fmt.Errorf("invalid date: %w", err)
	}

	expense := models.Expense{
		Title:       req.Title,
		Date:        date,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Username:    username,
	}
	res, err := s.repo.UpdateExpense(ctx, expense, id, username)
	if err != nil {
		return 0, err
	}
	s.log.Info("updated expense", slog.Int("id", id))
	return res, nil
}

// Remove удаляет расход пользователя и возвращает количество удалённых строк.
func (s *ExpenseService) Remove(ctx context.Context, id int, username string) (int, error) {
	return s.repo.RemoveExpense(ctx, id, username)
}

// List возвращает все расходы пользователя.
func (s *ExpenseService) List(ctx context.Context, username string) ([]*models.Expense, error) {
	return s.repo.ListExpenses(ctx, username)
}
