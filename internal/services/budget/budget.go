// Package services содержит бизнес-логику для управления бюджетами.
package services

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/finance-aggregator/internal/models"
)

// BudgetRepository определяет методы для работы с бюджетами в хранилище.
type BudgetRepository interface {
	// CreateBudget добавляет новый бюджет и возвращает его ID.
	// Активный бюджет вытесняет прежний активный в одной транзакции.
	CreateBudget(ctx context.Context, budget models.Budget) (int, error)
	// ListBudgets возвращает все бюджеты пользователя.
	ListBudgets(ctx context.Context, username string) ([]*models.Budget, error)
	// GetCurrentBudget возвращает активный бюджет или (nil, nil), если его нет.
	GetCurrentBudget(ctx context.Context, username string) (*models.Budget, error)
	// UpdateBudget обновляет бюджет по ID.
	UpdateBudget(ctx context.Context, budget models.Budget, id int, username string) (int, error)
	// RemoveBudget удаляет бюджет по ID.
	RemoveBudget(ctx context.Context, id int, username string) (int, error)
}

// BudgetService реализует бизнес-логику работы с бюджетами.
type BudgetService struct {
	repo BudgetRepository
	log  *slog.Logger
}

// NewBudgetService создает новый экземпляр BudgetService.
func NewBudgetService(repo BudgetRepository, log *slog.Logger) *BudgetService {
	return &BudgetService{
		repo: repo,
		log:  log,
	}
}

// Create создает новый бюджет пользователя. Новый бюджет по умолчанию
// становится активным и деактивирует предыдущий.
func (s *BudgetService) Create(ctx context.Context, username, userUID string, req models.DummyBudget) (int, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	budget := models.Budget{
		Amount:   req.Amount,
		IsActive: isActive,
		Username: username,
		UserUID:  userUID,
	}
	id, err := s.repo.CreateBudget(ctx, budget)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new budget", slog.Int("id", id))
	return id, nil
}

// List возвращает все бюджеты пользователя.
func (s *BudgetService) List(ctx context.Context, username string) ([]*models.Budget, error) {
	return s.repo.ListBudgets(ctx, username)
}

// Current возвращает активный бюджет пользователя или nil, если его нет.
func (s *BudgetService) Current(ctx context.Context, username string) (*models.Budget, error) {
	return s.repo.GetCurrentBudget(ctx, username)
}

// Update обновляет бюджет пользователя и возвращает количество изменённых строк.
func (s *BudgetService) Update(ctx context.Context, req models.DummyBudget, id int, username string) (int, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	budget := models.Budget{
		Amount:   req.Amount,
		IsActive: isActive,
		Username: username,
	}
	res, err := s.repo.UpdateBudget(ctx, budget, id, username)
	if err != nil {
		return 0, err
	}
	s.log.Info("updated budget", slog.Int("id", id))
	return res, nil
}

// Remove удаляет бюджет пользователя и возвращает количество удалённых строк.
func (s *BudgetService) Remove(ctx context.Context, id int, username string) (int, error) {
	return s.repo.RemoveBudget(ctx, id, username)
}
