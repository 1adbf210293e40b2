package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/finance-aggregator/internal/models"
)

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) ListExpenses(ctx context.Context, username string) ([]*models.Expense, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Expense), args.Error(1)
}

func (m *MockReportRepository) ListExpensesByMonth(ctx context.Context, username string, month, year int) ([]*models.Expense, error) {
	args := m.Called(ctx, username, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Expense), args.Error(1)
}

func (m *MockReportRepository) ListExpensesByYear(ctx context.Context, username string, year int) ([]*models.Expense, error) {
	args := m.Called(ctx, username, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Expense), args.Error(1)
}

func (m *MockReportRepository) ListActiveSubscriptions(ctx context.Context, username string) ([]*models.Subscription, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscription), args.Error(1)
}

func (m *MockReportRepository) ListActiveSubscriptionsByRenewalMonth(ctx context.Context, username string, month, year int) ([]*models.Subscription, error) {
	args := m.Called(ctx, username, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscription), args.Error(1)
}

func (m *MockReportRepository) GetCurrentBudget(ctx context.Context, username string) (*models.Budget, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Budget), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReportService_MonthlyExpenses_EmptyMonth(t *testing.T) {
	repo := new(MockReportRepository)
	repo.On("ListExpensesByMonth", mock.Anything, "testuser", 7, 2025).Return([]*models.Expense{}, nil)

	service := NewReportService(repo, discardLogger())
	got, err := service.MonthlyExpenses(context.Background(), "testuser", 7, 2025)

	require.NoError(t, err)
	assert.Zero(t, got.Total)
	assert.Empty(t, got.Expenses)
}

func TestReportService_MonthlySubscriptions_TotalOverAllActive(t *testing.T) {
	// итог считается по всем активным подпискам, даже когда в текущем
	// месяце ни одна не продлевается
	repo := new(MockReportRepository)
	repo.On("ListActiveSubscriptionsByRenewalMonth", mock.Anything, "testuser", 3, 2025).
		Return([]*models.Subscription{}, nil)
	repo.On("ListActiveSubscriptions", mock.Anything, "testuser").Return([]*models.Subscription{
		{Title: "Insurance", Amount: 120, Frequency: models.FrequencyYearly, IsActive: true},
		{Title: "Netflix", Amount: 10, Frequency: models.FrequencyMonthly, IsActive: true},
	}, nil)

	service := NewReportService(repo, discardLogger())
	got, err := service.MonthlySubscriptions(context.Background(), "testuser", 3, 2025)

	require.NoError(t, err)
	assert.Empty(t, got.Subscriptions)
	assert.InDelta(t, 20.0, got.Total, 0.001) // 120/12 + 10
}

func TestReportService_YearlySubscriptions(t *testing.T) {
	repo := new(MockReportRepository)
	repo.On("ListActiveSubscriptions", mock.Anything, "testuser").Return([]*models.Subscription{
		{Title: "Insurance", Amount: 120, Frequency: models.FrequencyYearly, IsActive: true},
		{Title: "Netflix", Amount: 10, Frequency: models.FrequencyMonthly, IsActive: true},
	}, nil)

	service := NewReportService(repo, discardLogger())
	got, err := service.YearlySubscriptions(context.Background(), "testuser", 2025)

	require.NoError(t, err)
	assert.Len(t, got.Subscriptions, 2)
	assert.InDelta(t, 240.0, got.Total, 0.001) // 120 + 10*12
}

func TestReportService_Dashboard(t *testing.T) {
	repo := new(MockReportRepository)
	repo.On("ListExpensesByMonth", mock.Anything, "testuser", 3, 2025).Return([]*models.Expense{
		{Title: "Groceries", Amount: 30},
	}, nil)
	repo.On("ListActiveSubscriptions", mock.Anything, "testuser").Return([]*models.Subscription{
		{Title: "Netflix", Amount: 20, Frequency: models.FrequencyMonthly, IsActive: true},
	}, nil)
	repo.On("GetCurrentBudget", mock.Anything, "testuser").Return(&models.Budget{Amount: 100, IsActive: true}, nil)

	service := NewReportService(repo, discardLogger())
	got, err := service.Dashboard(context.Background(), "testuser", 3, 2025)

	require.NoError(t, err)
	assert.InDelta(t, 30.0, got.TotalExpenses, 0.001)
	assert.InDelta(t, 20.0, got.TotalSubscriptions, 0.001)
	assert.InDelta(t, 100.0, got.Budget, 0.001)
	assert.InDelta(t, 50.0, got.RemainingBudget, 0.001)
}

func TestReportService_Calendar(t *testing.T) {
	renewal := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name                   string
		budget                 *models.Budget
		subs                   []*models.Subscription
		wantTotalSubscriptions float64
		wantRemaining          float64
		wantBudget             float64
		wantHasBudget          bool
	}{
		{
			name:   "Годовая подписка в календаре",
			budget: &models.Budget{Amount: 200, IsActive: true},
			subs: []*models.Subscription{
				{Title: "Insurance", Amount: 120, Frequency: models.FrequencyYearly, RenewalDate: renewal, IsActive: true},
			},
			// сырая сумма списаний в total_subscriptions, месячный эквивалент в остатке
			wantTotalSubscriptions: 120,
			wantRemaining:          200 - 30 - 10,
			wantBudget:             200,
			wantHasBudget:          true,
		},
		{
			name:                   "Без активного бюджета остаток всё равно считается",
			budget:                 nil,
			subs:                   []*models.Subscription{},
			wantTotalSubscriptions: 0,
			wantRemaining:          -30,
			wantBudget:             0,
			wantHasBudget:          false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockReportRepository)
			repo.On("ListExpensesByMonth", mock.Anything, "testuser", 3, 2025).Return([]*models.Expense{
				{Title: "Groceries", Amount: 30},
			}, nil)
			repo.On("ListActiveSubscriptionsByRenewalMonth", mock.Anything, "testuser", 3, 2025).Return(tt.subs, nil)
			repo.On("GetCurrentBudget", mock.Anything, "testuser").Return(tt.budget, nil)

			service := NewReportService(repo, discardLogger())
			got, err := service.Calendar(context.Background(), "testuser", 3, 2025)

			require.NoError(t, err)
			assert.InDelta(t, 30.0, got.Summary.TotalExpenses, 0.001)
			assert.InDelta(t, tt.wantTotalSubscriptions, got.Summary.TotalSubscriptions, 0.001)
			assert.InDelta(t, tt.wantRemaining, got.Summary.RemainingBudget, 0.001)
			assert.InDelta(t, tt.wantBudget, got.Summary.Budget, 0.001)
			assert.Equal(t, tt.wantHasBudget, got.Summary.HasBudget)
		})
	}
}
