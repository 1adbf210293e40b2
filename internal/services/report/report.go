// Package services содержит бизнес-логику сводных отчётов: итоги расходов,
// стоимость подписок, календарь месяца и сводка для дашборда.
package services

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/finance-aggregator/internal/lib/summary"
	"github.com/magabrotheeeer/finance-aggregator/internal/models"
)

// ReportRepository определяет методы хранилища, необходимые для построения отчётов.
type ReportRepository interface {
	// ListExpenses возвращает все расходы пользователя.
	ListExpenses(ctx context.Context, username string) ([]*models.Expense, error)
	// ListExpensesByMonth возвращает расходы пользователя за месяц.
	ListExpensesByMonth(ctx context.Context, username string, month, year int) ([]*models.Expense, error)
	// ListExpensesByYear возвращает расходы пользователя за год.
	ListExpensesByYear(ctx context.Context, username string, year int) ([]*models.Expense, error)
	// ListActiveSubscriptions возвращает активные подписки пользователя.
	ListActiveSubscriptions(ctx context.Context, username string) ([]*models.Subscription, error)
	// ListActiveSubscriptionsByRenewalMonth возвращает активные подписки с продлением в указанном месяце.
	ListActiveSubscriptionsByRenewalMonth(ctx context.Context, username string, month, year int) ([]*models.Subscription, error)
	// GetCurrentBudget возвращает активный бюджет или (nil, nil), если его нет.
	GetCurrentBudget(ctx context.Context, username string) (*models.Budget, error)
}

// MonthlyExpenseSummary — итог расходов за месяц вместе со списком расходов.
type MonthlyExpenseSummary struct {
	Month    int               `json:"month"`
	Year     int               `json:"year"`
	Total    float64           `json:"total"`
	Expenses []*models.Expense `json:"expenses"`
}

// YearlyExpenseSummary — итог расходов за год.
type YearlyExpenseSummary struct {
	Year     int               `json:"year"`
	Total    float64           `json:"total"`
	Expenses []*models.Expense `json:"expenses"`
}

// AllTimeExpenseSummary — итог расходов за всё время.
type AllTimeExpenseSummary struct {
	Total    float64           `json:"total"`
	Expenses []*models.Expense `json:"expenses"`
}

// MonthlySubscriptionSummary — стоимость подписок в месячном выражении.
// В список попадают только подписки с продлением в текущем месяце,
// а итог считается по всем активным подпискам.
type MonthlySubscriptionSummary struct {
	Month         int                    `json:"month"`
	Year          int                    `json:"year"`
	Total         float64                `json:"total"`
	Subscriptions []*models.Subscription `json:"subscriptions"`
}

// YearlySubscriptionSummary — стоимость всех активных подписок в годовом выражении.
type YearlySubscriptionSummary struct {
	Year          int                    `json:"year"`
	Total         float64                `json:"total"`
	Subscriptions []*models.Subscription `json:"subscriptions"`
}

// CalendarSummary — сводная часть календарного отчёта.
type CalendarSummary struct {
	TotalExpenses      float64 `json:"total_expenses"`
	TotalSubscriptions float64 `json:"total_subscriptions"`
	RemainingBudget    float64 `json:"remaining_budget"`
	Budget             float64 `json:"budget"`
	HasBudget          bool    `json:"has_budget"`
}

// CalendarView — расходы и подписки месяца для календаря.
type CalendarView struct {
	Month         int                    `json:"month"`
	Year          int                    `json:"year"`
	Expenses      []*models.Expense      `json:"expenses"`
	Subscriptions []*models.Subscription `json:"subscriptions"`
	Summary       CalendarSummary        `json:"summary"`
}

// DashboardSummary — сводка текущего месяца для дашборда.
type DashboardSummary struct {
	TotalExpenses      float64 `json:"total_expenses"`
	TotalSubscriptions float64 `json:"total_subscriptions"`
	Budget             float64 `json:"budget"`
	RemainingBudget    float64 `json:"remaining_budget"`
}

// ReportService строит сводные отчёты по данным пользователя.
type ReportService struct {
	repo ReportRepository
	log  *slog.Logger
}

// NewReportService создает новый экземпляр ReportService.
func NewReportService(repo ReportRepository, log *slog.Logger) *ReportService {
	return &ReportService{
		repo: repo,
		log:  log,
	}
}

// MonthlyExpenses возвращает расходы пользователя за месяц с итоговой суммой.
func (s *ReportService) MonthlyExpenses(ctx context.Context, username string, month, year int) (*MonthlyExpenseSummary, error) {
	expenses, err := s.repo.ListExpensesByMonth(ctx, username, month, year)
	if err != nil {
		return nil, err
	}
	return &MonthlyExpenseSummary{
		Month:    month,
		Year:     year,
		Total:    summary.TotalExpenses(expenses),
		Expenses: expenses,
	}, nil
}

// YearlyExpenses возвращает расходы пользователя за год с итоговой суммой.
func (s *ReportService) YearlyExpenses(ctx context.Context, username string, year int) (*YearlyExpenseSummary, error) {
	expenses, err := s.repo.ListExpensesByYear(ctx, username, year)
	if err != nil {
		return nil, err
	}
	return &YearlyExpenseSummary{
		Year:     year,
		Total:    summary.TotalExpenses(expenses),
		Expenses: expenses,
	}, nil
}

// AllTimeExpenses возвращает все расходы пользователя с итоговой суммой.
func (s *ReportService) AllTimeExpenses(ctx context.Context, username string) (*AllTimeExpenseSummary, error) {
	expenses, err := s.repo.ListExpenses(ctx, username)
	if err != nil {
		return nil, err
	}
	return &AllTimeExpenseSummary{
		Total:    summary.TotalExpenses(expenses),
		Expenses: expenses,
	}, nil
}

// MonthlySubscriptions возвращает подписки с продлением в указанном месяце
// и месячную стоимость всех активных подписок. Итог намеренно считается по
// всем активным подпискам, даже когда список за месяц пуст.
func (s *ReportService) MonthlySubscriptions(ctx context.Context, username string, month, year int) (*MonthlySubscriptionSummary, error) {
	dueThisMonth, err := s.repo.ListActiveSubscriptionsByRenewalMonth(ctx, username, month, year)
	if err != nil {
		return nil, err
	}
	allActive, err := s.repo.ListActiveSubscriptions(ctx, username)
	if err != nil {
		return nil, err
	}
	return &MonthlySubscriptionSummary{
		Month:         month,
		Year:          year,
		Total:         summary.TotalMonthlyEquivalent(allActive),
		Subscriptions: dueThisMonth,
	}, nil
}

// YearlySubscriptions возвращает все активные подписки и их годовую стоимость.
func (s *ReportService) YearlySubscriptions(ctx context.Context, username string, year int) (*YearlySubscriptionSummary, error) {
	allActive, err := s.repo.ListActiveSubscriptions(ctx, username)
	if err != nil {
		return nil, err
	}
	return &YearlySubscriptionSummary{
		Year:          year,
		Total:         summary.TotalYearlyEquivalent(allActive),
		Subscriptions: allActive,
	}, nil
}

// Calendar возвращает расходы и подписки месяца со сводкой. В остаток бюджета
// входит месячный эквивалент только подписок, продлевающихся в этом месяце,
// тогда как total_subscriptions — сырая сумма их списаний.
func (s *ReportService) Calendar(ctx context.Context, username string, month, year int) (*CalendarView, error) {
	expenses, err := s.repo.ListExpensesByMonth(ctx, username, month, year)
	if err != nil {
		return nil, err
	}
	subs, err := s.repo.ListActiveSubscriptionsByRenewalMonth(ctx, username, month, year)
	if err != nil {
		return nil, err
	}
	budget, err := s.repo.GetCurrentBudget(ctx, username)
	if err != nil {
		return nil, err
	}

	budgetAmount := 0.0
	if budget != nil {
		budgetAmount = budget.Amount
	}
	totalExpenses := summary.TotalExpenses(expenses)
	remaining := summary.RemainingBudget(budgetAmount, totalExpenses, summary.TotalMonthlyEquivalent(subs))

	return &CalendarView{
		Month:         month,
		Year:          year,
		Expenses:      expenses,
		Subscriptions: subs,
		Summary: CalendarSummary{
			TotalExpenses:      totalExpenses,
			TotalSubscriptions: summary.TotalAmounts(subs),
			RemainingBudget:    remaining,
			Budget:             budgetAmount,
			HasBudget:          budget != nil,
		},
	}, nil
}

// Dashboard возвращает сводку текущего месяца: расходы, месячную стоимость
// всех активных подписок и остаток бюджета.
func (s *ReportService) Dashboard(ctx context.Context, username string, month, year int) (*DashboardSummary, error) {
	expenses, err := s.repo.ListExpensesByMonth(ctx, username, month, year)
	if err != nil {
		return nil, err
	}
	allActive, err := s.repo.ListActiveSubscriptions(ctx, username)
	if err != nil {
		return nil, err
	}
	budget, err := s.repo.GetCurrentBudget(ctx, username)
	if err != nil {
		return nil, err
	}

	budgetAmount := 0.0
	if budget != nil {
		budgetAmount = budget.Amount
	}
	totalExpenses := summary.TotalExpenses(expenses)
	subsCost := summary.TotalMonthlyEquivalent(allActive)

	return &DashboardSummary{
		TotalExpenses:      totalExpenses,
		TotalSubscriptions: subsCost,
		Budget:             budgetAmount,
		RemainingBudget:    summary.RemainingBudget(budgetAmount, totalExpenses, subsCost),
	}, nil
}
