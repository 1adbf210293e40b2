package summary

import (
	"testing"

	"github.com/magabrotheeeer/finance-aggregator/internal/models"
)

func TestMonthlyEquivalent(t *testing.T) {
	tests := []struct {
		name string
		sub  *models.Subscription
		want float64
	}{
		{
			name: "monthly subscription passes through",
			sub:  &models.Subscription{Amount: 10, Frequency: models.FrequencyMonthly},
			want: 10,
		},
		{
			name: "yearly subscription amortized over twelve months",
			sub:  &models.Subscription{Amount: 120, Frequency: models.FrequencyYearly},
			want: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthlyEquivalent(tt.sub); got != tt.want {
				t.Errorf("MonthlyEquivalent = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestYearlyEquivalent(t *testing.T) {
	tests := []struct {
		name string
		sub  *models.Subscription
		want float64
	}{
		{
			name: "monthly subscription annualized",
			sub:  &models.Subscription{Amount: 10, Frequency: models.FrequencyMonthly},
			want: 120,
		},
		{
			name: "yearly subscription passes through",
			sub:  &models.Subscription{Amount: 120, Frequency: models.FrequencyYearly},
			want: 120,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := YearlyEquivalent(tt.sub); got != tt.want {
				t.Errorf("YearlyEquivalent = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTotals(t *testing.T) {
	subs := []*models.Subscription{
		{Amount: 120, Frequency: models.FrequencyYearly},
		{Amount: 10, Frequency: models.FrequencyMonthly},
	}

	if got := TotalMonthlyEquivalent(subs); got != 20 {
		t.Errorf("TotalMonthlyEquivalent = %v, want 20", got)
	}
	if got := TotalYearlyEquivalent(subs); got != 240 {
		t.Errorf("TotalYearlyEquivalent = %v, want 240", got)
	}
	if got := TotalAmounts(subs); got != 130 {
		t.Errorf("TotalAmounts = %v, want 130", got)
	}
}

func TestTotals_EmptyCollectionsAreZero(t *testing.T) {
	if got := TotalExpenses(nil); got != 0 {
		t.Errorf("TotalExpenses(nil) = %v, want 0", got)
	}
	if got := TotalMonthlyEquivalent(nil); got != 0 {
		t.Errorf("TotalMonthlyEquivalent(nil) = %v, want 0", got)
	}
	if got := TotalYearlyEquivalent(nil); got != 0 {
		t.Errorf("TotalYearlyEquivalent(nil) = %v, want 0", got)
	}
}

func TestRemainingBudget(t *testing.T) {
	tests := []struct {
		name                     string
		budget, expenses, subs   float64
		want                     float64
	}{
		{name: "dashboard example", budget: 100, expenses: 30, subs: 20, want: 50},
		{name: "absent budget still computed", budget: 0, expenses: 30, subs: 20, want: -50},
		{name: "all zero", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RemainingBudget(tt.budget, tt.expenses, tt.subs); got != tt.want {
				t.Errorf("RemainingBudget = %v, want %v", got, tt.want)
			}
		})
	}
}
