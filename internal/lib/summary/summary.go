// Package summary содержит чистые правила агрегации финансовых данных:
// нормализацию стоимости подписок к месячному и годовому выражению
// и суммирование расходов и бюджета. Пакет не обращается к хранилищу,
// все операции детерминированы относительно переданных коллекций.
package summary

import "github.com/magabrotheeeer/finance-aggregator/internal/models"

// MonthlyEquivalent возвращает стоимость подписки в месячном выражении:
// сумма как есть для monthly, сумма/12 для yearly.
func MonthlyEquivalent(sub *models.Subscription) float64 {
	if sub.Frequency == models.FrequencyYearly {
		return sub.Amount / 12
	}
	return sub.Amount
}

// YearlyEquivalent возвращает стоимость подписки в годовом выражении:
// сумма x12 для monthly, сумма как есть для yearly.
func YearlyEquivalent(sub *models.Subscription) float64 {
	if sub.Frequency == models.FrequencyMonthly {
		return sub.Amount * 12
	}
	return sub.Amount
}

// TotalExpenses суммирует расходы. Пустой список даёт ноль.
func TotalExpenses(items []*models.Expense) float64 {
	var total float64
	for _, item := range items {
		total += item.Amount
	}
	return total
}

// TotalAmounts суммирует сырые суммы подписок без нормализации.
func TotalAmounts(subs []*models.Subscription) float64 {
	var total float64
	for _, sub := range subs {
		total += sub.Amount
	}
	return total
}

// TotalMonthlyEquivalent суммирует месячный эквивалент стоимости подписок.
func TotalMonthlyEquivalent(subs []*models.Subscription) float64 {
	var total float64
	for _, sub := range subs {
		total += MonthlyEquivalent(sub)
	}
	return total
}

// TotalYearlyEquivalent суммирует годовой эквивалент стоимости подписок.
func TotalYearlyEquivalent(subs []*models.Subscription) float64 {
	var total float64
	for _, sub := range subs {
		total += YearlyEquivalent(sub)
	}
	return total
}

// RemainingBudget возвращает остаток бюджета после вычета расходов
// и стоимости подписок. Отсутствующий бюджет передаётся нулём,
// результат при этом может быть отрицательным — это не ошибка.
func RemainingBudget(budget, expenses, subscriptionCost float64) float64 {
	return budget - expenses - subscriptionCost
}
