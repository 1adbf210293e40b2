// Package renewal содержит чистую календарную арифметику продления подписок:
// вычисление следующей даты списания с учётом разной длины месяцев.
package renewal

import (
	"time"

	"github.com/magabrotheeeer/finance-aggregator/internal/models"
)

// Next возвращает следующую дату списания для подписки с заданной
// периодичностью. Функция тотальна: для любой корректной календарной
// даты результат определён и ошибок не возникает.
//
// Для monthly месяц увеличивается на один (декабрь переходит в январь
// следующего года), день по возможности сохраняется. Если в целевом
// месяце меньше дней, чем в исходной дате (например, 31-е число при
// переходе в 30-дневный месяц или в февраль), дата прижимается
// к последнему дню целевого месяца с учётом високосных лет.
//
// Для yearly действует то же правило с шагом в двенадцать месяцев:
// 29 февраля високосного года переходит в 28 февраля невисокосного.
func Next(current time.Time, frequency string) time.Time {
	if frequency == models.FrequencyYearly {
		return addMonthsClamped(current, 12)
	}
	return addMonthsClamped(current, 1)
}

// addMonthsClamped сдвигает дату на months месяцев вперёд, прижимая
// день к последнему дню целевого месяца. time.AddDate здесь не подходит:
// он нормализует переполнение переносом в следующий месяц
// (31 января + месяц = 2 или 3 марта).
func addMonthsClamped(d time.Time, months int) time.Time {
	year, month, day := d.Date()

	firstOfTarget := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, d.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, d.Location())
}

// Advance вычисляет следующую дату списания подписки и записывает её
// обратно в структуру. Сохранение изменённой записи остаётся
// на вызывающей стороне.
func Advance(sub *models.Subscription) {
	sub.RenewalDate = Next(sub.RenewalDate, sub.Frequency)
}
