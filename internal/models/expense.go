// Package models содержит доменные структуры приложения: расходы, подписки,
// бюджеты, пользователей и счётчики использования чата, а также вспомогательные
// типы для приёма данных из внешних источников (например, JSON-запросов).
package models

import "time"

// Expense представляет собой разовый расход пользователя.
// Дата хранится как календарная дата без компонента времени.
type Expense struct {
	ID          int       `json:"id"`          // Идентификатор записи
	Title       string    `json:"title"`       // Название расхода
	Date        time.Time `json:"date"`        // Дата расхода
	Amount      float64   `json:"amount"`      // Сумма расхода (>0)
	Category    string    `json:"category"`    // Категория расхода
	Description string    `json:"description"` // Описание (опционально)
	Username    string    `json:"username"`    // Имя пользователя-владельца
	UserUID     string    `json:"-"`           // UID пользователя-владельца
	CreatedAt   time.Time `json:"created_at"`  // Время создания записи
}

// DummyExpense используется для приёма данных расхода из JSON-запроса,
// прежде чем конвертировать их в Expense. Дата приходит строкой
// в формате 2006-01-02, чтобы её можно было валидировать и парсить вручную.
type DummyExpense struct {
	Title       string  `json:"title" validate:"required"`        // Название расхода
	Date        string  `json:"date" validate:"required"`         // Дата в формате 2006-01-02
	Amount      float64 `json:"amount" validate:"required,gt=0"`  // Сумма (>0)
	Category    string  `json:"category" validate:"required"`     // Категория
	Description string  `json:"description" validate:"omitempty"` // Описание (опционально)
}
