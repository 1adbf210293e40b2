package models

import "time"

// Budget представляет месячный бюджет пользователя.
// Инвариант: у пользователя в каждый момент времени активен не более
// чем один бюджет, это обеспечивается частичным уникальным индексом
// и транзакционной заменой активной записи в хранилище.
type Budget struct {
	ID        int       `json:"id"`         // Идентификатор записи
	Amount    float64   `json:"amount"`     // Месячная сумма бюджета (>0)
	IsActive  bool      `json:"is_active"`  // Является ли бюджет текущим
	Username  string    `json:"username"`   // Имя пользователя-владельца
	UserUID   string    `json:"-"`          // UID пользователя-владельца
	CreatedAt time.Time `json:"created_at"` // Время создания записи
	UpdatedAt time.Time `json:"updated_at"` // Время последнего изменения
}

// YearlyAmount возвращает сумму бюджета в годовом выражении.
func (b *Budget) YearlyAmount() float64 {
	return b.Amount * 12
}

// DummyBudget используется для приёма данных бюджета из JSON-запроса.
type DummyBudget struct {
	Amount   float64 `json:"amount" validate:"required,gt=0"` // Месячная сумма (>0)
	IsActive *bool   `json:"is_active" validate:"omitempty"`  // Активность (по умолчанию true)
}
