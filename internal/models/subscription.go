package models

import "time"

// Возможные значения периодичности списания подписки.
const (
	FrequencyMonthly = "monthly"
	FrequencyYearly  = "yearly"
)

// Subscription представляет собой регулярную подписку пользователя.
// Поле RenewalDate изменяется двумя способами: автоматическим продлением
// (см. lib/renewal) и явной перезаписью при реактивации подписки.
type Subscription struct {
	ID          int       `json:"id"`           // Идентификатор записи
	Title       string    `json:"title"`        // Название подписки
	Amount      float64   `json:"amount"`       // Сумма списания (>0)
	Frequency   string    `json:"frequency"`    // Периодичность: monthly или yearly
	RenewalDate time.Time `json:"renewal_date"` // Дата следующего списания
	Category    string    `json:"category"`     // Категория подписки
	IsActive    bool      `json:"is_active"`    // Активна ли подписка
	Username    string    `json:"username"`     // Имя пользователя-владельца
	UserUID     string    `json:"-"`            // UID пользователя-владельца
	CreatedAt   time.Time `json:"created_at"`   // Время создания записи
}

// DummySubscription используется для приёма данных подписки из JSON-запроса
// до их валидации и преобразования в Subscription. Дата приходит строкой.
type DummySubscription struct {
	Title       string  `json:"title" validate:"required"`                        // Название подписки
	Amount      float64 `json:"amount" validate:"required,gt=0"`                  // Сумма (>0)
	Frequency   string  `json:"frequency" validate:"required,oneof=monthly yearly"` // Периодичность
	RenewalDate string  `json:"renewal_date" validate:"required"`                 // Дата в формате 2006-01-02
	Category    string  `json:"category" validate:"required"`                     // Категория
	IsActive    *bool   `json:"is_active" validate:"omitempty"`                   // Активность (по умолчанию true)
}

// DummyReactivate используется для приёма новой даты списания
// при реактивации ранее отключённой подписки.
type DummyReactivate struct {
	RenewalDate string `json:"renewal_date" validate:"required"` // Дата в формате 2006-01-02
}

// RenewalInfo содержит данные для уведомления пользователя
// о подписке, списание по которой наступает завтра.
type RenewalInfo struct {
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	Title       string    `json:"title"`
	Amount      float64   `json:"amount"`
	RenewalDate time.Time `json:"renewal_date"`
}
