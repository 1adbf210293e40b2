package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Email        string    // Электронная почта
	Username     string    // Имя пользователя (уникальное)
	PasswordHash string    // Хэш пароля пользователя
	Role         string    // Роль пользователя, admin или user
	CreatedAt    time.Time // Время регистрации
}

// DummyRegister используется для приёма данных регистрации из JSON-запроса.
type DummyRegister struct {
	Email    string `json:"email" validate:"required,email"`       // Электронная почта
	Username string `json:"username" validate:"required,alphanum"` // Имя пользователя
	Password string `json:"password" validate:"required,min=8"`    // Пароль
}

// DummyLogin используется для приёма данных авторизации из JSON-запроса.
type DummyLogin struct {
	Username string `json:"username" validate:"required"` // Имя пользователя
	Password string `json:"password" validate:"required"` // Пароль
}

// DummyAccountUpdate используется для приёма данных изменения учётной записи.
// Текущий пароль обязателен, новые имя и пароль опциональны.
type DummyAccountUpdate struct {
	CurrentPassword string `json:"current_password" validate:"required"`       // Текущий пароль
	Username        string `json:"username" validate:"omitempty,alphanum"`     // Новое имя пользователя
	NewPassword     string `json:"new_password" validate:"omitempty,min=8"`    // Новый пароль
}
