// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"

	"github.com/magabrotheeeer/finance-aggregator/internal/lib/jwt"
	"github.com/magabrotheeeer/finance-aggregator/internal/lib/password"
	"github.com/magabrotheeeer/finance-aggregator/internal/models"
)

// ErrInvalidCredentials возвращается при неверной паре логин-пароль
// и при неверном текущем пароле в операциях с учётной записью.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, uid string) (*models.User, error)

	// UpdateUserAccount изменяет имя пользователя и хэш пароля.
	UpdateUserAccount(ctx context.Context, uid, newUsername, newPasswordHash string) error
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля и дефолтной ролью "user".
func (s *AuthService) Register(ctx context.Context, req models.DummyRegister) (string, error) {
	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return "", err
	}
	user := models.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hashed,
		Role:         "user", // дефолтная роль при регистрации
	}
	return s.users.RegisterUser(ctx, user)
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *AuthService) Login(ctx context.Context, req models.DummyLogin) (token, role string, err error) {
	user, err := s.users.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, req.Password); err != nil {
		return "", "", ErrInvalidCredentials
	}
	token, err = s.jwtMaker.GenerateToken(user.Username, user.Role, user.UID)
	if err != nil {
		return "", "", err
	}
	return token, user.Role, nil
}

// ValidateToken проверяет JWT и возвращает информацию о пользователе.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, err
	}
	return &models.User{
		Username: claims.Username,
		Role:     claims.Role,
		UID:      claims.UserUID,
	}, nil
}

// UpdateAccount меняет имя пользователя и пароль после проверки текущего пароля.
// Пустые поля запроса означают "оставить как есть".
func (s *AuthService) UpdateAccount(ctx context.Context, userUID string, req models.DummyAccountUpdate) (*models.User, error) {
	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		return nil, err
	}
	if err := password.CompareHash(user.PasswordHash, req.CurrentPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	newUsername := user.Username
	if req.Username != "" {
		newUsername = req.Username
	}
	newHash := user.PasswordHash
	if req.NewPassword != "" {
		newHash, err = password.GetHash(req.NewPassword)
		if err != nil {
			return nil, err
		}
	}

	if err := s.users.UpdateUserAccount(ctx, userUID, newUsername, newHash); err != nil {
		return nil, err
	}
	user.Username = newUsername
	user.PasswordHash = newHash
	return user, nil
}
