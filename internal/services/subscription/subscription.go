// Package services содержит бизнес-логику для управления подписками и кешированием.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/finance-aggregator/internal/lib/renewal"
	"github.com/magabrotheeeer/finance-aggregator/internal/models"
)

// SubscriptionRepository определяет методы для работы с подписками в хранилище.
type SubscriptionRepository interface {
	// CreateSubscription добавляет новую подписку и возвращает её ID.
	CreateSubscription(ctx context.Context, sub models.Subscription) (int, error)
	// ReadSubscription возвращает подписку пользователя по ID.
	ReadSubscription(ctx context.Context, id int, username string) (*models.Subscription, error)
	// UpdateSubscription обновляет данные подписки по ID.
	UpdateSubscription(ctx context.Context, sub models.Subscription, id int, username string) (int, error)
	// RemoveSubscription удаляет подписку по ID и возвращает количество удалённых записей.
	RemoveSubscription(ctx context.Context, id int, username string) (int, error)
	// ListSubscriptions возвращает все подписки пользователя.
	ListSubscriptions(ctx context.Context, username string) ([]*models.Subscription, error)
	// ListActiveSubscriptions возвращает только активные подписки пользователя.
	ListActiveSubscriptions(ctx context.Context, username string) ([]*models.Subscription, error)
	// UpdateRenewalDate записывает новую дату продления подписки.
	UpdateRenewalDate(ctx context.Context, id int, username string, renewalDate time.Time) (int, error)
	// ToggleSubscriptionActive инвертирует флаг активности и возвращает новое значение.
	ToggleSubscriptionActive(ctx context.Context, id int, username string) (bool, error)
	// ReactivateSubscription включает подписку с новой датой продления.
	ReactivateSubscription(ctx context.Context, id int, username string, renewalDate time.Time) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// SubscriptionService реализует бизнес-логику работы с подписками, включая кеширование.
type SubscriptionService struct {
	repo  SubscriptionRepository
	cache Cache
	log   *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, cache Cache, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create создает новую подписку для пользователя, кеширует её и возвращает ID.
func (s *SubscriptionService) Create(ctx context.Context, username, userUID string, req models.DummySubscription) (int, error) {
	renewalDate, err := time.Parse("2006-01-02", req.RenewalDate)
	if err != nil {
		return 0, fmt.Errorf("invalid renewal date: %w", err)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	sub := models.Subscription{
		Title:       req.Title,
		Amount:      req.Amount,
		Frequency:   req.Frequency,
		RenewalDate: renewalDate,
		Category:    req.Category,
		IsActive:    isActive,
		Username:    username,
		UserUID:     userUID,
	}

	id, err := s.repo.CreateSubscription(ctx, sub)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new subscription", slog.Int("id", id))

	cacheKey := fmt.Sprintf("subscription:%d", id)
	if err := s.cache.Set(cacheKey, sub, time.Hour); err != nil {
		s.log.Warn("failed to cache subscription", slog.String("key", cacheKey), slog.Any("err", err))
	}

	return id, nil
}

// Read возвращает подписку по ID, используя кеш или репозиторий.
func (s *SubscriptionService) Read(ctx context.Context, id int, username string) (*models.Subscription, error) {
	var result *models.Subscription
	cacheKey := fmt.Sprintf("subscription:%d", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found && result != nil && result.Username == username {
		return result, nil
	}

	result, err = s.repo.ReadSubscription(ctx, id, username)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// Update обновляет подписку и обновляет кеш.
func (s *SubscriptionService) Update(ctx context.Context, req models.DummySubscription, id int, username string) (int, error) {
	renewalDate, err := time.Parse("2006-01-02", req.RenewalDate)
	if err != nil {
		return 0, fmt.Errorf("invalid renewal date: %w", err)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	sub := models.Subscription{
		Title:       req.Title,
		Amount:      req.Amount,
		Frequency:   req.Frequency,
		RenewalDate: renewalDate,
		Category:    req.Category,
		IsActive:    isActive,
		Username:    username,
	}
	res, err := s.repo.UpdateSubscription(ctx, sub, id, username)
	if err != nil {
		return 0, err
	}
	s.log.Info("updated subscription", slog.Int("id", id))

	cacheKey := fmt.Sprintf("subscription:%d", id)
	if err := s.cache.Set(cacheKey, sub, time.Hour); err != nil {
		s.log.Warn("failed to cache subscription", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return res, nil
}

// Remove удаляет подписку по ID и инвалидирует кеш.
func (s *SubscriptionService) Remove(ctx context.Context, id int, username string) (int, error) {
	cacheKey := fmt.Sprintf("subscription:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return s.repo.RemoveSubscription(ctx, id, username)
}

// List возвращает все подписки пользователя.
func (s *SubscriptionService) List(ctx context.Context, username string) ([]*models.Subscription, error) {
	return s.repo.ListSubscriptions(ctx, username)
}

// ListActive возвращает только активные подписки пользователя.
func (s *SubscriptionService) ListActive(ctx context.Context, username string) ([]*models.Subscription, error) {
	return s.repo.ListActiveSubscriptions(ctx, username)
}

// Renew продвигает дату продления подписки на один расчётный период вперёд.
// День продления прижимается к последнему дню короткого месяца.
func (s *SubscriptionService) Renew(ctx context.Context, id int, username string) (*models.Subscription, error) {
	sub, err := s.repo.ReadSubscription(ctx, id, username)
	if err != nil {
		return nil, err
	}

	renewal.Advance(sub)
	if _, err := s.repo.UpdateRenewalDate(ctx, id, username, sub.RenewalDate); err != nil {
		return nil, err
	}
	s.log.Info("renewed subscription",
		slog.Int("id", id),
		slog.String("renewal_date", sub.RenewalDate.Format("2006-01-02")))

	cacheKey := fmt.Sprintf("subscription:%d", id)
	if err := s.cache.Set(cacheKey, sub, time.Hour); err != nil {
		s.log.Warn("failed to cache subscription", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return sub, nil
}

// Toggle переключает активность подписки и возвращает новое значение флага.
func (s *SubscriptionService) Toggle(ctx context.Context, id int, username string) (bool, error) {
	isActive, err := s.repo.ToggleSubscriptionActive(ctx, id, username)
	if err != nil {
		return false, err
	}
	cacheKey := fmt.Sprintf("subscription:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return isActive, nil
}

// Reactivate включает ранее отключённую подписку с новой датой продления.
// Дата берётся из запроса как есть, без продвижения на период.
func (s *SubscriptionService) Reactivate(ctx context.Context, id int, username string, req models.DummyReactivate) (*models.Subscription, error) {
	renewalDate, err := time.Parse("2006-01-02", req.RenewalDate)
	if err != nil {
		return nil, fmt.Errorf("invalid renewal date: %w", err)
	}

	if _, err := s.repo.ReactivateSubscription(ctx, id, username, renewalDate); err != nil {
		return nil, err
	}
	s.log.Info("reactivated subscription", slog.Int("id", id))

	cacheKey := fmt.Sprintf("subscription:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return s.repo.ReadSubscription(ctx, id, username)
}
