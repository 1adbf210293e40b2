package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/finance-aggregator/internal/models"
)

type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) CreateSubscription(ctx context.Context, sub models.Subscription) (int, error) {
	args := m.Called(ctx, sub)
	return args.Int(0), args.Error(1)
}

func (m *MockSubscriptionRepository) ReadSubscription(ctx context.Context, id int, username string) (*models.Subscription, error) {
	args := m.Called(ctx, id, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) UpdateSubscription(ctx context.Context, sub models.Subscription, id int, username string) (int, error) {
	args := m.Called(ctx, sub, id, username)
	return args.Int(0), args.Error(1)
}

func (m *MockSubscriptionRepository) RemoveSubscription(ctx context.Context, id int, username string) (int, error) {
	args := m.Called(ctx, id, username)
	return args.Int(0), args.Error(1)
}

func (m *MockSubscriptionRepository) ListSubscriptions(ctx context.Context, username string) ([]*models.Subscription, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) ListActiveSubscriptions(ctx context.Context, username string) ([]*models.Subscription, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) UpdateRenewalDate(ctx context.Context, id int, username string, renewalDate time.Time) (int, error) {
	args := m.Called(ctx, id, username, renewalDate)
	return args.Int(0), args.Error(1)
}

func (m *MockSubscriptionRepository) ToggleSubscriptionActive(ctx context.Context, id int, username string) (bool, error) {
	args := m.Called(ctx, id, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockSubscriptionRepository) ReactivateSubscription(ctx context.Context, id int, username string, renewalDate time.Time) (int, error) {
	args := m.Called(ctx, id, username, renewalDate)
	return args.Int(0), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSubscriptionService_Renew(t *testing.T) {
	tests := []struct {
		name            string
		frequency       string
		renewalDate     time.Time
		wantRenewalDate time.Time
	}{
		{
			name:            "Месячная подписка продвигается на месяц",
			frequency:       models.FrequencyMonthly,
			renewalDate:     time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
			wantRenewalDate: time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:            "Конец месяца прижимается к короткому месяцу",
			frequency:       models.FrequencyMonthly,
			renewalDate:     time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
			wantRenewalDate: time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:            "Годовая подписка продвигается на год",
			frequency:       models.FrequencyYearly,
			renewalDate:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			wantRenewalDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:            "29 февраля в невисокосном году становится 28-м",
			frequency:       models.FrequencyYearly,
			renewalDate:     time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			wantRenewalDate: time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockSubscriptionRepository)
			cache := new(MockCache)

			sub := &models.Subscription{
				ID:          1,
				Title:       "Netflix",
				Amount:      10,
				Frequency:   tt.frequency,
				RenewalDate: tt.renewalDate,
				IsActive:    true,
				Username:    "testuser",
			}
			repo.On("ReadSubscription", mock.Anything, 1, "testuser").Return(sub, nil)
			repo.On("UpdateRenewalDate", mock.Anything, 1, "testuser", tt.wantRenewalDate).Return(1, nil)
			cache.On("Set", "subscription:1", mock.Anything, time.Hour).Return(nil)

			service := NewSubscriptionService(repo, cache, discardLogger())
			got, err := service.Renew(context.Background(), 1, "testuser")

			require.NoError(t, err)
			assert.Equal(t, tt.wantRenewalDate, got.RenewalDate)
			repo.AssertExpectations(t)
		})
	}
}

func TestSubscriptionService_Reactivate(t *testing.T) {
	repo := new(MockSubscriptionRepository)
	cache := new(MockCache)

	newDate := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	reactivated := &models.Subscription{
		ID:          1,
		Title:       "Spotify",
		Frequency:   models.FrequencyMonthly,
		RenewalDate: newDate,
		IsActive:    true,
		Username:    "testuser",
	}
	// дата из запроса записывается как есть, без продвижения
	repo.On("ReactivateSubscription", mock.Anything, 1, "testuser", newDate).Return(1, nil)
	repo.On("ReadSubscription", mock.Anything, 1, "testuser").Return(reactivated, nil)
	cache.On("Invalidate", "subscription:1").Return(nil)

	service := NewSubscriptionService(repo, cache, discardLogger())
	got, err := service.Reactivate(context.Background(), 1, "testuser", models.DummyReactivate{RenewalDate: "2025-07-01"})

	require.NoError(t, err)
	assert.True(t, got.IsActive)
	assert.Equal(t, newDate, got.RenewalDate)
	repo.AssertExpectations(t)
}

func TestSubscriptionService_Create_DefaultsActive(t *testing.T) {
	repo := new(MockSubscriptionRepository)
	cache := new(MockCache)

	repo.On("CreateSubscription", mock.Anything, mock.MatchedBy(func(sub models.Subscription) bool {
		return sub.IsActive && sub.Title == "Netflix" && sub.Username == "testuser"
	})).Return(7, nil)
	cache.On("Set", "subscription:7", mock.Anything, time.Hour).Return(nil)

	service := NewSubscriptionService(repo, cache, discardLogger())
	id, err := service.Create(context.Background(), "testuser", "uid-1", models.DummySubscription{
		Title:       "Netflix",
		Amount:      10,
		Frequency:   models.FrequencyMonthly,
		RenewalDate: "2025-04-01",
		Category:    "Entertainment",
	})

	require.NoError(t, err)
	assert.Equal(t, 7, id)
	repo.AssertExpectations(t)
}

func TestSubscriptionService_Create_InvalidDate(t *testing.T) {
	service := NewSubscriptionService(new(MockSubscriptionRepository), new(MockCache), discardLogger())
	_, err := service.Create(context.Background(), "testuser", "uid-1", models.DummySubscription{
		Title:       "Netflix",
		Amount:      10,
		Frequency:   models.FrequencyMonthly,
		RenewalDate: "01-04-2025",
		Category:    "Entertainment",
	})
	require.Error(t, err)
}
