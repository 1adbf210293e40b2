package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/finance-aggregator/internal/models"
)

func TestStorage_CreateAndReadExpense(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	userUID := uuid.New().String()
	factory.CreateUser(t, userUID, "testuser", "test@example.com", "hashedpassword", "user")

	gotID, err := storage.CreateExpense(context.Background(), models.Expense{
		Title:    "Groceries",
		Date:     time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		Amount:   42.50,
		Category: "Food",
		Username: "testuser",
		UserUID:  userUID,
	})
	require.NoError(t, err)

	verification := NewTestVerification(storage)
	verification.VerifyExpenseExists(t, gotID)

	got, err := storage.ReadExpense(context.Background(), gotID, "testuser")
	require.NoError(t, err)
	assert.Equal(t, "Groceries", got.Title)
	assert.InDelta(t, 42.50, got.Amount, 0.001)
	assert.Equal(t, "Food", got.Category)
}

func TestStorage_ListExpensesByMonth(t *testing.T) {
	tests := []struct {
		name      string
		month     int
		year      int
		wantCount int
	}{
		{
			name:      "only expenses of the requested month",
			month:     3,
			year:      2025,
			wantCount: 2,
		},
		{
			name:      "same month of a different year is excluded",
			month:     3,
			year:      2024,
			wantCount: 1,
		},
		{
			name:      "empty month",
			month:     7,
			year:      2025,
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			userUID := uuid.New().String()
			factory.CreateUser(t, userUID, "testuser", "test@example.com", "hashedpassword", "user")
			factory.CreateExpense(t, "Groceries", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), 50, "Food", "testuser", userUID)
			factory.CreateExpense(t, "Cinema", time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC), 15, "Entertainment", "testuser", userUID)
			factory.CreateExpense(t, "Old rent", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 700, "Housing", "testuser", userUID)

			got, err := storage.ListExpensesByMonth(context.Background(), "testuser", tt.month, tt.year)
			require.NoError(t, err)
			assert.Len(t, got, tt.wantCount)
		})
	}
}

func TestStorage_ToggleSubscriptionActive(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	userUID := uuid.New().String()
	factory.CreateUser(t, userUID, "testuser", "test@example.com", "hashedpassword", "user")
	renewalDate := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	subID := factory.CreateSubscription(t, "Netflix", 10, "monthly", renewalDate, "Entertainment", true, "testuser", userUID)

	isActive, err := storage.ToggleSubscriptionActive(context.Background(), subID, "testuser")
	require.NoError(t, err)
	assert.False(t, isActive)

	isActive, err = storage.ToggleSubscriptionActive(context.Background(), subID, "testuser")
	require.NoError(t, err)
	assert.True(t, isActive)
}

func TestStorage_ReactivateSubscription(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	userUID := uuid.New().String()
	factory.CreateUser(t, userUID, "testuser", "test@example.com", "hashedpassword", "user")
	oldDate := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	subID := factory.CreateSubscription(t, "Spotify", 5, "monthly", oldDate, "Entertainment", false, "testuser", userUID)

	newDate := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	rowsAffected, err := storage.ReactivateSubscription(context.Background(), subID, "testuser", newDate)
	require.NoError(t, err)
	assert.Equal(t, 1, rowsAffected)

	verification := NewTestVerification(storage)
	verification.VerifySubscriptionRenewalDate(t, subID, newDate)

	got, err := storage.ReadSubscription(context.Background(), subID, "testuser")
	require.NoError(t, err)
	assert.True(t, got.IsActive)
}

func TestStorage_CreateBudget_DeactivatesPrevious(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	userUID := uuid.New().String()
	factory.CreateUser(t, userUID, "testuser", "test@example.com", "hashedpassword", "user")
	factory.CreateBudget(t, 1000, true, "testuser", userUID)

	_, err := storage.CreateBudget(context.Background(), models.Budget{
		Amount:   1500,
		IsActive: true,
		Username: "testuser",
		UserUID:  userUID,
	})
	require.NoError(t, err)

	verification := NewTestVerification(storage)
	verification.VerifyActiveBudgetCount(t, userUID, 1)

	current, err := storage.GetCurrentBudget(context.Background(), "testuser")
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.InDelta(t, 1500, current.Amount, 0.001)
}

func TestStorage_GetCurrentBudget_NoActive(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	userUID := uuid.New().String()
	factory.CreateUser(t, userUID, "testuser", "test@example.com", "hashedpassword", "user")
	factory.CreateBudget(t, 1000, false, "testuser", userUID)

	current, err := storage.GetCurrentBudget(context.Background(), "testuser")
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestStorage_TryIncrementChatUsage(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	userUID := uuid.New().String()
	factory.CreateUser(t, userUID, "testuser", "test@example.com", "hashedpassword", "user")

	weekStart := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	const limit = 3

	for want := 1; want <= limit; want++ {
		count, ok, err := storage.TryIncrementChatUsage(context.Background(), userUID, weekStart, limit)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, want, count)
	}

	// лимит исчерпан, счётчик не растёт
	count, ok, err := storage.TryIncrementChatUsage(context.Background(), userUID, weekStart, limit)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, limit, count)

	// новая неделя начинается с чистого счётчика
	nextWeek := weekStart.AddDate(0, 0, 7)
	count, ok, err = storage.TryIncrementChatUsage(context.Background(), userUID, nextWeek, limit)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, count)
}

func TestStorage_FindSubscriptionsRenewingOn(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	userUID := uuid.New().String()
	factory.CreateUser(t, userUID, "testuser", "test@example.com", "hashedpassword", "user")

	target := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	factory.CreateSubscription(t, "Netflix", 10, "monthly", target, "Entertainment", true, "testuser", userUID)
	factory.CreateSubscription(t, "Inactive", 7, "monthly", target, "Entertainment", false, "testuser", userUID)
	factory.CreateSubscription(t, "Other day", 8, "monthly", target.AddDate(0, 0, 1), "Entertainment", true, "testuser", userUID)

	got, err := storage.FindSubscriptionsRenewingOn(context.Background(), target)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Netflix", got[0].Title)
	assert.Equal(t, "test@example.com", got[0].Email)
}
