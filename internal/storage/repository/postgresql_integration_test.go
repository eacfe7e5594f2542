package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yousrr/FitZone/internal/models"
)

func testMember(uid string) models.Member {
	return models.Member{
		UID:               uid,
		Email:             uid + "@example.com",
		FirstName:         "Test",
		LastName:          "Member",
		DateOfBirth:       "1990-01-01",
		TrainingFrequency: "3-4/week",
		CreatedAt:         time.Now().UTC(),
	}
}

func testSubscription(uid string, planID *string) models.Subscription {
	now := time.Now().UTC()
	return models.Subscription{
		ID:        uid,
		UserUID:   uid,
		PlanID:    planID,
		Status:    models.SubscriptionStatusActive,
		StartDate: now,
		EndDate:   now.AddDate(1, 0, 0),
	}
}

func TestStorage_GetContractCode(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreatePlan(t, "pro", "Pro Membership", 59)
	planID := "pro"
	expiresAt := time.Now().Add(24 * time.Hour).UTC()
	factory.CreateContractCode(t, "GYM-0001", models.CodeStatusActive, &expiresAt, &planID)

	t.Run("существующий код", func(t *testing.T) {
		code, err := storage.GetContractCode(context.Background(), "GYM-0001")
		require.NoError(t, err)
		assert.Equal(t, "GYM-0001", code.Code)
		assert.Equal(t, models.CodeStatusActive, code.Status)
		require.NotNil(t, code.PlanID)
		assert.Equal(t, "pro", *code.PlanID)
		require.NotNil(t, code.ExpiresAt)
		assert.WithinDuration(t, expiresAt, *code.ExpiresAt, time.Second)
		assert.Nil(t, code.UsedBy)
		assert.Nil(t, code.UsedAt)
	})

	t.Run("несуществующий код", func(t *testing.T) {
		_, err := storage.GetContractCode(context.Background(), "NOPE")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStorage_RedeemContractCode(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreatePlan(t, "pro", "Pro Membership", 59)
	planID := "pro"
	factory.CreateContractCode(t, "GYM-0001", models.CodeStatusActive, nil, &planID)

	uid := uuid.New().String()
	err := storage.RedeemContractCode(context.Background(), "GYM-0001",
		testMember(uid), testSubscription(uid, &planID))
	require.NoError(t, err)

	// Код переведен в USED с отметкой о владельце.
	code, err := storage.GetContractCode(context.Background(), "GYM-0001")
	require.NoError(t, err)
	assert.Equal(t, models.CodeStatusUsed, code.Status)
	require.NotNil(t, code.UsedBy)
	assert.Equal(t, uid, *code.UsedBy)
	require.NotNil(t, code.UsedAt)

	// Участник и подписка записаны в той же транзакции.
	member, err := storage.GetMember(context.Background(), uid)
	require.NoError(t, err)
	assert.Equal(t, uid+"@example.com", member.Email)

	sub, err := storage.GetSubscription(context.Background(), uid)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusActive, sub.Status)
	require.NotNil(t, sub.PlanID)
	assert.Equal(t, "pro", *sub.PlanID)

	// Повторное погашение того же кода отклоняется.
	otherUID := uuid.New().String()
	err = storage.RedeemContractCode(context.Background(), "GYM-0001",
		testMember(otherUID), testSubscription(otherUID, &planID))
	assert.ErrorIs(t, err, ErrCodeConflict)

	// Проигравшая транзакция не оставила следов.
	_, err = storage.GetMember(context.Background(), otherUID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStorage_RedeemContractCode_Concurrent(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreateContractCode(t, "GYM-0001", models.CodeStatusActive, nil, nil)

	const attempts = 8
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := range attempts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			uid := uuid.New().String()
			errs[i] = storage.RedeemContractCode(context.Background(), "GYM-0001",
				testMember(uid), testSubscription(uid, nil))
		}(i)
	}
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrCodeConflict)
		}
	}
	// Из гонящихся регистраций фиксируется ровно одна.
	assert.Equal(t, 1, succeeded)

	var members int
	err := storage.DB.QueryRow("SELECT COUNT(*) FROM members").Scan(&members)
	require.NoError(t, err)
	assert.Equal(t, 1, members)
}

func TestStorage_Accounts(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	account := models.Account{
		UID:          uuid.New().String(),
		Email:        "a@b.com",
		PasswordHash: "hashed",
		DisplayName:  "A B",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, storage.CreateAccount(context.Background(), account))

	t.Run("повторный email отклоняется", func(t *testing.T) {
		dup := account
		dup.UID = uuid.New().String()
		err := storage.CreateAccount(context.Background(), dup)
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("поиск по email", func(t *testing.T) {
		found, err := storage.GetAccountByEmail(context.Background(), "a@b.com")
		require.NoError(t, err)
		assert.Equal(t, account.UID, found.UID)
		assert.Equal(t, "A B", found.DisplayName)
	})

	t.Run("поиск по uid", func(t *testing.T) {
		found, err := storage.GetAccount(context.Background(), account.UID)
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", found.Email)
	})

	t.Run("несуществующая учетная запись", func(t *testing.T) {
		_, err := storage.GetAccountByEmail(context.Background(), "nope@b.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStorage_ListSessions(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreateSession(t, "s1", "Morning CrossFit", "monday", "CrossFit")
	factory.CreateSession(t, "s2", "Power Yoga", "tuesday", "Yoga")
	factory.CreateSession(t, "s3", "Evening Yoga", "monday", "Yoga")

	tests := []struct {
		name    string
		filter  models.ScheduleFilter
		wantIDs []string
	}{
		{
			name:    "без фильтра",
			filter:  models.ScheduleFilter{},
			wantIDs: []string{"s1", "s2", "s3"},
		},
		{
			name:    "фильтр по дню",
			filter:  models.ScheduleFilter{DayOfWeek: "monday"},
			wantIDs: []string{"s1", "s3"},
		},
		{
			name:    "фильтр по категории",
			filter:  models.ScheduleFilter{Category: "Yoga"},
			wantIDs: []string{"s2", "s3"},
		},
		{
			name:    "пересечение фильтров",
			filter:  models.ScheduleFilter{DayOfWeek: "monday", Category: "Yoga"},
			wantIDs: []string{"s3"},
		},
		{
			name:   "нет совпадений",
			filter: models.ScheduleFilter{DayOfWeek: "friday"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions, err := storage.ListSessions(context.Background(), tt.filter)
			require.NoError(t, err)

			gotIDs := make([]string, 0, len(sessions))
			for _, s := range sessions {
				gotIDs = append(gotIDs, s.ID)
			}
			assert.ElementsMatch(t, tt.wantIDs, gotIDs)
		})
	}
}

func TestStorage_Catalog(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)

	t.Run("пустой каталог", func(t *testing.T) {
		plans, err := storage.ListPlans(context.Background())
		require.NoError(t, err)
		assert.Empty(t, plans)
	})

	factory.CreatePlan(t, "basic", "Basic", 29)
	factory.CreatePlan(t, "pro", "Pro Membership", 59)

	t.Run("планы в порядке цены", func(t *testing.T) {
		plans, err := storage.ListPlans(context.Background())
		require.NoError(t, err)
		require.Len(t, plans, 2)
		assert.Equal(t, "basic", plans[0].ID)
		assert.Equal(t, "pro", plans[1].ID)
	})

	t.Run("план по id", func(t *testing.T) {
		plan, err := storage.GetPlan(context.Background(), "pro")
		require.NoError(t, err)
		assert.Equal(t, "Pro Membership", plan.Name)
	})

	t.Run("несуществующий план", func(t *testing.T) {
		_, err := storage.GetPlan(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStorage_CreateVisitRequest(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	visit := models.VisitRequest{
		ID:            uuid.New().String(),
		FullName:      "A B",
		Phone:         "+10000000000",
		PreferredDate: "2026-09-10",
		PreferredTime: "18:00",
		Message:       "first visit",
		CreatedAt:     time.Now().UTC(),
	}
	require.NoError(t, storage.CreateVisitRequest(context.Background(), visit))

	var count int
	err := storage.DB.QueryRow("SELECT COUNT(*) FROM visits WHERE id = $1", visit.ID).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
