package payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"academia/internal/domain/subscription"
)

func testDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: ":memory:"}),
		&gorm.Config{TranslateError: true},
	)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	require.NoError(t, db.AutoMigrate(&subscription.Subscription{}, &Payment{}))
	return db
}

func TestConfirmWithActivation_ActivatesPendingSubscription(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	repo := NewRepository(db)

	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	sub := &subscription.Subscription{
		StudentID: 7,
		StartDate: now.AddDate(0, 0, -1),
		EndDate:   now.AddDate(0, 0, 29),
		Status:    subscription.StatusPending,
	}
	require.NoError(t, db.Create(sub).Error)

	p := &Payment{
		StudentID:      7,
		SubscriptionID: &sub.ID,
		Amount:         100,
		FinalAmount:    100,
		Status:         StatusPaid,
		Method:         MethodPix,
		DueDate:        now,
		PaidAt:         &now,
	}
	require.NoError(t, db.Create(p).Error)

	require.NoError(t, repo.ConfirmWithActivation(ctx, p))

	var got subscription.Subscription
	require.NoError(t, db.First(&got, sub.ID).Error)
	assert.Equal(t, subscription.StatusActive, got.Status)
	assert.WithinDuration(t, now, got.UpdatedAt, time.Second)
}

func TestConfirmWithActivation_OverlappingActiveRollsBack(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	repo := NewRepository(db)

	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	// the student already holds an active subscription covering now
	current := &subscription.Subscription{
		StudentID: 7,
		StartDate: now.AddDate(0, 0, -5),
		EndDate:   now.AddDate(0, 0, 25),
		Status:    subscription.StatusActive,
	}
	require.NoError(t, db.Create(current).Error)

	overlapping := &subscription.Subscription{
		StudentID: 7,
		StartDate: now.AddDate(0, 0, -1),
		EndDate:   now.AddDate(0, 0, 29),
		Status:    subscription.StatusPending,
	}
	require.NoError(t, db.Create(overlapping).Error)

	p := &Payment{
		StudentID:      7,
		SubscriptionID: &overlapping.ID,
		Amount:         100,
		FinalAmount:    100,
		Status:         StatusPending,
		Method:         MethodPix,
		DueDate:        now,
	}
	require.NoError(t, db.Create(p).Error)

	p.Status = StatusPaid
	p.PaidAt = &now
	err := repo.ConfirmWithActivation(ctx, p)
	assert.ErrorIs(t, err, subscription.ErrAlreadyActive)

	// nothing moved: payment still pending, second period still pending
	var stored Payment
	require.NoError(t, db.First(&stored, p.ID).Error)
	assert.Equal(t, StatusPending, stored.Status)
	assert.Nil(t, stored.PaidAt)

	var gotSub subscription.Subscription
	require.NoError(t, db.First(&gotSub, overlapping.ID).Error)
	assert.Equal(t, subscription.StatusPending, gotSub.Status)

	var activeCount int64
	require.NoError(t, db.Model(&subscription.Subscription{}).
		Where("student_id = ? AND status = ? AND start_date <= ? AND end_date >= ?",
			7, subscription.StatusActive, now, now).
		Count(&activeCount).Error)
	assert.EqualValues(t, 1, activeCount)
}

func TestConfirmWithActivation_LapsedSubscriptionRollsBack(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	repo := NewRepository(db)

	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	sub := &subscription.Subscription{
		StudentID: 7,
		StartDate: now.AddDate(0, 0, -40),
		EndDate:   now.AddDate(0, 0, -10),
		Status:    subscription.StatusPending,
	}
	require.NoError(t, db.Create(sub).Error)

	p := &Payment{
		StudentID:      7,
		SubscriptionID: &sub.ID,
		Amount:         100,
		FinalAmount:    100,
		Status:         StatusPending,
		Method:         MethodPix,
		DueDate:        now,
	}
	require.NoError(t, db.Create(p).Error)

	p.Status = StatusPaid
	p.PaidAt = &now
	err := repo.ConfirmWithActivation(ctx, p)
	assert.ErrorIs(t, err, ErrActivationFailed)

	// the paid status must not have been persisted
	var stored Payment
	require.NoError(t, db.First(&stored, p.ID).Error)
	assert.Equal(t, StatusPending, stored.Status)
	assert.Nil(t, stored.PaidAt)

	var gotSub subscription.Subscription
	require.NoError(t, db.First(&gotSub, sub.ID).Error)
	assert.Equal(t, subscription.StatusPending, gotSub.Status)
}

func TestConfirmWithActivation_AlreadyActiveIsFine(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	repo := NewRepository(db)

	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	sub := &subscription.Subscription{
		StudentID: 7,
		StartDate: now.AddDate(0, 0, -5),
		EndDate:   now.AddDate(0, 0, 25),
		Status:    subscription.StatusActive,
	}
	require.NoError(t, db.Create(sub).Error)

	p := &Payment{
		StudentID:      7,
		SubscriptionID: &sub.ID,
		Amount:         50,
		FinalAmount:    50,
		Status:         StatusPaid,
		Method:         MethodCash,
		DueDate:        now,
		PaidAt:         &now,
	}
	require.NoError(t, db.Create(p).Error)

	assert.NoError(t, repo.ConfirmWithActivation(ctx, p))
}
