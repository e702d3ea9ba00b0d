package subscription

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Repository handles persistence for subscriptions
type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	GetByID(ctx context.Context, id int64) (*Subscription, error)
	Update(ctx context.Context, sub *Subscription) error
	ListByStudent(ctx context.Context, studentID int64) ([]*Subscription, error)

	// GetActiveCovering returns the student's active subscription whose date
	// range includes at, or nil. Evaluated fresh on every admission check.
	GetActiveCovering(ctx context.Context, studentID int64, at time.Time) (*Subscription, error)

	// GetSuccessor finds a non-terminal subscription starting exactly when
	// prev ends, used to keep the renewal pass idempotent.
	GetSuccessor(ctx context.Context, studentID int64, start time.Time) (*Subscription, error)

	// ExpireOlderThan bulk-flips active/pending subscriptions past their end
	// date to expired. Idempotent; returns rows affected.
	ExpireOlderThan(ctx context.Context, now time.Time) (int64, error)

	ListAutoRenewExpiring(ctx context.Context, from, to time.Time) ([]*Subscription, error)
	ListActiveExpiringWithin(ctx context.Context, from, to time.Time) ([]*Subscription, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, sub *Subscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Subscription, error) {
	var sub Subscription
	err := r.db.WithContext(ctx).First(&sub, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (r *repository) Update(ctx context.Context, sub *Subscription) error {
	return r.db.WithContext(ctx).Save(sub).Error
}

func (r *repository) ListByStudent(ctx context.Context, studentID int64) ([]*Subscription, error) {
	var subs []*Subscription
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("start_date DESC").
		Find(&subs).Error
	return subs, err
}

func (r *repository) GetActiveCovering(ctx context.Context, studentID int64, at time.Time) (*Subscription, error) {
	var sub Subscription
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND status = ? AND start_date <= ? AND end_date >= ?",
			studentID, StatusActive, at, at).
		Order("end_date DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (r *repository) GetSuccessor(ctx context.Context, studentID int64, start time.Time) (*Subscription, error) {
	var sub Subscription
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND start_date = ? AND status NOT IN ?",
			studentID, start, []Status{StatusCancelled, StatusExpired}).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

func (r *repository) ExpireOlderThan(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&Subscription{}).
		Where("status IN ? AND end_date < ?", []Status{StatusActive, StatusPending}, now).
		Updates(map[string]any{
			"status":     StatusExpired,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}

func (r *repository) ListAutoRenewExpiring(ctx context.Context, from, to time.Time) ([]*Subscription, error) {
	var subs []*Subscription
	err := r.db.WithContext(ctx).
		Where("auto_renew = ? AND status = ? AND end_date > ? AND end_date <= ?",
			true, StatusActive, from, to).
		Order("end_date ASC").
		Find(&subs).Error
	return subs, err
}

func (r *repository) ListActiveExpiringWithin(ctx context.Context, from, to time.Time) ([]*Subscription, error) {
	var subs []*Subscription
	err := r.db.WithContext(ctx).
		Where("status = ? AND end_date > ? AND end_date <= ?", StatusActive, from, to).
		Order("end_date ASC").
		Find(&subs).Error
	return subs, err
}
