package payment

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"academia/internal/domain/subscription"
)

// Repository handles persistence for payments
type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, id int64) (*Payment, error)
	Update(ctx context.Context, p *Payment) error
	ListByStudent(ctx context.Context, studentID int64) ([]*Payment, error)
	ListOverdue(ctx context.Context, now time.Time) ([]*Payment, error)

	// ConfirmWithActivation persists the paid payment and activates its
	// linked subscription inside one transaction. If the subscription cannot
	// be activated, or activating it would give the student a second active
	// subscription over the same period, the whole confirmation rolls back,
	// so a payment is never left paid without its period becoming active.
	ConfirmWithActivation(ctx context.Context, p *Payment) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Payment, error) {
	var p Payment
	err := r.db.WithContext(ctx).First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) Update(ctx context.Context, p *Payment) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) ListByStudent(ctx context.Context, studentID int64) ([]*Payment, error) {
	var payments []*Payment
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("due_date DESC").
		Find(&payments).Error
	return payments, err
}

func (r *repository) ListOverdue(ctx context.Context, now time.Time) ([]*Payment, error) {
	var payments []*Payment
	err := r.db.WithContext(ctx).
		Where("status IN ? AND due_date < ?",
			[]Status{StatusPending, StatusProcessing, StatusFailed}, now).
		Order("due_date ASC").
		Find(&payments).Error
	return payments, err
}

func (r *repository) ConfirmWithActivation(ctx context.Context, p *Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(p).Error; err != nil {
			return err
		}
		if p.SubscriptionID == nil {
			return nil
		}

		var sub subscription.Subscription
		if err := tx.First(&sub, *p.SubscriptionID).Error; err != nil {
			return err
		}
		// Already active is fine, the payment just settles an open bill.
		if sub.Status == subscription.StatusActive {
			return nil
		}

		// Activation must not leave the student with two concurrent active
		// subscriptions.
		var overlapping int64
		if err := tx.Model(&subscription.Subscription{}).
			Where("student_id = ? AND id <> ? AND status = ? AND start_date <= ? AND end_date >= ?",
				sub.StudentID, sub.ID, subscription.StatusActive, sub.EndDate, sub.StartDate).
			Count(&overlapping).Error; err != nil {
			return err
		}
		if overlapping > 0 {
			return subscription.ErrAlreadyActive
		}

		res := tx.Model(&subscription.Subscription{}).
			Where("id = ? AND status IN ? AND end_date > ?",
				sub.ID,
				[]subscription.Status{subscription.StatusPending, subscription.StatusSuspended},
				*p.PaidAt).
			Updates(map[string]any{
				"status":     subscription.StatusActive,
				"updated_at": *p.PaidAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrActivationFailed
		}
		return nil
	})
}
