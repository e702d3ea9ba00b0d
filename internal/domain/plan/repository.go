package plan

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Repository handles persistence for plans
type Repository interface {
	Create(ctx context.Context, p *Plan) error
	GetByID(ctx context.Context, id int64) (*Plan, error)
	ListActive(ctx context.Context) ([]*Plan, error)
	List(ctx context.Context) ([]*Plan, error)
	Update(ctx context.Context, p *Plan) error
	SetActive(ctx context.Context, id int64, active bool, at time.Time) error
	CountActiveSubscriptions(ctx context.Context, planID int64) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Plan) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Plan, error) {
	var p Plan
	err := r.db.WithContext(ctx).First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) ListActive(ctx context.Context) ([]*Plan, error) {
	var plans []*Plan
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("price ASC").Find(&plans).Error
	return plans, err
}

func (r *repository) List(ctx context.Context) ([]*Plan, error) {
	var plans []*Plan
	err := r.db.WithContext(ctx).Order("price ASC").Find(&plans).Error
	return plans, err
}

func (r *repository) Update(ctx context.Context, p *Plan) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) SetActive(ctx context.Context, id int64, active bool, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&Plan{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_active":  active,
			"updated_at": at,
		}).Error
}

// CountActiveSubscriptions guards plan deactivation. Counts through the
// subscriptions table directly to avoid a package cycle.
func (r *repository) CountActiveSubscriptions(ctx context.Context, planID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("subscriptions").
		Where("plan_id = ? AND status IN ?", planID, []string{"active", "pending", "suspended"}).
		Count(&count).Error
	return count, err
}
