package student

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Repository handles persistence for students
type Repository interface {
	Create(ctx context.Context, st *Student) error
	GetByID(ctx context.Context, id int64) (*Student, error)
	GetByEmail(ctx context.Context, email string) (*Student, error)
	List(ctx context.Context, status Status, limit, offset int) ([]*Student, error)
	Update(ctx context.Context, st *Student) error
	UpdateStatus(ctx context.Context, id int64, status Status, at time.Time) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, st *Student) error {
	return r.db.WithContext(ctx).Create(st).Error
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Student, error) {
	var st Student
	err := r.db.WithContext(ctx).First(&st, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &st, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Student, error) {
	var st Student
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&st).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &st, nil
}

func (r *repository) List(ctx context.Context, status Status, limit, offset int) ([]*Student, error) {
	q := r.db.WithContext(ctx).Model(&Student{}).Order("name ASC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var students []*Student
	err := q.Limit(limit).Offset(offset).Find(&students).Error
	return students, err
}

func (r *repository) Update(ctx context.Context, st *Student) error {
	return r.db.WithContext(ctx).Save(st).Error
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status Status, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&Student{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": at,
		}).Error
}
