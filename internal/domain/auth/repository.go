package auth

import (
	"context"

	"gorm.io/gorm"
)

// Repository handles persistence for staff users
type Repository interface {
	Create(ctx context.Context, s *Staff) error
	GetByID(ctx context.Context, id int64) (*Staff, error)
	GetByEmail(ctx context.Context, email string) (*Staff, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, s *Staff) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Staff, error) {
	var s Staff
	err := r.db.WithContext(ctx).First(&s, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Staff, error) {
	var s Staff
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&s).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
