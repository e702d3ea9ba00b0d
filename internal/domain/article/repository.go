package article

import (
	"context"

	"gorm.io/gorm"
)

// Repository handles persistence for articles
type Repository interface {
	Create(ctx context.Context, a *Article) error
	GetByID(ctx context.Context, id int64) (*Article, error)
	GetBySlug(ctx context.Context, slug string) (*Article, error)
	ListPublished(ctx context.Context, limit, offset int) ([]*Article, error)
	List(ctx context.Context) ([]*Article, error)
	Update(ctx context.Context, a *Article) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Article) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Article, error) {
	var a Article
	err := r.db.WithContext(ctx).First(&a, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Article, error) {
	var a Article
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&a).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) ListPublished(ctx context.Context, limit, offset int) ([]*Article, error) {
	var list []*Article
	err := r.db.WithContext(ctx).
		Where("is_published = ?", true).
		Order("published_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&list).Error
	return list, err
}

func (r *repository) List(ctx context.Context) ([]*Article, error) {
	var list []*Article
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *repository) Update(ctx context.Context, a *Article) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&Article{}, id).Error
}
