package notification

import (
	"context"

	"gorm.io/gorm"
)

// Repository handles persistence for notifications
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListByStudent(ctx context.Context, studentID int64, limit int) ([]*Notification, error)
	CountUnread(ctx context.Context, studentID int64) (int64, error)
	MarkAsRead(ctx context.Context, id, studentID int64) error
	MarkAllAsRead(ctx context.Context, studentID int64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) ListByStudent(ctx context.Context, studentID int64, limit int) ([]*Notification, error) {
	var list []*Notification
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *repository) CountUnread(ctx context.Context, studentID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("student_id = ? AND is_read = ?", studentID, false).
		Count(&count).Error
	return count, err
}

func (r *repository) MarkAsRead(ctx context.Context, id, studentID int64) error {
	return r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ? AND student_id = ?", id, studentID).
		Update("is_read", true).Error
}

func (r *repository) MarkAllAsRead(ctx context.Context, studentID int64) error {
	return r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("student_id = ? AND is_read = ?", studentID, false).
		Update("is_read", true).Error
}
