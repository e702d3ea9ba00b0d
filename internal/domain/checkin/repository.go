package checkin

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repository handles persistence for check-ins
type Repository interface {
	// Create inserts a visit. The storage-level unique index on
	// (student_id, checkin_date) backs the one-visit-per-day rule even under
	// concurrent duplicate submissions; violations map to ErrAlreadyToday.
	Create(ctx context.Context, ck *Checkin) error
	GetByID(ctx context.Context, id int64) (*Checkin, error)
	GetByStudentAndDay(ctx context.Context, studentID int64, day string) (*Checkin, error)
	Update(ctx context.Context, ck *Checkin) error
	ListByStudent(ctx context.Context, studentID int64, limit, offset int) ([]*Checkin, error)
	ListByDay(ctx context.Context, day string) ([]*Checkin, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, ck *Checkin) error {
	if err := r.db.WithContext(ctx).Create(ck).Error; err != nil {
		return translateDuplicate(err)
	}
	return nil
}

// translateDuplicate maps unique-violation errors from both drivers onto the
// same-day business error. Raw pg error codes appear when gorm's TranslateError
// is off; gorm.ErrDuplicatedKey when it is on.
func translateDuplicate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrAlreadyToday
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyToday
	}
	return err
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Checkin, error) {
	var ck Checkin
	err := r.db.WithContext(ctx).First(&ck, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ck, nil
}

func (r *repository) GetByStudentAndDay(ctx context.Context, studentID int64, day string) (*Checkin, error) {
	var ck Checkin
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND checkin_date = ?", studentID, day).
		First(&ck).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ck, nil
}

func (r *repository) Update(ctx context.Context, ck *Checkin) error {
	return r.db.WithContext(ctx).Save(ck).Error
}

func (r *repository) ListByStudent(ctx context.Context, studentID int64, limit, offset int) ([]*Checkin, error) {
	var checkins []*Checkin
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("checkin_time DESC").
		Limit(limit).Offset(offset).
		Find(&checkins).Error
	return checkins, err
}

func (r *repository) ListByDay(ctx context.Context, day string) ([]*Checkin, error) {
	var checkins []*Checkin
	err := r.db.WithContext(ctx).
		Where("checkin_date = ?", day).
		Order("checkin_time ASC").
		Find(&checkins).Error
	return checkins, err
}
