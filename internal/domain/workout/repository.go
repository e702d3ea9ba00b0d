package workout

import (
	"context"

	"gorm.io/gorm"
)

// Repository handles persistence for exercises and workouts
type Repository interface {
	CreateExercise(ctx context.Context, e *Exercise) error
	GetExercise(ctx context.Context, id int64) (*Exercise, error)
	ListExercises(ctx context.Context, muscleGroup string) ([]*Exercise, error)

	CreateWorkout(ctx context.Context, w *Workout) error
	GetWorkout(ctx context.Context, id int64) (*Workout, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*Workout, error)
	UpdateWorkout(ctx context.Context, w *Workout) error
	DeleteWorkout(ctx context.Context, id int64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateExercise(ctx context.Context, e *Exercise) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) GetExercise(ctx context.Context, id int64) (*Exercise, error) {
	var e Exercise
	err := r.db.WithContext(ctx).First(&e, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) ListExercises(ctx context.Context, muscleGroup string) ([]*Exercise, error) {
	var list []*Exercise
	q := r.db.WithContext(ctx).Order("name ASC")
	if muscleGroup != "" {
		q = q.Where("muscle_group = ?", muscleGroup)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *repository) CreateWorkout(ctx context.Context, w *Workout) error {
	// gorm cascades the items through the association
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *repository) GetWorkout(ctx context.Context, id int64) (*Workout, error) {
	var w Workout
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Items.Exercise").
		First(&w, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *repository) ListByStudent(ctx context.Context, studentID int64) ([]*Workout, error) {
	var list []*Workout
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *repository) UpdateWorkout(ctx context.Context, w *Workout) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("workout_id = ?", w.ID).Delete(&WorkoutItem{}).Error; err != nil {
			return err
		}
		return tx.Save(w).Error
	})
}

func (r *repository) DeleteWorkout(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("workout_id = ?", id).Delete(&WorkoutItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Workout{}, id).Error
	})
}
