package workout

import (
	"context"

	"academia/internal/domain/student"
	"academia/internal/pkg/clock"
)

// StudentDirectory is implemented by the student service.
type StudentDirectory interface {
	Get(ctx context.Context, id int64) (*student.Student, error)
}

type Service struct {
	repo     Repository
	students StudentDirectory
	clk      clock.Clock
}

func NewService(repo Repository, students StudentDirectory, clk clock.Clock) *Service {
	return &Service{repo: repo, students: students, clk: clk}
}

func (s *Service) CreateExercise(ctx context.Context, req CreateExerciseRequest) (*Exercise, error) {
	e := &Exercise{
		Name:        req.Name,
		MuscleGroup: req.MuscleGroup,
		Equipment:   req.Equipment,
		Description: req.Description,
		CreatedAt:   s.clk.Now(),
	}
	if err := s.repo.CreateExercise(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) ListExercises(ctx context.Context, muscleGroup string) ([]*Exercise, error) {
	return s.repo.ListExercises(ctx, muscleGroup)
}

// Assign builds a workout for a student, validating every referenced exercise.
func (s *Service) Assign(ctx context.Context, req AssignRequest) (*Workout, error) {
	if _, err := s.students.Get(ctx, req.StudentID); err != nil {
		return nil, err
	}
	if len(req.Items) == 0 {
		return nil, ErrNoItems
	}

	now := s.clk.Now()
	w := &Workout{
		StudentID: req.StudentID,
		Name:      req.Name,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i, item := range req.Items {
		ex, err := s.repo.GetExercise(ctx, item.ExerciseID)
		if err != nil {
			return nil, err
		}
		if ex == nil {
			return nil, ErrExerciseNotFound
		}
		w.Items = append(w.Items, &WorkoutItem{
			ExerciseID: item.ExerciseID,
			Sets:       item.Sets,
			Reps:       item.Reps,
			RestSec:    item.RestSec,
			Position:   i + 1,
		})
	}

	if err := s.repo.CreateWorkout(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Workout, error) {
	w, err := s.repo.GetWorkout(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, ErrNotFound
	}
	return w, nil
}

func (s *Service) ListByStudent(ctx context.Context, studentID int64) ([]*Workout, error) {
	return s.repo.ListByStudent(ctx, studentID)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	w, err := s.repo.GetWorkout(ctx, id)
	if err != nil {
		return err
	}
	if w == nil {
		return ErrNotFound
	}
	return s.repo.DeleteWorkout(ctx, id)
}
