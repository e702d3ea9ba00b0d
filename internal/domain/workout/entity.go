package workout

import "time"

// Exercise is a catalog entry trainers compose workouts from.
type Exercise struct {
	ID          int64     `gorm:"column:id;primaryKey" json:"id"`
	Name        string    `gorm:"column:name" json:"name"`
	MuscleGroup string    `gorm:"column:muscle_group" json:"muscle_group"`
	Equipment   string    `gorm:"column:equipment" json:"equipment,omitempty"`
	Description string    `gorm:"column:description" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Exercise) TableName() string { return "exercises" }

// Workout is a training plan assigned to a student.
type Workout struct {
	ID        int64          `gorm:"column:id;primaryKey" json:"id"`
	StudentID int64          `gorm:"column:student_id;index" json:"student_id"`
	Name      string         `gorm:"column:name" json:"name"`
	Notes     string         `gorm:"column:notes" json:"notes,omitempty"`
	Items     []*WorkoutItem `gorm:"foreignKey:WorkoutID" json:"items,omitempty"`
	CreatedAt time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at" json:"updated_at"`
}

func (Workout) TableName() string { return "workouts" }

// WorkoutItem is one exercise inside a workout with its prescription.
type WorkoutItem struct {
	ID         int64     `gorm:"column:id;primaryKey" json:"id"`
	WorkoutID  int64     `gorm:"column:workout_id;index" json:"workout_id"`
	ExerciseID int64     `gorm:"column:exercise_id" json:"exercise_id"`
	Exercise   *Exercise `gorm:"foreignKey:ExerciseID" json:"exercise,omitempty"`
	Sets       int       `gorm:"column:sets" json:"sets"`
	Reps       int       `gorm:"column:reps" json:"reps"`
	RestSec    int       `gorm:"column:rest_sec" json:"rest_sec,omitempty"`
	Position   int       `gorm:"column:position" json:"position"`
}

func (WorkoutItem) TableName() string { return "workout_items" }
