package workout

type CreateExerciseRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=120"`
	MuscleGroup string `json:"muscle_group" binding:"required"`
	Equipment   string `json:"equipment"`
	Description string `json:"description"`
}

type AssignItem struct {
	ExerciseID int64 `json:"exercise_id" binding:"required"`
	Sets       int   `json:"sets" binding:"required,min=1"`
	Reps       int   `json:"reps" binding:"required,min=1"`
	RestSec    int   `json:"rest_sec" binding:"min=0"`
}

type AssignRequest struct {
	StudentID int64        `json:"student_id" binding:"required"`
	Name      string       `json:"name" binding:"required,min=2,max=120"`
	Notes     string       `json:"notes"`
	Items     []AssignItem `json:"items" binding:"required,dive"`
}
