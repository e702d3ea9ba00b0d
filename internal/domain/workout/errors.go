package workout

import "academia/internal/pkg/apperr"

var (
	ErrNotFound         = apperr.NotFound("Treino não encontrado")
	ErrExerciseNotFound = apperr.NotFound("Exercício não encontrado")
	ErrNoItems          = apperr.Validation("Workout must contain at least one exercise")
)
