package checkin

import "academia/internal/pkg/apperr"

var (
	ErrNotFound      = apperr.NotFound("Check-in não encontrado")
	ErrNoActivePlan  = apperr.BusinessRule("Aluno não possui plano ativo")
	ErrAlreadyToday  = apperr.BusinessRule("Aluno já realizou check-in hoje")
	ErrCheckedOut    = apperr.InvalidState("Check-out já registrado")
	ErrCheckoutOrder = apperr.Validation("Check-out anterior ao check-in")
)
