package subscription

import "academia/internal/pkg/apperr"

var (
	ErrNotFound          = apperr.NotFound("Assinatura não encontrada")
	ErrAlreadyActive     = apperr.BusinessRule("Aluno já possui assinatura ativa no período")
	ErrReactivateExpired = apperr.InvalidState("Cannot reactivate expired subscription")
	ErrInvalidTransition = apperr.InvalidState("invalid subscription status transition")
	ErrTerminal          = apperr.InvalidState("subscription is in a terminal state")
	ErrInvalidExtension  = apperr.Validation("extension days must be positive")
	ErrInvalidDates      = apperr.Validation("end date must be after start date")
	ErrAlreadyRenewed    = apperr.BusinessRule("Assinatura já possui renovação criada")
)
