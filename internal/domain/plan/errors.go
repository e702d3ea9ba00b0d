package plan

import "academia/internal/pkg/apperr"

var (
	ErrNotFound        = apperr.NotFound("Plano não encontrado")
	ErrInactive        = apperr.NotFound("Plano não encontrado ou inativo")
	ErrInvalidPrice    = apperr.Validation("Preço do plano inválido")
	ErrInvalidDuration = apperr.Validation("Duração do plano inválida")
	ErrInvalidDiscount = apperr.Validation("Percentual de desconto inválido")
	ErrInUse           = apperr.BusinessRule("Plano possui assinaturas ativas e não pode ser desativado")
)
