package student

import "academia/internal/pkg/apperr"

var (
	ErrNotFound          = apperr.NotFound("Aluno não encontrado")
	ErrEmailTaken        = apperr.Validation("Email já cadastrado")
	ErrInvalidStatus     = apperr.Validation("Status de aluno inválido")
	ErrInvalidEnrollment = apperr.Validation("Dados de matrícula inválidos")
	ErrNotActive         = apperr.BusinessRule("Aluno não está ativo")
)
