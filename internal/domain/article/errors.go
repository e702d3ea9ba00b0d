package article

import "academia/internal/pkg/apperr"

var (
	ErrNotFound  = apperr.NotFound("Artigo não encontrado")
	ErrSlugTaken = apperr.Validation("An article with this slug already exists")
)
