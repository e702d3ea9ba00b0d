package auth

import "academia/internal/pkg/apperr"

var (
	ErrInvalidCredentials = apperr.Validation("Invalid email or password")
	ErrStaffInactive      = apperr.BusinessRule("Staff account is deactivated")
	ErrNotFound           = apperr.NotFound("Staff user not found")
)
