package student

import "time"

type EnrollRequest struct {
	Name      string     `json:"name" binding:"required" validate:"required,min=2,max=120"`
	Email     string     `json:"email" binding:"required,email" validate:"required,email"`
	Phone     string     `json:"phone"`
	Document  string     `json:"document"`
	BirthDate *time.Time `json:"birth_date"`
	Notes     string     `json:"notes"`
}

type UpdateRequest struct {
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Notes *string `json:"notes"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
