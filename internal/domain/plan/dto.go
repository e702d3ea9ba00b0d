package plan

type CreateRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" binding:"required"`
	DurationDays    int     `json:"duration_days" binding:"required"`
	MaxStudents     *int    `json:"max_students"`
	DiscountPercent float64 `json:"discount_percent"`
}

type UpdateRequest struct {
	Name            string   `json:"name"`
	Description     *string  `json:"description"`
	Price           *float64 `json:"price"`
	DiscountPercent *float64 `json:"discount_percent"`
	MaxStudents     *int     `json:"max_students"`
}
