package plan

import "time"

// Plan is a pricing template for subscriptions. A plan is never deleted
// while subscriptions reference it; it is deactivated instead.
type Plan struct {
	ID              int64     `gorm:"column:id;primaryKey" json:"id"`
	Name            string    `gorm:"column:name" json:"name"`
	Description     string    `gorm:"column:description" json:"description"`
	Price           float64   `gorm:"column:price" json:"price"`
	DurationDays    int       `gorm:"column:duration_days" json:"duration_days"`
	MaxStudents     *int      `gorm:"column:max_students" json:"max_students,omitempty"`
	DiscountPercent float64   `gorm:"column:discount_percent" json:"discount_percent"`
	IsActive        bool      `gorm:"column:is_active" json:"is_active"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at"`
}

func (Plan) TableName() string { return "plans" }

// DiscountAmount returns the absolute discount derived from the percentage.
func (p *Plan) DiscountAmount() float64 {
	return p.Price * p.DiscountPercent / 100
}

// FinalPrice is price minus discount, never negative.
func (p *Plan) FinalPrice() float64 {
	final := p.Price - p.DiscountAmount()
	if final < 0 {
		return 0
	}
	return final
}
