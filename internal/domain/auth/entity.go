package auth

import "time"

// Role of a back-office staff user.
const (
	RoleAdmin     = "admin"
	RoleManager   = "manager"
	RoleReception = "reception"
	RoleTrainer   = "trainer"
)

// Staff is a back-office user. Students never log in here.
type Staff struct {
	ID           int64     `gorm:"column:id;primaryKey" json:"id"`
	Name         string    `gorm:"column:name" json:"name"`
	Email        string    `gorm:"column:email;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password_hash" json:"-"`
	Role         string    `gorm:"column:role" json:"role"`
	IsActive     bool      `gorm:"column:is_active" json:"is_active"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Staff) TableName() string { return "staff" }
