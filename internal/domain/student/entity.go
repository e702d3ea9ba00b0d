package student

import "time"

// Status of a student account. Students are never hard-deleted; lifecycle
// changes are soft status mutations only.
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
	StatusPending   Status = "pending"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended, StatusPending:
		return true
	}
	return false
}

// Student is a gym member.
type Student struct {
	ID        int64      `gorm:"column:id;primaryKey" json:"id"`
	Name      string     `gorm:"column:name" json:"name"`
	Email     string     `gorm:"column:email;uniqueIndex" json:"email"`
	Phone     string     `gorm:"column:phone" json:"phone"`
	Document  string     `gorm:"column:document" json:"document"`
	BirthDate *time.Time `gorm:"column:birth_date" json:"birth_date,omitempty"`
	Status    Status     `gorm:"column:status" json:"status"`
	Notes     string     `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at"`
}

func (Student) TableName() string { return "students" }

func (s *Student) IsActive() bool { return s.Status == StatusActive }
