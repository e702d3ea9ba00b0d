package checkin

import (
	"math"
	"time"
)

// Checkin is one facility visit. CheckinDate is the calendar day, stored
// redundantly so the (student_id, checkin_date) unique index can close the
// duplicate-visit race at the storage layer.
type Checkin struct {
	ID              int64      `gorm:"column:id;primaryKey" json:"id"`
	StudentID       int64      `gorm:"column:student_id;uniqueIndex:idx_checkin_student_day" json:"student_id"`
	CheckinDate     string     `gorm:"column:checkin_date;uniqueIndex:idx_checkin_student_day" json:"checkin_date"`
	CheckinTime     time.Time  `gorm:"column:checkin_time" json:"checkin_time"`
	CheckoutTime    *time.Time `gorm:"column:checkout_time" json:"checkout_time,omitempty"`
	DurationMinutes *int       `gorm:"column:duration_minutes" json:"duration_minutes,omitempty"`
	CreatedAt       time.Time  `gorm:"column:created_at" json:"created_at"`
}

func (Checkin) TableName() string { return "checkins" }

// DayOf formats the calendar day used by the uniqueness rule.
func DayOf(t time.Time) string { return t.Format("2006-01-02") }

// Duration returns the rounded visit length in minutes.
func Duration(in, out time.Time) int {
	return int(math.Round(out.Sub(in).Minutes()))
}
