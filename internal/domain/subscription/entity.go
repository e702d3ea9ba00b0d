package subscription

import (
	"math"
	"time"
)

// Status of a subscription. Expired and cancelled are terminal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
	StatusSuspended Status = "suspended"
)

// transitions is the closed set of legal status moves. Anything absent here
// is an invalid transition.
var transitions = map[Status]map[Status]bool{
	StatusPending: {
		StatusActive:    true,
		StatusCancelled: true,
		StatusExpired:   true,
	},
	StatusActive: {
		StatusExpired:   true,
		StatusCancelled: true,
		StatusSuspended: true,
	},
	StatusSuspended: {
		StatusActive:    true,
		StatusCancelled: true,
		StatusExpired:   true,
	},
}

// CanTransition reports whether moving from s to target is legal.
func (s Status) CanTransition(target Status) bool {
	return transitions[s][target]
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusExpired || s == StatusCancelled
}

// Subscription is a bounded-time membership grant tied to a plan.
type Subscription struct {
	ID             int64     `gorm:"column:id;primaryKey" json:"id"`
	StudentID      int64     `gorm:"column:student_id;index" json:"student_id"`
	PlanID         int64     `gorm:"column:plan_id;index" json:"plan_id"`
	StartDate      time.Time `gorm:"column:start_date" json:"start_date"`
	EndDate        time.Time `gorm:"column:end_date" json:"end_date"`
	Price          float64   `gorm:"column:price" json:"price"`
	DiscountAmount float64   `gorm:"column:discount_amount" json:"discount_amount"`
	FinalPrice     float64   `gorm:"column:final_price" json:"final_price"`
	Status         Status    `gorm:"column:status;index" json:"status"`
	AutoRenew      bool      `gorm:"column:auto_renew" json:"auto_renew"`
	Notes          string    `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at"`
}

func (Subscription) TableName() string { return "subscriptions" }

// IsExpired checks the date, not the status; the expiry sweep may not have
// run yet.
func (s *Subscription) IsExpired(now time.Time) bool {
	return now.After(s.EndDate)
}

// Covers reports whether the subscription date range includes the instant.
func (s *Subscription) Covers(now time.Time) bool {
	return !now.Before(s.StartDate) && !now.After(s.EndDate)
}

// DaysRemaining returns max(0, ceil((end - now) / 24h)).
func (s *Subscription) DaysRemaining(now time.Time) int {
	remaining := s.EndDate.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(remaining.Hours() / 24))
}

// appendNote accumulates audit notes on the row.
func (s *Subscription) appendNote(note string) {
	if note == "" {
		return
	}
	if s.Notes != "" {
		s.Notes += "; "
	}
	s.Notes += note
}
