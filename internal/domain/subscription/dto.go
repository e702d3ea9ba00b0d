package subscription

import "time"

type CreateRequest struct {
	StudentID int64      `json:"student_id" binding:"required"`
	PlanID    int64      `json:"plan_id" binding:"required"`
	StartDate *time.Time `json:"start_date"`
	AutoRenew bool       `json:"auto_renew"`
}

type ReasonRequest struct {
	Reason string `json:"reason"`
}

type ExtendRequest struct {
	Days int `json:"days" binding:"required"`
}

// Response adds the derived day count the dashboard shows next to each row.
type Response struct {
	*Subscription
	DaysRemaining int `json:"days_remaining"`
}
