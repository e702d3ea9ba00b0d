package payment

import "time"

type CreateRequest struct {
	StudentID      int64     `json:"student_id" binding:"required"`
	SubscriptionID *int64    `json:"subscription_id"`
	Amount         float64   `json:"amount" binding:"required"`
	DiscountAmount float64   `json:"discount_amount"`
	Method         string    `json:"payment_method" binding:"required"`
	DueDate        time.Time `json:"due_date" binding:"required"`
}

type ConfirmRequest struct {
	TransactionID string `json:"transaction_id"`
	ConfirmedBy   string `json:"confirmed_by"`
}

type RefundRequest struct {
	Amount *float64 `json:"amount"`
	Reason string   `json:"reason"`
}

type DiscountRequest struct {
	DiscountAmount float64 `json:"discount_amount"`
	Reason         string  `json:"reason"`
}

type ReasonRequest struct {
	Reason string `json:"reason"`
}

// OverdueResponse annotates a payment with how late it is.
type OverdueResponse struct {
	*Payment
	DaysPastDue int `json:"days_past_due"`
}
