package payment

import (
	"math"
	"time"
)

// Status of a payment. Paid payments can only move to refunded; cancelled,
// failed and refunded are terminal.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusPaid       Status = "paid"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
	StatusRefunded   Status = "refunded"
)

var transitions = map[Status]map[Status]bool{
	StatusPending: {
		StatusProcessing: true,
		StatusPaid:       true,
		StatusFailed:     true,
		StatusCancelled:  true,
	},
	StatusProcessing: {
		StatusPaid:      true,
		StatusFailed:    true,
		StatusCancelled: true,
	},
	StatusPaid: {
		StatusRefunded: true,
	},
}

func (s Status) CanTransition(target Status) bool {
	return transitions[s][target]
}

func (s Status) IsTerminal() bool {
	return s == StatusFailed || s == StatusCancelled || s == StatusRefunded
}

// Method of payment.
type Method string

const (
	MethodCash     Method = "cash"
	MethodCard     Method = "card"
	MethodPix      Method = "pix"
	MethodBoleto   Method = "boleto"
	MethodTransfer Method = "transfer"
)

func ValidMethod(m Method) bool {
	switch m {
	case MethodCash, MethodCard, MethodPix, MethodBoleto, MethodTransfer:
		return true
	}
	return false
}

// Payment is a monetary obligation, optionally tied to a subscription
// (subscriptions may be paid in installments).
type Payment struct {
	ID             int64      `gorm:"column:id;primaryKey" json:"id"`
	StudentID      int64      `gorm:"column:student_id;index" json:"student_id"`
	SubscriptionID *int64     `gorm:"column:subscription_id;index" json:"subscription_id,omitempty"`
	Amount         float64    `gorm:"column:amount" json:"amount"`
	DiscountAmount float64    `gorm:"column:discount_amount" json:"discount_amount"`
	FinalAmount    float64    `gorm:"column:final_amount" json:"final_amount"`
	RefundedAmount float64    `gorm:"column:refunded_amount" json:"refunded_amount"`
	Status         Status     `gorm:"column:status;index" json:"status"`
	Method         Method     `gorm:"column:payment_method" json:"payment_method"`
	DueDate        time.Time  `gorm:"column:due_date" json:"due_date"`
	PaidAt         *time.Time `gorm:"column:paid_at" json:"paid_at,omitempty"`
	TransactionID  string     `gorm:"column:transaction_id" json:"transaction_id,omitempty"`
	ConfirmedBy    string     `gorm:"column:confirmed_by" json:"confirmed_by,omitempty"`
	Notes          string     `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt      time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }

// IsOverdue: not paid and past due.
func (p *Payment) IsOverdue(now time.Time) bool {
	return p.Status != StatusPaid && now.After(p.DueDate)
}

// DaysPastDue returns ceil((now - due) / 24h), zero when not past due.
func (p *Payment) DaysPastDue(now time.Time) int {
	past := now.Sub(p.DueDate)
	if past <= 0 {
		return 0
	}
	return int(math.Ceil(past.Hours() / 24))
}

func (p *Payment) appendNote(note string) {
	if note == "" {
		return
	}
	if p.Notes != "" {
		p.Notes += "; "
	}
	p.Notes += note
}
