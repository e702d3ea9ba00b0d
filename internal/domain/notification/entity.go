package notification

import "time"

// Template identifies a message template.
type Template string

const (
	TemplateExpiryReminder Template = "expiry_reminder"
	TemplatePaymentReceipt Template = "payment_receipt"
	TemplateRenewalCreated Template = "renewal_created"
)

// Notification is an in-app message shown on the member portal.
type Notification struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	StudentID int64     `gorm:"column:student_id;index" json:"student_id"`
	Template  Template  `gorm:"column:template" json:"template"`
	Title     string    `gorm:"column:title" json:"title"`
	Message   string    `gorm:"column:message" json:"message"`
	IsRead    bool      `gorm:"column:is_read" json:"is_read"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
