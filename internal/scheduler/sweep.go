package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"academia/internal/domain/notification"
	"academia/internal/domain/payment"
	"academia/internal/domain/subscription"
	"academia/internal/pkg/apperr"
	"academia/internal/pkg/clock"
)

// ErrAlreadyRunning is returned when a sweep is requested while a previous
// run has not finished.
var ErrAlreadyRunning = apperr.InvalidState("sweep already running")

// SubscriptionSource is implemented by the subscription service.
type SubscriptionSource interface {
	ExpireOld(ctx context.Context) (int64, error)
	ListAutoRenewExpiring(ctx context.Context, from, to time.Time) ([]*subscription.Subscription, error)
	ListActiveExpiringWithin(ctx context.Context, from, to time.Time) ([]*subscription.Subscription, error)
	CreateRenewal(ctx context.Context, prev *subscription.Subscription) (*subscription.Subscription, error)
}

// RenewalBiller is implemented by the payment service.
type RenewalBiller interface {
	CreateForRenewal(ctx context.Context, sub *subscription.Subscription) (*payment.Payment, error)
}

// ReminderSender is implemented by the notification dispatcher.
type ReminderSender interface {
	Send(ctx context.Context, studentID int64, template string, data map[string]any) error
}

// RenewalResult records the outcome of one auto-renewal attempt.
type RenewalResult struct {
	SubscriptionID int64  `json:"subscription_id"`
	StudentID      int64  `json:"student_id"`
	NewID          int64  `json:"new_id,omitempty"`
	PaymentID      int64  `json:"payment_id,omitempty"`
	Skipped        bool   `json:"skipped,omitempty"`
	Error          string `json:"error,omitempty"`
}

// Report is the structured result of one daily sweep.
type Report struct {
	RanAt            time.Time       `json:"ran_at"`
	ExpiredCount     int64           `json:"expired_count"`
	Renewals         []RenewalResult `json:"renewals"`
	RemindersSent    int             `json:"reminders_sent"`
	ReminderFailures int             `json:"reminder_failures"`
	Errors           []string        `json:"errors,omitempty"`
}

// Sweeper runs the daily maintenance batch: expiry sweep, auto-renewals and
// expiry reminders. The three passes are fault-isolated so one pass failing
// never blocks the others.
type Sweeper struct {
	subs      SubscriptionSource
	billing   RenewalBiller
	reminders ReminderSender
	clk       clock.Clock

	reminderDays  int
	notifyTimeout time.Duration
	loggerf       func(format string, args ...interface{})

	running atomic.Bool
}

func NewSweeper(
	subs SubscriptionSource,
	billing RenewalBiller,
	reminders ReminderSender,
	clk clock.Clock,
	reminderDays int,
	notifyTimeout time.Duration,
	loggerf func(format string, args ...interface{}),
) *Sweeper {
	if reminderDays <= 0 {
		reminderDays = 7
	}
	if notifyTimeout <= 0 {
		notifyTimeout = 5 * time.Second
	}
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Sweeper{
		subs:          subs,
		billing:       billing,
		reminders:     reminders,
		clk:           clk,
		reminderDays:  reminderDays,
		notifyTimeout: notifyTimeout,
		loggerf:       loggerf,
	}
}

// RunDailySweep executes the three passes sequentially and returns a
// partial-success report. Not re-entrant: a second call while one is in
// flight fails with ErrAlreadyRunning.
func (s *Sweeper) RunDailySweep(ctx context.Context) (*Report, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRunning
	}
	defer s.running.Store(false)

	now := s.clk.Now()
	report := &Report{RanAt: now, Renewals: []RenewalResult{}}

	s.expiryPass(ctx, report)
	s.renewalPass(ctx, now, report)
	s.reminderPass(ctx, now, report)

	return report, nil
}

func (s *Sweeper) expiryPass(ctx context.Context, report *Report) {
	count, err := s.subs.ExpireOld(ctx)
	if err != nil {
		s.loggerf("sweep: expiry pass failed: %v", err)
		report.Errors = append(report.Errors, fmt.Sprintf("expiry: %v", err))
		return
	}
	report.ExpiredCount = count
}

// renewalPass creates successor subscriptions for auto-renewing memberships
// ending within the next 24 hours. The successor stays pending and gets a
// companion pending payment; nothing activates until that payment confirms.
func (s *Sweeper) renewalPass(ctx context.Context, now time.Time, report *Report) {
	candidates, err := s.subs.ListAutoRenewExpiring(ctx, now, now.Add(24*time.Hour))
	if err != nil {
		s.loggerf("sweep: renewal pass failed to list candidates: %v", err)
		report.Errors = append(report.Errors, fmt.Sprintf("renewal: %v", err))
		return
	}

	for _, prev := range candidates {
		result := RenewalResult{SubscriptionID: prev.ID, StudentID: prev.StudentID}

		next, err := s.subs.CreateRenewal(ctx, prev)
		if err != nil {
			if errors.Is(err, subscription.ErrAlreadyRenewed) {
				result.Skipped = true
				report.Renewals = append(report.Renewals, result)
				continue
			}
			s.loggerf("sweep: renewal of subscription %d failed: %v", prev.ID, err)
			result.Error = err.Error()
			report.Renewals = append(report.Renewals, result)
			continue
		}
		result.NewID = next.ID

		p, err := s.billing.CreateForRenewal(ctx, next)
		if err != nil {
			// The successor stays pending without a payment row. Staff can
			// raise the charge manually; do not abort the batch.
			s.loggerf("sweep: renewal payment for subscription %d failed: %v", next.ID, err)
			result.Error = err.Error()
			report.Renewals = append(report.Renewals, result)
			continue
		}
		result.PaymentID = p.ID
		report.Renewals = append(report.Renewals, result)

		s.notify(ctx, prev.StudentID, string(notification.TemplateRenewalCreated), map[string]any{
			"subscription_id": next.ID,
			"payment_id":      p.ID,
			"start_date":      next.StartDate,
		})
	}
}

func (s *Sweeper) reminderPass(ctx context.Context, now time.Time, report *Report) {
	window := time.Duration(s.reminderDays) * 24 * time.Hour
	expiring, err := s.subs.ListActiveExpiringWithin(ctx, now, now.Add(window))
	if err != nil {
		s.loggerf("sweep: reminder pass failed to list candidates: %v", err)
		report.Errors = append(report.Errors, fmt.Sprintf("reminders: %v", err))
		return
	}

	for _, sub := range expiring {
		ok := s.notify(ctx, sub.StudentID, string(notification.TemplateExpiryReminder), map[string]any{
			"subscription_id": sub.ID,
			"end_date":        sub.EndDate,
			"days_remaining":  sub.DaysRemaining(now),
		})
		if ok {
			report.RemindersSent++
		} else {
			report.ReminderFailures++
		}
	}
}

// notify delivers one notification under a per-call timeout so a slow
// delivery cannot stall the rest of the pass.
func (s *Sweeper) notify(ctx context.Context, studentID int64, template string, data map[string]any) bool {
	if s.reminders == nil {
		return false
	}
	nctx, cancel := context.WithTimeout(ctx, s.notifyTimeout)
	defer cancel()

	if err := s.reminders.Send(nctx, studentID, template, data); err != nil {
		s.loggerf("sweep: notification %s to student %d failed: %v", template, studentID, err)
		return false
	}
	return true
}
