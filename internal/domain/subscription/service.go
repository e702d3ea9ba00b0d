package subscription

import (
	"context"
	"fmt"
	"time"

	"academia/internal/domain/plan"
	"academia/internal/domain/student"
	"academia/internal/pkg/clock"
)

// PlanCatalog is implemented by the plan service.
type PlanCatalog interface {
	Get(ctx context.Context, id int64) (*plan.Plan, error)
	GetActive(ctx context.Context, id int64) (*plan.Plan, error)
}

// StudentDirectory is implemented by the student service.
type StudentDirectory interface {
	Get(ctx context.Context, id int64) (*student.Student, error)
}

// Service owns the subscription lifecycle:
// pending → active → {expired, cancelled, suspended}; suspended → active.
type Service struct {
	repo     Repository
	plans    PlanCatalog
	students StudentDirectory
	clk      clock.Clock
}

func NewService(repo Repository, plans PlanCatalog, students StudentDirectory, clk clock.Clock) *Service {
	return &Service{repo: repo, plans: plans, students: students, clk: clk}
}

// Create opens a new membership period in pending status. Activation happens
// on payment confirmation.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Subscription, error) {
	if _, err := s.students.Get(ctx, req.StudentID); err != nil {
		return nil, err
	}
	p, err := s.plans.GetActive(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}

	now := s.clk.Now()
	start := now
	if req.StartDate != nil {
		start = *req.StartDate
	}
	end := start.AddDate(0, 0, p.DurationDays)
	if !end.After(start) {
		return nil, ErrInvalidDates
	}

	sub := &Subscription{
		StudentID:      req.StudentID,
		PlanID:         p.ID,
		StartDate:      start,
		EndDate:        end,
		Price:          p.Price,
		DiscountAmount: p.DiscountAmount(),
		FinalPrice:     p.FinalPrice(),
		Status:         StatusPending,
		AutoRenew:      req.AutoRenew,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Subscription, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrNotFound
	}
	return sub, nil
}

func (s *Service) ListByStudent(ctx context.Context, studentID int64) ([]*Subscription, error) {
	return s.repo.ListByStudent(ctx, studentID)
}

// Activate moves a pending or suspended subscription to active. Refused when
// the period already lapsed, and when the student already has another active
// subscription covering now.
func (s *Service) Activate(ctx context.Context, id int64) (*Subscription, error) {
	sub, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.clk.Now()

	if sub.Status == StatusActive {
		return sub, nil
	}
	if !sub.Status.CanTransition(StatusActive) {
		return nil, ErrInvalidTransition
	}
	if sub.IsExpired(now) {
		return nil, ErrReactivateExpired
	}

	if sub.Covers(now) {
		other, err := s.repo.GetActiveCovering(ctx, sub.StudentID, now)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != sub.ID {
			return nil, ErrAlreadyActive
		}
	}

	sub.Status = StatusActive
	sub.UpdatedAt = now
	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Expire is the idempotent terminal transition driven by the daily sweep.
// No-op when already terminal.
func (s *Service) Expire(ctx context.Context, id int64) (*Subscription, error) {
	sub, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.Status.IsTerminal() {
		return sub, nil
	}

	sub.Status = StatusExpired
	sub.UpdatedAt = s.clk.Now()
	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Cancel terminates the subscription from any non-terminal state and turns
// auto-renew off. The reason lands in the notes, never as an error.
func (s *Service) Cancel(ctx context.Context, id int64, reason string) (*Subscription, error) {
	sub, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.Status.IsTerminal() {
		return nil, ErrTerminal
	}

	sub.Status = StatusCancelled
	sub.AutoRenew = false
	sub.UpdatedAt = s.clk.Now()
	if reason != "" {
		sub.appendNote("cancelado: " + reason)
	}
	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Suspend pauses an active subscription.
func (s *Service) Suspend(ctx context.Context, id int64, reason string) (*Subscription, error) {
	sub, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sub.Status.CanTransition(StatusSuspended) {
		return nil, ErrInvalidTransition
	}

	sub.Status = StatusSuspended
	sub.UpdatedAt = s.clk.Now()
	if reason != "" {
		sub.appendNote("suspenso: " + reason)
	}
	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Extend shifts the end date forward. Usable while not expired.
func (s *Service) Extend(ctx context.Context, id int64, days int) (*Subscription, error) {
	if days <= 0 {
		return nil, ErrInvalidExtension
	}
	sub, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.Status.IsTerminal() || sub.IsExpired(s.clk.Now()) {
		return nil, ErrTerminal
	}

	sub.EndDate = sub.EndDate.AddDate(0, 0, days)
	sub.UpdatedAt = s.clk.Now()
	sub.appendNote(fmt.Sprintf("estendido em %d dias", days))
	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// CreateRenewal builds the successor period for an auto-renewing
// subscription: starts when prev ends, re-applies the plan's current
// duration and pricing, and stays pending until its payment is confirmed.
// Returns ErrAlreadyRenewed when a successor already exists.
func (s *Service) CreateRenewal(ctx context.Context, prev *Subscription) (*Subscription, error) {
	existing, err := s.repo.GetSuccessor(ctx, prev.StudentID, prev.EndDate)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyRenewed
	}

	p, err := s.plans.GetActive(ctx, prev.PlanID)
	if err != nil {
		return nil, err
	}

	now := s.clk.Now()
	start := prev.EndDate
	sub := &Subscription{
		StudentID:      prev.StudentID,
		PlanID:         p.ID,
		StartDate:      start,
		EndDate:        start.AddDate(0, 0, p.DurationDays),
		Price:          p.Price,
		DiscountAmount: p.DiscountAmount(),
		FinalPrice:     p.FinalPrice(),
		Status:         StatusPending,
		AutoRenew:      prev.AutoRenew,
		Notes:          fmt.Sprintf("renovação da assinatura %d", prev.ID),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// ExpireOld is the bulk expiry sweep entry point.
func (s *Service) ExpireOld(ctx context.Context) (int64, error) {
	return s.repo.ExpireOlderThan(ctx, s.clk.Now())
}

// ListAutoRenewExpiring returns active auto-renew subscriptions whose end
// date falls inside the renewal window.
func (s *Service) ListAutoRenewExpiring(ctx context.Context, from, to time.Time) ([]*Subscription, error) {
	return s.repo.ListAutoRenewExpiring(ctx, from, to)
}

// ListActiveExpiringWithin returns active subscriptions ending inside the
// reminder window, regardless of auto-renew.
func (s *Service) ListActiveExpiringWithin(ctx context.Context, from, to time.Time) ([]*Subscription, error) {
	return s.repo.ListActiveExpiringWithin(ctx, from, to)
}

// DaysRemaining is a derived query, never persisted.
func (s *Service) DaysRemaining(ctx context.Context, id int64) (int, error) {
	sub, err := s.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	return sub.DaysRemaining(s.clk.Now()), nil
}
