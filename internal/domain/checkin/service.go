package checkin

import (
	"context"
	"time"

	"academia/internal/domain/student"
	"academia/internal/domain/subscription"
	"academia/internal/pkg/clock"
)

// StudentDirectory is implemented by the student service.
type StudentDirectory interface {
	Get(ctx context.Context, id int64) (*student.Student, error)
}

// SubscriptionGate is implemented by the subscription repository.
type SubscriptionGate interface {
	GetActiveCovering(ctx context.Context, studentID int64, at time.Time) (*subscription.Subscription, error)
}

// EventPublisher pushes admission events to the live dashboard feed.
type EventPublisher interface {
	PublishCheckin(ck *Checkin)
	PublishCheckout(ck *Checkin)
}

// Service performs admission control at the gym entrance.
type Service struct {
	repo     Repository
	students StudentDirectory
	subs     SubscriptionGate
	feed     EventPublisher
	clk      clock.Clock
}

func NewService(repo Repository, students StudentDirectory, subs SubscriptionGate, feed EventPublisher, clk clock.Clock) *Service {
	return &Service{repo: repo, students: students, subs: subs, feed: feed, clk: clk}
}

// CheckIn admits a student. The gate re-evaluates subscription validity on
// every visit; nothing is cached between visits. Duplicate same-day entries
// are rejected whether or not the earlier one was checked out.
func (s *Service) CheckIn(ctx context.Context, studentID int64) (*Checkin, error) {
	st, err := s.students.Get(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !st.IsActive() {
		return nil, student.ErrNotActive
	}

	now := s.clk.Now()
	sub, err := s.subs.GetActiveCovering(ctx, studentID, now)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrNoActivePlan
	}

	day := DayOf(now)
	existing, err := s.repo.GetByStudentAndDay(ctx, studentID, day)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyToday
	}

	ck := &Checkin{
		StudentID:   studentID,
		CheckinDate: day,
		CheckinTime: now,
		CreatedAt:   now,
	}
	if err := s.repo.Create(ctx, ck); err != nil {
		return nil, err
	}

	if s.feed != nil {
		s.feed.PublishCheckin(ck)
	}
	return ck, nil
}

// CheckOut closes an open visit, computing the duration exactly once.
func (s *Service) CheckOut(ctx context.Context, id int64) (*Checkin, error) {
	ck, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ck == nil {
		return nil, ErrNotFound
	}
	if ck.CheckoutTime != nil {
		return nil, ErrCheckedOut
	}

	now := s.clk.Now()
	if now.Before(ck.CheckinTime) {
		return nil, ErrCheckoutOrder
	}

	minutes := Duration(ck.CheckinTime, now)
	ck.CheckoutTime = &now
	ck.DurationMinutes = &minutes
	if err := s.repo.Update(ctx, ck); err != nil {
		return nil, err
	}

	if s.feed != nil {
		s.feed.PublishCheckout(ck)
	}
	return ck, nil
}

func (s *Service) ListByStudent(ctx context.Context, studentID int64, limit, offset int) ([]*Checkin, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ListByStudent(ctx, studentID, limit, offset)
}

// ListToday returns the day's visits for the dashboard.
func (s *Service) ListToday(ctx context.Context) ([]*Checkin, error) {
	return s.repo.ListByDay(ctx, DayOf(s.clk.Now()))
}
