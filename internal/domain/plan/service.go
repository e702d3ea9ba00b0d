package plan

import (
	"context"

	"academia/internal/pkg/clock"
)

// Service handles plan catalog administration.
type Service struct {
	repo Repository
	clk  clock.Clock
}

func NewService(repo Repository, clk clock.Clock) *Service {
	return &Service{repo: repo, clk: clk}
}

func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Plan, error) {
	if req.Price < 0 {
		return nil, ErrInvalidPrice
	}
	if req.DurationDays <= 0 {
		return nil, ErrInvalidDuration
	}
	if req.DiscountPercent < 0 || req.DiscountPercent > 100 {
		return nil, ErrInvalidDiscount
	}

	now := s.clk.Now()
	p := &Plan{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationDays:    req.DurationDays,
		MaxStudents:     req.MaxStudents,
		DiscountPercent: req.DiscountPercent,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Plan, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

// GetActive returns the plan only if it can still be subscribed to.
func (s *Service) GetActive(ctx context.Context, id int64) (*Plan, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, ErrInactive
	}
	return p, nil
}

func (s *Service) ListActive(ctx context.Context) ([]*Plan, error) {
	return s.repo.ListActive(ctx)
}

func (s *Service) List(ctx context.Context) ([]*Plan, error) {
	return s.repo.List(ctx)
}

// Update applies administrative price/metadata edits. Running subscriptions
// keep the price captured at creation time, so edits are safe.
func (s *Service) Update(ctx context.Context, id int64, req *UpdateRequest) (*Plan, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, ErrInvalidPrice
		}
		p.Price = *req.Price
	}
	if req.DiscountPercent != nil {
		if *req.DiscountPercent < 0 || *req.DiscountPercent > 100 {
			return nil, ErrInvalidDiscount
		}
		p.DiscountPercent = *req.DiscountPercent
	}
	if req.MaxStudents != nil {
		p.MaxStudents = req.MaxStudents
	}
	p.UpdatedAt = s.clk.Now()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Deactivate retires a plan from the catalog. Refused while subscriptions
// still reference it in a non-terminal state.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	count, err := s.repo.CountActiveSubscriptions(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrInUse
	}
	return s.repo.SetActive(ctx, id, false, s.clk.Now())
}
