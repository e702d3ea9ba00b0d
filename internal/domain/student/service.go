package student

import (
	"context"

	"academia/internal/pkg/clock"
	"academia/internal/pkg/validator"
)

// Service handles student enrollment and administration.
type Service struct {
	repo Repository
	clk  clock.Clock
}

func NewService(repo Repository, clk clock.Clock) *Service {
	return &Service{repo: repo, clk: clk}
}

// Enroll registers a new member. New members start active; front desk can
// suspend or deactivate afterwards.
func (s *Service) Enroll(ctx context.Context, req *EnrollRequest) (*Student, error) {
	// Validated here too so non-HTTP callers (seed, imports) get the same rules.
	if fields := validator.Validate(req); fields != nil {
		return nil, ErrInvalidEnrollment
	}

	existing, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	now := s.clk.Now()
	st := &Student{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Document:  req.Document,
		BirthDate: req.BirthDate,
		Status:    StatusActive,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Student, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrNotFound
	}
	return st, nil
}

func (s *Service) List(ctx context.Context, status Status, limit, offset int) ([]*Student, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if status != "" && !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	return s.repo.List(ctx, status, limit, offset)
}

func (s *Service) Update(ctx context.Context, id int64, req *UpdateRequest) (*Student, error) {
	st, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		st.Name = req.Name
	}
	if req.Phone != "" {
		st.Phone = req.Phone
	}
	if req.Notes != nil {
		st.Notes = *req.Notes
	}
	st.UpdatedAt = s.clk.Now()
	if err := s.repo.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// ChangeStatus is the administrative soft status mutation. There is no
// delete path for students.
func (s *Service) ChangeStatus(ctx context.Context, id int64, status Status) (*Student, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	st, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.clk.Now()
	if err := s.repo.UpdateStatus(ctx, id, status, now); err != nil {
		return nil, err
	}
	st.Status = status
	st.UpdatedAt = now
	return st, nil
}
