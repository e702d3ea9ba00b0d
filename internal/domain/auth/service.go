package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	jwtsvc "academia/internal/pkg/jwt"
)

type Service struct {
	repo Repository
	jwt  *jwtsvc.Service
}

func NewService(repo Repository, jwt *jwtsvc.Service) *Service {
	return &Service{repo: repo, jwt: jwt}
}

// Login verifies staff credentials and issues an access token.
// Unknown email and wrong password return the same error on purpose.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	staff, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !staff.IsActive {
		return nil, ErrStaffInactive
	}

	token, err := s.jwt.GenerateToken(staff.ID, staff.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Staff: staff}, nil
}

func (s *Service) Me(ctx context.Context, staffID int64) (*Staff, error) {
	staff, err := s.repo.GetByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, ErrNotFound
	}
	return staff, nil
}

// Register creates a staff user with a bcrypt'd password. Admin only.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*Staff, error) {
	existing, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	staff := &Staff{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}
