package member

import (
	"context"
	"errors"
	"time"

	"github.com/example/cafe-backend/internal/auth"
)

// Service is the member directory: registration and credential checks.
// Token issuance lives in the auth package; this service only supplies
// the {id, email, role} triple a token is issued for.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Register creates a customer account.
func (s *Service) Register(ctx context.Context, email, password, name string) (*Member, error) {
	return s.RegisterWithRole(ctx, email, password, name, auth.RoleCustomer)
}

// RegisterAdmin creates an admin account.
func (s *Service) RegisterAdmin(ctx context.Context, email, password, name string) (*Member, error) {
	return s.RegisterWithRole(ctx, email, password, name, auth.RoleAdmin)
}

func (s *Service) RegisterWithRole(ctx context.Context, email, password, name, role string) (*Member, error) {
	if email == "" {
		return nil, ErrInvalidEmail
	}
	if name == "" {
		return nil, ErrInvalidName
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return s.store.CreateMember(ctx, &Member{
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		Role:         role,
		CreatedAt:    time.Now(),
	})
}

// Authenticate checks an email/password pair. Unknown email and wrong
// password fail identically.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*Member, error) {
	m, err := s.store.FindMemberByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			return nil, ErrInvalidLogin
		}
		return nil, err
	}

	if !auth.CheckPassword(password, m.PasswordHash) {
		return nil, ErrInvalidLogin
	}

	return m, nil
}

// Find returns the member by id.
func (s *Service) Find(ctx context.Context, memberID int64) (*Member, error) {
	return s.store.FindMember(ctx, memberID)
}
