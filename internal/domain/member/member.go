package member

import (
	"context"
	"errors"
	"time"
)

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrEmailTaken     = errors.New("email is already registered")
	ErrInvalidEmail   = errors.New("email is required")
	ErrInvalidName    = errors.New("name is required")
	ErrInvalidLogin   = errors.New("invalid email or password")
)

// Member is a registered account. The password hash never leaves the
// backend.
type Member struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Store persists members. Email is unique.
type Store interface {
	CreateMember(ctx context.Context, m *Member) (*Member, error)
	FindMember(ctx context.Context, memberID int64) (*Member, error)
	FindMemberByEmail(ctx context.Context, email string) (*Member, error)
}
