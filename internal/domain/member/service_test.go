package member

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/cafe-backend/internal/auth"
)

type fakeMemberStore struct {
	nextID  int64
	byID    map[int64]*Member
	byEmail map[string]*Member
}

func newFakeMemberStore() *fakeMemberStore {
	return &fakeMemberStore{
		byID:    make(map[int64]*Member),
		byEmail: make(map[string]*Member),
	}
}

func (s *fakeMemberStore) CreateMember(_ context.Context, m *Member) (*Member, error) {
	if _, taken := s.byEmail[m.Email]; taken {
		return nil, ErrEmailTaken
	}
	s.nextID++
	m.ID = s.nextID
	s.byID[m.ID] = m
	s.byEmail[m.Email] = m
	return m, nil
}

func (s *fakeMemberStore) FindMember(_ context.Context, memberID int64) (*Member, error) {
	m, ok := s.byID[memberID]
	if !ok {
		return nil, ErrMemberNotFound
	}
	return m, nil
}

func (s *fakeMemberStore) FindMemberByEmail(_ context.Context, email string) (*Member, error) {
	m, ok := s.byEmail[email]
	if !ok {
		return nil, ErrMemberNotFound
	}
	return m, nil
}

func TestRegister(t *testing.T) {
	svc := NewService(newFakeMemberStore())

	m, err := svc.Register(context.Background(), "alice@example.com", "password123", "Alice")
	require.NoError(t, err)

	assert.NotZero(t, m.ID)
	assert.Equal(t, auth.RoleCustomer, m.Role)
	assert.NotEqual(t, "password123", m.PasswordHash, "password must be stored hashed")
}

func TestRegister_Validation(t *testing.T) {
	svc := NewService(newFakeMemberStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "password123", "Alice")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.Register(ctx, "alice@example.com", "password123", "")
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = svc.Register(ctx, "alice@example.com", "short", "Alice")
	assert.ErrorIs(t, err, auth.ErrPasswordTooShort)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := NewService(newFakeMemberStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice@example.com", "password123", "Alice")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice@example.com", "different-pass", "Alice Again")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterAdmin(t *testing.T) {
	svc := NewService(newFakeMemberStore())

	m, err := svc.RegisterAdmin(context.Background(), "admin@example.com", "password123", "Admin")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, m.Role)
}

func TestAuthenticate(t *testing.T) {
	svc := NewService(newFakeMemberStore())
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice@example.com", "password123", "Alice")
	require.NoError(t, err)

	m, err := svc.Authenticate(ctx, "alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, m.ID)
}

func TestAuthenticate_UniformFailure(t *testing.T) {
	svc := NewService(newFakeMemberStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice@example.com", "password123", "Alice")
	require.NoError(t, err)

	// Unknown email and wrong password must be indistinguishable.
	_, unknownErr := svc.Authenticate(ctx, "nobody@example.com", "password123")
	_, wrongErr := svc.Authenticate(ctx, "alice@example.com", "wrong-password")

	assert.ErrorIs(t, unknownErr, ErrInvalidLogin)
	assert.ErrorIs(t, wrongErr, ErrInvalidLogin)
	assert.Equal(t, unknownErr, wrongErr)
}
