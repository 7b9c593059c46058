package store

import (
	"context"
	"sync"

	"github.com/example/cafe-backend/internal/domain/member"
)

// MemoryMemberStore keeps members in process memory.
type MemoryMemberStore struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]*member.Member
	byEmail map[string]*member.Member
}

func NewMemoryMemberStore() *MemoryMemberStore {
	return &MemoryMemberStore{
		byID:    make(map[int64]*member.Member),
		byEmail: make(map[string]*member.Member),
	}
}

func (s *MemoryMemberStore) CreateMember(ctx context.Context, m *member.Member) (*member.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[m.Email]; exists {
		return nil, member.ErrEmailTaken
	}

	s.nextID++
	stored := *m
	stored.ID = s.nextID
	s.byID[stored.ID] = &stored
	s.byEmail[stored.Email] = &stored

	out := stored
	return &out, nil
}

func (s *MemoryMemberStore) FindMember(ctx context.Context, memberID int64) (*member.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.byID[memberID]
	if !ok {
		return nil, member.ErrMemberNotFound
	}
	out := *m
	return &out, nil
}

func (s *MemoryMemberStore) FindMemberByEmail(ctx context.Context, email string) (*member.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.byEmail[email]
	if !ok {
		return nil, member.ErrMemberNotFound
	}
	out := *m
	return &out, nil
}
