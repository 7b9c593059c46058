package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/cafe-backend/internal/domain/member"
	"github.com/lib/pq"
)

// PostgresMemberStore persists members in PostgreSQL.
type PostgresMemberStore struct {
	db *sql.DB
}

func NewPostgresMemberStore(db *sql.DB) *PostgresMemberStore {
	return &PostgresMemberStore{db: db}
}

func (s *PostgresMemberStore) CreateMember(ctx context.Context, m *member.Member) (*member.Member, error) {
	stored := *m
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO members (email, password_hash, name, role, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		m.Email, m.PasswordHash, m.Name, m.Role, m.CreatedAt,
	).Scan(&stored.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, member.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert member: %w", err)
	}
	return &stored, nil
}

func (s *PostgresMemberStore) FindMember(ctx context.Context, memberID int64) (*member.Member, error) {
	return s.scanMember(s.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, name, role, created_at
		 FROM members WHERE id = $1`,
		memberID,
	))
}

func (s *PostgresMemberStore) FindMemberByEmail(ctx context.Context, email string) (*member.Member, error) {
	return s.scanMember(s.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, name, role, created_at
		 FROM members WHERE email = $1`,
		email,
	))
}

func (s *PostgresMemberStore) scanMember(row *sql.Row) (*member.Member, error) {
	m := &member.Member{}
	err := row.Scan(&m.ID, &m.Email, &m.PasswordHash, &m.Name, &m.Role, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, member.ErrMemberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan member: %w", err)
	}
	return m, nil
}
