package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/cafe-backend/internal/domain/review"
)

// PostgresReviewStore persists reviews in PostgreSQL.
type PostgresReviewStore struct {
	db *sql.DB
}

func NewPostgresReviewStore(db *sql.DB) *PostgresReviewStore {
	return &PostgresReviewStore{db: db}
}

func (s *PostgresReviewStore) CreateReview(ctx context.Context, r *review.Review) (*review.Review, error) {
	stored := *r
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO reviews (member_id, item_id, content, rating, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		r.MemberID, r.ItemID, r.Content, r.Rating, r.CreatedAt, r.UpdatedAt,
	).Scan(&stored.ID)
	if err != nil {
		return nil, fmt.Errorf("insert review: %w", err)
	}
	return &stored, nil
}

func (s *PostgresReviewStore) FindReview(ctx context.Context, reviewID int64) (*review.Review, error) {
	r := &review.Review{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, member_id, item_id, content, rating, created_at, updated_at
		 FROM reviews WHERE id = $1`,
		reviewID,
	).Scan(&r.ID, &r.MemberID, &r.ItemID, &r.Content, &r.Rating, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, review.ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find review: %w", err)
	}
	return r, nil
}

func (s *PostgresReviewStore) UpdateReview(ctx context.Context, r *review.Review) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE reviews SET content = $2, rating = $3, updated_at = $4 WHERE id = $1`,
		r.ID, r.Content, r.Rating, r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

func (s *PostgresReviewStore) DeleteReview(ctx context.Context, reviewID int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, reviewID)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

func (s *PostgresReviewStore) ListReviewsByItem(ctx context.Context, itemID int64, order review.SortOrder) ([]*review.Review, error) {
	direction := "DESC"
	if order == review.SortOldest {
		direction = "ASC"
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, member_id, item_id, content, rating, created_at, updated_at
		 FROM reviews WHERE item_id = $1 ORDER BY id `+direction,
		itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*review.Review
	for rows.Next() {
		r := &review.Review{}
		if err := rows.Scan(&r.ID, &r.MemberID, &r.ItemID, &r.Content, &r.Rating, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

func (s *PostgresReviewStore) AverageRating(ctx context.Context, itemID int64) (float64, error) {
	var avg float64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE item_id = $1`,
		itemID,
	).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("average rating: %w", err)
	}
	return avg, nil
}
