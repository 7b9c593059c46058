package review

import (
	"context"
	"errors"
	"time"
)

var (
	ErrReviewNotFound = errors.New("review not found")
	ErrNotEligible    = errors.New("member has not purchased this item")
	ErrNotAuthor      = errors.New("member is not the author of this review")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrEmptyContent   = errors.New("review content is required")
)

// SortOrder controls per-item review listings.
type SortOrder string

const (
	SortLatest SortOrder = "latest"
	SortOldest SortOrder = "oldest"
)

// Review is a member's rating of an item they purchased.
type Review struct {
	ID        int64     `json:"id"`
	MemberID  int64     `json:"member_id"`
	ItemID    int64     `json:"item_id"`
	Content   string    `json:"content"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store persists reviews.
type Store interface {
	CreateReview(ctx context.Context, r *Review) (*Review, error)
	FindReview(ctx context.Context, reviewID int64) (*Review, error)
	UpdateReview(ctx context.Context, r *Review) error
	DeleteReview(ctx context.Context, reviewID int64) error
	ListReviewsByItem(ctx context.Context, itemID int64, order SortOrder) ([]*Review, error)
	AverageRating(ctx context.Context, itemID int64) (float64, error)
}
