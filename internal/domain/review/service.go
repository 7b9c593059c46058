package review

import (
	"context"
	"time"
)

// Eligibility gates review creation on an actual purchase.
type Eligibility interface {
	HasPurchased(ctx context.Context, memberID, itemID int64) (bool, error)
}

// Service applies the review rules: only buyers review, only authors
// edit or delete.
type Service struct {
	store Store
	gate  Eligibility
}

func NewService(store Store, gate Eligibility) *Service {
	return &Service{store: store, gate: gate}
}

// Create writes a review after checking the member purchased the item.
func (s *Service) Create(ctx context.Context, memberID, itemID int64, content string, rating float64) (*Review, error) {
	if err := validate(content, rating); err != nil {
		return nil, err
	}

	purchased, err := s.gate.HasPurchased(ctx, memberID, itemID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, ErrNotEligible
	}

	now := time.Now()
	return s.store.CreateReview(ctx, &Review{
		MemberID:  memberID,
		ItemID:    itemID,
		Content:   content,
		Rating:    rating,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// Update rewrites content and rating. Only the author may update.
func (s *Service) Update(ctx context.Context, memberID, reviewID int64, content string, rating float64) (*Review, error) {
	if err := validate(content, rating); err != nil {
		return nil, err
	}

	r, err := s.store.FindReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if r.MemberID != memberID {
		return nil, ErrNotAuthor
	}

	r.Content = content
	r.Rating = rating
	r.UpdatedAt = time.Now()
	if err := s.store.UpdateReview(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Delete removes a review. Only the author may delete.
func (s *Service) Delete(ctx context.Context, memberID, reviewID int64) error {
	r, err := s.store.FindReview(ctx, reviewID)
	if err != nil {
		return err
	}
	if r.MemberID != memberID {
		return ErrNotAuthor
	}
	return s.store.DeleteReview(ctx, reviewID)
}

// ListByItem returns an item's reviews in the requested order.
func (s *Service) ListByItem(ctx context.Context, itemID int64, order SortOrder) ([]*Review, error) {
	if order != SortOldest {
		order = SortLatest
	}
	return s.store.ListReviewsByItem(ctx, itemID, order)
}

// AverageRating returns the item's mean rating, 0 when unreviewed.
func (s *Service) AverageRating(ctx context.Context, itemID int64) (float64, error) {
	return s.store.AverageRating(ctx, itemID)
}

func validate(content string, rating float64) error {
	if content == "" {
		return ErrEmptyContent
	}
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	return nil
}
