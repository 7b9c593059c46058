package store

import (
	"context"
	"sort"
	"sync"

	"github.com/example/cafe-backend/internal/domain/review"
)

// MemoryReviewStore keeps reviews in process memory.
type MemoryReviewStore struct {
	mu      sync.RWMutex
	nextID  int64
	reviews map[int64]*review.Review
}

func NewMemoryReviewStore() *MemoryReviewStore {
	return &MemoryReviewStore{reviews: make(map[int64]*review.Review)}
}

func (s *MemoryReviewStore) CreateReview(ctx context.Context, r *review.Review) (*review.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	stored := *r
	stored.ID = s.nextID
	s.reviews[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (s *MemoryReviewStore) FindReview(ctx context.Context, reviewID int64) (*review.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reviews[reviewID]
	if !ok {
		return nil, review.ErrReviewNotFound
	}
	out := *r
	return &out, nil
}

func (s *MemoryReviewStore) UpdateReview(ctx context.Context, r *review.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[r.ID]; !ok {
		return review.ErrReviewNotFound
	}
	stored := *r
	s.reviews[r.ID] = &stored
	return nil
}

func (s *MemoryReviewStore) DeleteReview(ctx context.Context, reviewID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[reviewID]; !ok {
		return review.ErrReviewNotFound
	}
	delete(s.reviews, reviewID)
	return nil
}

func (s *MemoryReviewStore) ListReviewsByItem(ctx context.Context, itemID int64, order review.SortOrder) ([]*review.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*review.Review
	for _, r := range s.reviews {
		if r.ItemID == itemID {
			c := *r
			out = append(out, &c)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if order == review.SortOldest {
			return out[i].ID < out[j].ID
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *MemoryReviewStore) AverageRating(ctx context.Context, itemID int64) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum float64
	var n int
	for _, r := range s.reviews {
		if r.ItemID == itemID {
			sum += r.Rating
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), nil
}
