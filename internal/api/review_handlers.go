package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/example/cafe-backend/internal/api/middleware"
	"github.com/example/cafe-backend/internal/domain/review"
)

// ReviewHandlers handles item review requests. Creation is gated on a
// recorded purchase of the item.
type ReviewHandlers struct {
	reviews *review.Service
}

func NewReviewHandlers(reviews *review.Service) *ReviewHandlers {
	return &ReviewHandlers{reviews: reviews}
}

type reviewRequest struct {
	Content string  `json:"content"`
	Rating  float64 `json:"rating"`
}

func (h *ReviewHandlers) CreateReview(w http.ResponseWriter, r *http.Request) {
	memberID := middleware.MemberID(r.Context())

	itemID, err := pathID(r, "itemID")
	if err != nil {
		respondJSONError(w, "invalid item id", http.StatusBadRequest)
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	rev, err := h.reviews.Create(r.Context(), memberID, itemID, req.Content, req.Rating)
	if err != nil {
		respondReviewError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, rev)
}

func (h *ReviewHandlers) UpdateReview(w http.ResponseWriter, r *http.Request) {
	memberID := middleware.MemberID(r.Context())

	reviewID, err := pathID(r, "reviewID")
	if err != nil {
		respondJSONError(w, "invalid review id", http.StatusBadRequest)
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	rev, err := h.reviews.Update(r.Context(), memberID, reviewID, req.Content, req.Rating)
	if err != nil {
		respondReviewError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, rev)
}

func (h *ReviewHandlers) DeleteReview(w http.ResponseWriter, r *http.Request) {
	memberID := middleware.MemberID(r.Context())

	reviewID, err := pathID(r, "reviewID")
	if err != nil {
		respondJSONError(w, "invalid review id", http.StatusBadRequest)
		return
	}

	if err := h.reviews.Delete(r.Context(), memberID, reviewID); err != nil {
		respondReviewError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "review deleted"})
}

func (h *ReviewHandlers) ListReviews(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r, "itemID")
	if err != nil {
		respondJSONError(w, "invalid item id", http.StatusBadRequest)
		return
	}

	order := review.SortLatest
	if r.URL.Query().Get("order") == "oldest" {
		order = review.SortOldest
	}

	reviews, err := h.reviews.ListByItem(r.Context(), itemID, order)
	if err != nil {
		respondReviewError(w, err)
		return
	}

	average, err := h.reviews.AverageRating(r.Context(), itemID)
	if err != nil {
		respondReviewError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"reviews":        reviews,
		"average_rating": average,
	})
}

func respondReviewError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, review.ErrEmptyContent),
		errors.Is(err, review.ErrInvalidRating):
		respondJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, review.ErrNotEligible),
		errors.Is(err, review.ErrNotAuthor):
		respondJSONError(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, review.ErrReviewNotFound):
		respondJSONError(w, err.Error(), http.StatusNotFound)
	default:
		respondJSONError(w, "internal error", http.StatusInternalServerError)
	}
}
