package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/example/cafe-backend/internal/api/middleware"
	"github.com/example/cafe-backend/internal/auth"
	"github.com/example/cafe-backend/internal/domain/cart"
	"github.com/example/cafe-backend/internal/domain/item"
	"github.com/example/cafe-backend/internal/domain/member"
	"github.com/example/cafe-backend/internal/domain/trade"
	"github.com/example/cafe-backend/internal/metrics"
)

type Handlers struct {
	carts  *cart.Service
	ledger *trade.Ledger
	items  *item.Service
}

func NewHandlers(carts *cart.Service, ledger *trade.Ledger, items *item.Service) *Handlers {
	return &Handlers{
		carts:  carts,
		ledger: ledger,
		items:  items,
	}
}

// Cart Handlers

func (h *Handlers) ShowCart(w http.ResponseWriter, r *http.Request) {
	memberID := middleware.MemberID(r.Context())

	c, err := h.carts.Show(r.Context(), memberID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, c)
}

func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	memberID := middleware.MemberID(r.Context())

	var req struct {
		ItemID   int64 `json:"item_id"`
		Quantity int   `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	line, err := h.carts.AddItem(r.Context(), memberID, req.ItemID, req.Quantity)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	metrics.CartOperations.WithLabelValues("add").Inc()
	respondJSON(w, http.StatusOK, line)
}

func (h *Handlers) EditCartItem(w http.ResponseWriter, r *http.Request) {
	memberID := middleware.MemberID(r.Context())

	itemID, err := pathID(r, "itemID")
	if err != nil {
		respondJSONError(w, "invalid item id", http.StatusBadRequest)
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	line, removed, err := h.carts.EditItem(r.Context(), memberID, itemID, req.Quantity)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	metrics.CartOperations.WithLabelValues("edit").Inc()
	if removed {
		respondJSON(w, http.StatusOK, map[string]any{"item_id": itemID, "removed": true})
		return
	}
	respondJSON(w, http.StatusOK, line)
}

// Trade Handlers

func (h *Handlers) Checkout(w http.ResponseWriter, r *http.Request) {
	memberID := middleware.MemberID(r.Context())

	c, err := h.carts.Show(r.Context(), memberID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	t, err := h.ledger.CreateTrade(r.Context(), memberID, c.Lines)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, t)
}

func (h *Handlers) GetTrade(w http.ResponseWriter, r *http.Request) {
	tradeUUID := chi.URLParam(r, "tradeUUID")

	t, err := h.ledger.FindByTradeUUID(r.Context(), tradeUUID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	// Members see only their own trades; admins see all.
	claims, _ := middleware.MemberFromContext(r.Context())
	if t.MemberID != claims.MemberID && claims.Role != auth.RoleAdmin {
		respondJSONError(w, "trade not found", http.StatusNotFound)
		return
	}

	respondJSON(w, http.StatusOK, t)
}

func (h *Handlers) ListTrades(w http.ResponseWriter, r *http.Request) {
	memberID := middleware.MemberID(r.Context())

	trades, err := h.ledger.ListByMember(r.Context(), memberID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, trades)
}

// Item Handlers

func (h *Handlers) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Price       int64  `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	it, err := h.items.Create(r.Context(), req.Name, req.Description, req.Price)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, it)
}

func (h *Handlers) GetItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(r, "itemID")
	if err != nil {
		respondJSONError(w, "invalid item id", http.StatusBadRequest)
		return
	}

	it, err := h.items.Find(r.Context(), itemID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, it)
}

func (h *Handlers) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.List(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, items)
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondJSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// respondDomainError maps domain errors onto HTTP statuses. Anything
// unrecognized is a 500 with a generic message so internals never leak.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, item.ErrInvalidName),
		errors.Is(err, item.ErrInvalidPrice),
		errors.Is(err, trade.ErrEmptyTrade):
		respondJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, cart.ErrItemNotInCart),
		errors.Is(err, item.ErrItemNotFound),
		errors.Is(err, trade.ErrTradeNotFound),
		errors.Is(err, member.ErrMemberNotFound):
		respondJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, member.ErrEmailTaken):
		respondJSONError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, trade.ErrTradeCreationFailed):
		respondJSONError(w, "trade could not be created", http.StatusServiceUnavailable)
	default:
		respondJSONError(w, "internal error", http.StatusInternalServerError)
	}
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
