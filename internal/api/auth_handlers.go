package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/example/cafe-backend/internal/api/middleware"
	"github.com/example/cafe-backend/internal/auth"
	"github.com/example/cafe-backend/internal/domain/member"
)

// AuthHandlers handles registration, login and token refresh.
type AuthHandlers struct {
	members *member.Service
	tokens  *auth.TokenService
}

func NewAuthHandlers(members *member.Service, tokens *auth.TokenService) *AuthHandlers {
	return &AuthHandlers{
		members: members,
		tokens:  tokens,
	}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries a freshly issued token pair.
type TokenResponse struct {
	AccessToken     string    `json:"access_token"`
	AccessExpiresAt time.Time `json:"access_expires_at"`
	RefreshToken    string    `json:"refresh_token"`
	TokenType       string    `json:"token_type"`
}

// MemberResponse represents member data in responses
type MemberResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	Member MemberResponse `json:"member"`
	Tokens TokenResponse  `json:"tokens"`
}

// Register handles member registration
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	m, err := h.members.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrPasswordTooShort),
			errors.Is(err, member.ErrInvalidEmail),
			errors.Is(err, member.ErrInvalidName):
			respondJSONError(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, member.ErrEmailTaken):
			respondJSONError(w, "email already registered", http.StatusConflict)
		default:
			respondJSONError(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	tokens, err := h.issueTokens(m)
	if err != nil {
		respondJSONError(w, "internal error", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusCreated, AuthResponse{
		Member: memberResponse(m),
		Tokens: tokens,
	})
}

// Login handles member login
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	m, err := h.members.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		// Unknown email and wrong password produce the same response.
		respondJSONError(w, "invalid email or password", http.StatusUnauthorized)
		return
	}

	tokens, err := h.issueTokens(m)
	if err != nil {
		respondJSONError(w, "internal error", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{
		Member: memberResponse(m),
		Tokens: tokens,
	})
}

// Refresh exchanges a valid refresh token for a new token pair.
func (h *AuthHandlers) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	memberID, err := h.tokens.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		respondJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	m, err := h.members.Find(r.Context(), memberID)
	if err != nil {
		respondJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	tokens, err := h.issueTokens(m)
	if err != nil {
		respondJSONError(w, "internal error", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, tokens)
}

// Me returns the current authenticated member's profile.
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	memberID := middleware.MemberID(r.Context())

	m, err := h.members.Find(r.Context(), memberID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, memberResponse(m))
}

func (h *AuthHandlers) issueTokens(m *member.Member) (TokenResponse, error) {
	accessToken, accessExpiry, err := h.tokens.IssueAccessToken(m.ID, m.Email, m.Role)
	if err != nil {
		return TokenResponse{}, err
	}

	refreshToken, _, err := h.tokens.IssueRefreshToken(m.ID)
	if err != nil {
		return TokenResponse{}, err
	}

	return TokenResponse{
		AccessToken:     accessToken,
		AccessExpiresAt: accessExpiry,
		RefreshToken:    refreshToken,
		TokenType:       "Bearer",
	}, nil
}

func memberResponse(m *member.Member) MemberResponse {
	return MemberResponse{
		ID:        m.ID,
		Email:     m.Email,
		Name:      m.Name,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
	}
}
