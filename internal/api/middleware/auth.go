package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/example/cafe-backend/internal/auth"
	"github.com/example/cafe-backend/internal/metrics"
)

// respondError writes a JSON error response
func respondError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

type contextKey string

const (
	MemberContextKey contextKey = "member"
)

// Authenticate resolves the Authorization header into member claims and
// stores them in the request context. Every failure is a uniform 401;
// the response never says whether the header was missing, malformed, or
// carried an expired token.
func Authenticate(resolver *auth.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := resolver.ResolveClaims(r.Header.Get("Authorization"))
			if err != nil {
				metrics.AuthFailures.Inc()
				respondError(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), MemberContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole checks if the member has one of the required roles
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := r.Context().Value(MemberContextKey).(*auth.Claims)
			if !ok {
				respondError(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			respondError(w, "forbidden", http.StatusForbidden)
		})
	}
}

// MemberFromContext retrieves member claims from the request context
func MemberFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(MemberContextKey).(*auth.Claims)
	return claims, ok
}

// MemberID is a helper to get just the member id from context
func MemberID(ctx context.Context) int64 {
	claims, ok := MemberFromContext(ctx)
	if !ok {
		return 0
	}
	return claims.MemberID
}
