package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/cafe-backend/internal/auth"
)

func newTestAuth(t *testing.T) (*auth.TokenService, *auth.Resolver) {
	t.Helper()
	tokens := auth.NewTokenService("test-secret-key-needs-32-characters!", 15*time.Minute, time.Hour)
	return tokens, auth.NewResolver(tokens)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate_ValidToken(t *testing.T) {
	tokens, resolver := newTestAuth(t)
	token, _, err := tokens.IssueAccessToken(7, "alice@example.com", auth.RoleCustomer)
	require.NoError(t, err)

	var gotID int64
	handler := Authenticate(resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = MemberID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), gotID)
}

func TestAuthenticate_UniformRejection(t *testing.T) {
	_, resolver := newTestAuth(t)

	expiredTokens := auth.NewTokenService("test-secret-key-needs-32-characters!", -time.Minute, time.Hour)
	expired, _, err := expiredTokens.IssueAccessToken(7, "alice@example.com", auth.RoleCustomer)
	require.NoError(t, err)

	foreignTokens := auth.NewTokenService("another-secret-key-32-characters-ok!", 15*time.Minute, time.Hour)
	foreign, _, err := foreignTokens.IssueAccessToken(7, "alice@example.com", auth.RoleCustomer)
	require.NoError(t, err)

	handler := Authenticate(resolver)(okHandler())

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"scheme only", "Bearer "},
		{"garbage token", "Bearer not-a-token"},
		{"expired token", "Bearer " + expired},
		{"foreign signature", "Bearer " + foreign},
	}

	var bodies []string
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			bodies = append(bodies, rec.Body.String())
		})
	}

	// Every rejection reads identically.
	for i := 1; i < len(bodies); i++ {
		assert.Equal(t, bodies[0], bodies[i])
	}
}

func TestRequireRole(t *testing.T) {
	tokens, resolver := newTestAuth(t)

	customerToken, _, err := tokens.IssueAccessToken(7, "alice@example.com", auth.RoleCustomer)
	require.NoError(t, err)
	adminToken, _, err := tokens.IssueAccessToken(8, "admin@example.com", auth.RoleAdmin)
	require.NoError(t, err)

	handler := Authenticate(resolver)(RequireRole(auth.RoleAdmin)(okHandler()))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+customerToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_NoClaimsInContext(t *testing.T) {
	handler := RequireRole(auth.RoleAdmin)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
