package auth

import (
	"errors"
	"strings"
)

// ErrUnauthorized is the single failure returned by Resolve. Missing
// header, malformed prefix, and invalid credential are indistinguishable
// to the caller, so a probing client learns nothing about why a
// credential was rejected.
var ErrUnauthorized = errors.New("unauthorized")

const bearerPrefix = "Bearer "

// Resolver extracts a member identity from a raw credential string,
// typically the value of an Authorization header.
type Resolver struct {
	tokens *TokenService
}

func NewResolver(tokens *TokenService) *Resolver {
	return &Resolver{tokens: tokens}
}

// Resolve strips the Bearer scheme if present, validates the remaining
// token, and returns the member id.
func (r *Resolver) Resolve(headerValue string) (int64, error) {
	claims, err := r.ResolveClaims(headerValue)
	if err != nil {
		return 0, err
	}
	return claims.MemberID, nil
}

// ResolveClaims is Resolve for callers that also need email and role.
func (r *Resolver) ResolveClaims(headerValue string) (*Claims, error) {
	tokenString := strings.TrimPrefix(headerValue, bearerPrefix)
	if tokenString == "" {
		return nil, ErrUnauthorized
	}

	claims, err := r.tokens.ValidateAccessToken(tokenString)
	if err != nil {
		return nil, ErrUnauthorized
	}

	return claims, nil
}
