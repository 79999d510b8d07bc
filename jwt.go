package authapi

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenClaims is the subset of claims this client surfaces from a
// service-issued access token.
type AccessTokenClaims struct {
	Subject   string
	Email     string
	Role      string
	ExpiresAt *time.Time
}

// ParseAccessToken decodes the claims of an access token without
// verifying its signature. It is a convenience for callers that need the
// subject or expiry locally; signature verification remains the
// service's responsibility.
func ParseAccessToken(token string) (*AccessTokenClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to parse access token: %w", err)
	}

	out := &AccessTokenClaims{}

	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		at := exp.Time
		out.ExpiresAt = &at
	}
	if email, ok := claims["email"].(string); ok {
		out.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		out.Role = role
	}

	return out, nil
}
