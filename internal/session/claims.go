package session

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"vrisa/internal/domain"
)

// Claims is the payload the backend puts in its access tokens. Signature
// verification is the backend's job (it holds the key); the gateway only
// decodes the payload and honors exp when present.
type Claims struct {
	UserID        int64  `json:"user_id"`
	Email         string `json:"email"`
	FirstName     string `json:"first_name"`
	InstitutionID *int64 `json:"institution_id,omitempty"`
	Role          string `json:"role"`
	RoleStatus    string `json:"role_status"`
	jwtlib.RegisteredClaims
}

var (
	ErrMalformedToken = errors.New("malformed access token")
	ErrExpiredToken   = errors.New("expired access token")
)

// DecodeClaims parses the access token without verifying its signature.
func DecodeClaims(accessToken string) (*Claims, error) {
	claims := &Claims{}
	parser := jwtlib.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return nil, ErrMalformedToken
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, ErrExpiredToken
	}
	return claims, nil
}

// SessionFromClaims builds a Session shell from decoded claims; token fields
// and expiry are filled by the caller.
func SessionFromClaims(c *Claims) *Session {
	return &Session{
		UserID:        c.UserID,
		Email:         c.Email,
		FirstName:     c.FirstName,
		InstitutionID: c.InstitutionID,
		Role:          domain.NormalizeRole(c.Role),
		RoleStatus:    domain.RoleStatus(c.RoleStatus),
	}
}
