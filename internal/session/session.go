// Package session keeps the per-login state the browser used to hold in
// local storage: the upstream token pair plus the decoded user claims. The
// browser only ever sees an opaque session token; everything else stays
// server-side behind the Store interface.
package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"vrisa/internal/domain"
)

var ErrNotFound = errors.New("session not found")

type Session struct {
	ID            string
	UserID        int64
	Email         string
	FirstName     string
	InstitutionID *int64
	Role          domain.Role
	RoleStatus    domain.RoleStatus

	AccessToken  string
	RefreshToken string

	CreatedAt time.Time
	ExpiresAt time.Time
}

// Store is keyed by the SHA-256 hash of the opaque session token, never the
// raw token.
type Store interface {
	Save(ctx context.Context, tokenHash string, s *Session, ttl time.Duration) error
	Get(ctx context.Context, tokenHash string) (*Session, error)
	Delete(ctx context.Context, tokenHash string) error
}

// NewToken generates the opaque session token handed to the browser and the
// peppered hash it is stored under.
func NewToken(pepper string) (raw, hash string, err error) {
	buf := make([]byte, 32)
	if _, err = rand.Read(buf); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(buf)
	return raw, HashToken(raw, pepper), nil
}

func HashToken(raw, pepper string) string {
	sum := sha256.Sum256([]byte(raw + pepper))
	return hex.EncodeToString(sum[:])
}
