// Package domain defines the session entities: refresh tokens, access token claims,
// authenticated principals and revocation watermarks.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is one session. Only the SHA-256 hash of the token string is stored; the
// plain value is handed to the client once, when the session is created.
type RefreshToken struct {
	ID            uuid.UUID
	TokenHash     string
	UserID        uuid.UUID
	ClientAddress string
	ExpiresAt     time.Time
	CreatedAt     time.Time
}

// IsExpired reports whether the token expired before now.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}

// IssuedRefreshToken pairs a stored token with its plain value.
type IssuedRefreshToken struct {
	*RefreshToken
	PlainToken string
}
