// Package service provides the technical building blocks of the session lifecycle:
// time, password hashing, access token signing, refresh token generation and the
// revocation watermark cache.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/vending/internal/auth/domain"
)

// Clock supplies the current time. Every expiry comparison goes through it so tests
// can control time.
type Clock interface {
	Now() time.Time
}

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	// Hash returns an encoded hash of plain.
	Hash(plain string) (string, error)

	// Verify reports whether plain matches hashed. A malformed hash is a mismatch,
	// never an error visible to the caller.
	Verify(plain, hashed string) bool
}

// AccessTokenCodec signs and parses access tokens.
type AccessTokenCodec interface {
	// Sign encodes claims into a signed token string.
	Sign(claims authDomain.AccessClaims) (string, error)

	// Parse verifies the signature, expiry, issuer and audience of token and returns
	// its claims. Every failure is reported as authDomain.ErrInvalidAccessToken.
	Parse(token string) (*authDomain.AccessClaims, error)
}

// RefreshTokenGenerator creates opaque refresh token strings.
type RefreshTokenGenerator interface {
	// Generate returns a new random token and the hash to store.
	Generate() (plainToken string, tokenHash string, err error)

	// Hash returns the stored form of a plain token.
	Hash(plainToken string) string
}

// RevocationCache holds per-account "revoked before" watermarks. Implementations must be
// safe for concurrent use, and Revoke and IsRevoked on the same account must be linearizable.
type RevocationCache interface {
	// Revoke poisons every access token of the account that is alive now, by setting
	// the watermark to now plus the access token lifetime.
	Revoke(ctx context.Context, userID uuid.UUID) error

	// IsRevoked reports whether a token of the account expiring at tokenExpiry was
	// issued before the latest revocation.
	IsRevoked(ctx context.Context, userID uuid.UUID, tokenExpiry time.Time) (bool, error)

	// Prune drops watermarks that can no longer reject any token and returns how many
	// were removed.
	Prune(ctx context.Context) (int, error)
}
