// Package usecase implements the session lifecycle: login, refresh token rotation,
// logout and access token validation.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/vending/internal/auth/domain"
	userDomain "github.com/allisson/vending/internal/user/domain"
)

// RefreshTokenRepository defines persistence operations for refresh tokens.
// Implementations must support transaction-aware operations via context propagation.
type RefreshTokenRepository interface {
	// Create stores a new refresh token.
	Create(ctx context.Context, token *authDomain.RefreshToken) error

	// GetByTokenHash retrieves a token by the hash of its plain value. Returns
	// ErrRefreshTokenNotFound if there is none.
	GetByTokenHash(ctx context.Context, tokenHash string) (*authDomain.RefreshToken, error)

	// Delete removes a token by ID. Returns ErrRefreshTokenNotFound if no row was removed.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByUserID removes every token of an account and returns how many were removed.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error)

	// CountActiveByUserIDExcludingAddress counts tokens of an account that expire after
	// now and were issued to a different client address.
	CountActiveByUserIDExcludingAddress(
		ctx context.Context,
		userID uuid.UUID,
		clientAddress string,
		now time.Time,
	) (int64, error)

	// DeleteExpired removes tokens that expired before olderThan and returns the count.
	DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error)

	// CountExpired counts tokens that expired before olderThan.
	CountExpired(ctx context.Context, olderThan time.Time) (int64, error)
}

// UserRepository is the read-only view of accounts the session lifecycle needs.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error)
	GetByUsername(ctx context.Context, username string) (*userDomain.User, error)
}

// TokenUseCase issues, verifies and clears tokens.
type TokenUseCase interface {
	// GenerateAccessToken signs a short-lived access token for user and returns it with
	// its expiry. It has no side effects.
	GenerateAccessToken(user *userDomain.User) (string, time.Time, error)

	// AddRefreshToken creates and stores a new refresh token for the account.
	AddRefreshToken(
		ctx context.Context,
		userID uuid.UUID,
		clientAddress string,
	) (*authDomain.IssuedRefreshToken, error)

	// RemoveRefreshToken deletes a stored refresh token by ID.
	RemoveRefreshToken(ctx context.Context, id uuid.UUID) error

	// GetUserSessionCount counts live sessions of the account opened from other addresses.
	GetUserSessionCount(ctx context.Context, userID uuid.UUID, excludeClientAddress string) (int64, error)

	// VerifyRefreshToken returns the stored token, or nil when it is unknown or expired.
	VerifyRefreshToken(ctx context.Context, plainToken string) (*authDomain.RefreshToken, error)

	// ClearRefreshToken deletes one refresh token and revokes every access token of its
	// account. Returns ErrRefreshTokenNotFound for an unknown token.
	ClearRefreshToken(ctx context.Context, plainToken string) error

	// ClearUserRefreshTokens deletes every refresh token of the account and revokes its
	// access tokens.
	ClearUserRefreshTokens(ctx context.Context, userID uuid.UUID) error

	// Validate turns decoded access token claims into a principal. Returns ErrRevokedSession
	// when the token was issued before the account's latest logout.
	Validate(ctx context.Context, claims *authDomain.AccessClaims) (*authDomain.Principal, error)

	// Authenticate decodes and validates a bearer access token.
	Authenticate(ctx context.Context, accessToken string) (*authDomain.Principal, error)

	// PurgeExpiredRefreshTokens deletes refresh tokens that expired more than olderThanDays
	// days ago. With dryRun it only counts them.
	PurgeExpiredRefreshTokens(ctx context.Context, olderThanDays int, dryRun bool) (int64, error)
}

// AuthUseCase orchestrates the session lifecycle on top of TokenUseCase.
type AuthUseCase interface {
	// Login checks credentials and opens a new session. Unknown usernames and wrong
	// passwords both return ErrInvalidCredentials.
	Login(ctx context.Context, input *authDomain.LoginInput) (*authDomain.Session, error)

	// ExchangeRefreshToken rotates a refresh token: the presented token is consumed and a
	// new session is returned. Returns ErrInvalidRefreshToken when the token is unknown,
	// expired or was already used.
	ExchangeRefreshToken(ctx context.Context, plainToken, clientAddress string) (*authDomain.Session, error)

	// Logout ends the session of the refresh token and revokes the account's access tokens.
	Logout(ctx context.Context, plainToken string) error

	// LogoutAllSessions ends every session of the account.
	LogoutAllSessions(ctx context.Context, userID uuid.UUID) error
}
