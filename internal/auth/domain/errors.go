package domain

import (
	"github.com/allisson/vending/internal/errors"
)

// Authentication and session errors.
var (
	// ErrInvalidCredentials is returned for an unknown username and for a wrong password alike.
	ErrInvalidCredentials = errors.Coded(
		errors.ErrUnauthorized,
		"auth/invalid-credentials",
		"invalid username or password",
	)

	// ErrInvalidRefreshToken indicates the refresh token is unknown, expired or already rotated.
	ErrInvalidRefreshToken = errors.Coded(
		errors.ErrUnauthorized,
		"auth/invalid-refresh-token",
		"invalid or expired refresh token",
	)

	// ErrRefreshTokenNotFound indicates logout was called with an unknown refresh token.
	ErrRefreshTokenNotFound = errors.Coded(
		errors.ErrNotFound,
		"auth/refresh-token-not-found",
		"refresh token not found",
	)

	// ErrInvalidAccessToken indicates a malformed, badly signed or expired access token.
	ErrInvalidAccessToken = errors.Coded(
		errors.ErrUnauthorized,
		"auth/invalid-access-token",
		"invalid or expired access token",
	)

	// ErrRevokedSession indicates the access token was issued before the account logged out.
	ErrRevokedSession = errors.Coded(
		errors.ErrUnauthorized,
		"auth/revoked-session",
		"session has been revoked",
	)

	// ErrInsufficientRole indicates the caller's role may not perform the operation.
	ErrInsufficientRole = errors.Coded(
		errors.ErrForbidden,
		"auth/insufficient-role",
		"user is not allowed to perform this operation",
	)
)
