package domain

import (
	"time"

	"github.com/google/uuid"

	userDomain "github.com/allisson/vending/internal/user/domain"
)

// AccessClaims is the payload of an access token.
type AccessClaims struct {
	UserID    uuid.UUID
	Username  string
	Role      userDomain.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
	Issuer    string
	Audience  string
}

// Principal is the authenticated caller resolved from a valid access token.
type Principal struct {
	UserID   uuid.UUID
	Username string
	Role     userDomain.Role
}

// HasRole reports whether the principal has one of the given roles.
func (p *Principal) HasRole(roles ...userDomain.Role) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// Session is the result of a login or a refresh token exchange.
type Session struct {
	AccessToken          string
	AccessTokenExpiresAt time.Time
	RefreshToken         string
	HasOtherSessions     bool
}

// Revocation is a per-account watermark: access tokens of the account expiring before
// RevokedBefore are rejected.
type Revocation struct {
	UserID        uuid.UUID
	RevokedBefore time.Time
}

// LoginInput holds the credentials of a login attempt and the address it came from.
type LoginInput struct {
	Username      string
	Password      string
	ClientAddress string
}
