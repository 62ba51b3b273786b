package dto

import (
	"time"

	authDomain "github.com/allisson/vending/internal/auth/domain"
)

// OtherSessionsMessage is returned on login when the account has live sessions elsewhere.
const OtherSessionsMessage = "There is already an active session using your account"

// SessionResponse is returned by login, registration and refresh token rotation.
type SessionResponse struct {
	AccessToken  string    `json:"access_token"`  //nolint:gosec // issued to the caller
	RefreshToken string    `json:"refresh_token"` //nolint:gosec // issued to the caller
	ExpiresIn    int64     `json:"expires_in"`
	ExpiresAt    time.Time `json:"expires_at"`
	Message      string    `json:"message,omitempty"`
}

// MapSessionToResponse converts a session to an API response. ExpiresIn is counted in
// whole seconds from now.
func MapSessionToResponse(session *authDomain.Session, now time.Time) SessionResponse {
	expiresIn := int64(session.AccessTokenExpiresAt.Sub(now).Seconds())
	if expiresIn < 0 {
		expiresIn = 0
	}

	response := SessionResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		ExpiresIn:    expiresIn,
		ExpiresAt:    session.AccessTokenExpiresAt,
	}
	if session.HasOtherSessions {
		response.Message = OtherSessionsMessage
	}
	return response
}
