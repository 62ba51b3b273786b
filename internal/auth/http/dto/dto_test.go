package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	authDomain "github.com/allisson/vending/internal/auth/domain"
)

func TestLoginRequest_Validate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		req := LoginRequest{Username: "buyer1", Password: "secret"}
		assert.NoError(t, req.Validate())
	})

	t.Run("Error_BlankUsername", func(t *testing.T) {
		req := LoginRequest{Username: "   ", Password: "secret"}
		assert.ErrorContains(t, req.Validate(), "username")
	})

	t.Run("Error_MissingPassword", func(t *testing.T) {
		req := LoginRequest{Username: "buyer1"}
		assert.ErrorContains(t, req.Validate(), "password")
	})
}

func TestRefreshTokenRequest_Validate(t *testing.T) {
	assert.NoError(t, (&RefreshTokenRequest{RefreshToken: "abc"}).Validate())
	assert.Error(t, (&RefreshTokenRequest{}).Validate())
}

func TestMapSessionToResponse(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Success_SingleSession", func(t *testing.T) {
		response := MapSessionToResponse(&authDomain.Session{
			AccessToken:          "access",
			AccessTokenExpiresAt: now.Add(10 * time.Minute),
			RefreshToken:         "refresh",
		}, now)

		assert.Equal(t, SessionResponse{
			AccessToken:  "access",
			RefreshToken: "refresh",
			ExpiresIn:    600,
			ExpiresAt:    now.Add(10 * time.Minute),
		}, response)
	})

	t.Run("Success_OtherSessionsMessage", func(t *testing.T) {
		response := MapSessionToResponse(&authDomain.Session{
			AccessTokenExpiresAt: now.Add(time.Minute),
			HasOtherSessions:     true,
		}, now)

		assert.Equal(t, OtherSessionsMessage, response.Message)
	})
}
