// Package dto provides data transfer objects for the session endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/vending/internal/validation"
)

// LoginRequest contains the credentials of a login attempt.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"` //nolint:gosec // login credential
}

// Validate checks if the login request is valid.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Password, validation.Required),
	)
}

// RefreshTokenRequest carries a refresh token, for rotation and for logout.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"` //nolint:gosec // opaque session token
}

// Validate checks if the refresh token request is valid.
func (r *RefreshTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.RefreshToken, validation.Required, customValidation.NotBlank),
	)
}
