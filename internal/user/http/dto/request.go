// Package dto provides data transfer objects for the account endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	userDomain "github.com/allisson/vending/internal/user/domain"
	customValidation "github.com/allisson/vending/internal/validation"
)

// RegisterUserRequest contains the parameters for creating an account.
type RegisterUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"` //nolint:gosec // account credential
	Role     string `json:"role"`
}

// Validate checks the request shape. Username and password rules are enforced by the
// use case.
func (r *RegisterUserRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.Role, validation.Required),
	)
}

// ToDomain converts the request into a use case input. The role is matched
// case-insensitively.
func (r *RegisterUserRequest) ToDomain() *userDomain.RegisterUserInput {
	role, _ := userDomain.ParseRole(r.Role)
	return &userDomain.RegisterUserInput{
		Username: r.Username,
		Password: r.Password,
		Role:     role,
	}
}

// UpdateUserRequest is a partial account update. Omitted fields are left unchanged.
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"` //nolint:gosec // account credential
}

// Validate requires at least one field.
func (r *UpdateUserRequest) Validate() error {
	if r.Username == nil && r.Password == nil {
		return validation.NewError("validation_empty_update", "at least one of username or password is required")
	}
	return nil
}

// ToDomain converts the request into a use case input.
func (r *UpdateUserRequest) ToDomain() *userDomain.UpdateUserInput {
	return &userDomain.UpdateUserInput{
		Username: r.Username,
		Password: r.Password,
	}
}
