package dto

import (
	"time"

	authDto "github.com/allisson/vending/internal/auth/http/dto"
	userDomain "github.com/allisson/vending/internal/user/domain"
)

// UserResponse represents an account in API responses. The password hash is never exposed.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Deposit   int64     `json:"deposit"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RegisterUserResponse is returned after registration: the new account and a session for it.
type RegisterUserResponse struct {
	User  UserResponse            `json:"user"`
	Token authDto.SessionResponse `json:"token"`
}

// MapUserToResponse converts a domain account to an API response.
func MapUserToResponse(user *userDomain.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Role:      string(user.Role),
		Deposit:   user.Deposit,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
