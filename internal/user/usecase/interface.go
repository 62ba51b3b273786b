// Package usecase implements account registration and management.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	userDomain "github.com/allisson/vending/internal/user/domain"
)

// UserRepository persists accounts. Every method honors a transaction carried by ctx.
type UserRepository interface {
	Create(ctx context.Context, user *userDomain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*userDomain.User, error)
	// GetByUsername matches case-insensitively.
	GetByUsername(ctx context.Context, username string) (*userDomain.User, error)
	Update(ctx context.Context, user *userDomain.User) error
	UpdateDeposit(ctx context.Context, id uuid.UUID, deposit int64, updatedAt time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PasswordHasher hashes account passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// SessionRevoker invalidates every access token of an account.
type SessionRevoker interface {
	Revoke(ctx context.Context, userID uuid.UUID) error
}

// UserUseCase defines the account operations.
type UserUseCase interface {
	// Register creates a new account with a zero balance.
	Register(ctx context.Context, input *userDomain.RegisterUserInput) (*userDomain.User, error)

	// Get returns the account with the given ID.
	Get(ctx context.Context, id uuid.UUID) (*userDomain.User, error)

	// Update changes the username and/or password of an account.
	Update(ctx context.Context, id uuid.UUID, input *userDomain.UpdateUserInput) (*userDomain.User, error)

	// Delete removes the account, its sessions and revokes its access tokens.
	Delete(ctx context.Context, id uuid.UUID) error
}
