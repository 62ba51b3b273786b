package domain

import (
	"github.com/allisson/vending/internal/errors"
)

// Account errors.
var (
	// ErrUserNotFound indicates the requested account does not exist.
	ErrUserNotFound = errors.Coded(errors.ErrNotFound, "user/not-found", "user not found")

	// ErrUsernameTaken indicates another account already uses the username (case-insensitively).
	ErrUsernameTaken = errors.Coded(errors.ErrConflict, "user/username-taken", "username already exists")
)
