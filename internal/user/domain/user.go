// Package domain defines the account entity shared by authentication and the store.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role determines which store operations an account may perform.
type Role string

const (
	// RoleBuyer may deposit coins and buy products.
	RoleBuyer Role = "BUYER"
	// RoleSeller may create and manage products.
	RoleSeller Role = "SELLER"
)

// Roles lists every valid role.
var Roles = []Role{RoleBuyer, RoleSeller}

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == RoleBuyer || r == RoleSeller
}

// ParseRole converts a case-insensitive role name into a Role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	return r, r.IsValid()
}

// User is an account. Deposit is the balance in the smallest currency unit and is only
// changed by deposits, purchases and resets.
type User struct {
	ID        uuid.UUID
	Username  string
	Password  string
	Role      Role
	Deposit   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RegisterUserInput is the data needed to create an account.
type RegisterUserInput struct {
	Username string
	Password string
	Role     Role
}

// UpdateUserInput is a partial account update. Nil fields are left unchanged.
type UpdateUserInput struct {
	Username *string
	Password *string
}
