package service

import (
	"strings"

	"github.com/allisson/go-pwdhash"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/allisson/vending/internal/errors"
)

// bcryptPrefixes identify hashes imported from the previous bcrypt based user store.
var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

type passwordHasher struct {
	hasher *pwdhash.PasswordHasher
}

// NewPasswordHasher creates a PasswordHasher that hashes with Argon2id using the
// interactive policy. Verify also accepts legacy bcrypt hashes.
func NewPasswordHasher() (PasswordHasher, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}
	return &passwordHasher{hasher: hasher}, nil
}

func (p *passwordHasher) Hash(plain string) (string, error) {
	hashed, err := p.hasher.Hash([]byte(plain))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hashed, nil
}

func (p *passwordHasher) Verify(plain, hashed string) bool {
	if isBcryptHash(hashed) {
		return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
	}

	ok, err := p.hasher.Verify([]byte(plain), hashed)
	if err != nil {
		return false
	}
	return ok
}

func isBcryptHash(hashed string) bool {
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(hashed, prefix) {
			return true
		}
	}
	return false
}
