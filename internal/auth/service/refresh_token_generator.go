package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	apperrors "github.com/allisson/vending/internal/errors"
)

// refreshTokenBytes is the amount of entropy in a refresh token (512 bits).
const refreshTokenBytes = 64

type refreshTokenGenerator struct{}

// NewRefreshTokenGenerator creates a RefreshTokenGenerator producing hex-encoded 64 byte
// tokens stored as SHA-256 hashes.
func NewRefreshTokenGenerator() RefreshTokenGenerator {
	return &refreshTokenGenerator{}
}

func (g *refreshTokenGenerator) Generate() (plainToken string, tokenHash string, err error) {
	randomBytes := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate refresh token")
	}

	plainToken = hex.EncodeToString(randomBytes)
	return plainToken, g.Hash(plainToken), nil
}

func (g *refreshTokenGenerator) Hash(plainToken string) string {
	hash := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(hash[:])
}
