package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authDomain "github.com/allisson/vending/internal/auth/domain"
	apperrors "github.com/allisson/vending/internal/errors"
	userDomain "github.com/allisson/vending/internal/user/domain"
)

// jwtClaims is the wire form of an access token.
type jwtClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Role     string `json:"role"`
}

type jwtCodec struct {
	secret   []byte
	issuer   string
	audience string
	clock    Clock
}

// NewJWTCodec creates an AccessTokenCodec producing HS256 signed JWTs. Parse only accepts
// tokens carrying the configured issuer and audience.
func NewJWTCodec(secret []byte, issuer, audience string, clock Clock) AccessTokenCodec {
	return &jwtCodec{
		secret:   secret,
		issuer:   issuer,
		audience: audience,
		clock:    clock,
	}
}

func (c *jwtCodec) Sign(claims authDomain.AccessClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID.String(),
			Issuer:    claims.Issuer,
			Audience:  jwt.ClaimStrings{claims.Audience},
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
		Username: claims.Username,
		Role:     string(claims.Role),
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign access token")
	}
	return signed, nil
}

func (c *jwtCodec) Parse(token string) (*authDomain.AccessClaims, error) {
	parsed := &jwtClaims{}

	_, err := jwt.ParseWithClaims(
		token,
		parsed,
		func(t *jwt.Token) (interface{}, error) {
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithAudience(c.audience),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(c.clock.Now),
	)
	if err != nil {
		return nil, apperrors.Wrap(authDomain.ErrInvalidAccessToken, err.Error())
	}

	userID, err := uuid.Parse(parsed.Subject)
	if err != nil {
		return nil, apperrors.Wrap(authDomain.ErrInvalidAccessToken, "invalid subject")
	}

	claims := &authDomain.AccessClaims{
		UserID:   userID,
		Username: parsed.Username,
		Role:     userDomain.Role(parsed.Role),
		Issuer:   parsed.Issuer,
		Audience: c.audience,
	}
	if parsed.IssuedAt != nil {
		claims.IssuedAt = parsed.IssuedAt.Time.UTC()
	}
	if parsed.ExpiresAt != nil {
		claims.ExpiresAt = parsed.ExpiresAt.Time.UTC()
	}
	return claims, nil
}
