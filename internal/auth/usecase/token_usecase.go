package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/vending/internal/auth/domain"
	authService "github.com/allisson/vending/internal/auth/service"
	"github.com/allisson/vending/internal/config"
	userDomain "github.com/allisson/vending/internal/user/domain"
)

// tokenUseCase implements TokenUseCase on top of the refresh token table, the access
// token codec and the revocation cache.
type tokenUseCase struct {
	config           *config.Config
	refreshTokenRepo RefreshTokenRepository
	codec            authService.AccessTokenCodec
	generator        authService.RefreshTokenGenerator
	revocations      authService.RevocationCache
	clock            authService.Clock
}

func (t *tokenUseCase) GenerateAccessToken(user *userDomain.User) (string, time.Time, error) {
	now := t.clock.Now()
	expiresAt := now.Add(t.config.AuthAccessTokenExpiration)

	token, err := t.codec.Sign(authDomain.AccessClaims{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
		Issuer:    t.config.AuthJWTIssuer,
		Audience:  t.config.AuthJWTAudience,
	})
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// AddRefreshToken generates a new refresh token and stores its hash. The plain value is
// only available on the returned IssuedRefreshToken.
func (t *tokenUseCase) AddRefreshToken(
	ctx context.Context,
	userID uuid.UUID,
	clientAddress string,
) (*authDomain.IssuedRefreshToken, error) {
	plainToken, tokenHash, err := t.generator.Generate()
	if err != nil {
		return nil, err
	}

	now := t.clock.Now()
	token := &authDomain.RefreshToken{
		ID:            uuid.Must(uuid.NewV7()),
		TokenHash:     tokenHash,
		UserID:        userID,
		ClientAddress: clientAddress,
		ExpiresAt:     now.Add(t.config.AuthRefreshTokenExpiration),
		CreatedAt:     now,
	}

	if err := t.refreshTokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	return &authDomain.IssuedRefreshToken{RefreshToken: token, PlainToken: plainToken}, nil
}

func (t *tokenUseCase) RemoveRefreshToken(ctx context.Context, id uuid.UUID) error {
	return t.refreshTokenRepo.Delete(ctx, id)
}

func (t *tokenUseCase) GetUserSessionCount(
	ctx context.Context,
	userID uuid.UUID,
	excludeClientAddress string,
) (int64, error) {
	return t.refreshTokenRepo.CountActiveByUserIDExcludingAddress(ctx, userID, excludeClientAddress, t.clock.Now())
}

func (t *tokenUseCase) VerifyRefreshToken(
	ctx context.Context,
	plainToken string,
) (*authDomain.RefreshToken, error) {
	if plainToken == "" {
		return nil, nil
	}

	token, err := t.refreshTokenRepo.GetByTokenHash(ctx, t.generator.Hash(plainToken))
	if err != nil {
		if errors.Is(err, authDomain.ErrRefreshTokenNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if token.IsExpired(t.clock.Now()) {
		return nil, nil
	}
	return token, nil
}

// ClearRefreshToken deletes the token and revokes all access tokens of its account, not
// just the ones minted alongside this refresh token.
func (t *tokenUseCase) ClearRefreshToken(ctx context.Context, plainToken string) error {
	token, err := t.refreshTokenRepo.GetByTokenHash(ctx, t.generator.Hash(plainToken))
	if err != nil {
		return err
	}

	if err := t.refreshTokenRepo.Delete(ctx, token.ID); err != nil {
		return err
	}

	return t.revocations.Revoke(ctx, token.UserID)
}

func (t *tokenUseCase) ClearUserRefreshTokens(ctx context.Context, userID uuid.UUID) error {
	if _, err := t.refreshTokenRepo.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	return t.revocations.Revoke(ctx, userID)
}

func (t *tokenUseCase) Validate(
	ctx context.Context,
	claims *authDomain.AccessClaims,
) (*authDomain.Principal, error) {
	revoked, err := t.revocations.IsRevoked(ctx, claims.UserID, claims.ExpiresAt)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, authDomain.ErrRevokedSession
	}

	return &authDomain.Principal{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}

func (t *tokenUseCase) Authenticate(ctx context.Context, accessToken string) (*authDomain.Principal, error) {
	claims, err := t.codec.Parse(accessToken)
	if err != nil {
		return nil, err
	}
	return t.Validate(ctx, claims)
}

func (t *tokenUseCase) PurgeExpiredRefreshTokens(
	ctx context.Context,
	olderThanDays int,
	dryRun bool,
) (int64, error) {
	olderThan := t.clock.Now().AddDate(0, 0, -olderThanDays)
	if dryRun {
		return t.refreshTokenRepo.CountExpired(ctx, olderThan)
	}
	return t.refreshTokenRepo.DeleteExpired(ctx, olderThan)
}

// NewTokenUseCase creates a new TokenUseCase with the provided dependencies.
func NewTokenUseCase(
	cfg *config.Config,
	refreshTokenRepo RefreshTokenRepository,
	codec authService.AccessTokenCodec,
	generator authService.RefreshTokenGenerator,
	revocations authService.RevocationCache,
	clock authService.Clock,
) TokenUseCase {
	return &tokenUseCase{
		config:           cfg,
		refreshTokenRepo: refreshTokenRepo,
		codec:            codec,
		generator:        generator,
		revocations:      revocations,
		clock:            clock,
	}
}
