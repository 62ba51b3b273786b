package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	authDomain "github.com/allisson/vending/internal/auth/domain"
	authService "github.com/allisson/vending/internal/auth/service"
	"github.com/allisson/vending/internal/database"
	userDomain "github.com/allisson/vending/internal/user/domain"
)

// authUseCase implements AuthUseCase.
type authUseCase struct {
	txManager    database.TxManager
	userRepo     UserRepository
	hasher       authService.PasswordHasher
	tokenUseCase TokenUseCase
}

// Login authenticates the account and opens a new session.
//
// Security Notes:
//   - Unknown usernames and wrong passwords return the same ErrInvalidCredentials so the
//     response does not reveal which accounts exist
//   - HasOtherSessions is computed before the new refresh token is stored, so the new
//     session never counts itself
func (a *authUseCase) Login(ctx context.Context, input *authDomain.LoginInput) (*authDomain.Session, error) {
	user, err := a.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, userDomain.ErrUserNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !a.hasher.Verify(input.Password, user.Password) {
		return nil, authDomain.ErrInvalidCredentials
	}

	otherSessions, err := a.tokenUseCase.GetUserSessionCount(ctx, user.ID, input.ClientAddress)
	if err != nil {
		return nil, err
	}

	session, err := a.openSession(ctx, user, input.ClientAddress)
	if err != nil {
		return nil, err
	}
	session.HasOtherSessions = otherSessions > 0
	return session, nil
}

// ExchangeRefreshToken consumes the presented refresh token and opens a new session. The
// whole exchange runs in one transaction; deleting the old token fails for a concurrent
// second use, so every refresh token is redeemed at most once.
func (a *authUseCase) ExchangeRefreshToken(
	ctx context.Context,
	plainToken, clientAddress string,
) (*authDomain.Session, error) {
	var session *authDomain.Session

	err := a.txManager.WithTx(ctx, func(ctx context.Context) error {
		token, err := a.tokenUseCase.VerifyRefreshToken(ctx, plainToken)
		if err != nil {
			return err
		}
		if token == nil {
			return authDomain.ErrInvalidRefreshToken
		}

		if err := a.tokenUseCase.RemoveRefreshToken(ctx, token.ID); err != nil {
			if errors.Is(err, authDomain.ErrRefreshTokenNotFound) {
				return authDomain.ErrInvalidRefreshToken
			}
			return err
		}

		user, err := a.userRepo.GetByID(ctx, token.UserID)
		if err != nil {
			if errors.Is(err, userDomain.ErrUserNotFound) {
				return authDomain.ErrInvalidRefreshToken
			}
			return err
		}

		session, err = a.openSession(ctx, user, clientAddress)
		return err
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (a *authUseCase) Logout(ctx context.Context, plainToken string) error {
	return a.tokenUseCase.ClearRefreshToken(ctx, plainToken)
}

func (a *authUseCase) LogoutAllSessions(ctx context.Context, userID uuid.UUID) error {
	return a.tokenUseCase.ClearUserRefreshTokens(ctx, userID)
}

func (a *authUseCase) openSession(
	ctx context.Context,
	user *userDomain.User,
	clientAddress string,
) (*authDomain.Session, error) {
	refreshToken, err := a.tokenUseCase.AddRefreshToken(ctx, user.ID, clientAddress)
	if err != nil {
		return nil, err
	}

	accessToken, expiresAt, err := a.tokenUseCase.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	return &authDomain.Session{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: expiresAt,
		RefreshToken:         refreshToken.PlainToken,
	}, nil
}

// NewAuthUseCase creates a new AuthUseCase with the provided dependencies.
func NewAuthUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	hasher authService.PasswordHasher,
	tokenUseCase TokenUseCase,
) AuthUseCase {
	return &authUseCase{
		txManager:    txManager,
		userRepo:     userRepo,
		hasher:       hasher,
		tokenUseCase: tokenUseCase,
	}
}
