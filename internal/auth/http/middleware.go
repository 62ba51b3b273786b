package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/vending/internal/auth/domain"
	authUseCase "github.com/allisson/vending/internal/auth/usecase"
	apperrors "github.com/allisson/vending/internal/errors"
	"github.com/allisson/vending/internal/httputil"
	userDomain "github.com/allisson/vending/internal/user/domain"
)

// AuthenticationMiddleware authenticates requests with a Bearer access token.
//
// The middleware:
//  1. Extracts the token from the Authorization header ("Bearer" is case-insensitive)
//  2. Decodes it and checks signature, expiry, issuer and audience
//  3. Rejects tokens issued before the account's latest logout
//  4. Stores the Principal in the request context for GetPrincipal
//
// Every failure responds 401 Unauthorized, except infrastructure errors which respond 500.
func AuthenticationMiddleware(tokenUseCase authUseCase.TokenUseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			logger.Debug("authentication failed: missing or malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			return
		}

		principal, err := tokenUseCase.Authenticate(c.Request.Context(), accessToken)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			return
		}

		c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), principal))

		logger.Debug("authentication successful",
			slog.String("user_id", principal.UserID.String()),
			slog.String("role", string(principal.Role)))

		c.Next()
	}
}

// RequireRole only lets principals with the given role through. It must run after
// AuthenticationMiddleware.
func RequireRole(role userDomain.Role, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c.Request.Context())
		if !ok {
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			return
		}

		if !principal.HasRole(role) {
			logger.Debug("authorization failed: insufficient role",
				slog.String("user_id", principal.UserID.String()),
				slog.String("role", string(principal.Role)),
				slog.String("required_role", string(role)))
			httputil.HandleErrorGin(c, authDomain.ErrInsufficientRole, logger)
			return
		}

		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	const bearerPrefix = "bearer "
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}
