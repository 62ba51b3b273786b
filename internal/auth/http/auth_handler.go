package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/vending/internal/auth/domain"
	"github.com/allisson/vending/internal/auth/http/dto"
	authUseCase "github.com/allisson/vending/internal/auth/usecase"
	apperrors "github.com/allisson/vending/internal/errors"
	"github.com/allisson/vending/internal/httputil"
	customValidation "github.com/allisson/vending/internal/validation"
)

// AuthHandler handles HTTP requests for the session lifecycle.
type AuthHandler struct {
	authUseCase authUseCase.AuthUseCase
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authUseCase authUseCase.AuthUseCase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		logger:      logger,
	}
}

// LoginHandler opens a session.
// POST /v1/auth/login - Public, rate limited per IP.
// Returns 200 OK with access and refresh tokens.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	session, err := h.authUseCase.Login(c.Request.Context(), &authDomain.LoginInput{
		Username:      req.Username,
		Password:      req.Password,
		ClientAddress: c.ClientIP(),
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSessionToResponse(session, time.Now()))
}

// RefreshTokenHandler rotates a refresh token.
// POST /v1/auth/refresh-token - Public, rate limited per IP.
// Returns 200 OK with a new token pair. The presented refresh token stops working.
func (h *AuthHandler) RefreshTokenHandler(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	session, err := h.authUseCase.ExchangeRefreshToken(c.Request.Context(), req.RefreshToken, c.ClientIP())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSessionToResponse(session, time.Now()))
}

// LogoutHandler ends the session of a refresh token.
// POST /v1/auth/logout - Public.
// Returns 204 No Content. Every access token of the account stops working.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.authUseCase.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// LogoutAllHandler ends every session of the authenticated account.
// POST /v1/auth/logout/all - Requires authentication.
// Returns 204 No Content.
func (h *AuthHandler) LogoutAllHandler(c *gin.Context) {
	principal, ok := GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	if err := h.authUseCase.LogoutAllSessions(c.Request.Context(), principal.UserID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
