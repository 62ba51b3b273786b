// Package http provides HTTP handlers for account operations.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/vending/internal/auth/domain"
	authHTTP "github.com/allisson/vending/internal/auth/http"
	authDto "github.com/allisson/vending/internal/auth/http/dto"
	authUseCase "github.com/allisson/vending/internal/auth/usecase"
	apperrors "github.com/allisson/vending/internal/errors"
	"github.com/allisson/vending/internal/httputil"
	"github.com/allisson/vending/internal/user/http/dto"
	userUseCase "github.com/allisson/vending/internal/user/usecase"
	customValidation "github.com/allisson/vending/internal/validation"
)

// UserHandler handles HTTP requests for accounts. Every route except registration acts
// on the authenticated account.
type UserHandler struct {
	userUseCase userUseCase.UserUseCase
	authUseCase authUseCase.AuthUseCase
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(
	userUseCase userUseCase.UserUseCase,
	authUseCase authUseCase.AuthUseCase,
	logger *slog.Logger,
) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		authUseCase: authUseCase,
		logger:      logger,
	}
}

// RegisterHandler creates an account and logs it in.
// POST /v1/users - Public.
// Returns 201 Created with the account and a session.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	user, err := h.userUseCase.Register(c.Request.Context(), req.ToDomain())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	session, err := h.authUseCase.Login(c.Request.Context(), &authDomain.LoginInput{
		Username:      user.Username,
		Password:      req.Password,
		ClientAddress: c.ClientIP(),
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterUserResponse{
		User:  dto.MapUserToResponse(user),
		Token: authDto.MapSessionToResponse(session, time.Now()),
	})
}

// GetHandler returns the authenticated account.
// GET /v1/users - Requires authentication.
func (h *UserHandler) GetHandler(c *gin.Context) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	user, err := h.userUseCase.Get(c.Request.Context(), principal.UserID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}

// UpdateHandler changes the username and/or password of the authenticated account.
// PUT /v1/users - Requires authentication.
func (h *UserHandler) UpdateHandler(c *gin.Context) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	user, err := h.userUseCase.Update(c.Request.Context(), principal.UserID, req.ToDomain())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}

// DeleteHandler removes the authenticated account.
// DELETE /v1/users - Requires authentication.
// Returns 204 No Content.
func (h *UserHandler) DeleteHandler(c *gin.Context) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	if err := h.userUseCase.Delete(c.Request.Context(), principal.UserID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
