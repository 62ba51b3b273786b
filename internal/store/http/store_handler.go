// Package http provides the buyer endpoints: deposit, buy and reset.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/allisson/vending/internal/auth/http"
	apperrors "github.com/allisson/vending/internal/errors"
	"github.com/allisson/vending/internal/httputil"
	"github.com/allisson/vending/internal/store/http/dto"
	storeUseCase "github.com/allisson/vending/internal/store/usecase"
	userDto "github.com/allisson/vending/internal/user/http/dto"
	customValidation "github.com/allisson/vending/internal/validation"
)

// StoreHandler handles the buyer requests. Every route acts on the authenticated account.
type StoreHandler struct {
	storeUseCase  storeUseCase.StoreUseCase
	denominations []int64
	logger        *slog.Logger
}

// NewStoreHandler creates a new StoreHandler accepting deposits of the given denominations.
func NewStoreHandler(
	storeUseCase storeUseCase.StoreUseCase,
	denominations []int64,
	logger *slog.Logger,
) *StoreHandler {
	return &StoreHandler{
		storeUseCase:  storeUseCase,
		denominations: denominations,
		logger:        logger,
	}
}

// DepositHandler adds one coin to the balance.
// POST /v1/deposit - Requires the BUYER role.
func (h *StoreHandler) DepositHandler(c *gin.Context) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(h.denominations); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	user, err := h.storeUseCase.Deposit(c.Request.Context(), req.Value, principal.UserID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, userDto.MapUserToResponse(user))
}

// BuyHandler purchases a product with the deposited balance.
// POST /v1/buy - Requires the BUYER role.
func (h *StoreHandler) BuyHandler(c *gin.Context) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.BuyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result, err := h.storeUseCase.Buy(c.Request.Context(), req.ProductUUID(), req.Amount, principal.UserID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Info("purchase completed",
		slog.String("user_id", principal.UserID.String()),
		slog.String("product_id", req.ProductID),
		slog.Int64("amount", req.Amount),
		slog.Int64("total_spent", result.TotalSpent))

	c.JSON(http.StatusOK, dto.MapPurchaseToResponse(result))
}

// ResetHandler sets the balance to zero.
// PUT /v1/reset - Requires the BUYER role.
// Returns 204 No Content.
func (h *StoreHandler) ResetHandler(c *gin.Context) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	if err := h.storeUseCase.ResetDeposit(c.Request.Context(), principal.UserID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
