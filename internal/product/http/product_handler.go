// Package http provides HTTP handlers for product operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/vending/internal/auth/http"
	apperrors "github.com/allisson/vending/internal/errors"
	"github.com/allisson/vending/internal/httputil"
	productDomain "github.com/allisson/vending/internal/product/domain"
	"github.com/allisson/vending/internal/product/http/dto"
	productUseCase "github.com/allisson/vending/internal/product/usecase"
	customValidation "github.com/allisson/vending/internal/validation"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	productUseCase productUseCase.ProductUseCase
	logger         *slog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productUseCase productUseCase.ProductUseCase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
		logger:         logger,
	}
}

// ListHandler returns a page of products, optionally filtered by name.
// GET /v1/products?page=1&pageSize=20&search=cola - Public.
func (h *ProductHandler) ListHandler(c *gin.Context) {
	page, pageSize, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	result, err := h.productUseCase.List(c.Request.Context(), productDomain.ListFilter{
		Page:        page,
		PageSize:    pageSize,
		SearchQuery: c.Query("search"),
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapProductPageToResponse(result))
}

// GetHandler returns one product.
// GET /v1/products/:id - Public.
func (h *ProductHandler) GetHandler(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	product, err := h.productUseCase.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapProductToResponse(product))
}

// CreateHandler lists a new product owned by the authenticated seller.
// POST /v1/products - Requires the SELLER role.
// Returns 201 Created.
func (h *ProductHandler) CreateHandler(c *gin.Context) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	product, err := h.productUseCase.Create(c.Request.Context(), principal.UserID, req.ToDomain())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapProductToResponse(product))
}

// UpdateHandler applies a partial update to a product of the authenticated seller.
// PUT /v1/products/:id - Requires the SELLER role and ownership.
func (h *ProductHandler) UpdateHandler(c *gin.Context) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	product, err := h.productUseCase.Update(c.Request.Context(), principal.UserID, id, req.ToDomain())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapProductToResponse(product))
}

// DeleteHandler removes a product of the authenticated seller.
// DELETE /v1/products/:id - Requires the SELLER role and ownership.
// Returns 204 No Content.
func (h *ProductHandler) DeleteHandler(c *gin.Context) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.productUseCase.Delete(c.Request.Context(), principal.UserID, id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

func (h *ProductHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return uuid.Nil, false
	}
	return id, true
}
