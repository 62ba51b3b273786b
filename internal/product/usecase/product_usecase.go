package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	"github.com/allisson/vending/internal/database"
	productDomain "github.com/allisson/vending/internal/product/domain"
	appValidation "github.com/allisson/vending/internal/validation"
)

// Listing bounds.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type productUseCase struct {
	txManager   database.TxManager
	productRepo ProductRepository
}

// NewProductUseCase creates a new ProductUseCase.
func NewProductUseCase(txManager database.TxManager, productRepo ProductRepository) ProductUseCase {
	return &productUseCase{
		txManager:   txManager,
		productRepo: productRepo,
	}
}

func nameRules() []validation.Rule {
	return []validation.Rule{validation.Required, appValidation.NotBlank, validation.Length(1, 255)}
}

func costRules() []validation.Rule {
	return []validation.Rule{
		validation.Required,
		validation.Min(int64(productDomain.CostStep)),
		validation.Max(int64(productDomain.MaxCost)),
		validation.MultipleOf(int64(productDomain.CostStep)),
	}
}

func amountRules() []validation.Rule {
	return []validation.Rule{
		validation.Required,
		validation.Min(int64(1)),
		validation.Max(int64(productDomain.MaxAmountAvailable)),
	}
}

func validateCreateInput(input *productDomain.CreateProductInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Name, nameRules()...),
		validation.Field(&input.Cost, costRules()...),
		validation.Field(&input.AmountAvailable, amountRules()...),
	)
	return appValidation.WrapValidationError(err)
}

func validateUpdateInput(input *productDomain.UpdateProductInput) error {
	errs := validation.Errors{}
	if input.Name != nil {
		errs["name"] = validation.Validate(*input.Name, nameRules()...)
	}
	if input.Cost != nil {
		errs["cost"] = validation.Validate(*input.Cost, costRules()...)
	}
	if input.AmountAvailable != nil {
		errs["amountAvailable"] = validation.Validate(*input.AmountAvailable, amountRules()...)
	}
	return appValidation.WrapValidationError(errs.Filter())
}

func (uc *productUseCase) List(
	ctx context.Context,
	filter productDomain.ListFilter,
) (*productDomain.ProductPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = DefaultPageSize
	}
	if filter.PageSize > MaxPageSize {
		filter.PageSize = MaxPageSize
	}
	filter.SearchQuery = strings.TrimSpace(filter.SearchQuery)

	items, total, err := uc.productRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*productDomain.Product{}
	}

	return &productDomain.ProductPage{
		Items:      items,
		TotalCount: total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	}, nil
}

func (uc *productUseCase) Get(ctx context.Context, id uuid.UUID) (*productDomain.Product, error) {
	return uc.productRepo.GetByID(ctx, id)
}

func (uc *productUseCase) Create(
	ctx context.Context,
	sellerID uuid.UUID,
	input *productDomain.CreateProductInput,
) (*productDomain.Product, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &productDomain.Product{
		ID:              uuid.Must(uuid.NewV7()),
		Name:            input.Name,
		Cost:            input.Cost,
		AmountAvailable: input.AmountAvailable,
		SellerID:        sellerID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (uc *productUseCase) Update(
	ctx context.Context,
	sellerID, id uuid.UUID,
	input *productDomain.UpdateProductInput,
) (*productDomain.Product, error) {
	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		input.Name = &trimmed
	}
	if err := validateUpdateInput(input); err != nil {
		return nil, err
	}

	var product *productDomain.Product
	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		product, err = uc.productRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !product.IsOwnedBy(sellerID) {
			return productDomain.ErrNotProductOwner
		}

		if input.Name != nil {
			product.Name = *input.Name
		}
		if input.Cost != nil {
			product.Cost = *input.Cost
		}
		if input.AmountAvailable != nil {
			product.AmountAvailable = *input.AmountAvailable
		}
		product.UpdatedAt = time.Now().UTC()

		return uc.productRepo.Update(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (uc *productUseCase) Delete(ctx context.Context, sellerID, id uuid.UUID) error {
	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		product, err := uc.productRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !product.IsOwnedBy(sellerID) {
			return productDomain.ErrNotProductOwner
		}
		return uc.productRepo.Delete(ctx, id)
	})
}
