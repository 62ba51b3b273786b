// Package usecase implements deposits, purchases and balance resets.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	productDomain "github.com/allisson/vending/internal/product/domain"
	storeDomain "github.com/allisson/vending/internal/store/domain"
	userDomain "github.com/allisson/vending/internal/user/domain"
)

// AccountRepository is the slice of account persistence the store needs.
type AccountRepository interface {
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*userDomain.User, error)
	UpdateDeposit(ctx context.Context, id uuid.UUID, deposit int64, updatedAt time.Time) error
}

// ProductRepository is the slice of product persistence the store needs.
type ProductRepository interface {
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*productDomain.Product, error)
	Update(ctx context.Context, product *productDomain.Product) error
}

// Clock supplies the timestamp written alongside balance and stock changes.
type Clock interface {
	Now() time.Time
}

// Locker serializes work on a set of keys within the process.
type Locker interface {
	Lock(keys ...string) (unlock func())
}

// StoreUseCase defines the buyer operations.
type StoreUseCase interface {
	// Deposit adds one coin to the balance of the account.
	Deposit(ctx context.Context, coin int64, userID uuid.UUID) (*userDomain.User, error)

	// Buy purchases amount units of a product, pays out the remaining balance as change
	// and leaves the balance at zero. Nothing is written when any check fails.
	Buy(ctx context.Context, productID uuid.UUID, amount int64, userID uuid.UUID) (*storeDomain.PurchaseResult, error)

	// ResetDeposit sets the balance to zero.
	ResetDeposit(ctx context.Context, userID uuid.UUID) error
}
