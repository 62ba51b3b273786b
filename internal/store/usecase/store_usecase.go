package usecase

import (
	"context"
	"math"

	"github.com/google/uuid"

	"github.com/allisson/vending/internal/database"
	storeDomain "github.com/allisson/vending/internal/store/domain"
	userDomain "github.com/allisson/vending/internal/user/domain"
)

type storeUseCase struct {
	txManager   database.TxManager
	accountRepo AccountRepository
	productRepo ProductRepository
	changeMaker storeDomain.ChangeMaker
	locker      Locker
	clock       Clock
}

// NewStoreUseCase creates a new StoreUseCase. Deposits are restricted to the coins of
// changeMaker, and every balance or stock write is stamped with clock.Now().
func NewStoreUseCase(
	txManager database.TxManager,
	accountRepo AccountRepository,
	productRepo ProductRepository,
	changeMaker storeDomain.ChangeMaker,
	locker Locker,
	clock Clock,
) StoreUseCase {
	return &storeUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		productRepo: productRepo,
		changeMaker: changeMaker,
		locker:      locker,
		clock:       clock,
	}
}

func userKey(id uuid.UUID) string {
	return "user:" + id.String()
}

func productKey(id uuid.UUID) string {
	return "product:" + id.String()
}

func (uc *storeUseCase) Deposit(ctx context.Context, coin int64, userID uuid.UUID) (*userDomain.User, error) {
	if !storeDomain.IsAccepted(uc.changeMaker.Denominations(), coin) {
		return nil, storeDomain.ErrInvalidCoin
	}

	unlock := uc.locker.Lock(userKey(userID))
	defer unlock()

	var user *userDomain.User
	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		user, err = uc.accountRepo.GetByIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		user.Deposit += coin
		user.UpdatedAt = uc.clock.Now()
		return uc.accountRepo.UpdateDeposit(ctx, user.ID, user.Deposit, user.UpdatedAt)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *storeUseCase) Buy(
	ctx context.Context,
	productID uuid.UUID,
	amount int64,
	userID uuid.UUID,
) (*storeDomain.PurchaseResult, error) {
	if amount <= 0 {
		return nil, storeDomain.ErrInvalidAmount
	}

	unlock := uc.locker.Lock(userKey(userID), productKey(productID))
	defer unlock()

	var result *storeDomain.PurchaseResult
	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		user, err := uc.accountRepo.GetByIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		product, err := uc.productRepo.GetByIDForUpdate(ctx, productID)
		if err != nil {
			return err
		}

		if product.AmountAvailable < amount {
			return storeDomain.ErrOutOfStock
		}
		if product.Cost > 0 && amount > math.MaxInt64/product.Cost {
			return storeDomain.ErrPurchaseTooLarge
		}
		price := product.Cost * amount
		if user.Deposit < price {
			return storeDomain.ErrInsufficientFunds
		}
		coinChange, err := uc.changeMaker.Change(user.Deposit - price)
		if err != nil {
			return err
		}

		now := uc.clock.Now()
		product.AmountAvailable -= amount
		product.UpdatedAt = now
		if err := uc.productRepo.Update(ctx, product); err != nil {
			return err
		}
		if err := uc.accountRepo.UpdateDeposit(ctx, user.ID, 0, now); err != nil {
			return err
		}

		result = &storeDomain.PurchaseResult{
			TotalSpent: price,
			Product:    product.Name,
			CoinChange: coinChange,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *storeUseCase) ResetDeposit(ctx context.Context, userID uuid.UUID) error {
	unlock := uc.locker.Lock(userKey(userID))
	defer unlock()

	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		user, err := uc.accountRepo.GetByIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if user.Deposit == 0 {
			return nil
		}
		return uc.accountRepo.UpdateDeposit(ctx, user.ID, 0, uc.clock.Now())
	})
}
